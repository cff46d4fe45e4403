package services

import (
	"sync"
)

// SentEmail records one email captured by the mock
type SentEmail struct {
	To          string
	Kind        string // "password_reset", "cancellation_resolved", "order_confirmation"
	OrderNumber string
	Approved    bool
	AdminNote   string
	ResetURL    string
}

// MockEmailService is a mock implementation of EmailService for testing
type MockEmailService struct {
	mu    sync.Mutex
	Sent  []SentEmail
	Fail  bool // when true, every send returns an error
	Error error
}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SetAsMockForTesting sets this mock as the global email service instance for testing
func (m *MockEmailService) SetAsMockForTesting() {
	SetEmailService(m)
}

func (m *MockEmailService) record(e SentEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return m.Error
	}
	m.Sent = append(m.Sent, e)
	return nil
}

// SendPasswordReset records a password reset email
func (m *MockEmailService) SendPasswordReset(to, resetURL string) error {
	return m.record(SentEmail{To: to, Kind: "password_reset", ResetURL: resetURL})
}

// SendCancellationResolved records a cancellation resolution email
func (m *MockEmailService) SendCancellationResolved(to, orderNumber string, approved bool, adminNote string) error {
	return m.record(SentEmail{To: to, Kind: "cancellation_resolved", OrderNumber: orderNumber, Approved: approved, AdminNote: adminNote})
}

// SendOrderConfirmation records an order confirmation email
func (m *MockEmailService) SendOrderConfirmation(to, orderNumber string, total float64, currency string) error {
	return m.record(SentEmail{To: to, Kind: "order_confirmation", OrderNumber: orderNumber})
}

// LastSent returns the most recently recorded email, or nil
func (m *MockEmailService) LastSent() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	e := m.Sent[len(m.Sent)-1]
	return &e
}
