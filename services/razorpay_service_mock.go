package services

import (
	"fmt"
	"sync"
)

// MockPaymentService is a mock implementation of PaymentService for testing
type MockPaymentService struct {
	mu       sync.Mutex
	counter  int
	Created  []int64 // amounts of created orders
	Secret   string  // secret used for signature verification
	FailNext bool
}

// NewMockPaymentService creates a new mock payment service
func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{Secret: "test-razorpay-secret"}
}

// SetAsMockForTesting sets this mock as the global payment service instance for testing
func (m *MockPaymentService) SetAsMockForTesting() {
	SetPaymentService(m)
}

// CreateOrder returns a deterministic fake gateway order id
func (m *MockPaymentService) CreateOrder(amount int64, currency, receipt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return "", fmt.Errorf("gateway unavailable")
	}

	m.counter++
	m.Created = append(m.Created, amount)
	return fmt.Sprintf("order_mock%06d", m.counter), nil
}

// VerifySignature verifies against the mock's secret
func (m *MockPaymentService) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return verifyRazorpaySignature(m.Secret, gatewayOrderID, paymentID, signature)
}

// Sign produces a valid signature for tests
func (m *MockPaymentService) Sign(gatewayOrderID, paymentID string) string {
	return razorpaySignature(m.Secret, gatewayOrderID, paymentID)
}
