package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	appConfig "github.com/yash9424/first-night-api/config"
)

// PaymentInterface defines the interface for the payment gateway
type PaymentInterface interface {
	// CreateOrder registers an order with the gateway and returns its
	// gateway order id. Amount is in the smallest currency unit.
	CreateOrder(amount int64, currency, receipt string) (string, error)
	// VerifySignature checks the webhook/callback signature over
	// "<gatewayOrderID>|<paymentID>".
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// RazorpayService talks to the Razorpay API
type RazorpayService struct {
	client    *razorpay.Client
	keySecret string
}

var paymentServiceInstance PaymentInterface

// InitPaymentService initializes the Razorpay payment service
func InitPaymentService() PaymentInterface {
	cfg := appConfig.GetConfig()
	paymentServiceInstance = &RazorpayService{
		client:    razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		keySecret: cfg.RazorpayKeySecret,
	}
	return paymentServiceInstance
}

// GetPaymentService returns the initialized payment service instance
func GetPaymentService() PaymentInterface {
	return paymentServiceInstance
}

// SetPaymentService sets the payment service instance (primarily for testing)
func SetPaymentService(service PaymentInterface) {
	paymentServiceInstance = service
}

// CreateOrder creates an order on Razorpay
func (s *RazorpayService) CreateOrder(amount int64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create razorpay order: %w", err)
	}

	id, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return id, nil
}

// VerifySignature checks the HMAC-SHA256 payment signature
func (s *RazorpayService) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return verifyRazorpaySignature(s.keySecret, gatewayOrderID, paymentID, signature)
}

func razorpaySignature(secret, gatewayOrderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func verifyRazorpaySignature(secret, gatewayOrderID, paymentID, signature string) bool {
	expected := razorpaySignature(secret, gatewayOrderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
