package services

import (
	"fmt"
	"net/smtp"
	"strings"

	appConfig "github.com/yash9424/first-night-api/config"
)

// EmailInterface defines the interface for outbound email
type EmailInterface interface {
	SendPasswordReset(to, resetURL string) error
	SendCancellationResolved(to, orderNumber string, approved bool, adminNote string) error
	SendOrderConfirmation(to, orderNumber string, total float64, currency string) error
}

// EmailService sends mail over SMTP
type EmailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

var emailServiceInstance EmailInterface

// InitEmailService initializes the SMTP email service
func InitEmailService() EmailInterface {
	cfg := appConfig.GetConfig()
	emailServiceInstance = &EmailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
	return emailServiceInstance
}

// GetEmailService returns the initialized email service instance
func GetEmailService() EmailInterface {
	return emailServiceInstance
}

// SetEmailService sets the email service instance (primarily for testing)
func SetEmailService(service EmailInterface) {
	emailServiceInstance = service
}

func (s *EmailService) send(to, subject, body string) error {
	if s.host == "" {
		return fmt.Errorf("email: SMTP_HOST not configured")
	}

	var b strings.Builder
	b.WriteString("From: First Night <" + s.from + ">\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	return smtp.SendMail(addr, auth, s.from, []string{to}, []byte(b.String()))
}

// SendPasswordReset emails a reset link to the user
func (s *EmailService) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(
		"We received a request to reset your password.\r\n\r\n"+
			"Reset it here (valid for 1 hour): %s\r\n\r\n"+
			"If you did not request this, you can ignore this email.",
		resetURL)
	return s.send(to, "Reset your First Night password", body)
}

// SendCancellationResolved notifies the customer of an admin decision
// on their cancellation request
func (s *EmailService) SendCancellationResolved(to, orderNumber string, approved bool, adminNote string) error {
	var subject, body string
	if approved {
		subject = fmt.Sprintf("Order %s has been cancelled", orderNumber)
		body = fmt.Sprintf(
			"Your cancellation request for order %s was approved.\r\n\r\nNote from our team: %s",
			orderNumber, adminNote)
	} else {
		subject = fmt.Sprintf("Cancellation request for order %s declined", orderNumber)
		body = fmt.Sprintf(
			"Your cancellation request for order %s was declined and the order will proceed.\r\n\r\nNote from our team: %s",
			orderNumber, adminNote)
	}
	return s.send(to, subject, body)
}

// SendOrderConfirmation emails the order number and total after checkout
func (s *EmailService) SendOrderConfirmation(to, orderNumber string, total float64, currency string) error {
	body := fmt.Sprintf(
		"Thank you for your order!\r\n\r\n"+
			"Order number: %s\r\nTotal: %.2f %s\r\n\r\n"+
			"You can track it any time with your order number and email.",
		orderNumber, total, currency)
	return s.send(to, fmt.Sprintf("Order %s confirmed", orderNumber), body)
}
