package models

import (
	"time"
)

// Currencies
const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
)

// Payment methods
const (
	PaymentMethodCOD      = "cod"
	PaymentMethodRazorpay = "razorpay"
)

// Payment statuses
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// PaymentStatuses lists every valid payment status, for API validation.
var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// Address is a structured postal + contact record embedded on orders.
type Address struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// CancellationRequest records a customer-initiated cancellation and its
// admin resolution. Present only once a request has been filed.
type CancellationRequest struct {
	Reason      string     `json:"reason,omitempty"`
	RequestedAt *time.Time `json:"requested_at,omitempty"`
	Status      string     `json:"status,omitempty"` // PENDING, APPROVED, REJECTED
	AdminNote   string     `json:"admin_note,omitempty"`
}

// Cancellation request statuses
const (
	CancellationPending  = "PENDING"
	CancellationApproved = "APPROVED"
	CancellationRejected = "REJECTED"
)

// Order is the persisted order record. Orders are hard-deleted only via
// the explicit admin delete action, so there is no soft-delete column.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderNumber string      `gorm:"uniqueIndex;not null" json:"order_number"` // BO-YYMMDD-HHMM-MSS-RRRR, immutable
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        User        `gorm:"foreignKey:UserID" json:"user"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  Address `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	SameAsShipping  bool    `json:"same_as_shipping"`

	PaymentMethod   string  `gorm:"not null" json:"payment_method"`            // cod, razorpay
	PaymentStatus   string  `gorm:"not null;default:'PENDING'" json:"payment_status"`
	RazorpayOrderID *string `json:"razorpay_order_id,omitempty"`
	RazorpayPayID   *string `json:"razorpay_payment_id,omitempty"`

	Currency     string  `gorm:"not null" json:"currency"` // INR or USD, derived from shipping country
	Subtotal     float64 `gorm:"not null" json:"subtotal"`
	ShippingCost float64 `gorm:"not null" json:"shipping_cost"`
	Tax          float64 `gorm:"not null" json:"tax"`
	TotalAmount  float64 `gorm:"not null" json:"total_amount"`

	OrderStatus              OrderStatus         `gorm:"not null;index" json:"order_status"`
	StatusBeforeCancellation *OrderStatus        `json:"status_before_cancellation,omitempty"`
	Cancellation             CancellationRequest `gorm:"embedded;embeddedPrefix:cancellation_" json:"cancellation_request"`

	TrackingNumber  *string `json:"tracking_number,omitempty"`
	CourierProvider *string `json:"courier_provider,omitempty"`
	TrackingURL     *string `json:"tracking_url,omitempty"`

	IdempotencyKey *string `gorm:"uniqueIndex" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line captured at order time; price and name are
// snapshots, not live product lookups.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Name      string  `gorm:"not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"` // unit price in the order's currency
	Quantity  int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Size      *string `json:"size,omitempty"`
	Color     *string `json:"color,omitempty"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
