package models

import (
	"time"
)

// CartItem is one row of a user's server-side cart. The cart is
// ephemeral: rows are deleted when checkout succeeds.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_cart_user_product,unique" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Size      *string   `json:"size,omitempty"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart_items"
}
