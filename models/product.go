package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item with dual INR/USD pricing
type Product struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"not null;index" json:"name"`
	Description        string         `gorm:"type:text" json:"description"`
	Category           string         `gorm:"not null;index" json:"category"` // category slug
	PriceINR           float64        `gorm:"not null" json:"price_inr"`
	PriceUSD           float64        `gorm:"not null" json:"price_usd"`
	DiscountedPriceINR *float64       `json:"discounted_price_inr"`
	DiscountedPriceUSD *float64       `json:"discounted_price_usd"`
	DiscountPercent    *float64       `json:"discount_percent"` // [0,100]
	Stock              int            `gorm:"not null;default:0" json:"stock"`
	MainImageKey       string         `json:"main_image_key"`
	HoverImageKey      string         `json:"hover_image_key"`
	MainImageURL       string         `gorm:"-" json:"main_image_url,omitempty"`  // computed, presigned URL
	HoverImageURL      string         `gorm:"-" json:"hover_image_url,omitempty"` // computed, presigned URL
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ValidatePricing enforces the discount invariants at the data layer:
// a discounted price must undercut the original and the discount
// percentage must sit in [0,100].
func (p *Product) ValidatePricing() error {
	if p.PriceINR <= 0 || p.PriceUSD <= 0 {
		return fmt.Errorf("prices must be positive")
	}
	if p.DiscountedPriceINR != nil && *p.DiscountedPriceINR >= p.PriceINR {
		return fmt.Errorf("discounted INR price must be less than the original price")
	}
	if p.DiscountedPriceUSD != nil && *p.DiscountedPriceUSD >= p.PriceUSD {
		return fmt.Errorf("discounted USD price must be less than the original price")
	}
	if p.DiscountPercent != nil && (*p.DiscountPercent < 0 || *p.DiscountPercent > 100) {
		return fmt.Errorf("discount percent must be between 0 and 100")
	}
	return nil
}

// EffectivePrice returns the unit price charged for the product in the
// given currency, preferring the discounted price when one is set.
func (p *Product) EffectivePrice(currency string) float64 {
	if currency == CurrencyINR {
		if p.DiscountedPriceINR != nil {
			return *p.DiscountedPriceINR
		}
		return p.PriceINR
	}
	if p.DiscountedPriceUSD != nil {
		return *p.DiscountedPriceUSD
	}
	return p.PriceUSD
}
