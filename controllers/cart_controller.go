package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/middleware"
	"github.com/yash9424/first-night-api/models"
	"github.com/yash9424/first-night-api/pricing"
)

// AddToCartRequest represents the request body for adding a cart item
type AddToCartRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

// UpdateCartItemRequest represents the request body for changing a quantity.
// Quantity is a pointer so an explicit 0 (remove the item) is not
// swallowed by the required validator.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

func cartItems(db *gorm.DB, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// cartTotals prices the cart for the user's country through the shared
// pricing module, so the preview matches what checkout will charge.
func cartTotals(items []models.CartItem, country string) pricing.Totals {
	lines := make([]pricing.Item, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.Item{
			PriceINR:           it.Product.PriceINR,
			PriceUSD:           it.Product.PriceUSD,
			DiscountedPriceINR: it.Product.DiscountedPriceINR,
			DiscountedPriceUSD: it.Product.DiscountedPriceUSD,
			Quantity:           it.Quantity,
		})
	}
	return pricing.Compute(lines, country)
}

// GetCart handles GET /api/cart
func GetCart(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	db := config.GetDB()
	items, err := cartItems(db, user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch cart")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"items":  items,
		"totals": cartTotals(items, user.Country),
	})
}

// AddToCart handles POST /api/cart - merges quantity when the product
// is already in the cart
func AddToCart(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, req.ProductID).Error; err != nil {
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	item := models.CartItem{
		UserID:    user.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	}

	// Upsert on (user_id, product_id): adding the same product again
	// bumps the quantity instead of creating a second row.
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", req.Quantity)}),
	}).Create(&item).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add to cart")
		return
	}

	items, err := cartItems(db, user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch cart")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"items":  items,
		"totals": cartTotals(items, user.Country),
	})
}

// UpdateCartItem handles PUT /api/cart/:productId - quantity 0 removes
// the row
func UpdateCartItem(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var item models.CartItem
	if err := db.Where("user_id = ? AND product_id = ?", user.ID, productID).First(&item).Error; err != nil {
		respondError(c, http.StatusNotFound, "CART_ITEM_NOT_FOUND", "Item not in cart")
		return
	}

	if *req.Quantity == 0 {
		if err := db.Delete(&item).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove cart item")
			return
		}
	} else {
		if err := db.Model(&item).Update("quantity", *req.Quantity).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update cart item")
			return
		}
	}

	items, err := cartItems(db, user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch cart")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"items":  items,
		"totals": cartTotals(items, user.Country),
	})
}

// RemoveCartItem handles DELETE /api/cart/:productId
func RemoveCartItem(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product ID")
		return
	}

	db := config.GetDB()
	if err := db.Where("user_id = ? AND product_id = ?", user.ID, productID).
		Delete(&models.CartItem{}).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove cart item")
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Item removed"})
}

// ClearCart handles DELETE /api/cart
func ClearCart(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	db := config.GetDB()
	if err := db.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to clear cart")
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Cart cleared"})
}
