package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/middleware"
	"github.com/yash9424/first-night-api/models"
	"github.com/yash9424/first-night-api/pricing"
	"github.com/yash9424/first-night-api/services"
	"github.com/yash9424/first-night-api/utils"
)

// AddressPayload represents an address in checkout requests
type AddressPayload struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

func (a *AddressPayload) toModel() models.Address {
	return models.Address{
		FullName:   a.FullName,
		Phone:      a.Phone,
		Email:      a.Email,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// CheckoutItem is one requested line in a checkout
type CheckoutItem struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
}

// CreateOrderRequest represents the checkout request body. When Items
// is empty the server falls back to the user's saved cart.
type CreateOrderRequest struct {
	Items           []CheckoutItem  `json:"items"`
	ShippingAddress AddressPayload  `json:"shipping_address" binding:"required"`
	BillingAddress  *AddressPayload `json:"billing_address"`
	SameAsShipping  bool            `json:"same_as_shipping"`
	PaymentMethod   string          `json:"payment_method" binding:"required,oneof=cod razorpay"`
}

// insufficientStockError carries the product that could not be reserved.
type insufficientStockError struct {
	ProductID uint
	Name      string
}

func (e *insufficientStockError) Error() string {
	return "insufficient stock for " + e.Name
}

// CreateOrder handles POST /api/orders - checkout.
//
// Stock is checked and decremented in the same transaction that creates
// the order and clears the cart, so a concurrent checkout cannot
// oversell. An Idempotency-Key header makes the request replay-safe:
// the same key returns the original order instead of a duplicate.
func CreateOrder(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	idempotencyKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if idempotencyKey != "" {
		var existing models.Order
		if err := db.Where("idempotency_key = ? AND user_id = ?", idempotencyKey, user.ID).
			Preload("Items").
			First(&existing).Error; err == nil {
			respondData(c, http.StatusOK, existing)
			return
		}
	}

	// Resolve the requested lines, defaulting to the saved cart.
	lines := req.Items
	if len(lines) == 0 {
		saved, err := cartItems(db, user.ID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch cart")
			return
		}
		for _, it := range saved {
			lines = append(lines, CheckoutItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Size:      it.Size,
				Color:     it.Color,
			})
		}
	}
	if len(lines) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_CART", "Cannot place an order with no items")
		return
	}

	shipping := req.ShippingAddress.toModel()
	billing := shipping
	if !req.SameAsShipping && req.BillingAddress != nil {
		billing = req.BillingAddress.toModel()
	}

	now := time.Now()
	order := models.Order{
		OrderNumber:     utils.GenerateOrderNumber(now),
		UserID:          user.ID,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		SameAsShipping:  req.SameAsShipping || req.BillingAddress == nil,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.StatusPending,
	}
	if req.PaymentMethod == models.PaymentMethodRazorpay {
		// Online payments wait for gateway verification.
		order.OrderStatus = models.StatusPendingVerification
	}
	if idempotencyKey != "" {
		order.IdempotencyKey = &idempotencyKey
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		currency := pricing.CurrencyFor(shipping.Country)
		priceLines := make([]pricing.Item, 0, len(lines))

		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				return err
			}

			// Conditional decrement closes the gap between the stock
			// check and the order insert.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &insufficientStockError{ProductID: product.ID, Name: product.Name}
			}

			priceLines = append(priceLines, pricing.Item{
				PriceINR:           product.PriceINR,
				PriceUSD:           product.PriceUSD,
				DiscountedPriceINR: product.DiscountedPriceINR,
				DiscountedPriceUSD: product.DiscountedPriceUSD,
				Quantity:           line.Quantity,
			})
			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.EffectivePrice(currency),
				Quantity:  line.Quantity,
				Size:      line.Size,
				Color:     line.Color,
			})
		}

		totals := pricing.Compute(priceLines, shipping.Country)
		order.Currency = totals.Currency
		order.Subtotal = totals.Subtotal
		order.ShippingCost = totals.ShippingCost
		order.Tax = totals.Tax
		order.TotalAmount = totals.Total

		if order.PaymentMethod == models.PaymentMethodRazorpay {
			gateway := services.GetPaymentService()
			if gateway == nil {
				return errors.New("payment gateway not configured")
			}
			gwID, err := gateway.CreateOrder(int64(order.TotalAmount*100), order.Currency, order.OrderNumber)
			if err != nil {
				return err
			}
			order.RazorpayOrderID = &gwID
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// The cart is cleared in the same transaction as the order.
		return tx.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error
	})

	if txErr != nil {
		var stockErr *insufficientStockError
		if errors.As(txErr, &stockErr) {
			respondError(c, http.StatusConflict, "INSUFFICIENT_STOCK", stockErr.Error())
			return
		}
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "One of the products no longer exists")
			return
		}
		// A concurrent request with the same key can win the insert
		// between the replay pre-check and this create. Serve the
		// winner's order instead of surfacing the unique violation.
		if errors.Is(txErr, gorm.ErrDuplicatedKey) && idempotencyKey != "" {
			var existing models.Order
			if err := db.Where("idempotency_key = ? AND user_id = ?", idempotencyKey, user.ID).
				Preload("Items").
				First(&existing).Error; err == nil {
				respondData(c, http.StatusOK, existing)
				return
			}
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "error": txErr.Error()}).Error("checkout failed")
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order")
		return
	}

	if mailer := services.GetEmailService(); mailer != nil {
		_ = mailer.SendOrderConfirmation(user.Email, order.OrderNumber, order.TotalAmount, order.Currency)
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      user.ID,
		"total":        order.TotalAmount,
		"currency":     order.Currency,
		"items_count":  len(order.Items),
	}).Info("order created")

	respondData(c, http.StatusCreated, order)
}

// ValidateStockRequest represents the pre-checkout stock check
type ValidateStockRequest struct {
	Items []CheckoutItem `json:"items" binding:"required,min=1"`
}

// ValidateStock handles POST /api/orders/validate-stock. Advisory only:
// checkout re-validates inside its transaction.
func ValidateStock(c *gin.Context) {
	var req ValidateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	type stockIssue struct {
		ProductID uint   `json:"product_id"`
		Name      string `json:"name"`
		Requested int    `json:"requested"`
		Available int    `json:"available"`
	}
	issues := []stockIssue{}

	for _, line := range req.Items {
		var product models.Product
		if err := db.First(&product, line.ProductID).Error; err != nil {
			issues = append(issues, stockIssue{ProductID: line.ProductID, Requested: line.Quantity})
			continue
		}
		if product.Stock < line.Quantity {
			issues = append(issues, stockIssue{
				ProductID: product.ID,
				Name:      product.Name,
				Requested: line.Quantity,
				Available: product.Stock,
			})
		}
	}

	respondData(c, http.StatusOK, gin.H{
		"valid":  len(issues) == 0,
		"issues": issues,
	})
}

// orderFilters applies the admin list/export filters from query params.
func orderFilters(c *gin.Context, query *gorm.DB) *gorm.DB {
	if status := c.Query("status"); status != "" {
		query = query.Where("orders.order_status = ?", status)
	}
	if method := c.Query("payment_method"); method != "" {
		query = query.Where("orders.payment_method = ?", method)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("orders.created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("orders.created_at < ?", t.Add(24*time.Hour))
		}
	}
	if q := c.Query("q"); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Joins("JOIN users ON users.id = orders.user_id").
			Where("LOWER(orders.order_number) LIKE ? OR LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?",
				pattern, pattern, pattern)
	}
	return query
}

// ListOrders handles GET /api/orders (admin only) - paginated with filters
func ListOrders(c *gin.Context) {
	db := config.GetDB()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := orderFilters(c, db.Model(&models.Order{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count orders")
		return
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").
		Order("orders.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch orders")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"orders":      orders,
		"total":       total,
		"page":        page,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	})
}

// MyOrders handles GET /api/orders/my-orders
func MyOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	db := config.GetDB()

	var orders []models.Order
	if err := db.Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch orders")
		return
	}

	respondData(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id - owner or admin
func GetOrder(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Preload("Items").Preload("User").First(&order, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	if order.UserID != user.ID && !user.IsAdmin() {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to view this order")
		return
	}

	respondData(c, http.StatusOK, order)
}

// GetOrderByNumber handles GET /api/orders/by-number/:orderNumber (admin only)
func GetOrderByNumber(c *gin.Context) {
	number := c.Param("orderNumber")
	if !utils.ValidOrderNumber(number) {
		respondError(c, http.StatusBadRequest, "INVALID_ORDER_NUMBER", "Order number format is invalid")
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Where("order_number = ?", number).
		Preload("Items").Preload("User").
		First(&order).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	respondData(c, http.StatusOK, order)
}

// TrackOrderRequest represents the public tracking lookup
type TrackOrderRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

// TrackOrder handles POST /api/orders/track. Public, so the response is
// limited to status and tracking fields.
func TrackOrder(c *gin.Context) {
	var req TrackOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if !utils.ValidOrderNumber(req.OrderNumber) {
		respondError(c, http.StatusBadRequest, "INVALID_ORDER_NUMBER", "Order number format is invalid")
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Where("order_number = ? AND LOWER(shipping_email) = LOWER(?)", req.OrderNumber, req.Email).
		First(&order).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "No order matches that number and email")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"order_number":     order.OrderNumber,
		"order_status":     order.OrderStatus,
		"payment_status":   order.PaymentStatus,
		"tracking_number":  order.TrackingNumber,
		"courier_provider": order.CourierProvider,
		"tracking_url":     order.TrackingURL,
		"created_at":       order.CreatedAt,
	})
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status          models.OrderStatus `json:"status" binding:"required"`
	TrackingNumber  string             `json:"tracking_number"`
	CourierProvider string             `json:"courier_provider"`
	TrackingURL     string             `json:"tracking_url"`
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status (admin only)
func UpdateOrderStatus(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	shipping := &models.ShippingInfo{
		TrackingNumber:  req.TrackingNumber,
		CourierProvider: req.CourierProvider,
		TrackingURL:     req.TrackingURL,
	}
	if err := order.ApplyStatus(req.Status, shipping); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error())
		return
	}

	if err := db.Save(&order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order")
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"status":       order.OrderStatus,
	}).Info("order status updated")

	respondData(c, http.StatusOK, order)
}

// BulkStatusRequest represents the bulk admin status update
type BulkStatusRequest struct {
	IDs    []uint             `json:"ids" binding:"required,min=1"`
	Status models.OrderStatus `json:"status" binding:"required"`
}

// BulkUpdateStatus handles PATCH /api/orders/bulk-status (admin only).
// Limited to CONFIRMED and CANCELLED; each order is applied on its own
// and failures are reported per id rather than failing the batch.
func BulkUpdateStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if req.Status != models.StatusConfirmed && req.Status != models.StatusCancelled {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Bulk updates may only set CONFIRMED or CANCELLED")
		return
	}

	db := config.GetDB()

	type bulkResult struct {
		ID      uint   `json:"id"`
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	results := make([]bulkResult, 0, len(req.IDs))

	for _, id := range req.IDs {
		var order models.Order
		if err := db.First(&order, id).Error; err != nil {
			results = append(results, bulkResult{ID: id, Error: "order not found"})
			continue
		}
		if err := order.ApplyStatus(req.Status, nil); err != nil {
			results = append(results, bulkResult{ID: id, Error: err.Error()})
			continue
		}
		if err := db.Save(&order).Error; err != nil {
			results = append(results, bulkResult{ID: id, Error: "failed to save order"})
			continue
		}
		results = append(results, bulkResult{ID: id, Success: true})
	}

	respondData(c, http.StatusOK, gin.H{"results": results})
}

// UpdatePaymentStatusRequest represents a manual payment status override
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// UpdatePaymentStatus handles PATCH /api/orders/:id/payment-status (admin only)
func UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	valid := false
	for _, s := range models.PaymentStatuses {
		if req.PaymentStatus == s {
			valid = true
			break
		}
	}
	if !valid {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown payment status")
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	if err := db.Model(&order).Update("payment_status", req.PaymentStatus).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update payment status")
		return
	}

	respondData(c, http.StatusOK, order)
}

// CancelRequestBody serves both sides of the cancellation workflow:
// customers send a reason, admins send an action and a note.
type CancelRequestBody struct {
	Reason string `json:"reason"`
	Action string `json:"action"`
	Note   string `json:"note"`
}

// CancelRequest handles PATCH /api/orders/:id/cancel-request.
//
// A customer files a cancellation request on their own order; an admin
// resolves a pending one. Approval restores line-item stock in the same
// transaction that cancels the order.
func CancelRequest(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	var req CancelRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Preload("Items").Preload("User").First(&order, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	// Admin resolution path.
	if req.Action != "" {
		if !user.IsAdmin() {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "Only admins can resolve cancellation requests")
			return
		}

		if err := order.ResolveCancellation(req.Action, req.Note); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if req.Action == models.CancellationApproved {
				// Return reserved stock to the shelf.
				for _, item := range order.Items {
					if err := tx.Model(&models.Product{}).
						Where("id = ?", item.ProductID).
						UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
						return err
					}
				}
			}
			return tx.Save(&order).Error
		})
		if txErr != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to resolve cancellation request")
			return
		}

		if mailer := services.GetEmailService(); mailer != nil {
			_ = mailer.SendCancellationResolved(order.User.Email, order.OrderNumber,
				req.Action == models.CancellationApproved, req.Note)
		}

		logrus.WithFields(logrus.Fields{
			"order_number": order.OrderNumber,
			"action":       req.Action,
		}).Info("cancellation request resolved")

		respondData(c, http.StatusOK, order)
		return
	}

	// Customer request path.
	if order.UserID != user.ID {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You can only cancel your own orders")
		return
	}

	if err := order.RequestCancellation(req.Reason, time.Now()); err != nil {
		var trErr *models.TransitionError
		if errors.As(err, &trErr) {
			respondError(c, http.StatusBadRequest, "CANCELLATION_WINDOW_EXPIRED", err.Error())
			return
		}
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := db.Save(&order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to file cancellation request")
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"user_id":      user.ID,
	}).Info("cancellation requested")

	respondData(c, http.StatusOK, order)
}

// VerifyPaymentRequest represents the gateway callback verification
type VerifyPaymentRequest struct {
	PaymentID string `json:"payment_id" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// VerifyPayment handles POST /api/orders/:id/verify-payment. Checks the
// Razorpay signature, marks the order paid and promotes it out of
// PENDING_VERIFICATION.
func VerifyPayment(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to verify this order")
		return
	}
	if order.RazorpayOrderID == nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Order was not placed with online payment")
		return
	}

	gateway := services.GetPaymentService()
	if gateway == nil || !gateway.VerifySignature(*order.RazorpayOrderID, req.PaymentID, req.Signature) {
		respondError(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Payment signature verification failed")
		return
	}

	order.PaymentStatus = models.PaymentStatusPaid
	order.RazorpayPayID = &req.PaymentID
	if order.OrderStatus == models.StatusPendingVerification {
		if err := order.ApplyStatus(models.StatusConfirmed, nil); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error())
			return
		}
	}

	if err := db.Save(&order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record payment")
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_number": order.OrderNumber,
		"payment_id":   req.PaymentID,
	}).Info("payment verified")

	respondData(c, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/:id (admin only) - hard delete
func DeleteOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order")
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Order deleted"})
}
