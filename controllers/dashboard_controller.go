package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/models"
)

// DashboardStats handles GET /api/dashboard/stats (admin only)
func DashboardStats(c *gin.Context) {
	db := config.GetDB()

	var totalOrders, totalUsers, totalProducts, pendingCancellations, newContacts int64
	db.Model(&models.Order{}).Count(&totalOrders)
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.Product{}).Count(&totalProducts)
	db.Model(&models.Order{}).
		Where("order_status = ?", models.StatusCancellationReq).
		Count(&pendingCancellations)
	db.Model(&models.Contact{}).
		Where("status = ?", models.ContactStatusNew).
		Count(&newContacts)

	type revenueRow struct {
		Currency string  `json:"currency"`
		Revenue  float64 `json:"revenue"`
		Orders   int64   `json:"orders"`
	}
	var revenue []revenueRow
	// Cancelled orders do not count toward revenue.
	db.Model(&models.Order{}).
		Select("currency, SUM(total_amount) as revenue, COUNT(*) as orders").
		Where("order_status NOT IN ?", []models.OrderStatus{models.StatusCancelled, models.StatusCancellationReq}).
		Group("currency").
		Scan(&revenue)

	type statusRow struct {
		Status models.OrderStatus `json:"status"`
		Count  int64              `json:"count"`
	}
	var byStatus []statusRow
	db.Model(&models.Order{}).
		Select("order_status as status, COUNT(*) as count").
		Group("order_status").
		Scan(&byStatus)

	var recent []models.Order
	db.Preload("Items").Order("created_at DESC").Limit(10).Find(&recent)

	since := time.Now().AddDate(0, 0, -30)
	var ordersLast30 int64
	db.Model(&models.Order{}).Where("created_at >= ?", since).Count(&ordersLast30)

	respondData(c, http.StatusOK, gin.H{
		"total_orders":          totalOrders,
		"total_users":           totalUsers,
		"total_products":        totalProducts,
		"pending_cancellations": pendingCancellations,
		"new_contacts":          newContacts,
		"revenue_by_currency":   revenue,
		"orders_by_status":      byStatus,
		"orders_last_30_days":   ordersLast30,
		"recent_orders":         recent,
	})
}
