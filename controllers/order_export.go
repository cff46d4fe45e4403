package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/models"
)

var exportHeader = []string{
	"Order Number", "Date", "Customer", "Email", "Status", "Payment Method",
	"Payment Status", "Currency", "Subtotal", "Shipping", "Tax", "Total",
	"Items", "City", "Country", "Tracking Number", "Courier",
}

func exportRow(o *models.Order) []string {
	items := 0
	for _, it := range o.Items {
		items += it.Quantity
	}
	tracking, courier := "", ""
	if o.TrackingNumber != nil {
		tracking = *o.TrackingNumber
	}
	if o.CourierProvider != nil {
		courier = *o.CourierProvider
	}
	return []string{
		o.OrderNumber,
		o.CreatedAt.Format("2006-01-02 15:04"),
		o.ShippingAddress.FullName,
		o.ShippingAddress.Email,
		string(o.OrderStatus),
		o.PaymentMethod,
		o.PaymentStatus,
		o.Currency,
		fmt.Sprintf("%.2f", o.Subtotal),
		fmt.Sprintf("%.2f", o.ShippingCost),
		fmt.Sprintf("%.2f", o.Tax),
		fmt.Sprintf("%.2f", o.TotalAmount),
		strconv.Itoa(items),
		o.ShippingAddress.City,
		o.ShippingAddress.Country,
		tracking,
		courier,
	}
}

// ExportOrders handles GET /api/orders/export?format=csv|xlsx|json
// (admin only). Accepts the same filters as the order list.
func ExportOrders(c *gin.Context) {
	db := config.GetDB()

	var orders []models.Order
	query := orderFilters(c, db.Model(&models.Order{}))
	if err := query.Preload("Items").Order("orders.created_at DESC").Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch orders")
		return
	}

	stamp := time.Now().Format("20060102-150405")

	switch c.DefaultQuery("format", "csv") {
	case "json":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%s.json", stamp))
		c.JSON(http.StatusOK, orders)

	case "xlsx":
		f := excelize.NewFile()
		defer f.Close()

		sheet := "Orders"
		f.SetSheetName("Sheet1", sheet)
		for col, title := range exportHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, title)
		}
		for row := range orders {
			values := exportRow(&orders[row])
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%s.xlsx", stamp))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to write spreadsheet")
		}

	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%s.csv", stamp))
		c.Header("Content-Type", "text/csv")

		w := csv.NewWriter(c.Writer)
		_ = w.Write(exportHeader)
		for i := range orders {
			_ = w.Write(exportRow(&orders[i]))
		}
		w.Flush()

	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown export format")
	}
}
