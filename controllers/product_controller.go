package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/models"
	"github.com/yash9424/first-night-api/services"
)

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	Name               string   `json:"name" binding:"required"`
	Description        string   `json:"description"`
	Category           string   `json:"category" binding:"required"`
	PriceINR           float64  `json:"price_inr" binding:"required,gt=0"`
	PriceUSD           float64  `json:"price_usd" binding:"required,gt=0"`
	DiscountedPriceINR *float64 `json:"discounted_price_inr"`
	DiscountedPriceUSD *float64 `json:"discounted_price_usd"`
	DiscountPercent    *float64 `json:"discount_percent"`
	Stock              int      `json:"stock" binding:"gte=0"`
	MainImageKey       string   `json:"main_image_key"`
	HoverImageKey      string   `json:"hover_image_key"`
}

func (r *ProductRequest) apply(p *models.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Category = r.Category
	p.PriceINR = r.PriceINR
	p.PriceUSD = r.PriceUSD
	p.DiscountedPriceINR = r.DiscountedPriceINR
	p.DiscountedPriceUSD = r.DiscountedPriceUSD
	p.DiscountPercent = r.DiscountPercent
	p.Stock = r.Stock
	p.MainImageKey = r.MainImageKey
	p.HoverImageKey = r.HoverImageKey
}

// attachImageURLs fills the computed presigned URL fields when the S3
// service is configured.
func attachImageURLs(products []models.Product) {
	s3 := services.GetS3Service()
	if s3 == nil {
		return
	}
	for i := range products {
		if url, err := s3.GetPresignedURL(products[i].MainImageKey); err == nil {
			products[i].MainImageURL = url
		}
		if url, err := s3.GetPresignedURL(products[i].HoverImageKey); err == nil {
			products[i].HoverImageURL = url
		}
	}
}

// ListProducts handles GET /api/products - paginated catalog listing
func ListProducts(c *gin.Context) {
	db := config.GetDB()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := db.Model(&models.Product{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count products")
		return
	}

	var products []models.Product
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch products")
		return
	}

	attachImageURLs(products)

	respondData(c, http.StatusOK, gin.H{
		"products":    products,
		"total":       total,
		"page":        page,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	})
}

// GetProduct handles GET /api/products/:id
func GetProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	single := []models.Product{product}
	attachImageURLs(single)

	respondData(c, http.StatusOK, single[0])
}

// SearchProducts handles GET /api/products/search?q=
func SearchProducts(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Search query is required")
		return
	}

	db := config.GetDB()

	var products []models.Product
	pattern := "%" + q + "%"
	if err := db.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Limit(50).
		Find(&products).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to search products")
		return
	}

	attachImageURLs(products)

	respondData(c, http.StatusOK, products)
}

// CreateProduct handles POST /api/products (admin only)
func CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	var product models.Product
	req.apply(&product)

	if err := product.ValidatePricing(); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product")
		return
	}

	respondData(c, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/:id (admin only)
func UpdateProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	req.apply(&product)

	if err := product.ValidatePricing(); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := db.Save(&product).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product")
		return
	}

	respondData(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id (admin only)
func DeleteProduct(c *gin.Context) {
	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product")
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Product deleted"})
}

// ProductStats handles GET /api/products/stats (admin only)
func ProductStats(c *gin.Context) {
	db := config.GetDB()

	var total, outOfStock, lowStock int64
	if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute stats")
		return
	}
	db.Model(&models.Product{}).Where("stock = 0").Count(&outOfStock)
	db.Model(&models.Product{}).Where("stock > 0 AND stock <= 5").Count(&lowStock)

	type categoryCount struct {
		Category string `json:"category"`
		Count    int64  `json:"count"`
	}
	var byCategory []categoryCount
	db.Model(&models.Product{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&byCategory)

	respondData(c, http.StatusOK, gin.H{
		"total":        total,
		"out_of_stock": outOfStock,
		"low_stock":    lowStock,
		"by_category":  byCategory,
	})
}
