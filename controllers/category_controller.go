package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/models"
)

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

// ListCategories handles GET /api/categories
func ListCategories(c *gin.Context) {
	db := config.GetDB()

	var categories []models.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch categories")
		return
	}

	respondData(c, http.StatusOK, categories)
}

// GetCategory handles GET /api/categories/:id
func GetCategory(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
		return
	}

	respondData(c, http.StatusOK, category)
}

// CreateCategory handles POST /api/categories (admin only)
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var existing models.Category
	if err := db.Where("slug = ?", req.Slug).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "DUPLICATE_SLUG", "A category with this slug already exists")
		return
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	}

	if err := db.Create(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category")
		return
	}

	respondData(c, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/categories/:id (admin only)
func UpdateCategory(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.Description = req.Description

	if err := db.Save(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category")
		return
	}

	respondData(c, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/:id (admin only)
func DeleteCategory(c *gin.Context) {
	db := config.GetDB()

	var category models.Category
	if err := db.First(&category, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category")
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Category deleted"})
}
