package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/middleware"
	"github.com/yash9424/first-night-api/models"
	"github.com/yash9424/first-night-api/pricing"
)

// UpdateProfileRequest represents the request body for updating a profile
type UpdateProfileRequest struct {
	Name    string `json:"name" binding:"omitempty"`
	Country string `json:"country" binding:"omitempty"`
	Address string `json:"address" binding:"omitempty"`
}

// GetProfile handles GET /api/users/profile
func GetProfile(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	respondData(c, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile. Changing country re-derives
// the preferred currency.
func UpdateProfile(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Country != "" {
		user.Country = req.Country
		user.PreferredCurrency = pricing.CurrencyFor(req.Country)
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	db := config.GetDB()
	if err := db.Save(user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update profile")
		return
	}

	respondData(c, http.StatusOK, user)
}

// ListUsers handles GET /api/users (admin only)
func ListUsers(c *gin.Context) {
	db := config.GetDB()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := db.Model(&models.User{})
	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count users")
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch users")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"users":       users,
		"total":       total,
		"page":        page,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	})
}

// GetUser handles GET /api/users/:id (admin only)
func GetUser(c *gin.Context) {
	db := config.GetDB()

	var user models.User
	if err := db.First(&user, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}

	respondData(c, http.StatusOK, user)
}

// AdminUpdateUserRequest represents an admin edit of a user record
type AdminUpdateUserRequest struct {
	Name    string `json:"name" binding:"omitempty"`
	Role    string `json:"role" binding:"omitempty,oneof=user admin"`
	Country string `json:"country" binding:"omitempty"`
}

// AdminUpdateUser handles PUT /api/users/:id (admin only)
func AdminUpdateUser(c *gin.Context) {
	db := config.GetDB()

	var user models.User
	if err := db.First(&user, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Country != "" {
		user.Country = req.Country
		user.PreferredCurrency = pricing.CurrencyFor(req.Country)
	}

	if err := db.Save(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update user")
		return
	}

	respondData(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:id (admin only) - soft delete
func DeleteUser(c *gin.Context) {
	admin, err := middleware.CurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not resolve user from token")
		return
	}

	db := config.GetDB()

	var user models.User
	if err := db.First(&user, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}

	if user.ID == admin.ID {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "You cannot delete your own account")
		return
	}

	if err := db.Delete(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete user")
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "User deleted"})
}
