package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/models"
	"github.com/yash9424/first-night-api/pricing"
	"github.com/yash9424/first-night-api/services"
	"github.com/yash9424/first-night-api/utils"
)

// RegisterRequest represents the request body for registering
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Country  string `json:"country"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/auth/register
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "DUPLICATE_EMAIL", "An account with this email already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process password")
		return
	}

	user := models.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              models.RoleUser,
		Country:           req.Country,
		PreferredCurrency: pricing.CurrencyFor(req.Country),
	}

	if err := db.Create(&user).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create account")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// ForgotPasswordRequest represents the request body for a reset request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /api/auth/forgot-password. It always
// answers 200 so the endpoint cannot be used to probe which emails
// have accounts.
func ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err == nil {
		reset := models.PasswordResetToken{
			UserID:    user.ID,
			Token:     uuid.NewString(),
			ExpiresAt: time.Now().Add(time.Hour),
		}
		if err := db.Create(&reset).Error; err == nil {
			resetURL := fmt.Sprintf("%s/reset-password/%s", config.GetConfig().BaseURL, reset.Token)
			if mailer := services.GetEmailService(); mailer != nil {
				// Best effort; the generic response below stands either way.
				_ = mailer.SendPasswordReset(user.Email, resetURL)
			}
		}
	}

	respondData(c, http.StatusOK, gin.H{
		"message": "If an account exists for that email, a reset link has been sent",
	})
}

// ResetPasswordRequest represents the request body for resetting
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ResetPassword handles POST /api/auth/reset-password/:token
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var reset models.PasswordResetToken
	if err := db.Where("token = ?", c.Param("token")).First(&reset).Error; err != nil {
		respondError(c, http.StatusNotFound, "TOKEN_NOT_FOUND", "Invalid or expired reset token")
		return
	}

	if !reset.Usable(time.Now()) {
		respondError(c, http.StatusBadRequest, "TOKEN_EXPIRED", "Invalid or expired reset token")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process password")
		return
	}

	now := time.Now()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password_hash", hash).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("used_at", &now).Error
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reset password")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"message": "Password has been reset",
	})
}
