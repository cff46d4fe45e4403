package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/middleware"
	"github.com/yash9424/first-night-api/models"
)

// ContactRequest represents the public contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// CreateContact handles POST /api/contact - public
func CreateContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	contact := models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactStatusNew,
	}

	db := config.GetDB()
	if err := db.Create(&contact).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to submit message")
		return
	}

	respondData(c, http.StatusCreated, contact)
}

// ListContacts handles GET /api/contact (admin only)
func ListContacts(c *gin.Context) {
	db := config.GetDB()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := db.Model(&models.Contact{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to count messages")
		return
	}

	var contacts []models.Contact
	if err := query.Preload("Notes").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&contacts).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch messages")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"contacts":    contacts,
		"total":       total,
		"page":        page,
		"total_pages": (total + int64(limit) - 1) / int64(limit),
	})
}

// GetContact handles GET /api/contact/:id (admin only)
func GetContact(c *gin.Context) {
	db := config.GetDB()

	var contact models.Contact
	if err := db.Preload("Notes").First(&contact, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "CONTACT_NOT_FOUND", "Message not found")
		return
	}

	respondData(c, http.StatusOK, contact)
}

// UpdateContactRequest represents an admin edit of a message's fields.
// All fields are optional; status goes through the same validation as
// the dedicated status endpoint.
type UpdateContactRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message *string `json:"message"`
	Status  *string `json:"status"`
}

// UpdateContact handles PUT /api/contact/:id (admin only)
func UpdateContact(c *gin.Context) {
	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if req.Status != nil && !validContactStatus(*req.Status) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown contact status")
		return
	}

	db := config.GetDB()

	var contact models.Contact
	if err := db.First(&contact, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "CONTACT_NOT_FOUND", "Message not found")
		return
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Subject != nil {
		contact.Subject = *req.Subject
	}
	if req.Message != nil {
		contact.Message = *req.Message
	}
	if req.Status != nil {
		contact.Status = *req.Status
	}

	if err := db.Save(&contact).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update message")
		return
	}

	respondData(c, http.StatusOK, contact)
}

func validContactStatus(status string) bool {
	for _, s := range models.ContactStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// UpdateContactStatusRequest represents a status change on a message
type UpdateContactStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateContactStatus handles PUT /api/contact/:id/status (admin only)
func UpdateContactStatus(c *gin.Context) {
	var req UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if !validContactStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown contact status")
		return
	}

	db := config.GetDB()

	var contact models.Contact
	if err := db.First(&contact, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "CONTACT_NOT_FOUND", "Message not found")
		return
	}

	if err := db.Model(&contact).Update("status", req.Status).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update status")
		return
	}

	respondData(c, http.StatusOK, contact)
}

// AddContactNoteRequest represents an admin note on a message
type AddContactNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// AddContactNote handles POST /api/contact/:id/notes (admin only)
func AddContactNote(c *gin.Context) {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req AddContactNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	db := config.GetDB()

	var contact models.Contact
	if err := db.First(&contact, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "CONTACT_NOT_FOUND", "Message not found")
		return
	}

	note := models.ContactNote{
		ContactID: contact.ID,
		AdminID:   adminID,
		Note:      req.Note,
	}
	if err := db.Create(&note).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add note")
		return
	}

	respondData(c, http.StatusCreated, note)
}

// DeleteContact handles DELETE /api/contact/:id (admin only)
func DeleteContact(c *gin.Context) {
	db := config.GetDB()

	var contact models.Contact
	if err := db.First(&contact, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "CONTACT_NOT_FOUND", "Message not found")
		return
	}

	if err := db.Delete(&contact).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete message")
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Message deleted"})
}
