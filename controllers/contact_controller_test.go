package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yash9424/first-night-api/models"
)

func contactRoutes(admin models.User) *gin.Engine {
	router := setupTestRouter()
	auth := mockAuthMiddleware(admin.ID, admin.Role)
	router.POST("/contact", CreateContact)
	router.GET("/contact", auth, ListContacts)
	router.GET("/contact/:id", auth, GetContact)
	router.PUT("/contact/:id", auth, UpdateContact)
	router.PUT("/contact/:id/status", auth, UpdateContactStatus)
	router.POST("/contact/:id/notes", auth, AddContactNote)
	router.DELETE("/contact/:id", auth, DeleteContact)
	return router
}

func TestCreateContact(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	router := contactRoutes(admin)

	w, response := performRequest(t, router, http.MethodPost, "/contact", map[string]interface{}{
		"name":    "Asha Verma",
		"email":   "asha@example.com",
		"subject": "Ring sizing",
		"message": "Do you offer resizing for the Aurora ring?",
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "NEW", data["status"])

	// Required fields are enforced.
	w, response = performRequest(t, router, http.MethodPost, "/contact", map[string]interface{}{
		"name": "No Message",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))
}

func TestContactAdminWorkflow(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	router := contactRoutes(admin)

	contact := models.Contact{
		Name:    "Asha Verma",
		Email:   "asha@example.com",
		Subject: "Ring sizing",
		Message: "Do you offer resizing?",
		Status:  models.ContactStatusNew,
	}
	db.Create(&contact)

	// Status transition.
	w, response := performRequest(t, router, http.MethodPut,
		fmt.Sprintf("/contact/%d/status", contact.ID),
		map[string]interface{}{"status": "IN_PROGRESS"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IN_PROGRESS", response["data"].(map[string]interface{})["status"])

	// Unknown status is rejected.
	w, response = performRequest(t, router, http.MethodPut,
		fmt.Sprintf("/contact/%d/status", contact.ID),
		map[string]interface{}{"status": "SHOUTING"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))

	// Notes record the acting admin.
	w, response = performRequest(t, router, http.MethodPost,
		fmt.Sprintf("/contact/%d/notes", contact.ID),
		map[string]interface{}{"note": "Replied with sizing chart"}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	note := response["data"].(map[string]interface{})
	assert.Equal(t, float64(admin.ID), note["admin_id"])

	// Notes come back with the message.
	w, response = performRequest(t, router, http.MethodGet,
		fmt.Sprintf("/contact/%d", contact.ID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	notes := response["data"].(map[string]interface{})["notes"].([]interface{})
	assert.Len(t, notes, 1)
}

func TestUpdateContact(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	router := contactRoutes(admin)

	contact := models.Contact{
		Name:    "Asha Verma",
		Email:   "asha@example.com",
		Phone:   "+919876543210",
		Subject: "Ring sizing",
		Message: "Do you offer resizing?",
		Status:  models.ContactStatusNew,
	}
	db.Create(&contact)

	// Partial edit: only the provided fields change.
	w, response := performRequest(t, router, http.MethodPut,
		fmt.Sprintf("/contact/%d", contact.ID),
		map[string]interface{}{"subject": "Aurora ring sizing", "status": "RESOLVED"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Aurora ring sizing", data["subject"])
	assert.Equal(t, "RESOLVED", data["status"])
	assert.Equal(t, "Asha Verma", data["name"])
	assert.Equal(t, "+919876543210", data["phone"])

	// Status still goes through the enum check.
	w, response = performRequest(t, router, http.MethodPut,
		fmt.Sprintf("/contact/%d", contact.ID),
		map[string]interface{}{"status": "SHOUTING"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))

	// A malformed email is rejected.
	w, response = performRequest(t, router, http.MethodPut,
		fmt.Sprintf("/contact/%d", contact.ID),
		map[string]interface{}{"email": "not-an-email"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))

	// Unknown message 404s.
	w, response = performRequest(t, router, http.MethodPut, "/contact/999",
		map[string]interface{}{"subject": "Hello"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CONTACT_NOT_FOUND", errorCode(t, response))
}

func TestListContacts_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	router := contactRoutes(admin)

	for _, status := range []string{models.ContactStatusNew, models.ContactStatusNew, models.ContactStatusResolved} {
		db.Create(&models.Contact{
			Name: "Someone", Email: "someone@example.com",
			Subject: "Hi", Message: "Hello", Status: status,
		})
	}

	w, response := performRequest(t, router, http.MethodGet, "/contact?status=NEW", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total"])
}
