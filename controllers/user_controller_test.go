package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yash9424/first-night-api/models"
)

func userRoutes(user models.User) *gin.Engine {
	router := setupTestRouter()
	auth := mockAuthMiddleware(user.ID, user.Role)
	router.GET("/users/profile", auth, GetProfile)
	router.PUT("/users/profile", auth, UpdateProfile)
	router.GET("/users", auth, ListUsers)
	router.GET("/users/:id", auth, GetUser)
	router.PUT("/users/:id", auth, AdminUpdateUser)
	router.DELETE("/users/:id", auth, DeleteUser)
	return router
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser)

	router := userRoutes(user)

	w, response := performRequest(t, router, http.MethodGet, "/users/profile", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "asha@example.com", data["email"])
	assert.NotContains(t, data, "password_hash")
}

func TestUpdateProfile_CountryChangesCurrency(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser)

	router := userRoutes(user)

	w, response := performRequest(t, router, http.MethodPut, "/users/profile", map[string]interface{}{
		"country": "Germany",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Germany", data["country"])
	assert.Equal(t, "USD", data["preferred_currency"])

	// Name survives a partial update.
	assert.Equal(t, "Asha Verma", data["name"])
}

func TestListUsers_Search(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser)
	createTestUser(t, db, "Ravi Kumar", "ravi@example.com", models.RoleUser)

	router := userRoutes(admin)

	w, response := performRequest(t, router, http.MethodGet, "/users?q=asha", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
	users := data["users"].([]interface{})
	assert.Equal(t, "Asha Verma", users[0].(map[string]interface{})["name"])
}

func TestAdminUpdateUser_Role(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	user := createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser)

	router := userRoutes(admin)

	w, response := performRequest(t, router, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), map[string]interface{}{
		"role": "admin",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", response["data"].(map[string]interface{})["role"])

	// Arbitrary roles are rejected by binding.
	w, response = performRequest(t, router, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), map[string]interface{}{
		"role": "superuser",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	user := createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser)

	router := userRoutes(admin)

	// Admins cannot delete themselves.
	w, response := performRequest(t, router, http.MethodDelete, fmt.Sprintf("/users/%d", admin.ID), nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, response))

	w, _ = performRequest(t, router, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Soft deleted: gone from queries, row retained.
	var visible int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&visible)
	assert.Equal(t, int64(0), visible)

	var total int64
	db.Unscoped().Model(&models.User{}).Where("id = ?", user.ID).Count(&total)
	assert.Equal(t, int64(1), total)
}
