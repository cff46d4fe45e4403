package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yash9424/first-night-api/models"
)

func categoryRoutes(db *gorm.DB) *gin.Engine {
	router := setupTestRouter()
	router.GET("/api/categories", ListCategories)
	router.GET("/api/categories/:id", GetCategory)
	router.POST("/api/categories", mockAuthMiddleware(1, models.RoleAdmin), CreateCategory)
	router.PUT("/api/categories/:id", mockAuthMiddleware(1, models.RoleAdmin), UpdateCategory)
	router.DELETE("/api/categories/:id", mockAuthMiddleware(1, models.RoleAdmin), DeleteCategory)
	return router
}

func TestCreateCategory(t *testing.T) {
	db := setupTestDB(t)
	router := categoryRoutes(db)

	w, response := performRequest(t, router, http.MethodPost, "/api/categories", map[string]interface{}{
		"name":        "Rings",
		"slug":        "rings",
		"description": "Statement and everyday rings",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "rings", data["slug"])

	// Slugs are unique.
	w, response = performRequest(t, router, http.MethodPost, "/api/categories", map[string]interface{}{
		"name": "Rings Again",
		"slug": "rings",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_SLUG", errorCode(t, response))
}

func TestListCategories_SortedByName(t *testing.T) {
	db := setupTestDB(t)
	router := categoryRoutes(db)

	require.NoError(t, db.Create(&models.Category{Name: "Pendants", Slug: "pendants"}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Anklets", Slug: "anklets"}).Error)

	w, response := performRequest(t, router, http.MethodGet, "/api/categories", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := response["data"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "Anklets", list[0].(map[string]interface{})["name"])
	assert.Equal(t, "Pendants", list[1].(map[string]interface{})["name"])
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	db := setupTestDB(t)
	router := categoryRoutes(db)

	category := models.Category{Name: "Earings", Slug: "earings"}
	require.NoError(t, db.Create(&category).Error)

	w, response := performRequest(t, router, http.MethodPut, "/api/categories/1", map[string]interface{}{
		"name": "Earrings",
		"slug": "earrings",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "earrings", response["data"].(map[string]interface{})["slug"])

	w, _ = performRequest(t, router, http.MethodDelete, "/api/categories/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = performRequest(t, router, http.MethodGet, "/api/categories/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
