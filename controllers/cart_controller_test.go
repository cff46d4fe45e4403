package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yash9424/first-night-api/models"
)

func cartRoutes(user models.User) *gin.Engine {
	router := setupTestRouter()
	auth := mockAuthMiddleware(user.ID, user.Role)
	router.GET("/cart", auth, GetCart)
	router.POST("/cart", auth, AddToCart)
	router.PUT("/cart/:productId", auth, UpdateCartItem)
	router.DELETE("/cart/:productId", auth, RemoveCartItem)
	router.DELETE("/cart", auth, ClearCart)
	return router
}

func TestAddToCart_MergesQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser)
	product := createTestProduct(t, db, "Gold Pendant", 800, 12, 10)

	router := cartRoutes(user)

	body := map[string]interface{}{"product_id": product.ID, "quantity": 2}

	w, _ := performRequest(t, router, http.MethodPost, "/cart", body, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Adding the same product again merges into one row.
	w, response := performRequest(t, router, http.MethodPost, "/cart", body, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if assert.Len(t, items, 1) {
		item := items[0].(map[string]interface{})
		assert.Equal(t, float64(4), item["quantity"])
	}

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser)

	router := cartRoutes(user)

	w, response := performRequest(t, router, http.MethodPost, "/cart", map[string]interface{}{
		"product_id": 999,
		"quantity":   1,
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PRODUCT_NOT_FOUND", errorCode(t, response))
}

func TestGetCart_TotalsFollowUserCountry(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser) // India
	product := createTestProduct(t, db, "Gold Pendant", 800, 12, 10)

	db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})

	router := cartRoutes(user)

	w, response := performRequest(t, router, http.MethodGet, "/cart", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	totals := response["data"].(map[string]interface{})["totals"].(map[string]interface{})
	assert.Equal(t, "INR", totals["currency"])
	assert.Equal(t, 1600.0, totals["subtotal"])
	assert.Equal(t, 50.0, totals["shipping_cost"])
	assert.Equal(t, 288.0, totals["tax"])
	assert.Equal(t, 1938.0, totals["total"])
}

func TestUpdateCartItem(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser)
	product := createTestProduct(t, db, "Gold Pendant", 800, 12, 10)

	db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})

	router := cartRoutes(user)
	path := fmt.Sprintf("/cart/%d", product.ID)

	// Change quantity.
	w, response := performRequest(t, router, http.MethodPut, path, map[string]interface{}{"quantity": 5}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items := response["data"].(map[string]interface{})["items"].([]interface{})
	assert.Equal(t, float64(5), items[0].(map[string]interface{})["quantity"])

	// A missing quantity is a validation error, not a removal.
	w, response = performRequest(t, router, http.MethodPut, path, map[string]interface{}{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))

	// So is a negative one.
	w, response = performRequest(t, router, http.MethodPut, path, map[string]interface{}{"quantity": -1}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, response))

	// An explicit quantity of zero removes the row.
	w, response = performRequest(t, router, http.MethodPut, path, map[string]interface{}{"quantity": 0}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items = response["data"].(map[string]interface{})["items"].([]interface{})
	assert.Len(t, items, 0)

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Updating a product not in the cart 404s.
	w, response = performRequest(t, router, http.MethodPut, path, map[string]interface{}{"quantity": 1}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", errorCode(t, response))
}

func TestClearCart(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "Asha Verma", "asha@example.com", models.RoleUser)
	other := createTestUser(t, db, "Ravi Kumar", "ravi@example.com", models.RoleUser)
	product := createTestProduct(t, db, "Gold Pendant", 800, 12, 10)

	db.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})
	db.Create(&models.CartItem{UserID: other.ID, ProductID: product.ID, Quantity: 1})

	router := cartRoutes(user)

	w, _ := performRequest(t, router, http.MethodDelete, "/cart", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Only the caller's cart is emptied.
	var mine, theirs int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&mine)
	db.Model(&models.CartItem{}).Where("user_id = ?", other.ID).Count(&theirs)
	assert.Equal(t, int64(0), mine)
	assert.Equal(t, int64(1), theirs)
}
