package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yash9424/first-night-api/config"
	"github.com/yash9424/first-night-api/middleware"
	"github.com/yash9424/first-night-api/models"
	"github.com/yash9424/first-night-api/services"
	"github.com/yash9424/first-night-api/utils"
)

// setupTestDB creates an in-memory database with the full schema and
// installs it as the active connection.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Contact{},
		&models.ContactNote{},
		&models.PasswordResetToken{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{
		JWTSecret: "test-secret",
		BaseURL:   "http://localhost:3000",
		GoEnv:     "test",
	})
	services.SetEmailService(services.NewMockEmailService())
	services.SetPaymentService(services.NewMockPaymentService())

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware injects the context keys RequireAuth would set.
func mockAuthMiddleware(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextRole, role)
		c.Next()
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Name:              name,
		Email:             email,
		PasswordHash:      hash,
		Role:              role,
		Country:           "India",
		PreferredCurrency: models.CurrencyINR,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, priceINR, priceUSD float64, stock int) models.Product {
	t.Helper()

	product := models.Product{
		Name:     name,
		Category: "rings",
		PriceINR: priceINR,
		PriceUSD: priceUSD,
		Stock:    stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}

// performRequest marshals body (when non-nil) and runs the request
// through the router, returning the recorder and parsed envelope.
func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &response)
	}
	return w, response
}

func errorCode(t *testing.T, response map[string]interface{}) string {
	t.Helper()

	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Response has no error object: %v", response)
	}
	return errData["code"].(string)
}

func shippingAddressPayload(country string) map[string]interface{} {
	return map[string]interface{}{
		"full_name":   "Asha Verma",
		"phone":       "+919876543210",
		"email":       "asha@example.com",
		"line1":       "14 MG Road",
		"city":        "Bengaluru",
		"state":       "Karnataka",
		"postal_code": "560001",
		"country":     country,
	}
}
