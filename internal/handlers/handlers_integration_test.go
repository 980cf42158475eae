package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"lapak/internal/handlers"
	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/repositories"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test_jwt_secret"

// testEnv is a fully wired Fiber app over an in-memory SQLite database.
type testEnv struct {
	app      *fiber.App
	userRepo repositories.UserRepository
}

// setupApp wires repositories, services, and handlers the way main does,
// over a private in-memory database. No email notifier is attached.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	// A named shared-cache DSN keeps one database across the pool's
	// connections while isolating it from other tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	))

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	notificationRepo := repositories.NewGORMNotificationRepository(db)

	authService := services.NewAuthService(userRepo, testJWTSecret)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, nil)
	checkoutService := services.NewCheckoutService(orderRepo, cartRepo, productRepo, notificationService)
	orderService := services.NewOrderService(orderRepo, notificationService, services.OrderPolicy{})

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, checkoutService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protectedRoutes := apiV1.Group("", middleware.AuthRequired(authService))
	productHandler.RegisterRoutes(protectedRoutes)
	cartHandler.RegisterRoutes(protectedRoutes)
	orderHandler.RegisterRoutes(protectedRoutes)
	notificationHandler.RegisterRoutes(protectedRoutes)

	return &testEnv{app: app, userRepo: userRepo}
}

// seedAdmin provisions an admin account directly; registration over the
// API never grants the admin role.
func (e *testEnv) seedAdmin(t *testing.T, email, password string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, e.userRepo.Create(&models.User{
		Name:     "Store Admin",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}))
}

// do performs a JSON request against the test app, with an optional
// bearer token, and decodes the response body into a generic map.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// register creates a user over the API and returns a login token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()
	status, _ := e.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status)
	return e.login(t, email, password)
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createProduct creates a product as the given (admin) token.
func (e *testEnv) createProduct(t *testing.T, token, name string, price float64) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/api/v1/products", token, map[string]interface{}{
		"name":        name,
		"description": "integration test product",
		"price":       price,
	})
	require.Equal(t, http.StatusCreated, status)
	product, _ := body["product"].(map[string]interface{})
	id, _ := product["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// TestMain suppresses handler logging for cleaner test output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env := setupApp(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully", body["message"])

	// The response user never carries a password, and the role cannot
	// be chosen at registration.
	user, _ := body["user"].(map[string]interface{})
	assert.Equal(t, "user", user["role"])
	assert.Empty(t, user["Password"])

	// Duplicate email
	status, _ = env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Login
	token := env.login(t, "test@example.com", "password123")
	assert.NotEmpty(t, token)

	// Wrong password
	status, _ = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedEndpointsWithoutAuth(t *testing.T) {
	env := setupApp(t)

	for _, path := range []string{
		"/api/v1/products",
		"/api/v1/cart",
		"/api/v1/orders",
		"/api/v1/notifications",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestProductMutationsRequireAdmin(t *testing.T) {
	env := setupApp(t)
	userToken := env.register(t, "Plain User", "user@example.com", "password123")

	status, _ := env.do(t, http.MethodPost, "/api/v1/products", userToken, map[string]interface{}{
		"name":        "Forbidden Product",
		"description": "should not be created",
		"price":       10.0,
	})
	assert.Equal(t, http.StatusForbidden, status)

	// Reads stay open to any authenticated user.
	status, body := env.do(t, http.MethodGet, "/api/v1/products", userToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
}

func TestCheckoutFlow(t *testing.T) {
	env := setupApp(t)
	env.seedAdmin(t, "admin@example.com", "adminpassword")
	adminToken := env.login(t, "admin@example.com", "adminpassword")
	buyerToken := env.register(t, "Buyer", "buyer@example.com", "password123")

	widgetID := env.createProduct(t, adminToken, "Widget", 10.00)
	gadgetID := env.createProduct(t, adminToken, "Gadget", 5.00)

	// Stage the cart: 2 widgets + 1 gadget.
	status, _ := env.do(t, http.MethodPost, "/api/v1/cart", buyerToken, map[string]interface{}{
		"product_id": widgetID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodPost, "/api/v1/cart", buyerToken, map[string]interface{}{
		"product_id": gadgetID,
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, status)

	// Checkout.
	status, body := env.do(t, http.MethodPost, "/api/v1/orders", buyerToken, map[string]interface{}{
		"shipping_address": map[string]string{
			"street":   "Jl. Merdeka 1",
			"city":     "Jakarta",
			"state":    "DKI",
			"zip_code": "10110",
			"country":  "Indonesia",
		},
	})
	require.Equal(t, http.StatusCreated, status)
	order, _ := body["order"].(map[string]interface{})
	orderID, _ := order["id"].(string)
	require.NotEmpty(t, orderID)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, "paid", order["payment_status"])
	assert.EqualValues(t, 25.00, order["total_amount"])

	// The cart was emptied, not deleted.
	status, body = env.do(t, http.MethodGet, "/api/v1/cart", buyerToken, nil)
	require.Equal(t, http.StatusOK, status)
	cart, _ := body["cart"].(map[string]interface{})
	items, _ := cart["items"].([]interface{})
	assert.Empty(t, items)

	// Checking out the now-empty cart fails.
	status, _ = env.do(t, http.MethodPost, "/api/v1/orders", buyerToken, map[string]interface{}{
		"shipping_address": map[string]string{
			"street":   "Jl. Merdeka 1",
			"city":     "Jakarta",
			"state":    "DKI",
			"zip_code": "10110",
			"country":  "Indonesia",
		},
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Buyers cannot update orders.
	status, _ = env.do(t, http.MethodPut, "/api/v1/orders/"+orderID, buyerToken, map[string]interface{}{
		"status": "shipped",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// Admin ships the order with a tracking number.
	status, body = env.do(t, http.MethodPut, "/api/v1/orders/"+orderID, adminToken, map[string]interface{}{
		"status": "shipped",
		"shipping_details": map[string]string{
			"carrier":         "JNE",
			"tracking_number": "TRK123",
		},
	})
	require.Equal(t, http.StatusOK, status)
	order, _ = body["order"].(map[string]interface{})
	assert.Equal(t, "shipped", order["status"])
	assert.Equal(t, "TRK123", order["tracking_number"])

	// The buyer sees payment confirmation, the status change, and the
	// shipping notice, all unread.
	status, body = env.do(t, http.MethodGet, "/api/v1/notifications", buyerToken, nil)
	require.Equal(t, http.StatusOK, status)
	notifications, _ := body["notifications"].([]interface{})
	require.Len(t, notifications, 3)
	assert.EqualValues(t, 3, body["unread_count"])

	types := make(map[string]bool)
	for _, raw := range notifications {
		n, _ := raw.(map[string]interface{})
		typ, _ := n["type"].(string)
		types[typ] = true
	}
	assert.True(t, types["payment_confirmation"])
	assert.True(t, types["order_update"])
	assert.True(t, types["shipping_update"])

	// The admin got the new-order notification.
	status, body = env.do(t, http.MethodGet, "/api/v1/notifications", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	notifications, _ = body["notifications"].([]interface{})
	require.Len(t, notifications, 1)
	n, _ := notifications[0].(map[string]interface{})
	assert.Equal(t, "new_order", n["type"])

	// Mark everything read.
	status, body = env.do(t, http.MethodPut, "/api/v1/notifications", buyerToken, map[string]interface{}{
		"mark_all_as_read": true,
	})
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["unread_count"])

	status, body = env.do(t, http.MethodGet, "/api/v1/notifications?unreadOnly=true", buyerToken, nil)
	require.Equal(t, http.StatusOK, status)
	notifications, _ = body["notifications"].([]interface{})
	assert.Empty(t, notifications)
}

func TestOrderVisibility(t *testing.T) {
	env := setupApp(t)
	env.seedAdmin(t, "admin@example.com", "adminpassword")
	adminToken := env.login(t, "admin@example.com", "adminpassword")
	buyerToken := env.register(t, "Buyer", "buyer@example.com", "password123")
	otherToken := env.register(t, "Other", "other@example.com", "password123")

	productID := env.createProduct(t, adminToken, "Widget", 10.00)
	status, _ := env.do(t, http.MethodPost, "/api/v1/cart", buyerToken, map[string]interface{}{
		"product_id": productID,
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodPost, "/api/v1/orders", buyerToken, map[string]interface{}{
		"shipping_address": map[string]string{
			"street":   "Jl. Merdeka 1",
			"city":     "Jakarta",
			"state":    "DKI",
			"zip_code": "10110",
			"country":  "Indonesia",
		},
	})
	require.Equal(t, http.StatusCreated, status)
	order, _ := body["order"].(map[string]interface{})
	orderID, _ := order["id"].(string)
	require.NotEmpty(t, orderID)

	// Owner and admin see the order; another user does not.
	status, _ = env.do(t, http.MethodGet, "/api/v1/orders/"+orderID, buyerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodGet, "/api/v1/orders/"+orderID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = env.do(t, http.MethodGet, "/api/v1/orders/"+orderID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Listing scopes to the caller; admins see everything.
	status, body = env.do(t, http.MethodGet, "/api/v1/orders", otherToken, nil)
	require.Equal(t, http.StatusOK, status)
	orders, _ := body["orders"].([]interface{})
	assert.Empty(t, orders)

	status, body = env.do(t, http.MethodGet, "/api/v1/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	orders, _ = body["orders"].([]interface{})
	assert.Len(t, orders, 1)
}
