package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/internal/app/service"
	"github.com/groceteria/groceteria-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserControllerTest(t *testing.T) (*UserController, *gin.Engine) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	paymentRepo := repository.NewPaymentRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)

	userService := service.NewUserService(
		userRepo, cartRepo, orderRepo, paymentRepo, itemRepo,
		"test-secret", 15*time.Minute, 168*time.Hour,
	)
	userController := NewUserController(userService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return userController, router
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"first_name":   "Alice",
		"last_name":    "Smith",
		"email":        "alice@example.com",
		"password":     "password123",
		"phone_number": "1234567890",
		"role":         "USER",
	}
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUserController_Register_Success(t *testing.T) {
	controller, router := setupUserControllerTest(t)
	router.POST("/users/register", controller.Register)

	w := postJSON(router, "/users/register", registerBody())

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "alice@example.com", response["email"])
	assert.NotContains(t, w.Body.String(), "password123")
}

func TestUserController_Register_DuplicateEmail(t *testing.T) {
	controller, router := setupUserControllerTest(t)
	router.POST("/users/register", controller.Register)

	w := postJSON(router, "/users/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/users/register", registerBody())

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "CONFLICT", response["errorCode"])
	assert.Equal(t, float64(http.StatusConflict), response["status"])
	assert.Equal(t, "/users/register", response["path"])
}

func TestUserController_Register_ValidationError(t *testing.T) {
	controller, router := setupUserControllerTest(t)
	router.POST("/users/register", controller.Register)

	body := registerBody()
	body["email"] = "not-an-email"
	body["password"] = "short"

	w := postJSON(router, "/users/register", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "VALIDATION_ERROR", response["errorCode"])

	// One entry per failed field.
	details := response["errors"].([]interface{})
	assert.Len(t, details, 2)
}

func TestUserController_Login_Success(t *testing.T) {
	controller, router := setupUserControllerTest(t)
	router.POST("/users/register", controller.Register)
	router.POST("/users/login", controller.Login)

	w := postJSON(router, "/users/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/users/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["access_token"])
	assert.NotEmpty(t, response["refresh_token"])
}

func TestUserController_Login_WrongPassword(t *testing.T) {
	controller, router := setupUserControllerTest(t)
	router.POST("/users/register", controller.Register)
	router.POST("/users/login", controller.Login)

	w := postJSON(router, "/users/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/users/login", map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})

	// Credential mismatches read the same as unknown accounts.
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RESOURCE_NOT_FOUND")
}

func TestUserController_CheckEmail(t *testing.T) {
	controller, router := setupUserControllerTest(t)
	router.POST("/users/register", controller.Register)
	router.GET("/users/check-email/:email", controller.CheckEmail)

	w := postJSON(router, "/users/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/users/check-email/alice@example.com", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"exists":true`)

	req = httptest.NewRequest(http.MethodGet, "/users/check-email/nobody@example.com", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"exists":false`)
}

func TestUserController_GetUserByID_NotFound(t *testing.T) {
	controller, router := setupUserControllerTest(t)
	router.GET("/users/:id", controller.GetUserByID)

	req := httptest.NewRequest(http.MethodGet, "/users/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RESOURCE_NOT_FOUND")
}
