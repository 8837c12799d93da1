package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/internal/app/service"
	"github.com/groceteria/groceteria-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *model.User, *model.Item) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	cartService := service.NewCartService(cartRepo, itemRepo, userRepo, testDB)
	cartController := NewCartController(cartService)

	vendor := &model.User{
		FirstName:    "Vera",
		LastName:     "Vendor",
		Email:        "vendor@example.com",
		PasswordHash: "hash",
		PhoneNumber:  "1234567890",
		Role:         model.RoleVendor,
		IsActive:     true,
	}
	testDB.Create(vendor)

	user := &model.User{
		FirstName:    "Uma",
		LastName:     "User",
		Email:        "user@example.com",
		PasswordHash: "hash",
		PhoneNumber:  "0987654321",
		Role:         model.RoleUser,
		IsActive:     true,
	}
	testDB.Create(user)

	item := &model.Item{
		Name:     "Tomato",
		MrpPrice: 30.0,
		Quantity: 100,
		Category: model.CategoryVegetables,
		VendorID: vendor.ID,
	}
	testDB.Create(item)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, user, item
}

func TestCartController_AddToCart_CreatesThenMerges(t *testing.T) {
	controller, router, user, item := setupCartControllerTest(t)
	router.POST("/cart", controller.AddToCart)

	path := fmt.Sprintf("/cart?itemId=%d&userId=%d", item.ID, user.ID)

	w := postJSON(router, path, map[string]interface{}{"quantity": 2})
	assert.Equal(t, http.StatusCreated, w.Code)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, float64(2), first["quantity"])

	// Same (user, item) pair merges into the existing line.
	w = postJSON(router, path, map[string]interface{}{"quantity": 3})
	assert.Equal(t, http.StatusCreated, w.Code)

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, float64(5), second["quantity"])
}

func TestCartController_AddToCart_MissingItemID(t *testing.T) {
	controller, router, user, _ := setupCartControllerTest(t)
	router.POST("/cart", controller.AddToCart)

	w := postJSON(router, fmt.Sprintf("/cart?userId=%d", user.ID), map[string]interface{}{"quantity": 2})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "itemId")
}

func TestCartController_AddToCart_RejectsZeroQuantity(t *testing.T) {
	controller, router, user, item := setupCartControllerTest(t)
	router.POST("/cart", controller.AddToCart)

	path := fmt.Sprintf("/cart?itemId=%d&userId=%d", item.ID, user.ID)
	w := postJSON(router, path, map[string]interface{}{"quantity": 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestCartController_AddToCart_ItemNotFound(t *testing.T) {
	controller, router, user, _ := setupCartControllerTest(t)
	router.POST("/cart", controller.AddToCart)

	path := fmt.Sprintf("/cart?itemId=9999&userId=%d", user.ID)
	w := postJSON(router, path, map[string]interface{}{"quantity": 2})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Item not found")
}

func TestCartController_CountCartByUser(t *testing.T) {
	controller, router, user, item := setupCartControllerTest(t)
	router.POST("/cart", controller.AddToCart)
	router.GET("/cart/user/:id/count", controller.CountCartByUser)

	path := fmt.Sprintf("/cart?itemId=%d&userId=%d", item.ID, user.ID)
	w := postJSON(router, path, map[string]interface{}{"quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/cart/user/%d/count", user.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
}

func TestCartController_ClearCartByUser(t *testing.T) {
	controller, router, user, item := setupCartControllerTest(t)
	router.POST("/cart", controller.AddToCart)
	router.DELETE("/cart/user/:id", controller.ClearCartByUser)
	router.GET("/cart/user/:id", controller.GetCartByUser)

	path := fmt.Sprintf("/cart?itemId=%d&userId=%d", item.ID, user.ID)
	w := postJSON(router, path, map[string]interface{}{"quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/cart/user/%d", user.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/cart/user/%d", user.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var lines []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	assert.Len(t, lines, 0)
}
