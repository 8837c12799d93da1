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

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *model.User, *model.Item) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)
	orderService := service.NewOrderService(orderRepo, userRepo, itemRepo)
	orderController := NewOrderController(orderService)

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

	return orderController, router, user, item
}

func TestOrderController_CreateOrder_ForcesPendingState(t *testing.T) {
	controller, router, user, item := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)

	w := postJSON(router, fmt.Sprintf("/orders?userId=%d", user.ID), map[string]interface{}{
		"total_price": 60.0,
		"item_ids":    []uint{item.ID},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "PENDING", response["order_status"])
	assert.Equal(t, "PENDING", response["payment_status"])
}

func TestOrderController_CreateOrder_ZeroTotalAccepted(t *testing.T) {
	controller, router, user, item := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)

	// A fully discounted order totals zero; that still binds.
	w := postJSON(router, fmt.Sprintf("/orders?userId=%d", user.ID), map[string]interface{}{
		"total_price": 0.0,
		"item_ids":    []uint{item.ID},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(0), response["total_price"])
}

func TestOrderController_CreateOrder_EmptyItems(t *testing.T) {
	controller, router, user, _ := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)

	w := postJSON(router, fmt.Sprintf("/orders?userId=%d", user.ID), map[string]interface{}{
		"total_price": 60.0,
		"item_ids":    []uint{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_CreateOrder_UserNotFound(t *testing.T) {
	controller, router, _, item := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)

	w := postJSON(router, "/orders?userId=9999", map[string]interface{}{
		"total_price": 60.0,
		"item_ids":    []uint{item.ID},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestOrderController_UpdateOrderStatus_RejectsUnknownValue(t *testing.T) {
	controller, router, user, item := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)
	router.PUT("/orders/:id/status", controller.UpdateOrderStatus)

	w := postJSON(router, fmt.Sprintf("/orders?userId=%d", user.ID), map[string]interface{}{
		"total_price": 60.0,
		"item_ids":    []uint{item.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	orderID := uint(order["id"].(float64))

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/orders/%d/status?orderStatus=TELEPORTED", orderID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")
}

func TestOrderController_UpdateOrderStatus_Success(t *testing.T) {
	controller, router, user, item := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)
	router.PUT("/orders/:id/status", controller.UpdateOrderStatus)

	w := postJSON(router, fmt.Sprintf("/orders?userId=%d", user.ID), map[string]interface{}{
		"total_price": 60.0,
		"item_ids":    []uint{item.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	orderID := uint(order["id"].(float64))

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/orders/%d/status?orderStatus=SHIPPED", orderID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SHIPPED")
}

func TestOrderController_GetOrderByID_NotFound(t *testing.T) {
	controller, router, _, _ := setupOrderControllerTest(t)
	router.GET("/orders/:id", controller.GetOrderByID)

	req := httptest.NewRequest(http.MethodGet, "/orders/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")
}

func TestOrderController_ExportOrders(t *testing.T) {
	controller, router, user, item := setupOrderControllerTest(t)
	router.POST("/orders", controller.CreateOrder)
	router.GET("/orders/export", controller.ExportOrders)

	w := postJSON(router, fmt.Sprintf("/orders?userId=%d", user.ID), map[string]interface{}{
		"total_price": 60.0,
		"item_ids":    []uint{item.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/orders/export", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders-")
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.NotZero(t, w.Body.Len())
}
