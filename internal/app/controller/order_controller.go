package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/service"
	apierrors "github.com/groceteria/groceteria-backend/internal/errors"
	"github.com/groceteria/groceteria-backend/internal/middleware"
	"github.com/groceteria/groceteria-backend/pkg/export"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

// CreateOrderRequest deliberately has no status fields: new orders always
// start PENDING/PENDING whatever the caller wants. TotalPrice is a pointer
// so a zero total still satisfies required.
type CreateOrderRequest struct {
	TotalPrice *float64 `json:"total_price" binding:"required,gte=0"`
	ItemIDs    []uint   `json:"item_ids" binding:"required,min=1"`
}

type UpdateOrderRequest struct {
	TotalPrice    *float64 `json:"total_price" binding:"required,gte=0"`
	OrderStatus   string   `json:"order_status" binding:"required"`
	PaymentStatus string   `json:"payment_status" binding:"required"`
}

func (ctrl *OrderController) respondOrderError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		apierrors.NotFound(c, "Order not found")
	case errors.Is(err, service.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, service.ErrItemNotFound):
		apierrors.NotFound(c, "Item not found")
	case errors.Is(err, service.ErrOrderHasNoItems):
		apierrors.BadRequest(c, "Order must contain at least one item")
	case errors.Is(err, service.ErrInvalidOrderStatus):
		apierrors.BadRequest(c, "Order status must be one of PENDING, CONFIRMED, SHIPPED, DELIVERED, CANCELLED")
	case errors.Is(err, service.ErrInvalidPaymentStatus):
		apierrors.BadRequest(c, "Payment status must be one of PENDING, PAID, FAILED, REFUNDED")
	default:
		log.Error(context, err)
		apierrors.InternalError(c, "")
	}
}

// CreateOrder places an order for a user
// POST /api/v1/orders?userId=
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	userID, ok := parseUintQuery(c, "userId")
	if !ok {
		apierrors.BadRequest(c, "Query parameter userId is required")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	order, err := ctrl.orderService.Create(service.CreateOrderInput{
		UserID:     userID,
		TotalPrice: *req.TotalPrice,
		ItemIDs:    req.ItemIDs,
	})
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrderByID fetches one order with its items
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetByID(id)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder replaces an order's total price and statuses
// PUT /api/v1/orders/:id
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	order, err := ctrl.orderService.Update(id, service.UpdateOrderInput{
		TotalPrice:    *req.TotalPrice,
		OrderStatus:   model.OrderStatus(req.OrderStatus),
		PaymentStatus: model.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetAllOrders lists every order
// GET /api/v1/orders
func (ctrl *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := ctrl.orderService.GetAll()
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrdersByUser lists a user's orders
// GET /api/v1/orders/user/:id
func (ctrl *OrderController) GetOrdersByUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	orders, err := ctrl.orderService.GetByUser(userID)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch user orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// DeleteOrder removes an order
// DELETE /api/v1/orders/:id
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid order ID")
		return
	}

	if err := ctrl.orderService.Delete(id); err != nil {
		ctrl.respondOrderError(c, err, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted successfully",
	})
}

// GetOrdersByStatus lists orders in one order status
// GET /api/v1/orders/status/:status
func (ctrl *OrderController) GetOrdersByStatus(c *gin.Context) {
	status := model.OrderStatus(c.Param("status"))

	orders, err := ctrl.orderService.GetByStatus(status)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch orders by status")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrdersByPaymentStatus lists orders in one payment status
// GET /api/v1/orders/payment-status/:status
func (ctrl *OrderController) GetOrdersByPaymentStatus(c *gin.Context) {
	status := model.PaymentStatus(c.Param("status"))

	orders, err := ctrl.orderService.GetByPaymentStatus(status)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch orders by payment status")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrdersByUserAndStatus lists one user's orders in one status
// GET /api/v1/orders/user/:id/status/:status
func (ctrl *OrderController) GetOrdersByUserAndStatus(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}
	status := model.OrderStatus(c.Param("status"))

	orders, err := ctrl.orderService.GetByUserAndStatus(userID, status)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch orders by user and status")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus sets an order's status
// PUT /api/v1/orders/:id/status?orderStatus=
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid order ID")
		return
	}

	status := c.Query("orderStatus")
	if status == "" {
		apierrors.BadRequest(c, "Query parameter orderStatus is required")
		return
	}

	order, err := ctrl.orderService.UpdateOrderStatus(id, model.OrderStatus(status))
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderPaymentStatus sets an order's payment status
// PUT /api/v1/orders/:id/payment-status?paymentStatus=
func (ctrl *OrderController) UpdateOrderPaymentStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid order ID")
		return
	}

	status := c.Query("paymentStatus")
	if status == "" {
		apierrors.BadRequest(c, "Query parameter paymentStatus is required")
		return
	}

	order, err := ctrl.orderService.UpdatePaymentStatus(id, model.PaymentStatus(status))
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to update payment status")
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrdersByMinPrice lists orders strictly above a total price
// GET /api/v1/orders/price-greater-than?minPrice=
func (ctrl *OrderController) GetOrdersByMinPrice(c *gin.Context) {
	minPrice, ok := parseFloatQuery(c, "minPrice")
	if !ok {
		apierrors.BadRequest(c, "Query parameter minPrice is required")
		return
	}

	orders, err := ctrl.orderService.GetByTotalPriceGreaterThan(minPrice)
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch orders by minimum price")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ExportOrders streams every order as an xlsx workbook
// GET /api/v1/orders/export
func (ctrl *OrderController) ExportOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetAll()
	if err != nil {
		ctrl.respondOrderError(c, err, "Failed to fetch orders for export")
		return
	}

	workbook, err := export.OrdersWorkbook(orders)
	if err != nil {
		log.Error("Failed to build order workbook", err)
		apierrors.InternalError(c, "")
		return
	}
	defer workbook.Close()

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		log.Error("Failed to stream order workbook", err)
	}
}
