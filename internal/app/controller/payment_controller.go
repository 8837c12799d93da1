package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groceteria/groceteria-backend/internal/app/service"
	apierrors "github.com/groceteria/groceteria-backend/internal/errors"
	"github.com/groceteria/groceteria-backend/internal/middleware"
)

type PaymentController struct {
	paymentService service.PaymentService
}

func NewPaymentController(paymentService service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

func (ctrl *PaymentController) respondPaymentError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		apierrors.NotFound(c, "Payment not found")
	case errors.Is(err, service.ErrOrderNotFound):
		apierrors.NotFound(c, "Order not found")
	case errors.Is(err, service.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, service.ErrOrderAlreadyPaid):
		apierrors.Conflict(c, "Order already has a payment recorded")
	case errors.Is(err, service.ErrPaymentDeclined):
		apierrors.PaymentError(c, "Payment was declined by the gateway")
	default:
		log.Error(context, err)
		apierrors.PaymentError(c, "Payment processing failed")
	}
}

// RecordPayment charges an order in full and records the payment
// POST /api/v1/payments?orderId=&userId=
func (ctrl *PaymentController) RecordPayment(c *gin.Context) {
	orderID, ok := parseUintQuery(c, "orderId")
	if !ok {
		apierrors.BadRequest(c, "Query parameter orderId is required")
		return
	}
	// userId must resolve to an account; the charge itself is always
	// attributed to the order's owner.
	userID, ok := parseUintQuery(c, "userId")
	if !ok {
		apierrors.BadRequest(c, "Query parameter userId is required")
		return
	}

	payment, err := ctrl.paymentService.Pay(c.Request.Context(), orderID, userID)
	if err != nil {
		ctrl.respondPaymentError(c, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetAllPayments lists every payment
// GET /api/v1/payments
func (ctrl *PaymentController) GetAllPayments(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	payments, err := ctrl.paymentService.GetAll()
	if err != nil {
		log.Error("Failed to fetch payments", err)
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetPaymentByID fetches one payment
// GET /api/v1/payments/:id
func (ctrl *PaymentController) GetPaymentByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := ctrl.paymentService.GetByID(id)
	if err != nil {
		ctrl.respondPaymentError(c, err, "Failed to fetch payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// DeletePayment removes a payment record
// DELETE /api/v1/payments/:id
func (ctrl *PaymentController) DeletePayment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := ctrl.paymentService.Delete(id); err != nil {
		ctrl.respondPaymentError(c, err, "Failed to delete payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment deleted successfully",
	})
}

// GetPaymentsByUser lists a user's payments
// GET /api/v1/payments/user/:id
func (ctrl *PaymentController) GetPaymentsByUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	payments, err := ctrl.paymentService.GetByUser(userID)
	if err != nil {
		log.Error("Failed to fetch user payments", err, map[string]interface{}{
			"user_id": userID,
		})
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetPaymentByOrder fetches the payment recorded against an order
// GET /api/v1/payments/order/:id
func (ctrl *PaymentController) GetPaymentByOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid order ID")
		return
	}

	payment, err := ctrl.paymentService.GetByOrder(orderID)
	if err != nil {
		ctrl.respondPaymentError(c, err, "Failed to fetch payment by order")
		return
	}
	c.JSON(http.StatusOK, payment)
}

// GetPaymentsByAmountRange lists payments with paid amount in inclusive bounds
// GET /api/v1/payments/amount-range?minAmount=&maxAmount=
func (ctrl *PaymentController) GetPaymentsByAmountRange(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	minAmount, okMin := parseFloatQuery(c, "minAmount")
	maxAmount, okMax := parseFloatQuery(c, "maxAmount")
	if !okMin || !okMax || minAmount > maxAmount {
		apierrors.BadRequest(c, "Query parameters minAmount and maxAmount must form a valid range")
		return
	}

	payments, err := ctrl.paymentService.GetByAmountRange(minAmount, maxAmount)
	if err != nil {
		log.Error("Failed to fetch payments by amount range", err)
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GetPaymentsByAmountGreaterThan lists payments strictly above an amount
// GET /api/v1/payments/amount-greater-than?amount=
func (ctrl *PaymentController) GetPaymentsByAmountGreaterThan(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	amount, ok := parseFloatQuery(c, "amount")
	if !ok {
		apierrors.BadRequest(c, "Query parameter amount is required")
		return
	}

	payments, err := ctrl.paymentService.GetByAmountGreaterThan(amount)
	if err != nil {
		log.Error("Failed to fetch payments by amount", err)
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// ProcessPayment dry-runs the gateway for an order without persisting
// POST /api/v1/payments/process?orderId=
func (ctrl *PaymentController) ProcessPayment(c *gin.Context) {
	orderID, ok := parseUintQuery(c, "orderId")
	if !ok {
		apierrors.BadRequest(c, "Query parameter orderId is required")
		return
	}

	result, err := ctrl.paymentService.Process(c.Request.Context(), orderID)
	if err != nil {
		ctrl.respondPaymentError(c, err, "Failed to process payment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"succeeded": result.Succeeded,
		"reference": result.Reference,
	})
}
