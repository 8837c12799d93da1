package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groceteria/groceteria-backend/internal/app/service"
	apierrors "github.com/groceteria/groceteria-backend/internal/errors"
	"github.com/groceteria/groceteria-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// MrpPrice is a pointer so a zero captured price still satisfies required.
type UpdateCartRequest struct {
	Quantity int64    `json:"quantity" binding:"required,gt=0"`
	MrpPrice *float64 `json:"mrp_price" binding:"required,gte=0"`
}

func (ctrl *CartController) respondCartError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrCartNotFound):
		apierrors.NotFound(c, "Cart line not found")
	case errors.Is(err, service.ErrItemNotFound):
		apierrors.NotFound(c, "Item not found")
	case errors.Is(err, service.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		log.Error(context, err)
		apierrors.InternalError(c, "")
	}
}

// AddToCart merges a quantity of an item into a user's cart
// POST /api/v1/cart?itemId=&userId=
func (ctrl *CartController) AddToCart(c *gin.Context) {
	itemID, ok := parseUintQuery(c, "itemId")
	if !ok {
		apierrors.BadRequest(c, "Query parameter itemId is required")
		return
	}
	userID, ok := parseUintQuery(c, "userId")
	if !ok {
		apierrors.BadRequest(c, "Query parameter userId is required")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	line, err := ctrl.cartService.AddToCart(userID, itemID, req.Quantity)
	if err != nil {
		ctrl.respondCartError(c, err, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusCreated, line)
}

// GetAllCarts lists every cart line in the system
// GET /api/v1/cart
func (ctrl *CartController) GetAllCarts(c *gin.Context) {
	carts, err := ctrl.cartService.GetAll()
	if err != nil {
		ctrl.respondCartError(c, err, "Failed to fetch cart lines")
		return
	}
	c.JSON(http.StatusOK, carts)
}

// GetCartByID fetches one cart line
// GET /api/v1/cart/:id
func (ctrl *CartController) GetCartByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid cart ID")
		return
	}

	line, err := ctrl.cartService.GetByID(id)
	if err != nil {
		ctrl.respondCartError(c, err, "Failed to fetch cart line")
		return
	}
	c.JSON(http.StatusOK, line)
}

// UpdateCart replaces a line's quantity and captured price
// PUT /api/v1/cart/:id
func (ctrl *CartController) UpdateCart(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid cart ID")
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	line, err := ctrl.cartService.Update(id, req.Quantity, *req.MrpPrice)
	if err != nil {
		ctrl.respondCartError(c, err, "Failed to update cart line")
		return
	}
	c.JSON(http.StatusOK, line)
}

// UpdateCartQuantity sets a line's quantity directly
// PUT /api/v1/cart/:id/quantity?quantity=
func (ctrl *CartController) UpdateCartQuantity(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid cart ID")
		return
	}

	quantity, ok := parseInt64Query(c, "quantity")
	if !ok || quantity <= 0 {
		apierrors.BadRequest(c, "Query parameter quantity must be a positive integer")
		return
	}

	line, err := ctrl.cartService.UpdateQuantity(id, quantity)
	if err != nil {
		ctrl.respondCartError(c, err, "Failed to update cart quantity")
		return
	}
	c.JSON(http.StatusOK, line)
}

// DeleteCart removes one cart line
// DELETE /api/v1/cart/:id
func (ctrl *CartController) DeleteCart(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid cart ID")
		return
	}

	if err := ctrl.cartService.Delete(id); err != nil {
		ctrl.respondCartError(c, err, "Failed to delete cart line")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart line deleted successfully",
	})
}

// GetCartByUser lists a user's cart lines
// GET /api/v1/cart/user/:id
func (ctrl *CartController) GetCartByUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	lines, err := ctrl.cartService.GetByUser(userID)
	if err != nil {
		ctrl.respondCartError(c, err, "Failed to fetch user cart")
		return
	}
	c.JSON(http.StatusOK, lines)
}

// CountCartByUser counts a user's distinct cart lines
// GET /api/v1/cart/user/:id/count
func (ctrl *CartController) CountCartByUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	count, err := ctrl.cartService.CountByUser(userID)
	if err != nil {
		ctrl.respondCartError(c, err, "Failed to count cart lines")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"count":   count,
	})
}

// ClearCartByUser removes every line in a user's cart
// DELETE /api/v1/cart/user/:id
func (ctrl *CartController) ClearCartByUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := ctrl.cartService.ClearByUser(userID); err != nil {
		ctrl.respondCartError(c, err, "Failed to clear user cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}
