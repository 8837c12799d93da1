package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/service"
	apierrors "github.com/groceteria/groceteria-backend/internal/errors"
	"github.com/groceteria/groceteria-backend/internal/middleware"
)

type ItemController struct {
	itemService service.ItemService
}

func NewItemController(itemService service.ItemService) *ItemController {
	return &ItemController{
		itemService: itemService,
	}
}

// MrpPrice is a pointer so a legitimate zero price still satisfies
// required; only an absent field fails.
type ItemRequest struct {
	Name        string   `json:"name" binding:"required"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	MrpPrice    *float64 `json:"mrp_price" binding:"required,gte=0"`
	Quantity    int64    `json:"quantity" binding:"gte=0"`
	Category    string   `json:"category" binding:"required"`
}

func (r ItemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		Name:        r.Name,
		Image:       r.Image,
		Description: r.Description,
		MrpPrice:    *r.MrpPrice,
		Quantity:    r.Quantity,
		Category:    model.ItemCategory(r.Category),
	}
}

func (ctrl *ItemController) respondItemError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrItemNotFound):
		apierrors.NotFound(c, "Item not found")
	case errors.Is(err, service.ErrUserNotFound):
		apierrors.NotFound(c, "Vendor not found")
	case errors.Is(err, service.ErrNotVendor):
		apierrors.Forbidden(c, "Only vendors may manage items")
	case errors.Is(err, service.ErrInvalidCategory):
		apierrors.BadRequest(c, "Unknown item category")
	default:
		log.Error(context, err)
		apierrors.InternalError(c, "")
	}
}

// AddItem lists a new catalog item under a vendor
// POST /api/v1/items?vendorId=
func (ctrl *ItemController) AddItem(c *gin.Context) {
	vendorID, ok := parseUintQuery(c, "vendorId")
	if !ok {
		apierrors.BadRequest(c, "Query parameter vendorId is required")
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	item, err := ctrl.itemService.Add(req.toInput(), vendorID)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to add item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetAllItems lists the whole catalog
// GET /api/v1/items
func (ctrl *ItemController) GetAllItems(c *gin.Context) {
	items, err := ctrl.itemService.GetAll()
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItemByID fetches one item
// GET /api/v1/items/:id
func (ctrl *ItemController) GetItemByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := ctrl.itemService.GetByID(id)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem replaces an item's writable fields
// PUT /api/v1/items/:id
func (ctrl *ItemController) UpdateItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	item, err := ctrl.itemService.Update(id, req.toInput())
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItemQuantity sets an item's stock level
// PUT /api/v1/items/:id/quantity?quantity=
func (ctrl *ItemController) UpdateItemQuantity(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	quantity, ok := parseInt64Query(c, "quantity")
	if !ok || quantity < 0 {
		apierrors.BadRequest(c, "Query parameter quantity must be a non-negative integer")
		return
	}

	item, err := ctrl.itemService.UpdateQuantity(id, quantity)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to update item quantity")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item from the catalog
// DELETE /api/v1/items/:id
func (ctrl *ItemController) DeleteItem(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	if err := ctrl.itemService.Delete(id); err != nil {
		ctrl.respondItemError(c, err, "Failed to delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted successfully",
	})
}

// GetItemsByCategory lists items in one category
// GET /api/v1/items/category/:category
func (ctrl *ItemController) GetItemsByCategory(c *gin.Context) {
	category := model.ItemCategory(c.Param("category"))

	items, err := ctrl.itemService.GetByCategory(category)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch items by category")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItemsByCategoryPaged pages through one category
// GET /api/v1/items/category/:category/paged?pageNo=&pageSize=
func (ctrl *ItemController) GetItemsByCategoryPaged(c *gin.Context) {
	category := model.ItemCategory(c.Param("category"))

	pageNo, pageSize, ok := pageParams(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid pagination parameters")
		return
	}

	page, err := ctrl.itemService.GetByCategoryPaged(category, pageNo, pageSize)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch items by category")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetAllItemsPaged pages through the whole catalog
// GET /api/v1/items/paged?pageNo=&pageSize=
func (ctrl *ItemController) GetAllItemsPaged(c *gin.Context) {
	pageNo, pageSize, ok := pageParams(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid pagination parameters")
		return
	}

	page, err := ctrl.itemService.GetAllPaged(pageNo, pageSize)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch items")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetItemsByPrice lists items at an exact price point
// GET /api/v1/items/price/:price
func (ctrl *ItemController) GetItemsByPrice(c *gin.Context) {
	price, ok := parseFloatParam(c, "price")
	if !ok {
		apierrors.BadRequest(c, "Invalid price")
		return
	}

	items, err := ctrl.itemService.GetByPrice(price)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch items by price")
		return
	}
	c.JSON(http.StatusOK, items)
}

// SearchItems searches the catalog by name, paged
// GET /api/v1/items/search?keyword=&pageNo=&pageSize=
func (ctrl *ItemController) SearchItems(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		apierrors.BadRequest(c, "Query parameter keyword is required")
		return
	}

	pageNo, pageSize, ok := pageParams(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid pagination parameters")
		return
	}

	page, err := ctrl.itemService.SearchByName(keyword, pageNo, pageSize)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to search items")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetItemsByVendor lists a vendor's items
// GET /api/v1/items/vendor/:id
func (ctrl *ItemController) GetItemsByVendor(c *gin.Context) {
	vendorID, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid vendor ID")
		return
	}

	items, err := ctrl.itemService.GetByVendor(vendorID)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch vendor items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItemsByVendorPaged pages through a vendor's items
// GET /api/v1/items/vendor/:id/paged?pageNo=&pageSize=
func (ctrl *ItemController) GetItemsByVendorPaged(c *gin.Context) {
	vendorID, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid vendor ID")
		return
	}

	pageNo, pageSize, ok := pageParams(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid pagination parameters")
		return
	}

	page, err := ctrl.itemService.GetByVendorPaged(vendorID, pageNo, pageSize)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch vendor items")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetItemsByPriceRange lists items priced within inclusive bounds
// GET /api/v1/items/price-range?minPrice=&maxPrice=
func (ctrl *ItemController) GetItemsByPriceRange(c *gin.Context) {
	minPrice, okMin := parseFloatQuery(c, "minPrice")
	maxPrice, okMax := parseFloatQuery(c, "maxPrice")
	if !okMin || !okMax || minPrice > maxPrice {
		apierrors.BadRequest(c, "Query parameters minPrice and maxPrice must form a valid range")
		return
	}

	items, err := ctrl.itemService.GetByPriceRange(minPrice, maxPrice)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch items by price range")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItemsByCategoryAndPriceRange lists items in one category priced within inclusive bounds
// GET /api/v1/items/category/:category/price-range?minPrice=&maxPrice=
func (ctrl *ItemController) GetItemsByCategoryAndPriceRange(c *gin.Context) {
	category := model.ItemCategory(c.Param("category"))

	minPrice, okMin := parseFloatQuery(c, "minPrice")
	maxPrice, okMax := parseFloatQuery(c, "maxPrice")
	if !okMin || !okMax || minPrice > maxPrice {
		apierrors.BadRequest(c, "Query parameters minPrice and maxPrice must form a valid range")
		return
	}

	items, err := ctrl.itemService.GetByCategoryAndPriceRange(category, minPrice, maxPrice)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch items by category and price range")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetAvailableItems lists items with stock on hand
// GET /api/v1/items/available
func (ctrl *ItemController) GetAvailableItems(c *gin.Context) {
	items, err := ctrl.itemService.GetAvailable()
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch available items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetAvailableItemsPaged pages through items with stock on hand
// GET /api/v1/items/available/paged?pageNo=&pageSize=
func (ctrl *ItemController) GetAvailableItemsPaged(c *gin.Context) {
	pageNo, pageSize, ok := pageParams(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid pagination parameters")
		return
	}

	page, err := ctrl.itemService.GetAvailablePaged(pageNo, pageSize)
	if err != nil {
		ctrl.respondItemError(c, err, "Failed to fetch available items")
		return
	}
	c.JSON(http.StatusOK, page)
}
