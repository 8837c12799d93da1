package router

import (
	"github.com/gin-gonic/gin"
	"github.com/groceteria/groceteria-backend/config"
	"github.com/groceteria/groceteria-backend/internal/app/controller"
	"github.com/groceteria/groceteria-backend/internal/errors"
	"github.com/groceteria/groceteria-backend/internal/middleware"
)

type Router struct {
	userController    *controller.UserController
	itemController    *controller.ItemController
	cartController    *controller.CartController
	orderController   *controller.OrderController
	paymentController *controller.PaymentController
	uploadController  *controller.UploadController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	userController *controller.UserController,
	itemController *controller.ItemController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	paymentController *controller.PaymentController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		userController:    userController,
		itemController:    itemController,
		cartController:    cartController,
		orderController:   orderController,
		paymentController: paymentController,
		uploadController:  uploadController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.NoRoute(errors.EndpointNotFound)
	router.NoMethod(errors.EndpointNotFound)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "GROCETERIA API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", r.userController.Register)
			users.POST("/login", r.userController.Login)
			users.POST("/forgot-password", r.userController.ForgotPassword)
			users.GET("", r.userController.GetAllUsers)
			users.GET("/vendors", r.userController.GetVendors)
			users.GET("/regular-users", r.userController.GetRegularUsers)
			users.GET("/active", r.userController.GetActiveUsers)
			users.GET("/district/:district", r.userController.GetUsersByDistrict)
			users.GET("/role/:role", r.userController.GetUsersByRole)
			users.GET("/check-email/:email", r.userController.CheckEmail)
			users.GET("/:id", r.userController.GetUserByID)
			users.PUT("/:id", r.userController.UpdateUser)
			users.PUT("/:id/toggle-status", r.userController.ToggleUserStatus)
			users.DELETE("/:id", r.userController.DeleteUser)
		}

		items := v1.Group("/items")
		{
			items.POST("", r.itemController.AddItem)
			items.GET("", r.itemController.GetAllItems)
			items.GET("/paged", r.itemController.GetAllItemsPaged)
			items.GET("/search", r.itemController.SearchItems)
			items.GET("/price-range", r.itemController.GetItemsByPriceRange)
			items.GET("/available", r.itemController.GetAvailableItems)
			items.GET("/available/paged", r.itemController.GetAvailableItemsPaged)
			items.GET("/category/:category", r.itemController.GetItemsByCategory)
			items.GET("/category/:category/paged", r.itemController.GetItemsByCategoryPaged)
			items.GET("/category/:category/price-range", r.itemController.GetItemsByCategoryAndPriceRange)
			items.GET("/price/:price", r.itemController.GetItemsByPrice)
			items.GET("/vendor/:id", r.itemController.GetItemsByVendor)
			items.GET("/vendor/:id/paged", r.itemController.GetItemsByVendorPaged)
			items.GET("/:id", r.itemController.GetItemByID)
			items.PUT("/:id", r.itemController.UpdateItem)
			items.PUT("/:id/quantity", r.itemController.UpdateItemQuantity)
			items.DELETE("/:id", r.itemController.DeleteItem)
		}

		cart := v1.Group("/cart")
		{
			cart.POST("", r.cartController.AddToCart)
			cart.GET("", r.cartController.GetAllCarts)
			cart.GET("/user/:id", r.cartController.GetCartByUser)
			cart.GET("/user/:id/count", r.cartController.CountCartByUser)
			cart.DELETE("/user/:id", r.cartController.ClearCartByUser)
			cart.GET("/:id", r.cartController.GetCartByID)
			cart.PUT("/:id", r.cartController.UpdateCart)
			cart.PUT("/:id/quantity", r.cartController.UpdateCartQuantity)
			cart.DELETE("/:id", r.cartController.DeleteCart)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", r.orderController.CreateOrder)
			orders.GET("", r.orderController.GetAllOrders)
			orders.GET("/export", r.orderController.ExportOrders)
			orders.GET("/price-greater-than", r.orderController.GetOrdersByMinPrice)
			orders.GET("/status/:status", r.orderController.GetOrdersByStatus)
			orders.GET("/payment-status/:status", r.orderController.GetOrdersByPaymentStatus)
			orders.GET("/user/:id", r.orderController.GetOrdersByUser)
			orders.GET("/user/:id/status/:status", r.orderController.GetOrdersByUserAndStatus)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.PUT("/:id", r.orderController.UpdateOrder)
			orders.PUT("/:id/status", r.orderController.UpdateOrderStatus)
			orders.PUT("/:id/payment-status", r.orderController.UpdateOrderPaymentStatus)
			orders.DELETE("/:id", r.orderController.DeleteOrder)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("", r.paymentController.RecordPayment)
			payments.POST("/process", r.paymentController.ProcessPayment)
			payments.GET("", r.paymentController.GetAllPayments)
			payments.GET("/amount-range", r.paymentController.GetPaymentsByAmountRange)
			payments.GET("/amount-greater-than", r.paymentController.GetPaymentsByAmountGreaterThan)
			payments.GET("/user/:id", r.paymentController.GetPaymentsByUser)
			payments.GET("/order/:id", r.paymentController.GetPaymentByOrder)
			payments.GET("/:id", r.paymentController.GetPaymentByID)
			payments.DELETE("/:id", r.paymentController.DeletePayment)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/item-image", r.uploadController.PresignItemImage)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
