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

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type RegisterRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Gender      string `json:"gender"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	District    string `json:"district"`
	State       string `json:"state"`
	Address     string `json:"address"`
	Zipcode     string `json:"zipcode"`
	Role        string `json:"role" binding:"required,oneof=USER VENDOR"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	District    string `json:"district"`
	State       string `json:"state"`
	Address     string `json:"address"`
	Zipcode     string `json:"zipcode"`
	Role        string `json:"role" binding:"required,oneof=USER VENDOR"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Register creates a new user account
// POST /api/v1/users/register
func (ctrl *UserController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apierrors.RespondToBindingError(c, err)
		return
	}

	user, err := ctrl.userService.Register(service.RegisterUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Gender:      req.Gender,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		District:    req.District,
		State:       req.State,
		Address:     req.Address,
		Zipcode:     req.Zipcode,
		Role:        model.UserRole(req.Role),
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			apierrors.Conflict(c, "A user with this email already exists")
			return
		}
		if errors.Is(err, service.ErrInvalidRole) {
			apierrors.BadRequest(c, "Role must be USER or VENDOR")
			return
		}
		log.Error("Failed to register user", err, map[string]interface{}{
			"email": req.Email,
		})
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login authenticates a user and issues a token pair
// POST /api/v1/users/login
func (ctrl *UserController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	user, tokens, err := ctrl.userService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apierrors.NotFound(c, "No user matches the given credentials")
			return
		}
		if errors.Is(err, service.ErrAccountDeactivated) {
			apierrors.Forbidden(c, "This account has been deactivated")
			return
		}
		log.Error("Failed to log user in", err, map[string]interface{}{
			"email": req.Email,
		})
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// UpdateUser updates a user's profile
// PUT /api/v1/users/:id
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	user, err := ctrl.userService.Update(id, service.UpdateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		District:    req.District,
		State:       req.State,
		Address:     req.Address,
		Zipcode:     req.Zipcode,
		Role:        model.UserRole(req.Role),
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		if errors.Is(err, service.ErrInvalidRole) {
			apierrors.BadRequest(c, "Role must be USER or VENDOR")
			return
		}
		log.Error("Failed to update user", err, map[string]interface{}{
			"user_id": id,
		})
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetAllUsers lists every user
// GET /api/v1/users
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.userService.GetAll()
	if err != nil {
		log.Error("Failed to fetch users", err)
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID fetches one user
// GET /api/v1/users/:id
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := ctrl.userService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		log.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// ForgotPassword resolves an account by email as the first step of a reset
// POST /api/v1/users/forgot-password
func (ctrl *UserController) ForgotPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondToBindingError(c, err)
		return
	}

	user, err := ctrl.userService.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apierrors.NotFound(c, "No account registered with this email")
			return
		}
		log.Error("Failed to resolve account by email", err, map[string]interface{}{
			"email": req.Email,
		})
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user without dependents
// DELETE /api/v1/users/:id
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := ctrl.userService.Delete(id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		if errors.Is(err, service.ErrUserHasDependents) {
			apierrors.Conflict(c, "User still has carts, orders, payments or listed items")
			return
		}
		log.Error("Failed to delete user", err, map[string]interface{}{
			"user_id": id,
		})
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

// GetVendors lists users with the VENDOR role
// GET /api/v1/users/vendors
func (ctrl *UserController) GetVendors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendors, err := ctrl.userService.GetVendors()
	if err != nil {
		log.Error("Failed to fetch vendors", err)
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// GetRegularUsers lists users with the USER role
// GET /api/v1/users/regular-users
func (ctrl *UserController) GetRegularUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.userService.GetRegularUsers()
	if err != nil {
		log.Error("Failed to fetch regular users", err)
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetActiveUsers lists users whose accounts are active
// GET /api/v1/users/active
func (ctrl *UserController) GetActiveUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.userService.GetActive()
	if err != nil {
		log.Error("Failed to fetch active users", err)
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUsersByDistrict lists users registered in a district
// GET /api/v1/users/district/:district
func (ctrl *UserController) GetUsersByDistrict(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	district := c.Param("district")
	users, err := ctrl.userService.GetByDistrict(district)
	if err != nil {
		log.Error("Failed to fetch users by district", err, map[string]interface{}{
			"district": district,
		})
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUsersByRole lists active users holding one role
// GET /api/v1/users/role/:role
func (ctrl *UserController) GetUsersByRole(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	role := model.UserRole(c.Param("role"))
	users, err := ctrl.userService.GetByRole(role)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			apierrors.BadRequest(c, "Role must be USER or VENDOR")
			return
		}
		log.Error("Failed to fetch users by role", err, map[string]interface{}{
			"role": role,
		})
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// ToggleUserStatus flips a user's active flag
// PUT /api/v1/users/:id/toggle-status
func (ctrl *UserController) ToggleUserStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseUintParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := ctrl.userService.ToggleActive(id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		log.Error("Failed to toggle user status", err, map[string]interface{}{
			"user_id": id,
		})
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// CheckEmail reports whether an email is already registered
// GET /api/v1/users/check-email/:email
func (ctrl *UserController) CheckEmail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email := c.Param("email")
	exists, err := ctrl.userService.EmailExists(email)
	if err != nil {
		log.Error("Failed to check email existence", err, map[string]interface{}{
			"email": email,
		})
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":  email,
		"exists": exists,
	})
}
