package service

import (
	"errors"
	"time"

	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"github.com/groceteria/groceteria-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrAccountDeactivated = errors.New("user account is deactivated")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserHasDependents  = errors.New("user has dependent carts, orders or payments")
)

// RegisterUserInput carries the fields accepted on registration.
type RegisterUserInput struct {
	FirstName   string
	LastName    string
	Gender      string
	Email       string
	Password    string
	PhoneNumber string
	District    string
	State       string
	Address     string
	Zipcode     string
	Role        model.UserRole
}

// UpdateUserInput carries the mutable profile fields.
type UpdateUserInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	District    string
	State       string
	Address     string
	Zipcode     string
	Role        model.UserRole
}

type UserService interface {
	Register(input RegisterUserInput) (*model.User, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	Update(userID uint, input UpdateUserInput) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetAll() ([]model.User, error)
	GetVendors() ([]model.User, error)
	GetRegularUsers() ([]model.User, error)
	GetByDistrict(district string) ([]model.User, error)
	GetActive() ([]model.User, error)
	GetByRole(role model.UserRole) ([]model.User, error)
	ToggleActive(id uint) (*model.User, error)
	EmailExists(email string) (bool, error)
	Delete(id uint) error
}

type userService struct {
	userRepo           repository.UserRepository
	cartRepo           repository.CartRepository
	orderRepo          repository.OrderRepository
	paymentRepo        repository.PaymentRepository
	itemRepo           repository.ItemRepository
	jwtSecret          string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

func NewUserService(
	userRepo repository.UserRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	itemRepo repository.ItemRepository,
	jwtSecret string,
	accessTokenExpiry, refreshTokenExpiry time.Duration,
) UserService {
	return &userService{
		userRepo:           userRepo,
		cartRepo:           cartRepo,
		orderRepo:          orderRepo,
		paymentRepo:        paymentRepo,
		itemRepo:           itemRepo,
		jwtSecret:          jwtSecret,
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

func (s *userService) Register(input RegisterUserInput) (*model.User, error) {
	logger.Info("Registering user", map[string]interface{}{
		"email": input.Email,
		"role":  input.Role,
	})

	if !model.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByEmail(input.Email)
	if err != nil {
		logger.Error("Failed to check email existence", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}
	if exists {
		logger.Warn("Registration rejected: email already registered", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrEmailExists
	}

	// Passwords are stored as salted bcrypt hashes, never in the clear.
	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return nil, err
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       input.Gender,
		Email:        input.Email,
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		District:     input.District,
		State:        input.State,
		Address:      input.Address,
		Zipcode:      input.Zipcode,
		Role:         input.Role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *userService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("User login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: email not registered", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for login", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	// A credential mismatch is reported identically to an unknown email.
	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: credential mismatch", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrUserNotFound
	}

	if !user.IsActive {
		logger.Warn("Login rejected: account deactivated", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrAccountDeactivated
	}

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtSecret, s.accessTokenExpiry, s.refreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate token pair", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, tokens, nil
}

func (s *userService) Update(userID uint, input UpdateUserInput) (*model.User, error) {
	logger.Info("Updating user profile", map[string]interface{}{
		"user_id": userID,
	})

	if !model.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.PhoneNumber = input.PhoneNumber
	user.District = input.District
	user.State = input.State
	user.Address = input.Address
	user.Zipcode = input.Zipcode
	user.Role = input.Role
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User profile updated", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

func (s *userService) GetByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByEmail(email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetAll() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) GetVendors() ([]model.User, error) {
	return s.userRepo.FindByRole(model.RoleVendor)
}

func (s *userService) GetRegularUsers() ([]model.User, error) {
	return s.userRepo.FindByRole(model.RoleUser)
}

func (s *userService) GetByDistrict(district string) ([]model.User, error) {
	return s.userRepo.FindByDistrict(district)
}

func (s *userService) GetActive() ([]model.User, error) {
	return s.userRepo.FindActive()
}

func (s *userService) GetByRole(role model.UserRole) ([]model.User, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	return s.userRepo.FindByRoleAndActive(role)
}

func (s *userService) ToggleActive(id uint) (*model.User, error) {
	logger.Info("Toggling user active flag", map[string]interface{}{
		"user_id": id,
	})

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("User active flag toggled", map[string]interface{}{
		"user_id":   user.ID,
		"is_active": user.IsActive,
	})
	return user, nil
}

func (s *userService) EmailExists(email string) (bool, error) {
	return s.userRepo.ExistsByEmail(email)
}

// Delete hard-deletes a user. Deletion is refused while any cart line,
// order, payment or listed item still references the user, so no dependent
// rows are ever orphaned.
func (s *userService) Delete(id uint) error {
	logger.Info("Deleting user", map[string]interface{}{
		"user_id": id,
	})

	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	cartCount, err := s.cartRepo.CountByUserID(id)
	if err != nil {
		return err
	}
	orderCount, err := s.orderRepo.CountByUserID(id)
	if err != nil {
		return err
	}
	paymentCount, err := s.paymentRepo.CountByUserID(id)
	if err != nil {
		return err
	}
	itemCount, err := s.itemRepo.CountByVendorID(id)
	if err != nil {
		return err
	}

	if cartCount > 0 || orderCount > 0 || paymentCount > 0 || itemCount > 0 {
		logger.Warn("User deletion refused: dependent rows exist", map[string]interface{}{
			"user_id":  id,
			"carts":    cartCount,
			"orders":   orderCount,
			"payments": paymentCount,
			"items":    itemCount,
		})
		return ErrUserHasDependents
	}

	if err := s.userRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}
