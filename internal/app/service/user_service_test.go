package service

import (
	"testing"
	"time"

	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserServiceTest(t *testing.T) (UserService, *gorm.DB) {
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

	userService := NewUserService(
		userRepo, cartRepo, orderRepo, paymentRepo, itemRepo,
		"test-secret", 15*time.Minute, 168*time.Hour,
	)
	return userService, testDB
}

func registerTestUser(t *testing.T, userService UserService, email string, role model.UserRole) *model.User {
	t.Helper()
	user, err := userService.Register(RegisterUserInput{
		FirstName:   "Test",
		LastName:    "User",
		Email:       email,
		Password:    "password123",
		PhoneNumber: "1234567890",
		District:    "Central",
		Role:        role,
	})
	require.NoError(t, err)
	return user
}

func TestUserService_Register_Success(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	user := registerTestUser(t, userService, "alice@example.com", model.RoleUser)

	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive)
	assert.Equal(t, model.RoleUser, user.Role)
	// Stored as a hash, never the raw password.
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	registerTestUser(t, userService, "alice@example.com", model.RoleUser)

	_, err := userService.Register(RegisterUserInput{
		FirstName:   "Other",
		LastName:    "Person",
		Email:       "alice@example.com",
		Password:    "different",
		PhoneNumber: "5555555555",
		Role:        model.RoleUser,
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserService_Register_InvalidRole(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	_, err := userService.Register(RegisterUserInput{
		FirstName:   "Bad",
		LastName:    "Role",
		Email:       "bad@example.com",
		Password:    "password123",
		PhoneNumber: "1111111111",
		Role:        model.UserRole("ADMIN"),
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserService_Login_Success(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	registerTestUser(t, userService, "alice@example.com", model.RoleUser)

	user, tokens, err := userService.Login("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	registerTestUser(t, userService, "alice@example.com", model.RoleUser)

	// A credential mismatch reads the same as an unknown email.
	_, _, err := userService.Login("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	_, _, err := userService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Login_DeactivatedAccount(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	user := registerTestUser(t, userService, "alice@example.com", model.RoleUser)

	_, err := userService.ToggleActive(user.ID)
	require.NoError(t, err)

	_, _, err = userService.Login("alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestUserService_Update_Success(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	user := registerTestUser(t, userService, "alice@example.com", model.RoleUser)

	updated, err := userService.Update(user.ID, UpdateUserInput{
		FirstName:   "Alicia",
		LastName:    "Updated",
		PhoneNumber: "9999999999",
		District:    "North",
		Role:        model.RoleVendor,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "North", updated.District)
	assert.Equal(t, model.RoleVendor, updated.Role)
}

func TestUserService_Update_NotFound(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	_, err := userService.Update(9999, UpdateUserInput{
		FirstName:   "Ghost",
		LastName:    "User",
		PhoneNumber: "0000000000",
		Role:        model.RoleUser,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	_, err := userService.GetByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ToggleActive(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	user := registerTestUser(t, userService, "alice@example.com", model.RoleUser)
	require.True(t, user.IsActive)

	toggled, err := userService.ToggleActive(user.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = userService.ToggleActive(user.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}

func TestUserService_EmailExists(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	registerTestUser(t, userService, "alice@example.com", model.RoleUser)

	exists, err := userService.EmailExists("alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = userService.EmailExists("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserService_GetVendorsAndRegularUsers(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	registerTestUser(t, userService, "vendor@example.com", model.RoleVendor)
	registerTestUser(t, userService, "user@example.com", model.RoleUser)

	vendors, err := userService.GetVendors()
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "vendor@example.com", vendors[0].Email)

	users, err := userService.GetRegularUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "user@example.com", users[0].Email)
}

func TestUserService_Delete_Success(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	user := registerTestUser(t, userService, "alice@example.com", model.RoleUser)

	err := userService.Delete(user.ID)
	require.NoError(t, err)

	_, err = userService.GetByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete_BlockedByDependents(t *testing.T) {
	userService, testDB := setupUserServiceTest(t)

	vendor := registerTestUser(t, userService, "vendor@example.com", model.RoleVendor)
	user := registerTestUser(t, userService, "alice@example.com", model.RoleUser)

	item := &model.Item{
		Name:     "Tomato",
		MrpPrice: 30.0,
		Quantity: 100,
		Category: model.CategoryVegetables,
		VendorID: vendor.ID,
	}
	testDB.Create(item)

	cart := &model.Cart{
		UserID:   user.ID,
		ItemID:   item.ID,
		Quantity: 2,
		MrpPrice: 30.0,
	}
	testDB.Create(cart)

	// The buyer still has a cart line, the vendor still has a listing.
	assert.ErrorIs(t, userService.Delete(user.ID), ErrUserHasDependents)
	assert.ErrorIs(t, userService.Delete(vendor.ID), ErrUserHasDependents)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	userService, _ := setupUserServiceTest(t)

	assert.ErrorIs(t, userService.Delete(9999), ErrUserNotFound)
}
