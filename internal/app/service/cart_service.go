package service

import (
	"errors"

	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound = errors.New("cart line not found")
)

type CartService interface {
	AddToCart(userID, itemID uint, quantity int64) (*model.Cart, error)
	GetAll() ([]model.Cart, error)
	GetByID(cartID uint) (*model.Cart, error)
	GetByUser(userID uint) ([]model.Cart, error)
	Update(cartID uint, quantity int64, mrpPrice float64) (*model.Cart, error)
	UpdateQuantity(cartID uint, quantity int64) (*model.Cart, error)
	CountByUser(userID uint) (int64, error)
	Delete(cartID uint) error
	ClearByUser(userID uint) error
}

type cartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	db       *gorm.DB
}

func NewCartService(
	cartRepo repository.CartRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) CartService {
	return &cartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
		userRepo: userRepo,
		db:       db,
	}
}

// AddToCart merges the requested quantity into the user's cart line for the
// item. The read-check-write sequence runs inside one transaction with a row
// lock on the matched line, and the composite unique index on
// (user_id, item_id) backs it up, so two concurrent adds for the same key
// end up as a single line with the summed quantity, never two lines or a
// dropped increment. The line's captured price is refreshed to the item's
// current price on every merge.
func (s *cartService) AddToCart(userID, itemID uint, quantity int64) (*model.Cart, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":  userID,
		"item_id":  itemID,
		"quantity": quantity,
	})

	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: item not found", map[string]interface{}{
				"item_id": itemID,
			})
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: user not found", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var line *model.Cart
	err = s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.cartRepo.FindByUserAndItemForUpdate(tx, userID, itemID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing != nil {
			existing.Quantity += quantity
			existing.MrpPrice = item.MrpPrice
			if err := s.cartRepo.UpdateTx(tx, existing); err != nil {
				return err
			}
			line = existing
			return nil
		}

		line = &model.Cart{
			UserID:   userID,
			ItemID:   itemID,
			Quantity: quantity,
			MrpPrice: item.MrpPrice,
		}
		return s.cartRepo.CreateTx(tx, line)
	})
	if err != nil {
		logger.Error("Failed to merge cart line", err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		return nil, err
	}

	logger.Info("Cart line merged successfully", map[string]interface{}{
		"cart_id":  line.ID,
		"quantity": line.Quantity,
	})
	return line, nil
}

func (s *cartService) GetAll() ([]model.Cart, error) {
	return s.cartRepo.FindAll()
}

func (s *cartService) GetByID(cartID uint) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

func (s *cartService) GetByUser(userID uint) ([]model.Cart, error) {
	return s.cartRepo.FindByUserID(userID)
}

// Update replaces both the quantity and the captured price of a line.
func (s *cartService) Update(cartID uint, quantity int64, mrpPrice float64) (*model.Cart, error) {
	logger.Info("Updating cart line", map[string]interface{}{
		"cart_id":  cartID,
		"quantity": quantity,
	})

	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	cart.Quantity = quantity
	cart.MrpPrice = mrpPrice

	if err := s.cartRepo.Update(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity directly, without merging.
func (s *cartService) UpdateQuantity(cartID uint, quantity int64) (*model.Cart, error) {
	logger.Info("Updating cart line quantity", map[string]interface{}{
		"cart_id":  cartID,
		"quantity": quantity,
	})

	cart, err := s.cartRepo.FindByID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}

	cart.Quantity = quantity
	if err := s.cartRepo.Update(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// CountByUser counts distinct cart lines, not the sum of quantities.
func (s *cartService) CountByUser(userID uint) (int64, error) {
	return s.cartRepo.CountByUserID(userID)
}

func (s *cartService) Delete(cartID uint) error {
	logger.Info("Deleting cart line", map[string]interface{}{
		"cart_id": cartID,
	})

	if _, err := s.cartRepo.FindByID(cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartNotFound
		}
		return err
	}
	return s.cartRepo.Delete(cartID)
}

func (s *cartService) ClearByUser(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})
	return s.cartRepo.DeleteByUserID(userID)
}
