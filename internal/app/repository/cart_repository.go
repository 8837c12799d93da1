package repository

import (
	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	Create(cart *model.Cart) error
	FindByID(id uint) (*model.Cart, error)
	FindAll() ([]model.Cart, error)
	FindByUserID(userID uint) ([]model.Cart, error)
	FindByUserAndItem(userID, itemID uint) (*model.Cart, error)
	// FindByUserAndItemForUpdate takes a row lock on the matched line so a
	// concurrent merge for the same (user, item) key serializes behind it.
	// Must run inside a transaction.
	FindByUserAndItemForUpdate(tx *gorm.DB, userID, itemID uint) (*model.Cart, error)
	Update(cart *model.Cart) error
	UpdateTx(tx *gorm.DB, cart *model.Cart) error
	CreateTx(tx *gorm.DB, cart *model.Cart) error
	Delete(id uint) error
	DeleteByUserID(userID uint) error
	CountByUserID(userID uint) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	return r.CreateTx(r.db, cart)
}

func (r *cartRepository) CreateTx(tx *gorm.DB, cart *model.Cart) error {
	logger.Debug("Creating cart line in database", map[string]interface{}{
		"user_id":  cart.UserID,
		"item_id":  cart.ItemID,
		"quantity": cart.Quantity,
	})

	if err := tx.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart line in database", err, map[string]interface{}{
			"user_id": cart.UserID,
			"item_id": cart.ItemID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindByID(id uint) (*model.Cart, error) {
	var cart model.Cart
	if err := r.db.Preload("Item").First(&cart, id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindAll() ([]model.Cart, error) {
	var carts []model.Cart
	if err := r.db.Preload("Item").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.Cart, error) {
	var carts []model.Cart
	err := r.db.Where("user_id = ?", userID).Preload("Item").Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}

func (r *cartRepository) FindByUserAndItem(userID, itemID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindByUserAndItemForUpdate(tx *gorm.DB, userID, itemID uint) (*model.Cart, error) {
	query := tx.Where("user_id = ? AND item_id = ?", userID, itemID)
	// SQLite has no FOR UPDATE; its single-writer lock already serializes
	// the transaction.
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cart model.Cart
	if err := query.First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Update(cart *model.Cart) error {
	return r.UpdateTx(r.db, cart)
}

func (r *cartRepository) UpdateTx(tx *gorm.DB, cart *model.Cart) error {
	logger.Debug("Updating cart line in database", map[string]interface{}{
		"cart_id":  cart.ID,
		"quantity": cart.Quantity,
	})

	if err := tx.Save(cart).Error; err != nil {
		logger.Error("Failed to update cart line in database", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) Delete(id uint) error {
	logger.Debug("Deleting cart line from database", map[string]interface{}{
		"cart_id": id,
	})

	if err := r.db.Delete(&model.Cart{}, id).Error; err != nil {
		logger.Error("Failed to delete cart line from database", err, map[string]interface{}{
			"cart_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteByUserID(userID uint) error {
	logger.Debug("Clearing cart lines for user", map[string]interface{}{
		"user_id": userID,
	})

	if err := r.db.Where("user_id = ?", userID).Delete(&model.Cart{}).Error; err != nil {
		logger.Error("Failed to clear cart lines for user", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Cart{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
