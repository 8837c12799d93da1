package repository

import (
	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindAll() ([]model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindByStatus(status model.OrderStatus) ([]model.Order, error)
	FindByPaymentStatus(status model.PaymentStatus) ([]model.Order, error)
	FindByUserAndStatus(userID uint, status model.OrderStatus) ([]model.Order, error)
	FindByTotalPriceGreaterThan(minPrice float64) ([]model.Order, error)
	Update(order *model.Order) error
	UpdateTx(tx *gorm.DB, order *model.Order) error
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_id":     order.UserID,
		"total_price": order.TotalPrice,
		"item_count":  len(order.Items),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id": order.UserID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("user_id = ?", userID).Preload("Items").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByStatus(status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("order_status = ?", status).Preload("Items").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByPaymentStatus(status model.PaymentStatus) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("payment_status = ?", status).Preload("Items").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByUserAndStatus(userID uint, status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("user_id = ? AND order_status = ?", userID, status).
		Preload("Items").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByTotalPriceGreaterThan(minPrice float64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("total_price > ?", minPrice).Preload("Items").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	return r.UpdateTx(r.db, order)
}

func (r *orderRepository) UpdateTx(tx *gorm.DB, order *model.Order) error {
	logger.Debug("Updating order in database", map[string]interface{}{
		"order_id":       order.ID,
		"order_status":   order.OrderStatus,
		"payment_status": order.PaymentStatus,
	})

	// Omit the association so status updates never rewrite the join table.
	if err := tx.Omit("Items").Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) Delete(id uint) error {
	logger.Debug("Deleting order from database", map[string]interface{}{
		"order_id": id,
	})

	if err := r.db.Select("Items").Delete(&model.Order{ID: id}).Error; err != nil {
		logger.Error("Failed to delete order from database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}
	return nil
}

func (r *orderRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
