package repository

import (
	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	CreateTx(tx *gorm.DB, payment *model.Payment) error
	FindByID(id uint) (*model.Payment, error)
	FindAll() ([]model.Payment, error)
	FindByUserID(userID uint) ([]model.Payment, error)
	FindFirstByOrderID(orderID uint) (*model.Payment, error)
	ExistsByOrderIDTx(tx *gorm.DB, orderID uint) (bool, error)
	FindByAmountRange(minAmount, maxAmount float64) ([]model.Payment, error)
	FindByAmountGreaterThan(amount float64) ([]model.Payment, error)
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateTx(tx *gorm.DB, payment *model.Payment) error {
	logger.Debug("Creating payment in database", map[string]interface{}{
		"order_id":    payment.OrderID,
		"user_id":     payment.UserID,
		"paid_amount": payment.PaidAmount,
	})

	if err := tx.Create(payment).Error; err != nil {
		logger.Error("Failed to create payment in database", err, map[string]interface{}{
			"order_id": payment.OrderID,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) FindByID(id uint) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindAll() ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByUserID(userID uint) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindFirstByOrderID(orderID uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ExistsByOrderIDTx(tx *gorm.DB, orderID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.Payment{}).Where("order_id = ?", orderID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *paymentRepository) FindByAmountRange(minAmount, maxAmount float64) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Where("paid_amount >= ? AND paid_amount <= ?", minAmount, maxAmount).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByAmountGreaterThan(amount float64) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("paid_amount > ?", amount).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Delete(id uint) error {
	logger.Debug("Deleting payment from database", map[string]interface{}{
		"payment_id": id,
	})

	if err := r.db.Delete(&model.Payment{}, id).Error; err != nil {
		logger.Error("Failed to delete payment from database", err, map[string]interface{}{
			"payment_id": id,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
