package service

import (
	"context"
	"errors"
	"time"

	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"github.com/groceteria/groceteria-backend/pkg/payment"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrOrderAlreadyPaid = errors.New("order already has a payment")
	ErrPaymentDeclined  = errors.New("payment was declined by the gateway")
)

type PaymentService interface {
	Pay(ctx context.Context, orderID, userID uint) (*model.Payment, error)
	GetByID(id uint) (*model.Payment, error)
	GetAll() ([]model.Payment, error)
	GetByUser(userID uint) ([]model.Payment, error)
	GetByOrder(orderID uint) (*model.Payment, error)
	GetByAmountRange(minAmount, maxAmount float64) ([]model.Payment, error)
	GetByAmountGreaterThan(amount float64) ([]model.Payment, error)
	Process(ctx context.Context, orderID uint) (payment.Result, error)
	Delete(id uint) error
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	processor   payment.Processor
	db          *gorm.DB
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	processor payment.Processor,
	db *gorm.DB,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		processor:   processor,
		db:          db,
	}
}

// Pay settles an order in full. Both the order and the paying user must
// exist; the amount charged is always the order's total price and is
// attributed to the order's owner. The payment row records that total as
// both total_price and paid_amount. On success the order flips to
// PAID/CONFIRMED in the same transaction that inserts the payment. On a
// declined or failed charge the order is left untouched in PENDING/PENDING
// so the payment can be retried.
func (s *paymentService) Pay(ctx context.Context, orderID, userID uint) (*model.Payment, error) {
	logger.Info("Initiating payment", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot pay: order not found", map[string]interface{}{
				"order_id": orderID,
			})
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot pay: user not found", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.paymentRepo.FindFirstByOrderID(orderID); err == nil {
		logger.Warn("Cannot pay: order already paid", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrOrderAlreadyPaid
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	result, err := s.processor.Process(ctx, payment.Intent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Amount:  order.TotalPrice,
	})
	if err != nil {
		logger.Error("Payment processing failed", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	if !result.Succeeded {
		logger.Warn("Payment declined", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrPaymentDeclined
	}

	pmt := &model.Payment{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		PaidAmount: order.TotalPrice,
		PaidDate:   time.Now(),
	}

	// The existence re-check and the insert share one transaction, and the
	// unique index on order_id backs them up against a concurrent payment
	// that slipped in after the check above.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.paymentRepo.ExistsByOrderIDTx(tx, order.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrOrderAlreadyPaid
		}

		if err := s.paymentRepo.CreateTx(tx, pmt); err != nil {
			return err
		}

		order.PaymentStatus = model.PaymentStatusPaid
		order.OrderStatus = model.OrderStatusConfirmed
		return s.orderRepo.UpdateTx(tx, order)
	})
	if err != nil {
		if !errors.Is(err, ErrOrderAlreadyPaid) {
			logger.Error("Failed to record payment", err, map[string]interface{}{
				"order_id": orderID,
			})
		}
		return nil, err
	}

	logger.Info("Payment recorded successfully", map[string]interface{}{
		"payment_id":  pmt.ID,
		"order_id":    pmt.OrderID,
		"paid_amount": pmt.PaidAmount,
	})
	return pmt, nil
}

func (s *paymentService) GetByID(id uint) (*model.Payment, error) {
	pmt, err := s.paymentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return pmt, nil
}

func (s *paymentService) GetAll() ([]model.Payment, error) {
	return s.paymentRepo.FindAll()
}

func (s *paymentService) GetByUser(userID uint) ([]model.Payment, error) {
	return s.paymentRepo.FindByUserID(userID)
}

func (s *paymentService) GetByOrder(orderID uint) (*model.Payment, error) {
	pmt, err := s.paymentRepo.FindFirstByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return pmt, nil
}

func (s *paymentService) GetByAmountRange(minAmount, maxAmount float64) ([]model.Payment, error) {
	return s.paymentRepo.FindByAmountRange(minAmount, maxAmount)
}

func (s *paymentService) GetByAmountGreaterThan(amount float64) ([]model.Payment, error) {
	return s.paymentRepo.FindByAmountGreaterThan(amount)
}

// Process runs the gateway for an order without persisting anything. It is
// the dry-run counterpart of Pay, useful for verifying gateway wiring.
func (s *paymentService) Process(ctx context.Context, orderID uint) (payment.Result, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payment.Result{}, ErrOrderNotFound
		}
		return payment.Result{}, err
	}

	return s.processor.Process(ctx, payment.Intent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Amount:  order.TotalPrice,
	})
}

func (s *paymentService) Delete(id uint) error {
	logger.Info("Deleting payment", map[string]interface{}{
		"payment_id": id,
	})

	if _, err := s.paymentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	return s.paymentRepo.Delete(id)
}
