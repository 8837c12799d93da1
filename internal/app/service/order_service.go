package service

import (
	"errors"
	"time"

	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/repository"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderHasNoItems      = errors.New("order must contain at least one item")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// CreateOrderInput carries the fields accepted when placing an order. The
// order and payment statuses are not among them: every new order starts
// PENDING/PENDING with the order date stamped server-side, whatever the
// caller sends.
type CreateOrderInput struct {
	UserID     uint
	TotalPrice float64
	ItemIDs    []uint
}

// UpdateOrderInput carries the mutable order fields. Both statuses must
// belong to their closed sets.
type UpdateOrderInput struct {
	TotalPrice    float64
	OrderStatus   model.OrderStatus
	PaymentStatus model.PaymentStatus
}

type OrderService interface {
	Create(input CreateOrderInput) (*model.Order, error)
	GetByID(id uint) (*model.Order, error)
	GetAll() ([]model.Order, error)
	GetByUser(userID uint) ([]model.Order, error)
	GetByStatus(status model.OrderStatus) ([]model.Order, error)
	GetByPaymentStatus(status model.PaymentStatus) ([]model.Order, error)
	GetByUserAndStatus(userID uint, status model.OrderStatus) ([]model.Order, error)
	GetByTotalPriceGreaterThan(minPrice float64) ([]model.Order, error)
	Update(orderID uint, input UpdateOrderInput) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
	UpdatePaymentStatus(orderID uint, status model.PaymentStatus) (*model.Order, error)
	Delete(id uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	itemRepo  repository.ItemRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		itemRepo:  itemRepo,
	}
}

func (s *orderService) Create(input CreateOrderInput) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"user_id":     input.UserID,
		"total_price": input.TotalPrice,
		"item_count":  len(input.ItemIDs),
	})

	if len(input.ItemIDs) == 0 {
		return nil, ErrOrderHasNoItems
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create order: user not found", map[string]interface{}{
				"user_id": input.UserID,
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	items := make([]model.Item, 0, len(input.ItemIDs))
	for _, itemID := range input.ItemIDs {
		item, err := s.itemRepo.FindByID(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Cannot create order: item not found", map[string]interface{}{
					"item_id": itemID,
				})
				return nil, ErrItemNotFound
			}
			return nil, err
		}
		items = append(items, *item)
	}

	order := &model.Order{
		UserID:        input.UserID,
		TotalPrice:    input.TotalPrice,
		OrderStatus:   model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		OrderDate:     time.Now(),
		Items:         items,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
	})
	return order, nil
}

func (s *orderService) GetByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetAll() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetByUser(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetByStatus(status model.OrderStatus) ([]model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}
	return s.orderRepo.FindByStatus(status)
}

func (s *orderService) GetByPaymentStatus(status model.PaymentStatus) ([]model.Order, error) {
	if !model.ValidPaymentStatus(status) {
		return nil, ErrInvalidPaymentStatus
	}
	return s.orderRepo.FindByPaymentStatus(status)
}

func (s *orderService) GetByUserAndStatus(userID uint, status model.OrderStatus) ([]model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}
	return s.orderRepo.FindByUserAndStatus(userID, status)
}

func (s *orderService) GetByTotalPriceGreaterThan(minPrice float64) ([]model.Order, error) {
	return s.orderRepo.FindByTotalPriceGreaterThan(minPrice)
}

func (s *orderService) Update(orderID uint, input UpdateOrderInput) (*model.Order, error) {
	logger.Info("Updating order", map[string]interface{}{
		"order_id": orderID,
	})

	if !model.ValidOrderStatus(input.OrderStatus) {
		return nil, ErrInvalidOrderStatus
	}
	if !model.ValidPaymentStatus(input.PaymentStatus) {
		return nil, ErrInvalidPaymentStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.TotalPrice = input.TotalPrice
	order.OrderStatus = input.OrderStatus
	order.PaymentStatus = input.PaymentStatus

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if !model.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.OrderStatus = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdatePaymentStatus(orderID uint, status model.PaymentStatus) (*model.Order, error) {
	logger.Info("Updating order payment status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if !model.ValidPaymentStatus(status) {
		return nil, ErrInvalidPaymentStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	order.PaymentStatus = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(id uint) error {
	logger.Info("Deleting order", map[string]interface{}{
		"order_id": id,
	})

	if _, err := s.orderRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return s.orderRepo.Delete(id)
}
