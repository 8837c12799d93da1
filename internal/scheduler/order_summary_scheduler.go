// Package scheduler runs recurring background jobs.
package scheduler

import (
	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/groceteria/groceteria-backend/internal/app/service"
	"github.com/groceteria/groceteria-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// OrderSummaryScheduler logs a daily summary of pending orders. It only
// observes, it never mutates order state.
type OrderSummaryScheduler struct {
	cron         *cron.Cron
	orderService service.OrderService
}

func NewOrderSummaryScheduler(orderService service.OrderService) *OrderSummaryScheduler {
	return &OrderSummaryScheduler{
		cron:         cron.New(),
		orderService: orderService,
	}
}

func (s *OrderSummaryScheduler) Start() error {
	// Daily at 09:00 server time.
	_, err := s.cron.AddFunc("0 9 * * *", s.logPendingSummary)
	if err != nil {
		logger.Error("Failed to add cron job for order summary", err)
		return err
	}

	s.cron.Start()
	logger.Info("Order summary scheduler started (daily at 9:00 AM)", nil)

	return nil
}

func (s *OrderSummaryScheduler) Stop() {
	logger.Info("Stopping order summary scheduler...", nil)
	s.cron.Stop()
	logger.Info("Order summary scheduler stopped", nil)
}

func (s *OrderSummaryScheduler) logPendingSummary() {
	pending, err := s.orderService.GetByStatus(model.OrderStatusPending)
	if err != nil {
		logger.Error("Failed to fetch pending orders for summary", err)
		return
	}

	var totalValue float64
	for _, order := range pending {
		totalValue += order.TotalPrice
	}

	logger.Info("Pending order summary", map[string]interface{}{
		"pending_orders": len(pending),
		"total_value":    totalValue,
	})
}
