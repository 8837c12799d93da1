// Package export builds spreadsheet reports from domain records.
package export

import (
	"fmt"

	"github.com/groceteria/groceteria-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

const ordersSheet = "Orders"

var orderHeaders = []string{
	"Order ID", "User ID", "Total Price", "Order Status",
	"Payment Status", "Order Date", "Item Count",
}

// OrdersWorkbook renders one row per order under a fixed header row.
// The caller owns the returned file and must Close it.
func OrdersWorkbook(orders []model.Order) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(ordersSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range orderHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ordersSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, order := range orders {
		row := i + 2
		values := []interface{}{
			order.ID,
			order.UserID,
			order.TotalPrice,
			string(order.OrderStatus),
			string(order.PaymentStatus),
			order.OrderDate.Format("2006-01-02 15:04:05"),
			len(order.Items),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(ordersSheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	return f, nil
}
