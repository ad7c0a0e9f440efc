package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its line items directly from the
// database. Two statements instead of a join keep the scanning simple.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns an ObjectNotFoundError when no order
// exists with the requested ID.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			total_cents,
			created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		id         uuid.UUID
		customerID uuid.UUID
		rawStatus  int
		totalCents int64
		createdAt  time.Time
	)

	err := row.Scan(&id, &customerID, &rawStatus, &totalCents, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		Status:    status.Status(rawStatus),
		CreatedAt: createdAt,
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.TotalAmount, err = kernel.NewMoney(totalCents); err != nil {
		return GetOrderQueryResponse{}, err
	}

	items, err := h.loadItems(ctx, query)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Items = items

	return response, nil
}

func (h GetOrderQueryHandler) loadItems(
	ctx context.Context,
	query GetOrderQuery,
) ([]GetOrderQueryItem, error) {
	items := make([]GetOrderQueryItem, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			product_name,
			quantity,
			unit_price_cents
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_name
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderQueryItem
		var productID uuid.UUID
		var unitPriceCents int64

		if err = rows.Scan(&productID, &item.ProductName, &item.Quantity, &unitPriceCents); err != nil {
			return nil, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = kernel.NewMoney(unitPriceCents); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
