package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"curaise/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository handles order data operations
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, buyer_id, fundraiser_id, pickup_event_id, total_amount, payment_status, pickup_completed, created_at, updated_at`

// Create creates a new order with its line items in one transaction
func (r *OrderRepository) Create(buyerID uuid.UUID, req *models.OrderCreateRequest, totalAmount decimal.Decimal) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (buyer_id, fundraiser_id, pickup_event_id, total_amount, payment_status, pickup_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6, $6)
		RETURNING ` + orderColumns

	order := &models.Order{}
	err = tx.QueryRow(
		query,
		buyerID,
		req.FundraiserID,
		req.PickupEventID,
		totalAmount,
		models.PaymentPending,
		time.Now(),
	).Scan(
		&order.ID,
		&order.BuyerID,
		&order.FundraiserID,
		&order.PickupEventID,
		&order.TotalAmount,
		&order.PaymentStatus,
		&order.PickupCompleted,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range req.Items {
		_, err := tx.Exec(
			"INSERT INTO order_items (order_id, item_id, quantity) VALUES ($1, $2, $3)",
			order.ID, item.ItemID, item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order creation: %w", err)
	}

	return order, nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1`

	order := &models.Order{}
	err := r.db.QueryRow(query, id).Scan(
		&order.ID,
		&order.BuyerID,
		&order.FundraiserID,
		&order.PickupEventID,
		&order.TotalAmount,
		&order.PaymentStatus,
		&order.PickupCompleted,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// GetItems retrieves an order's line items joined with their fundraiser items
func (r *OrderRepository) GetItems(orderID uuid.UUID) ([]*models.OrderItemDetail, error) {
	query := `
		SELECT i.id, i.fundraiser_id, i.name, i.description, i.price, i.image_url, i.offsale, i.created_at, oi.quantity
		FROM order_items oi
		JOIN fundraiser_items i ON i.id = oi.item_id
		WHERE oi.order_id = $1
		ORDER BY i.name`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var details []*models.OrderItemDetail
	for rows.Next() {
		item := &models.FundraiserItem{}
		detail := &models.OrderItemDetail{Item: item}
		err := rows.Scan(
			&item.ID,
			&item.FundraiserID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.ImageURL,
			&item.Offsale,
			&item.CreatedAt,
			&detail.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		details = append(details, detail)
	}

	return details, rows.Err()
}

// GetByBuyer retrieves a buyer's orders, newest first
func (r *OrderRepository) GetByBuyer(buyerID uuid.UUID) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE buyer_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		err := rows.Scan(
			&order.ID,
			&order.BuyerID,
			&order.FundraiserID,
			&order.PickupEventID,
			&order.TotalAmount,
			&order.PaymentStatus,
			&order.PickupCompleted,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// UpdatePaymentStatus sets the order's payment status
func (r *OrderRepository) UpdatePaymentStatus(id uuid.UUID, status models.PaymentStatus) error {
	if err := models.ValidatePaymentStatus(status); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.Exec(
		"UPDATE orders SET payment_status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return models.ErrOrderNotFound
	}

	return nil
}

// MarkPickupCompleted sets the order's pickup-completed flag
func (r *OrderRepository) MarkPickupCompleted(id uuid.UUID) error {
	result, err := r.db.Exec(
		"UPDATE orders SET pickup_completed = TRUE, updated_at = $1 WHERE id = $2",
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark pickup completed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return models.ErrOrderNotFound
	}

	return nil
}
