package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"carpet-erp/db"
	"carpet-erp/models"
)

// OrderRepository handles database operations for submitted orders
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// Create writes an order and its line snapshots in one transaction
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (*models.OrderResponse, error) {
	log.Printf("📦 Create: Creating order reference=%s with %d lines", order.Reference, len(lines))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Create: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	queryOrder := `
		INSERT INTO orders (reference, status, customer_name, customer_phone, notes,
		                    subtotal, gst_percent, gst_amount, grand_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	saved := *order
	err = tx.QueryRowContext(ctx, queryOrder,
		order.Reference,
		order.Status,
		sql.NullString{String: order.CustomerName, Valid: order.CustomerName != ""},
		sql.NullString{String: order.CustomerPhone, Valid: order.CustomerPhone != ""},
		sql.NullString{String: order.Notes, Valid: order.Notes != ""},
		order.Subtotal,
		order.GSTPercent,
		order.GSTAmount,
		order.GrandTotal,
	).Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		log.Printf("❌ Create: Error inserting order: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	queryLine := `
		INSERT INTO order_lines (order_id, position, product_id, product_name, product_type, quantity,
		                         unit_price, pricing_unit, dimensions, unit_value, total_value, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	savedLines := make([]models.OrderLine, 0, len(lines))
	for _, line := range lines {
		line.OrderID = saved.ID
		err := tx.QueryRowContext(ctx, queryLine,
			line.OrderID,
			line.Position,
			line.ProductID,
			line.ProductName,
			line.ProductType,
			line.Quantity,
			line.UnitPrice,
			line.PricingUnit,
			string(line.Dimensions),
			line.UnitValue,
			line.TotalValue,
			line.TotalPrice,
		).Scan(&line.ID)
		if err != nil {
			log.Printf("❌ Create: Error inserting line %d: %v", line.Position, err)
			return nil, fmt.Errorf("failed to insert order line %d: %w", line.Position, err)
		}
		savedLines = append(savedLines, line)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Create: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ Create: Successfully created order id=%d reference=%s", saved.ID, saved.Reference)
	return &models.OrderResponse{Order: saved, Lines: savedLines}, nil
}

// GetByID retrieves an order with its line snapshots
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.OrderResponse, error) {
	log.Printf("🔍 GetByID: Fetching order id=%d", id)

	queryOrder := `
		SELECT id, reference, status, customer_name, customer_phone, notes,
		       subtotal, gst_percent, gst_amount, grand_total, created_at
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	var customerName, customerPhone, notes sql.NullString
	err := db.DB.QueryRowContext(ctx, queryOrder, id).Scan(
		&order.ID,
		&order.Reference,
		&order.Status,
		&customerName,
		&customerPhone,
		&notes,
		&order.Subtotal,
		&order.GSTPercent,
		&order.GSTAmount,
		&order.GrandTotal,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("❌ GetByID: Order not found: id=%d", id)
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		log.Printf("❌ GetByID: Error fetching order: %v", err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	order.CustomerName = customerName.String
	order.CustomerPhone = customerPhone.String
	order.Notes = notes.String

	queryLines := `
		SELECT id, order_id, position, product_id, product_name, product_type, quantity,
		       unit_price, pricing_unit, dimensions, unit_value, total_value, total_price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position ASC
	`

	rows, err := db.DB.QueryContext(ctx, queryLines, id)
	if err != nil {
		log.Printf("❌ GetByID: Error fetching order lines: %v", err)
		return nil, fmt.Errorf("failed to fetch order lines: %w", err)
	}
	defer rows.Close()

	lines := []models.OrderLine{}
	for rows.Next() {
		var line models.OrderLine
		var dimensions []byte
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.Position,
			&line.ProductID,
			&line.ProductName,
			&line.ProductType,
			&line.Quantity,
			&line.UnitPrice,
			&line.PricingUnit,
			&dimensions,
			&line.UnitValue,
			&line.TotalValue,
			&line.TotalPrice,
		)
		if err != nil {
			log.Printf("❌ GetByID: Error scanning order line: %v", err)
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		line.Dimensions = dimensions
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}

	return &models.OrderResponse{Order: order, Lines: lines}, nil
}

// List retrieves all orders, newest first, with their line counts
func (r *OrderRepository) List(ctx context.Context) ([]models.OrderListItem, error) {
	log.Printf("🔍 List: Fetching orders")

	query := `
		SELECT o.id, o.reference, o.status, COALESCE(o.customer_name, ''), COALESCE(o.customer_phone, ''),
		       COALESCE(o.notes, ''), o.subtotal, o.gst_percent, o.gst_amount, o.grand_total, o.created_at,
		       COUNT(l.id) AS line_count
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		GROUP BY o.id
		ORDER BY o.created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ List: Error querying orders: %v", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.OrderListItem{}
	for rows.Next() {
		var item models.OrderListItem
		err := rows.Scan(
			&item.ID,
			&item.Reference,
			&item.Status,
			&item.CustomerName,
			&item.CustomerPhone,
			&item.Notes,
			&item.Subtotal,
			&item.GSTPercent,
			&item.GSTAmount,
			&item.GrandTotal,
			&item.CreatedAt,
			&item.LineCount,
		)
		if err != nil {
			log.Printf("❌ List: Error scanning order: %v", err)
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	log.Printf("✓ Successfully listed %d orders", len(orders))
	return orders, nil
}
