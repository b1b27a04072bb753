package repository

import (
	"context"
	"database/sql"
	"fmt"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	"salesdesk/internal/infrastructure/mysql"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const orderColumns = `id, customer_id, order_number, order_amount, order_date, description,
	       payment_method, shipping_address, status, created_at, updated_at`

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, o domain.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, order_number, order_amount, order_date, description,
		                    payment_method, shipping_address, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, query,
		o.ID, o.CustomerID, o.OrderNumber, o.OrderAmount, o.OrderDate, o.Description,
		o.PaymentMethod, o.ShippingAddress, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if mysql.IsDuplicateEntry(err) {
		return errors.NewAlreadyExistsError(fmt.Sprintf("order with number %s already exists", o.OrderNumber))
	}
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id)
}

// FindByIDForUpdate locks the order row for the remainder of the
// transaction, serializing concurrent item-set surgery on the same
// order.
func (r *MySQLOrderRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = ?
		FOR UPDATE
	`
	return r.scanOne(tx.QueryRowContext(ctx, query, id), id)
}

func (r *MySQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID, &o.CustomerID, &o.OrderNumber, &o.OrderAmount, &o.OrderDate, &o.Description,
			&o.PaymentMethod, &o.ShippingAddress, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

// FindByOrderNumber returns (nil, nil) when the number is unused; the
// bulk loader treats absence as the go-ahead to insert.
func (r *MySQLOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_number = ?
	`

	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, orderNumber).Scan(
		&o.ID, &o.CustomerID, &o.OrderNumber, &o.OrderAmount, &o.OrderDate, &o.Description,
		&o.PaymentMethod, &o.ShippingAddress, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by number: %w", err)
	}

	return &o, nil
}

func (r *MySQLOrderRepository) Update(ctx context.Context, tx *sql.Tx, o domain.Order) error {
	query := `
		UPDATE orders
		SET order_amount = ?, order_date = ?, description = ?, payment_method = ?,
		    shipping_address = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := tx.ExecContext(ctx, query,
		o.OrderAmount, o.OrderDate, o.Description, o.PaymentMethod,
		o.ShippingAddress, o.Status, o.UpdatedAt, o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", o.ID))
	}

	return nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}
	return count, nil
}

func (r *MySQLOrderRepository) scanOne(row *sql.Row, id string) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.CustomerID, &o.OrderNumber, &o.OrderAmount, &o.OrderDate, &o.Description,
		&o.PaymentMethod, &o.ShippingAddress, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &o, nil
}
