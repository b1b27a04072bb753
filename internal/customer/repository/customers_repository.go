package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"salesdesk/internal/domain"
	"salesdesk/internal/errors"
	"salesdesk/internal/infrastructure/mysql"
)

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

const customerColumns = `id, first_name, last_name, phone, email, address, city, created_at, updated_at`

func (r *MySQLCustomerRepository) Insert(ctx context.Context, c domain.Customer) error {
	query := `
		INSERT INTO customers (id, first_name, last_name, phone, email, address, city, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Phone, c.Email, c.Address, c.City,
		c.CreatedAt, c.UpdatedAt,
	)
	if mysql.IsDuplicateEntry(err) {
		return errors.NewAlreadyExistsError(fmt.Sprintf("customer with email %s already exists", c.Email))
	}
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}

	return nil
}

func (r *MySQLCustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (r *MySQLCustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = ?
	`

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email,
		&c.Address, &c.City, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by id: %w", err)
	}

	return &c, nil
}

// FindByEmail returns (nil, nil) when no customer carries the email;
// absence is the expected answer for the uniqueness pre-check.
func (r *MySQLCustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE email = ?
	`

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email,
		&c.Address, &c.City, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by email: %w", err)
	}

	return &c, nil
}

func (r *MySQLCustomerRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT `+customerColumns+`
		FROM customers
		WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying customers by ids: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, nil
}

func (r *MySQLCustomerRepository) Update(ctx context.Context, c domain.Customer) error {
	query := `
		UPDATE customers
		SET first_name = ?, last_name = ?, phone = ?, email = ?, address = ?, city = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		c.FirstName, c.LastName, c.Phone, c.Email, c.Address, c.City, c.UpdatedAt, c.ID,
	)
	if mysql.IsDuplicateEntry(err) {
		return errors.NewAlreadyExistsError(fmt.Sprintf("customer with email %s already exists", c.Email))
	}
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", c.ID))
	}

	return nil
}

func (r *MySQLCustomerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("customer with id %s not found", id))
	}

	return nil
}

func (r *MySQLCustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}
	return count, nil
}

func scanCustomer(rows *sql.Rows) (domain.Customer, error) {
	var c domain.Customer
	err := rows.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email,
		&c.Address, &c.City, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("scanning customer row: %w", err)
	}
	return c, nil
}
