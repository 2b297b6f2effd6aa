package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "orderintake/internal/entity"
	"orderintake/internal/usecase"
)

var ErrNotFound = errors.New("not found")

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Upsert writes the order keyed by id: insert if absent, full overwrite
// if present. Redelivered queue messages hit this path more than once;
// the overwrite makes that harmless (last write wins, never a second row).
func (r *MySQLOrderRepo) Upsert(ctx context.Context, o *domain.Order) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO orders (id,customer_ref,product_ref,customer_name,product_name,quantity,unit_price,total_amount,status,notes,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,NOW())
ON DUPLICATE KEY UPDATE
  customer_ref=VALUES(customer_ref), product_ref=VALUES(product_ref),
  customer_name=VALUES(customer_name), product_name=VALUES(product_name),
  quantity=VALUES(quantity), unit_price=VALUES(unit_price),
  total_amount=VALUES(total_amount), status=VALUES(status),
  notes=VALUES(notes), created_at=VALUES(created_at), updated_at=NOW()
`, o.ID, o.CustomerRef, o.ProductRef, o.CustomerName, o.ProductName,
		o.Quantity, o.UnitPrice, o.TotalAmount, string(o.Status), o.Notes, o.CreatedAt)
	return err
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,customer_ref,product_ref,customer_name,product_name,quantity,unit_price,total_amount,status,notes,created_at
FROM orders WHERE id=?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *MySQLOrderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,customer_ref,product_ref,customer_name,product_name,quantity,unit_price,total_amount,status,notes,created_at
FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatusIf performs a guarded transition; rows==0 means the order
// was missing or not in the expected status.
func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = NOW()
WHERE id = ? AND status = ?`,
		string(to), id, string(from),
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var status string
	if err := row.Scan(&o.ID, &o.CustomerRef, &o.ProductRef, &o.CustomerName, &o.ProductName,
		&o.Quantity, &o.UnitPrice, &o.TotalAmount, &status, &o.Notes, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Status = domain.Status(status)
	return &o, nil
}

var _ usecase.OrderStore = (*MySQLOrderRepo)(nil)
