package repo

import (
	"context"
	"database/sql"
	"errors"

	"orderintake/internal/usecase"
)

type MySQLCustomerRepo struct{ db *sql.DB }

func NewMySQLCustomerRepo(db *sql.DB) *MySQLCustomerRepo { return &MySQLCustomerRepo{db: db} }

func (r *MySQLCustomerRepo) Create(ctx context.Context, c *usecase.CustomerRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO customers (id,name,email,created_at) VALUES (?,?,?,NOW())`,
		c.ID, c.Name, c.Email)
	return err
}

func (r *MySQLCustomerRepo) GetByID(ctx context.Context, id string) (*usecase.CustomerRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id,name,email FROM customers WHERE id=?`, id)
	var rec usecase.CustomerRecord
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *MySQLCustomerRepo) List(ctx context.Context) ([]*usecase.CustomerRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,name,email FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*usecase.CustomerRecord
	for rows.Next() {
		var rec usecase.CustomerRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

var _ usecase.CustomerRepo = (*MySQLCustomerRepo)(nil)
