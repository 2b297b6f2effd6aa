package repo

import (
	"context"
	"database/sql"
	"errors"

	"orderintake/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) Create(ctx context.Context, p *usecase.ProductRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO products (id,name,unit_price,created_at) VALUES (?,?,?,NOW())`,
		p.ID, p.Name, p.UnitPrice)
	return err
}

func (r *MySQLProductRepo) GetByID(ctx context.Context, id string) (*usecase.ProductRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id,name,unit_price FROM products WHERE id=?`, id)
	var rec usecase.ProductRecord
	if err := row.Scan(&rec.ID, &rec.Name, &rec.UnitPrice); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *MySQLProductRepo) List(ctx context.Context) ([]*usecase.ProductRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id,name,unit_price FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*usecase.ProductRecord
	for rows.Next() {
		var rec usecase.ProductRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.UnitPrice); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
