package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database"
)

type sqlRepo struct{ db *sql.DB }

func NewSQLRepository(db *sql.DB) Repository { return &sqlRepo{db: db} }

func (r *sqlRepo) Create(ctx context.Context, e *Employee) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (store_id, name, position, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		e.StoreID, e.Name, e.Position, e.Role, e.CreatedAt).Scan(&e.ID)
	return apperror.Storage(err)
}

func (r *sqlRepo) Update(ctx context.Context, storeID uuid.UUID, id int64, name, position string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET name=$1, position=$2 WHERE id=$3 AND store_id=$4`,
		name, position, id, storeID)
	if err != nil {
		return false, apperror.Storage(err)
	}
	n, err := res.RowsAffected()
	return n > 0, apperror.Storage(err)
}

func (r *sqlRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, name, position, role, created_at
		FROM employees WHERE store_id=$1 ORDER BY id`, storeID)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	defer rows.Close()

	employees := []*Employee{}
	for rows.Next() {
		e := &Employee{}
		var created database.Time
		if err := rows.Scan(&e.ID, &e.StoreID, &e.Name, &e.Position, &e.Role, &created); err != nil {
			return nil, apperror.Storage(err)
		}
		e.CreatedAt = created.Time
		employees = append(employees, e)
	}
	return employees, apperror.Storage(rows.Err())
}
