package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/georgemunganga/retailos/internal/apperror"
	"github.com/georgemunganga/retailos/internal/database"
)

type sqlRepository struct {
	db *sql.DB
}

// NewSQLRepository creates a user repository on top of database/sql.
func NewSQLRepository(db *sql.DB) Repository {
	return &sqlRepository{db: db}
}

func (r *sqlRepository) CreateStore(ctx context.Context, s *Store, owner Owner) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, login, password_hash, store_name, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			s.ID, s.Login, s.PasswordHash, s.Name, s.CreatedAt)
		if err != nil {
			if database.IsUniqueViolation(err) {
				return fmt.Errorf("%w: login %q is already taken", apperror.ErrValidation, s.Login)
			}
			return apperror.Storage(fmt.Errorf("insert user: %w", err))
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO employees (store_id, name, position, role, created_at)
			VALUES ($1, $2, $3, 'admin', $4)`,
			s.ID, owner.Name, owner.Position, s.CreatedAt)
		if err != nil {
			return apperror.Storage(fmt.Errorf("insert owner employee: %w", err))
		}
		return nil
	})
}

func (r *sqlRepository) GetStoreByLogin(ctx context.Context, login string) (*Store, error) {
	query := `
		SELECT id, login, password_hash, store_name, created_at
		FROM users
		WHERE login = $1
	`
	return r.scan(r.db.QueryRowContext(ctx, query, login))
}

func (r *sqlRepository) GetStoreByID(ctx context.Context, id string) (*Store, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid store id", apperror.ErrValidation)
	}
	query := `
		SELECT id, login, password_hash, store_name, created_at
		FROM users
		WHERE id = $1
	`
	return r.scan(r.db.QueryRowContext(ctx, query, parsedID))
}

func (r *sqlRepository) scan(row *sql.Row) (*Store, error) {
	s := &Store{}
	var created database.Time
	err := row.Scan(&s.ID, &s.Login, &s.PasswordHash, &s.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}
	s.CreatedAt = created.Time
	return s, nil
}
