package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/dbx"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (name, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.PasswordHash, user.Role, user.IsActive).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, password_hash, role, is_active, created_at FROM users
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	query :=
		`SELECT id, name, password_hash, role, is_active, created_at FROM users
		 WHERE name = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT id, name, password_hash, role, is_active, created_at FROM users
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.PasswordHash, &user.Role, &user.IsActive, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.PasswordHash, &user.Role, &user.IsActive, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
