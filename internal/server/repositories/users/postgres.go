package users

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	query :=
		`INSERT INTO users (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at`

	user := &models.User{ID: uuid.NewString(), Email: email, PasswordHash: passwordHash}

	err := r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, refresh_token_hash, created_at FROM users
		 WHERE email = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID treats a malformed id as a missing user.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	query :=
		`SELECT id, email, password_hash, refresh_token_hash, created_at FROM users
		 WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	var (
		user        models.User
		refreshHash sql.NullString
	)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &refreshHash, &user.CreatedAt); err != nil {
		return nil, dbx.MapError(err)
	}
	if refreshHash.Valid {
		user.RefreshTokenHash = &refreshHash.String
	}
	return &user, nil
}
