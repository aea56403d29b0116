package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
)

// PostgresStore keeps the hash in users.refresh_token_hash.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save overwrites the stored hash. An unknown user is common.ErrNotFound.
func (s *PostgresStore) Save(ctx context.Context, userID, token string) error {
	return setHash(ctx, s.db, userID, HashToken(token))
}

func (s *PostgresStore) Validate(ctx context.Context, userID, token string) error {
	hash, err := currentHash(ctx, s.db, userID, false)
	if err != nil {
		return err
	}
	if !Matches(hash, token) {
		return common.ErrInvalidToken
	}
	return nil
}

// Rotate locks the user row, checks oldToken and stores newToken in one
// transaction.
func (s *PostgresStore) Rotate(ctx context.Context, userID, oldToken, newToken string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		hash, err := currentHash(ctx, tx, userID, true)
		if err != nil {
			return err
		}
		if !Matches(hash, oldToken) {
			return common.ErrInvalidToken
		}
		return setHash(ctx, tx, userID, HashToken(newToken))
	})
}

// Revoke clears the hash. Revoking twice, or for an unknown user, is not an
// error.
func (s *PostgresStore) Revoke(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func currentHash(ctx context.Context, db dbx.DBTX, userID string, forUpdate bool) (string, error) {
	query := `SELECT refresh_token_hash FROM users WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var hash sql.NullString
	err := db.QueryRowContext(ctx, query, userID).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrInvalidToken
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	if !hash.Valid {
		return "", common.ErrInvalidToken
	}
	return hash.String, nil
}

func setHash(ctx context.Context, db dbx.DBTX, userID, hash string) error {
	query := `UPDATE users SET refresh_token_hash = $1 WHERE id = $2`

	res, err := db.ExecContext(ctx, query, hash, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
