// Package users persists user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository is the user store. Lookups return common.ErrNotFound when the
// user does not exist; Create returns common.ErrConflict on a duplicate email.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
