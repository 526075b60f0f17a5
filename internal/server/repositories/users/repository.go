package users

import (
	"context"

	"github.com/dmitrijs2005/notevault/internal/server/models"
)

// Repository is the username-keyed account store used by authentication.
//
// GetByUserName returns common.ErrorNotFound for unknown names. Create
// returns common.ErrAlreadyExists when the name is taken, even if a
// preceding ExistsByUserName reported it free.
type Repository interface {
	ExistsByUserName(ctx context.Context, userName string) (bool, error)
	GetByUserName(ctx context.Context, userName string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}
