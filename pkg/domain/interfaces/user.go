package interfaces

import (
	"context"

	"github.com/newsdesk-lab/copydesk/pkg/domain/model"
	"github.com/newsdesk-lab/copydesk/pkg/domain/types"
)

// UserRepository defines the interface for User data access
type UserRepository interface {
	// Put creates or replaces a user record
	Put(ctx context.Context, u *model.User) (*model.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// Exists reports whether a user with the given ID exists
	Exists(ctx context.Context, id types.UserID) (bool, error)

	// List retrieves all users
	List(ctx context.Context) ([]*model.User, error)
}
