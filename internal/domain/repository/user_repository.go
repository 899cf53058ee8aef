package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Updates are field-scoped single-document writes; the store's atomic
// document update gives last-writer-wins semantics for concurrent refresh
// token rotations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	// GetByEmailOrUsername matches either field; callers may pass the same
	// value for both.
	GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
	UpdateRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateDetails(ctx context.Context, id primitive.ObjectID, fullName, email string) (*entity.User, error)
	UpdateAvatar(ctx context.Context, id primitive.ObjectID, url, publicID string) (*entity.User, error)
	UpdateCoverImage(ctx context.Context, id primitive.ObjectID, url, publicID string) (*entity.User, error)
	AddToWatchHistory(ctx context.Context, id, videoID primitive.ObjectID) error
}
