package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
)

type TweetRepository interface {
	Create(ctx context.Context, t *entity.Tweet) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Tweet, error)
	// ListByOwner returns tweets newest first.
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]entity.Tweet, error)
	Update(ctx context.Context, t *entity.Tweet) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
