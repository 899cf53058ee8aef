package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
)

// VideoFilter narrows a video listing. Zero values mean "no filter".
type VideoFilter struct {
	Query         string // case-insensitive match on title or description
	Owner         primitive.ObjectID
	OnlyPublished bool
	Page          int
	Limit         int
}

type VideoRepository interface {
	Create(ctx context.Context, v *entity.Video) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Video, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Video, error)
	List(ctx context.Context, f VideoFilter) ([]entity.Video, int64, error)
	Update(ctx context.Context, v *entity.Video) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
