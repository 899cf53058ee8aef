package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
)

type PlaylistRepository interface {
	Create(ctx context.Context, p *entity.Playlist) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]entity.Playlist, error)
	Update(ctx context.Context, p *entity.Playlist) error
	AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*entity.Playlist, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
