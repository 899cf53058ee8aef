package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
	"github.com/clipstream/clipstream-api/internal/domain/repository"
)

type PlaylistRepository struct {
	col *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) *PlaylistRepository {
	return &PlaylistRepository{col: db.Collection("playlists")}
}

func (r *PlaylistRepository) Create(ctx context.Context, p *entity.Playlist) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Videos == nil {
		p.Videos = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Playlist, error) {
	p := &entity.Playlist{}
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]entity.Playlist, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	out := []entity.Playlist{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, p *entity.Playlist) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateByID(ctx, p.ID, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"updatedAt":   p.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PlaylistRepository) AddVideo(ctx context.Context, id, videoID primitive.ObjectID) (*entity.Playlist, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$addToSet": bson.M{"videos": videoID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, id, videoID primitive.ObjectID) (*entity.Playlist, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$pull": bson.M{"videos": videoID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (r *PlaylistRepository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*entity.Playlist, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	p := &entity.Playlist{}
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)
