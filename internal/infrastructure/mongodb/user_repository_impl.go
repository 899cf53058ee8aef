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

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	u := &entity.User{}
	if err := r.col.FindOne(ctx, filter).Decode(u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateRefreshToken overwrites the stored refresh token in a single atomic
// document update. Concurrent rotations for the same user are last-writer-wins.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return r.setFields(ctx, id, bson.M{"refreshToken": token})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	return r.setFields(ctx, id, bson.M{"password": hash})
}

func (r *UserRepository) setFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, fullName, email string) (*entity.User, error) {
	fields := bson.M{}
	if fullName != "" {
		fields["fullName"] = fullName
	}
	if email != "" {
		fields["email"] = email
	}
	return r.findOneAndSet(ctx, id, fields)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id primitive.ObjectID, url, publicID string) (*entity.User, error) {
	return r.findOneAndSet(ctx, id, bson.M{"avatar": url, "avatarId": publicID})
}

func (r *UserRepository) UpdateCoverImage(ctx context.Context, id primitive.ObjectID, url, publicID string) (*entity.User, error) {
	return r.findOneAndSet(ctx, id, bson.M{"coverImage": url, "coverImageId": publicID})
}

func (r *UserRepository) findOneAndSet(ctx context.Context, id primitive.ObjectID, fields bson.M) (*entity.User, error) {
	fields["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	u := &entity.User{}
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) AddToWatchHistory(ctx context.Context, id, videoID primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"watchHistory": videoID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
