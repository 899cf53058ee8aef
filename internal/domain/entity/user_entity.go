package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash; RefreshToken holds the single outstanding
// refresh token (empty when logged out). Both are excluded from JSON so no
// read-for-response path can leak them.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"`
	FullName     string               `bson:"fullName" json:"fullName"`
	Email        string               `bson:"email" json:"email"`
	Password     string               `bson:"password" json:"-"`
	Avatar       string               `bson:"avatar" json:"avatar"`
	AvatarID     string               `bson:"avatarId,omitempty" json:"-"`
	CoverImage   string               `bson:"coverImage" json:"coverImage"`
	CoverImageID string               `bson:"coverImageId,omitempty" json:"-"`
	WatchHistory []primitive.ObjectID `bson:"watchHistory,omitempty" json:"watchHistory,omitempty"`
	RefreshToken string               `bson:"refreshToken" json:"-"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
