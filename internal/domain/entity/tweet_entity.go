package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxTweetLength caps tweet content.
const MaxTweetLength = 280

type Tweet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
