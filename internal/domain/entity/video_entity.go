package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is a published or draft media document. VideoFileID and ThumbnailID
// are the storage object identifiers needed to delete the assets later.
type Video struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	VideoFile    string             `bson:"videoFile" json:"videoFile"`
	VideoFileID  string             `bson:"videoFileId,omitempty" json:"-"`
	Thumbnail    string             `bson:"thumbnail" json:"thumbnail"`
	ThumbnailID  string             `bson:"thumbnailId,omitempty" json:"-"`
	Duration     float64            `bson:"duration" json:"duration"`
	Views        int64              `bson:"views" json:"views"`
	IsPublished  bool               `bson:"isPublished" json:"isPublished"`
	Owner        primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
