package media

import "context"

// UploadInfo is what the storage backend reports about an uploaded asset.
// Duration is filled only when the backend knows it; callers fall back to a
// client-supplied value otherwise.
type UploadInfo struct {
	URL      string
	PublicID string
	Duration float64
}

// Uploader is the opaque media-storage capability: hand it a locally staged
// file, get back a public URL and an id usable for later removal.
type Uploader interface {
	Upload(ctx context.Context, localPath, folder string) (UploadInfo, error)
	Remove(ctx context.Context, publicID string) error
}

// Folders used to namespace objects inside the bucket.
const (
	FolderAvatars    = "avatars"
	FolderCovers     = "covers"
	FolderVideos     = "videos"
	FolderThumbnails = "thumbnails"
)
