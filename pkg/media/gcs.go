package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSUploader stores media objects in a Google Cloud Storage bucket.
type GCSUploader struct {
	Client *storage.Client
	Bucket string
}

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty,
// Application Default Credentials are used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewGCSUploader(client *storage.Client, bucket string) *GCSUploader {
	return &GCSUploader{Client: client, Bucket: bucket}
}

func (u *GCSUploader) Upload(ctx context.Context, localPath, folder string) (UploadInfo, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return UploadInfo{}, err
	}
	defer func() { _ = f.Close() }()

	ext := filepath.Ext(localPath)
	objectPath := filepath.ToSlash(filepath.Join(folder, uuid.NewString()+ext))

	wc := u.Client.Bucket(u.Bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentTypeFor(ext)
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, f); err != nil {
		_ = wc.Close()
		return UploadInfo{}, err
	}
	if err := wc.Close(); err != nil {
		return UploadInfo{}, err
	}
	return UploadInfo{
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.Bucket, objectPath),
		PublicID: objectPath,
	}, nil
}

func (u *GCSUploader) Remove(ctx context.Context, publicID string) error {
	return u.Client.Bucket(u.Bucket).Object(publicID).Delete(ctx)
}

func contentTypeFor(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var _ Uploader = (*GCSUploader)(nil)
