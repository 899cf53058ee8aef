package media

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioUploader stores media objects in a MinIO (S3-compatible) bucket.
type MinioUploader struct {
	Client *minio.Client
	Bucket string

	endpoint string
	useSSL   bool
}

// NewMinioUploader dials MinIO and creates the bucket when it does not exist.
func NewMinioUploader(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioUploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinioUploader{Client: client, Bucket: bucket, endpoint: endpoint, useSSL: useSSL}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, localPath, folder string) (UploadInfo, error) {
	ext := filepath.Ext(localPath)
	objectName := filepath.ToSlash(filepath.Join(folder, uuid.NewString()+ext))

	_, err := u.Client.FPutObject(ctx, u.Bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentTypeFor(ext),
	})
	if err != nil {
		return UploadInfo{}, err
	}
	scheme := "http"
	if u.useSSL {
		scheme = "https"
	}
	return UploadInfo{
		URL:      fmt.Sprintf("%s://%s/%s/%s", scheme, u.endpoint, u.Bucket, objectName),
		PublicID: objectName,
	}, nil
}

func (u *MinioUploader) Remove(ctx context.Context, publicID string) error {
	return u.Client.RemoveObject(ctx, u.Bucket, publicID, minio.RemoveObjectOptions{})
}

var _ Uploader = (*MinioUploader)(nil)
