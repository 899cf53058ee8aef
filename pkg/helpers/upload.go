package helpers

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StageFile saves an uploaded multipart file into dir under a unique name
// and returns the local path. The caller hands the path to the media
// uploader and removes the file afterwards (see DiscardStaged).
func StageFile(c *gin.Context, fh *multipart.FileHeader, dir string) (string, error) {
	ext := filepath.Ext(fh.Filename)
	dst := filepath.Join(dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// StageFormFile stages the named multipart form field.
func StageFormFile(c *gin.Context, field, dir string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	return StageFile(c, fh, dir)
}

// DiscardStaged removes staged files, ignoring paths that are already gone.
func DiscardStaged(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}
