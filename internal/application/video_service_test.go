package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/repository"
)

func newVideoService() (*VideoService, *fakeVideoRepo, *fakeUploader) {
	videos := newFakeVideoRepo()
	uploader := &fakeUploader{}
	return NewVideoService(videos, uploader, nil, testLogger()), videos, uploader
}

func publishTestVideo(t *testing.T, svc *VideoService, owner primitive.ObjectID) primitive.ObjectID {
	t.Helper()
	v, err := svc.Publish(context.Background(), PublishVideoInput{
		Title:         "clip",
		Description:   "a clip",
		VideoPath:     "/tmp/clip.mp4",
		ThumbnailPath: "/tmp/thumb.png",
		Duration:      12.5,
		Owner:         owner,
	})
	require.NoError(t, err)
	return v.ID
}

func TestPublishVideo(t *testing.T) {
	svc, _, uploader := newVideoService()
	owner := primitive.NewObjectID()

	v, err := svc.Publish(context.Background(), PublishVideoInput{
		Title:         "clip",
		Description:   "a clip",
		VideoPath:     "/tmp/clip.mp4",
		ThumbnailPath: "/tmp/thumb.png",
		Duration:      12.5,
		Owner:         owner,
	})
	require.NoError(t, err)

	assert.True(t, v.IsPublished)
	assert.Equal(t, 12.5, v.Duration)
	assert.Equal(t, owner, v.Owner)
	assert.NotEmpty(t, v.VideoFile)
	assert.NotEmpty(t, v.Thumbnail)
	assert.Len(t, uploader.uploads, 2)
}

func TestPublishPrefersBackendDuration(t *testing.T) {
	videos := newFakeVideoRepo()
	uploader := &fakeUploader{duration: 99}
	svc := NewVideoService(videos, uploader, nil, testLogger())

	v, err := svc.Publish(context.Background(), PublishVideoInput{
		Title:         "clip",
		Description:   "a clip",
		VideoPath:     "/tmp/clip.mp4",
		ThumbnailPath: "/tmp/thumb.png",
		Duration:      12.5,
		Owner:         primitive.NewObjectID(),
	})
	require.NoError(t, err)
	assert.Equal(t, float64(99), v.Duration)
}

func TestUpdateVideoOwnerGate(t *testing.T) {
	svc, _, _ := newVideoService()
	owner := primitive.NewObjectID()
	id := publishTestVideo(t, svc, owner)

	_, err := svc.Update(context.Background(), id, primitive.NewObjectID(), UpdateVideoInput{Title: "stolen"})
	assert.ErrorIs(t, err, ErrNotOwner)

	v, err := svc.Update(context.Background(), id, owner, UpdateVideoInput{Title: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", v.Title)
	assert.Equal(t, "a clip", v.Description)
}

func TestUpdateVideoReplacesThumbnail(t *testing.T) {
	svc, _, uploader := newVideoService()
	owner := primitive.NewObjectID()
	id := publishTestVideo(t, svc, owner)

	before, err := svc.Get(context.Background(), id)
	require.NoError(t, err)

	v, err := svc.Update(context.Background(), id, owner, UpdateVideoInput{ThumbnailPath: "/tmp/thumb2.png"})
	require.NoError(t, err)
	assert.NotEqual(t, before.ThumbnailID, v.ThumbnailID)
	assert.Contains(t, uploader.removals, before.ThumbnailID)
}

func TestDeleteVideoRemovesStorageObjects(t *testing.T) {
	svc, videos, uploader := newVideoService()
	owner := primitive.NewObjectID()
	id := publishTestVideo(t, svc, owner)

	assert.ErrorIs(t, svc.Delete(context.Background(), id, primitive.NewObjectID()), ErrNotOwner)

	require.NoError(t, svc.Delete(context.Background(), id, owner))
	assert.Len(t, uploader.removals, 2)

	_, err := videos.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTogglePublish(t *testing.T) {
	svc, _, _ := newVideoService()
	owner := primitive.NewObjectID()
	id := publishTestVideo(t, svc, owner)

	v, err := svc.TogglePublish(context.Background(), id, owner)
	require.NoError(t, err)
	assert.False(t, v.IsPublished)

	v, err = svc.TogglePublish(context.Background(), id, owner)
	require.NoError(t, err)
	assert.True(t, v.IsPublished)
}

func TestListOnlyPublished(t *testing.T) {
	svc, _, _ := newVideoService()
	owner := primitive.NewObjectID()
	id := publishTestVideo(t, svc, owner)
	publishTestVideo(t, svc, owner)

	_, err := svc.TogglePublish(context.Background(), id, owner)
	require.NoError(t, err)

	out, total, err := svc.List(context.Background(), repository.VideoFilter{OnlyPublished: true, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsPublished)
}
