package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
	"github.com/clipstream/clipstream-api/internal/domain/repository"
	"github.com/clipstream/clipstream-api/pkg/helpers"
	"github.com/clipstream/clipstream-api/pkg/media"
)

// VideoService owns the video lifecycle: publish, list, update, delete and
// publish toggling. Mutations are owner-gated. Events is optional; when set,
// publish/delete emit a media event (fire-and-forget).
type VideoService struct {
	Videos repository.VideoRepository
	Media  media.Uploader
	Events *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewVideoService(videos repository.VideoRepository, uploader media.Uploader, events *helpers.RabbitPublisher, logger *logrus.Logger) *VideoService {
	return &VideoService{Videos: videos, Media: uploader, Events: events, Logger: logger}
}

type PublishVideoInput struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
	// Duration in seconds as reported by the client; used when the storage
	// backend does not report one.
	Duration float64
	Owner    primitive.ObjectID
}

func (s *VideoService) Publish(ctx context.Context, in PublishVideoInput) (*entity.Video, error) {
	videoInfo, err := s.Media.Upload(ctx, in.VideoPath, media.FolderVideos)
	if err != nil {
		return nil, err
	}
	thumbInfo, err := s.Media.Upload(ctx, in.ThumbnailPath, media.FolderThumbnails)
	if err != nil {
		return nil, err
	}

	duration := videoInfo.Duration
	if duration == 0 {
		duration = in.Duration
	}

	v := &entity.Video{
		Title:       in.Title,
		Description: in.Description,
		VideoFile:   videoInfo.URL,
		VideoFileID: videoInfo.PublicID,
		Thumbnail:   thumbInfo.URL,
		ThumbnailID: thumbInfo.PublicID,
		Duration:    duration,
		IsPublished: true,
		Owner:       in.Owner,
	}
	if err := s.Videos.Create(ctx, v); err != nil {
		return nil, err
	}

	s.emit(ctx, media.Event{
		Type:       media.EventVideoPublished,
		VideoID:    v.ID.Hex(),
		Owner:      v.Owner.Hex(),
		OccurredAt: time.Now().UTC(),
	})
	return v, nil
}

func (s *VideoService) Get(ctx context.Context, id primitive.ObjectID) (*entity.Video, error) {
	return s.Videos.GetByID(ctx, id)
}

func (s *VideoService) List(ctx context.Context, f repository.VideoFilter) ([]entity.Video, int64, error) {
	return s.Videos.List(ctx, f)
}

type UpdateVideoInput struct {
	Title         string
	Description   string
	ThumbnailPath string // optional; empty means keep the current thumbnail
}

func (s *VideoService) Update(ctx context.Context, id, owner primitive.ObjectID, in UpdateVideoInput) (*entity.Video, error) {
	v, err := s.ownedVideo(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		v.Title = in.Title
	}
	if in.Description != "" {
		v.Description = in.Description
	}
	if in.ThumbnailPath != "" {
		info, err := s.Media.Upload(ctx, in.ThumbnailPath, media.FolderThumbnails)
		if err != nil {
			return nil, err
		}
		if v.ThumbnailID != "" {
			if rmErr := s.Media.Remove(ctx, v.ThumbnailID); rmErr != nil {
				s.Logger.WithError(rmErr).WithField("public_id", v.ThumbnailID).Warn("remove superseded thumbnail failed")
			}
		}
		v.Thumbnail = info.URL
		v.ThumbnailID = info.PublicID
	}

	if err := s.Videos.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VideoService) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	v, err := s.ownedVideo(ctx, id, owner)
	if err != nil {
		return err
	}
	if err := s.Videos.Delete(ctx, id); err != nil {
		return err
	}

	for _, pid := range []string{v.ThumbnailID, v.VideoFileID} {
		if pid == "" {
			continue
		}
		if rmErr := s.Media.Remove(ctx, pid); rmErr != nil {
			s.Logger.WithError(rmErr).WithField("public_id", pid).Warn("remove storage object failed")
		}
	}

	s.emit(ctx, media.Event{
		Type:       media.EventVideoDeleted,
		VideoID:    id.Hex(),
		Owner:      owner.Hex(),
		PublicIDs:  []string{v.VideoFileID, v.ThumbnailID},
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, id, owner primitive.ObjectID) (*entity.Video, error) {
	v, err := s.ownedVideo(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	v.IsPublished = !v.IsPublished
	if err := s.Videos.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VideoService) ownedVideo(ctx context.Context, id, owner primitive.ObjectID) (*entity.Video, error) {
	v, err := s.Videos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Owner != owner {
		return nil, ErrNotOwner
	}
	return v, nil
}

func (s *VideoService) emit(ctx context.Context, ev media.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishJSON(ctx, ev); err != nil {
		s.Logger.WithError(err).WithField("type", ev.Type).Warn("publish media event failed")
	}
}
