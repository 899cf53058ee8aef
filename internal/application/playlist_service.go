package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
	"github.com/clipstream/clipstream-api/internal/domain/repository"
)

type PlaylistService struct {
	Playlists repository.PlaylistRepository
	Videos    repository.VideoRepository
	Logger    *logrus.Logger
}

func NewPlaylistService(playlists repository.PlaylistRepository, videos repository.VideoRepository, logger *logrus.Logger) *PlaylistService {
	return &PlaylistService{Playlists: playlists, Videos: videos, Logger: logger}
}

func (s *PlaylistService) Create(ctx context.Context, owner primitive.ObjectID, name, description string) (*entity.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyContent
	}
	p := &entity.Playlist{Name: name, Description: strings.TrimSpace(description), Owner: owner}
	if err := s.Playlists.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlaylistService) Get(ctx context.Context, id primitive.ObjectID) (*entity.Playlist, error) {
	return s.Playlists.GetByID(ctx, id)
}

func (s *PlaylistService) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]entity.Playlist, error) {
	return s.Playlists.ListByOwner(ctx, owner)
}

func (s *PlaylistService) Update(ctx context.Context, id, owner primitive.ObjectID, name, description string) (*entity.Playlist, error) {
	p, err := s.ownedPlaylist(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		p.Name = name
	}
	if description = strings.TrimSpace(description); description != "" {
		p.Description = description
	}
	if err := s.Playlists.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddVideo verifies the video exists before linking it.
func (s *PlaylistService) AddVideo(ctx context.Context, id, owner, videoID primitive.ObjectID) (*entity.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, id, owner); err != nil {
		return nil, err
	}
	if _, err := s.Videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	return s.Playlists.AddVideo(ctx, id, videoID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, id, owner, videoID primitive.ObjectID) (*entity.Playlist, error) {
	if _, err := s.ownedPlaylist(ctx, id, owner); err != nil {
		return nil, err
	}
	return s.Playlists.RemoveVideo(ctx, id, videoID)
}

func (s *PlaylistService) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	if _, err := s.ownedPlaylist(ctx, id, owner); err != nil {
		return err
	}
	return s.Playlists.Delete(ctx, id)
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, id, owner primitive.ObjectID) (*entity.Playlist, error) {
	p, err := s.Playlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Owner != owner {
		return nil, ErrNotOwner
	}
	return p, nil
}
