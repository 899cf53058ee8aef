package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
	"github.com/clipstream/clipstream-api/internal/domain/repository"
	"github.com/clipstream/clipstream-api/pkg/helpers"
	"github.com/clipstream/clipstream-api/pkg/media"
)

// UserService owns registration, authentication and profile operations.
// Token issuance and refresh rotation live here: the user document carries
// the single outstanding refresh token, so a rotated-out token presented
// again is detected as reuse and rejected.
type UserService struct {
	Users  repository.UserRepository
	Videos repository.VideoRepository
	JWT    *helpers.JWTManager
	Media  media.Uploader
	Logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, videos repository.VideoRepository, jwt *helpers.JWTManager, uploader media.Uploader, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Videos: videos, JWT: jwt, Media: uploader, Logger: logger}
}

// TokenPair is an issued access/refresh token pair with expiries.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Username       string
	FullName       string
	Email          string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if existing, err := s.Users.GetByEmailOrUsername(ctx, email, username); err == nil && existing != nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	avatar, err := s.Media.Upload(ctx, in.AvatarPath, media.FolderAvatars)
	if err != nil {
		return nil, err
	}
	cover, err := s.Media.Upload(ctx, in.CoverImagePath, media.FolderCovers)
	if err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Username:     username,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		Password:     hash,
		Avatar:       avatar.URL,
		AvatarID:     avatar.PublicID,
		CoverImage:   cover.URL,
		CoverImageID: cover.PublicID,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

// Login authenticates by email or username and issues a fresh token pair.
func (s *UserService) Login(ctx context.Context, email, username, password string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmailOrUsername(ctx, strings.ToLower(email), strings.ToLower(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, ErrUserNotFound
		}
		return nil, TokenPair{}, err
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// IssueTokens generates a new access/refresh pair and persists the refresh
// token onto the user document, replacing any previous one. The caller must
// not respond success unless this returns nil.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID.Hex(), u.Username, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID.Hex())
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("generate refresh token failed")
		return TokenPair{}, err
	}
	if err := s.Users.UpdateRefreshToken(ctx, u.ID, refresh); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID.Hex()).Error("persist refresh token failed")
		return TokenPair{}, err
	}
	u.RefreshToken = refresh
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// Refresh exchanges a presented refresh token for a new pair. Every reject
// path returns ErrInvalidRefreshToken; the caller cannot distinguish them,
// but the log records the reason. A token that verifies cryptographically
// yet differs from the stored one is a replay of a rotated-out token and
// invalidates nothing beyond this request: the stored token stays valid.
func (s *UserService) Refresh(ctx context.Context, presented string) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(presented)
	if err != nil {
		s.Logger.WithError(err).Debug("refresh token failed verification")
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		s.Logger.WithError(err).Debug("refresh token carries malformed user id")
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		s.Logger.WithField("user_id", claims.UserID).Debug("refresh token references unknown user")
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}
	if u.RefreshToken == "" || u.RefreshToken != presented {
		s.Logger.WithField("user_id", claims.UserID).Warn("stale refresh token replayed")
		return nil, TokenPair{}, ErrInvalidRefreshToken
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Logout clears the stored refresh token so any outstanding refresh token
// is rejected on its next use.
func (s *UserService) Logout(ctx context.Context, id primitive.ObjectID) error {
	return s.Users.UpdateRefreshToken(ctx, id, "")
}

func (s *UserService) ChangePassword(ctx context.Context, id primitive.ObjectID, oldPassword, newPassword string) error {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !helpers.CheckPassword(u.Password, oldPassword) {
		return ErrWrongPassword
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, id, hash)
}

func (s *UserService) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateDetails(ctx context.Context, id primitive.ObjectID, fullName, email string) (*entity.User, error) {
	u, err := s.Users.UpdateDetails(ctx, id, strings.TrimSpace(fullName), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

// UpdateAvatar uploads the staged image, persists the new reference and
// removes the superseded storage object best-effort.
func (s *UserService) UpdateAvatar(ctx context.Context, id primitive.ObjectID, localPath string) (*entity.User, error) {
	return s.updateImage(ctx, id, localPath, media.FolderAvatars, s.Users.UpdateAvatar, func(u *entity.User) string { return u.AvatarID })
}

func (s *UserService) UpdateCoverImage(ctx context.Context, id primitive.ObjectID, localPath string) (*entity.User, error) {
	return s.updateImage(ctx, id, localPath, media.FolderCovers, s.Users.UpdateCoverImage, func(u *entity.User) string { return u.CoverImageID })
}

func (s *UserService) updateImage(
	ctx context.Context,
	id primitive.ObjectID,
	localPath, folder string,
	persist func(context.Context, primitive.ObjectID, string, string) (*entity.User, error),
	oldID func(*entity.User) string,
) (*entity.User, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info, err := s.Media.Upload(ctx, localPath, folder)
	if err != nil {
		return nil, err
	}
	updated, err := persist(ctx, id, info.URL, info.PublicID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if old := oldID(current); old != "" {
		if rmErr := s.Media.Remove(ctx, old); rmErr != nil {
			s.Logger.WithError(rmErr).WithField("public_id", old).Warn("remove superseded image failed")
		}
	}
	return updated, nil
}

// WatchHistory resolves the user's watched video ids to video documents.
func (s *UserService) WatchHistory(ctx context.Context, id primitive.ObjectID) ([]entity.Video, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Videos.GetByIDs(ctx, u.WatchHistory)
}

// RecordWatch appends a video to the user's watch history; best-effort,
// duplicates are collapsed by the store.
func (s *UserService) RecordWatch(ctx context.Context, id, videoID primitive.ObjectID) error {
	return s.Users.AddToWatchHistory(ctx, id, videoID)
}
