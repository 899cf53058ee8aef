package application

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
	"github.com/clipstream/clipstream-api/internal/domain/repository"
)

type TweetService struct {
	Tweets repository.TweetRepository
	Logger *logrus.Logger
}

func NewTweetService(tweets repository.TweetRepository, logger *logrus.Logger) *TweetService {
	return &TweetService{Tweets: tweets, Logger: logger}
}

func (s *TweetService) Create(ctx context.Context, owner primitive.ObjectID, content string) (*entity.Tweet, error) {
	content = strings.TrimSpace(content)
	if err := validateTweetContent(content); err != nil {
		return nil, err
	}
	t := &entity.Tweet{Content: content, Owner: owner}
	if err := s.Tweets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TweetService) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]entity.Tweet, error) {
	return s.Tweets.ListByOwner(ctx, owner)
}

func (s *TweetService) Update(ctx context.Context, id, owner primitive.ObjectID, content string) (*entity.Tweet, error) {
	content = strings.TrimSpace(content)
	if err := validateTweetContent(content); err != nil {
		return nil, err
	}
	t, err := s.ownedTweet(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	t.Content = content
	if err := s.Tweets.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TweetService) Delete(ctx context.Context, id, owner primitive.ObjectID) error {
	if _, err := s.ownedTweet(ctx, id, owner); err != nil {
		return err
	}
	return s.Tweets.Delete(ctx, id)
}

func (s *TweetService) ownedTweet(ctx context.Context, id, owner primitive.ObjectID) (*entity.Tweet, error) {
	t, err := s.Tweets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Owner != owner {
		return nil, ErrNotOwner
	}
	return t, nil
}

func validateTweetContent(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > entity.MaxTweetLength {
		return ErrContentTooLong
	}
	return nil
}
