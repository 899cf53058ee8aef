package application

import (
	"context"
	"path"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clipstream/clipstream-api/internal/domain/entity"
	"github.com/clipstream/clipstream-api/internal/domain/repository"
	"github.com/clipstream/clipstream-api/pkg/media"
)

// In-memory repository fakes shared across the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateRefreshToken(_ context.Context, id primitive.ObjectID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (r *fakeUserRepo) UpdateDetails(_ context.Context, id primitive.ObjectID, fullName, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if fullName != "" {
		u.FullName = fullName
	}
	if email != "" {
		u.Email = email
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id primitive.ObjectID, url, publicID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Avatar, u.AvatarID = url, publicID
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateCoverImage(_ context.Context, id primitive.ObjectID, url, publicID string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.CoverImage, u.CoverImageID = url, publicID
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) AddToWatchHistory(_ context.Context, id, videoID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, v := range u.WatchHistory {
		if v == videoID {
			return nil
		}
	}
	u.WatchHistory = append(u.WatchHistory, videoID)
	return nil
}

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[primitive.ObjectID]*entity.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[primitive.ObjectID]*entity.Video{}}
}

func (r *fakeVideoRepo) Create(_ context.Context, v *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := r.videos[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) List(_ context.Context, f repository.VideoFilter) ([]entity.Video, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Video
	for _, v := range r.videos {
		if f.OnlyPublished && !v.IsPublished {
			continue
		}
		if !f.Owner.IsZero() && v.Owner != f.Owner {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVideoRepo) Update(_ context.Context, v *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[v.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.videos, id)
	return nil
}

type fakeTweetRepo struct {
	mu     sync.Mutex
	tweets map[primitive.ObjectID]*entity.Tweet
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[primitive.ObjectID]*entity.Tweet{}}
}

func (r *fakeTweetRepo) Create(_ context.Context, t *entity.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	cp := *t
	r.tweets[t.ID] = &cp
	return nil
}

func (r *fakeTweetRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTweetRepo) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]entity.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Tweet
	for _, t := range r.tweets {
		if t.Owner == owner {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTweetRepo) Update(_ context.Context, t *entity.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tweets[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	r.tweets[t.ID] = &cp
	return nil
}

func (r *fakeTweetRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tweets, id)
	return nil
}

// fakeUploader records uploads and removals; URLs are derived from the
// staged file name so tests can assert on them.
type fakeUploader struct {
	mu       sync.Mutex
	uploads  []string
	removals []string
	duration float64
	failNext bool
}

func (u *fakeUploader) Upload(_ context.Context, localPath, folder string) (media.UploadInfo, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failNext {
		u.failNext = false
		return media.UploadInfo{}, context.DeadlineExceeded
	}
	publicID := folder + "/" + path.Base(localPath)
	u.uploads = append(u.uploads, publicID)
	return media.UploadInfo{
		URL:      "https://cdn.test/" + publicID,
		PublicID: publicID,
		Duration: u.duration,
	}, nil
}

func (u *fakeUploader) Remove(_ context.Context, publicID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.removals = append(u.removals, publicID)
	return nil
}

var (
	_ repository.UserRepository  = (*fakeUserRepo)(nil)
	_ repository.VideoRepository = (*fakeVideoRepo)(nil)
	_ repository.TweetRepository = (*fakeTweetRepo)(nil)
	_ media.Uploader             = (*fakeUploader)(nil)
)
