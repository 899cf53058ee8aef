package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipstream/clipstream-api/pkg/helpers"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newUserService(t *testing.T) (*UserService, *fakeUserRepo, *fakeUploader) {
	t.Helper()
	users := newFakeUserRepo()
	uploader := &fakeUploader{}
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	svc := NewUserService(users, newFakeVideoRepo(), jwt, uploader, testLogger())
	return svc, users, uploader
}

func registerTestUser(t *testing.T, svc *UserService) *TokenPair {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{
		Username:       "Alice",
		FullName:       "Alice Tester",
		Email:          "Alice@Example.com",
		Password:       "supersecret1",
		AvatarPath:     "/tmp/avatar.png",
		CoverImagePath: "/tmp/cover.png",
	})
	require.NoError(t, err)
	_, pair, err := svc.Login(ctx, "alice@example.com", "", "supersecret1")
	require.NoError(t, err)
	return &pair
}

func TestRegisterHashesPasswordAndLowercases(t *testing.T) {
	svc, users, uploader := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Username:       "Alice",
		FullName:       "Alice Tester",
		Email:          "Alice@Example.com",
		Password:       "supersecret1",
		AvatarPath:     "/tmp/avatar.png",
		CoverImagePath: "/tmp/cover.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "supersecret1", u.Password)
	assert.True(t, helpers.CheckPassword(u.Password, "supersecret1"))
	assert.Len(t, uploader.uploads, 2)

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret1", stored.Password)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	in := RegisterInput{
		Username:       "bob",
		FullName:       "Bob",
		Email:          "bob@example.com",
		Password:       "supersecret1",
		AvatarPath:     "/tmp/a.png",
		CoverImagePath: "/tmp/c.png",
	}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newUserService(t)
	ctx := context.Background()
	registerTestUser(t, svc)

	t.Run("by email", func(t *testing.T) {
		u, pair, err := svc.Login(ctx, "alice@example.com", "", "supersecret1")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		stored, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
	})

	t.Run("by username", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "alice", "supersecret1")
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost@example.com", "", "supersecret1")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRefreshRotation(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	pair := registerTestUser(t, svc)

	// First exchange succeeds and rotates the stored token.
	_, next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, next.RefreshToken)

	// Replaying the rotated-out token is reuse and must be rejected.
	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The newest token is still good.
	_, _, err = svc.Refresh(ctx, next.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsGarbageAndForeignTokens(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	_, _, err := svc.Refresh(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// A token signed with a different secret fails verification.
	other := helpers.NewJWTManager("access-secret", "other-secret", time.Hour, 24*time.Hour)
	foreign, _, err := other.GenerateRefreshToken("64b0c0ffee0000000000aaaa")
	require.NoError(t, err)
	_, _, err = svc.Refresh(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	pair := registerTestUser(t, svc)

	u, _, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, u.ID))

	_, _, err = svc.Refresh(ctx, u.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	registerTestUser(t, svc)
	u, _, err := svc.Login(ctx, "alice@example.com", "", "supersecret1")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, "wrong-old", "newsecret99")
	assert.ErrorIs(t, err, ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "supersecret1", "newsecret99"))

	_, _, err = svc.Login(ctx, "alice@example.com", "", "supersecret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "alice@example.com", "", "newsecret99")
	require.NoError(t, err)
}

func TestUpdateAvatarReplacesStorageObject(t *testing.T) {
	svc, _, uploader := newUserService(t)
	ctx := context.Background()
	registerTestUser(t, svc)
	u, _, err := svc.Login(ctx, "alice@example.com", "", "supersecret1")
	require.NoError(t, err)

	oldID := u.AvatarID
	require.NotEmpty(t, oldID)

	updated, err := svc.UpdateAvatar(ctx, u.ID, "/tmp/avatar2.png")
	require.NoError(t, err)
	assert.NotEqual(t, oldID, updated.AvatarID)
	assert.Contains(t, uploader.removals, oldID)
}

func TestWatchHistory(t *testing.T) {
	users := newFakeUserRepo()
	videos := newFakeVideoRepo()
	uploader := &fakeUploader{}
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	svc := NewUserService(users, videos, jwt, uploader, testLogger())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{
		Username:       "carol",
		FullName:       "Carol",
		Email:          "carol@example.com",
		Password:       "supersecret1",
		AvatarPath:     "/tmp/a.png",
		CoverImagePath: "/tmp/c.png",
	})
	require.NoError(t, err)

	vids := NewVideoService(videos, uploader, nil, testLogger())
	v, err := vids.Publish(ctx, PublishVideoInput{
		Title:         "clip",
		Description:   "a clip",
		VideoPath:     "/tmp/v.mp4",
		ThumbnailPath: "/tmp/t.png",
		Owner:         u.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RecordWatch(ctx, u.ID, v.ID))
	// Re-watching must not duplicate the entry.
	require.NoError(t, svc.RecordWatch(ctx, u.ID, v.ID))

	history, err := svc.WatchHistory(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, v.ID, history[0].ID)
}
