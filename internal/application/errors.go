package application

import "errors"

// Service-level errors; the handler boundary maps them onto HTTP status
// codes (validation 400, authentication 401, authorization 403, not-found
// 404, conflict 409, everything else 500).
var (
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrWrongPassword       = errors.New("wrong password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrNotOwner            = errors.New("not the resource owner")
	ErrEmptyContent        = errors.New("content is required")
	ErrContentTooLong      = errors.New("content exceeds maximum length")
)
