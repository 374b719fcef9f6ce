package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or missing access token")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrOAuthStateMismatch   = errors.New("oauth state mismatch")
	ErrOAuthDomainForbidden = errors.New("email domain is not allowed to sign in")
)
