package auth

import "context"

// AuthService covers password and Google OAuth sign-in. Google sign-in is
// restricted to the corporate domain and auto-provisions first-time users.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, TokenPair, error)
	Register(ctx context.Context, req RegisterRequest) (UserSummary, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error

	// GoogleAuthURL returns the consent-screen redirect plus the state nonce
	// the handler must pin in a cookie.
	GoogleAuthURL(ctx context.Context) (url, state string, err error)
	// GoogleCallback exchanges the authorization code, verifies the domain,
	// provisions the user if needed and issues tokens.
	GoogleCallback(ctx context.Context, code string) (LoginResponse, TokenPair, error)
}
