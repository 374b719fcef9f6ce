package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/config"
	"github.com/confidence-group/hr-analytics-go/internal/domain/auth"
	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/jwt"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/oauth"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
	oauthConfig   config.OAuth2GoogleConfig
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, googleService oauth.GoogleService, oauthConfig config.OAuth2GoogleConfig) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		jwtService:     jwtService,
		googleService:  googleService,
		oauthConfig:    oauthConfig,
	}
}

// Login implements auth.AuthService. The identifier field accepts either an
// email or a username; both misses collapse into the same credential error so
// the response never leaks which part was wrong.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, auth.TokenPair, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, err
	}

	found, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		found, err = s.UserRepository.GetByUsername(ctx, req.Email)
	}
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, auth.TokenPair{}, err
	}
	if !found.IsActive {
		return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, found)
}

// Register implements auth.AuthService. New accounts start with the default
// role; scope is assigned later by an admin or the hierarchy sync.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserSummary, error) {
	if err := req.Validate(); err != nil {
		return auth.UserSummary{}, err
	}

	if _, err := s.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return auth.UserSummary{}, user.ErrEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.UserSummary{}, err
	}
	if _, err := s.UserRepository.GetByUsername(ctx, req.Username); err == nil {
		return auth.UserSummary{}, user.ErrUsernameExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return auth.UserSummary{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.UserSummary{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.RoleDefault,
		IsActive:     true,
	})
	if err != nil {
		return auth.UserSummary{}, err
	}
	return summaryOf(created), nil
}

// Refresh implements auth.AuthService. Revoked or non-refresh tokens are
// rejected; a successful refresh leaves the old refresh token usable until it
// expires, matching the cookie rotation the handler performs.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	userID, err := s.verifyRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenPair{}, err
	}

	found, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenPair{}, auth.ErrInvalidRefreshToken
		}
		return auth.TokenPair{}, err
	}
	if !found.IsActive {
		return auth.TokenPair{}, auth.ErrInvalidRefreshToken
	}

	access, _, err := s.jwtService.GenerateAccessToken(found.ID, found.Email, found.Role, found.IsAdmin())
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, refreshExp, err := s.jwtService.GenerateRefreshToken(found.ID)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return auth.TokenPair{AccessToken: access, RefreshToken: refresh, RefreshExpiresAt: refreshExp}, nil
}

// ChangePassword implements auth.AuthService. OAuth-provisioned accounts have
// no password hash and must set one through an admin instead.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID int64, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	found, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if found.PasswordHash == "" {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.OldPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	found.PasswordHash = string(hash)
	return s.UserRepository.Update(ctx, found)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

// GoogleAuthURL implements auth.AuthService.
func (s *AuthServiceImpl) GoogleAuthURL(ctx context.Context) (string, string, error) {
	state := s.googleService.GenerateState("api")
	if state == "" {
		return "", "", fmt.Errorf("failed to generate oauth state")
	}
	return s.googleService.RedirectURL(state), state, nil
}

// GoogleCallback implements auth.AuthService. Only verified addresses on the
// corporate domain may sign in; unknown addresses are provisioned on the spot
// with the default role.
func (s *AuthServiceImpl) GoogleCallback(ctx context.Context, code string) (auth.LoginResponse, auth.TokenPair, error) {
	token, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	info, err := s.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	if !info.VerifiedEmail || email == "" {
		return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrOAuthDomainForbidden
	}
	if domain := s.oauthConfig.AllowedDomain; domain != "" && !strings.HasSuffix(email, "@"+domain) {
		return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrOAuthDomainForbidden
	}

	found, err := s.UserRepository.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrUserNotFound) {
		found, err = s.provisionGoogleUser(ctx, email, info.GoogleID)
	}
	if err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, err
	}
	if !found.IsActive {
		return auth.LoginResponse{}, auth.TokenPair{}, auth.ErrInvalidCredentials
	}

	if found.OAuthProviderID == nil && info.GoogleID != "" {
		provider := "google"
		found.OAuthProvider = &provider
		found.OAuthProviderID = &info.GoogleID
		if err := s.UserRepository.Update(ctx, found); err != nil {
			return auth.LoginResponse{}, auth.TokenPair{}, err
		}
	}

	return s.issueTokens(ctx, found)
}

func (s *AuthServiceImpl) provisionGoogleUser(ctx context.Context, email, googleID string) (user.User, error) {
	provider := "google"
	username := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		username = email[:at]
	}
	return s.UserRepository.Create(ctx, user.User{
		Email:           email,
		Username:        username,
		Role:            user.RoleDefault,
		IsActive:        true,
		OAuthProvider:   &provider,
		OAuthProviderID: &googleID,
	})
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.LoginResponse, auth.TokenPair, error) {
	access, _, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role, u.IsAdmin())
	if err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.UserRepository.UpdateLastLogin(ctx, u.ID); err != nil {
		return auth.LoginResponse{}, auth.TokenPair{}, err
	}

	return auth.LoginResponse{
			AccessToken: access,
			User:        summaryOf(u),
		}, auth.TokenPair{
			AccessToken:      access,
			RefreshToken:     refresh,
			RefreshExpiresAt: refreshExp,
		}, nil
}

func (s *AuthServiceImpl) verifyRefreshToken(refreshToken string) (int64, error) {
	if refreshToken == "" || s.jwtService.IsTokenRevoked(refreshToken) {
		return 0, auth.ErrInvalidRefreshToken
	}

	token, err := jwtauth.VerifyToken(s.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		return 0, auth.ErrInvalidRefreshToken
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return 0, auth.ErrInvalidRefreshToken
	}
	if typ, _ := claims["type"].(string); typ != "refresh" {
		return 0, auth.ErrInvalidRefreshToken
	}
	switch id := claims["user_id"].(type) {
	case float64:
		return int64(id), nil
	case int64:
		return id, nil
	default:
		return 0, auth.ErrInvalidRefreshToken
	}
}

func summaryOf(u user.User) auth.UserSummary {
	return auth.UserSummary{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Role:     u.Role,
		IsAdmin:  u.IsAdmin(),
	}
}
