package auth

import (
	"context"
	"testing"

	"github.com/confidence-group/hr-analytics-go/internal/config"
	"github.com/confidence-group/hr-analytics-go/internal/domain/auth"
	"github.com/confidence-group/hr-analytics-go/internal/domain/user"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/jwt"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

type fakeUserRepository struct {
	user.UserRepository
	users  map[string]user.User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]user.User{}, nextID: 1}
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = f.nextID
	f.nextID++
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u user.User) error {
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	return nil
}

type fakeGoogleService struct {
	info oauth.GoogleInformation
}

func (f *fakeGoogleService) GenerateState(userAgent string) string { return "state-token" }
func (f *fakeGoogleService) RedirectURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}
func (f *fakeGoogleService) VerifyToken(ctx context.Context, code string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "google-access"}, nil
}
func (f *fakeGoogleService) VerifyUser(ctx context.Context, token *oauth2.Token) (oauth.GoogleInformation, error) {
	return f.info, nil
}

func newTestService(t *testing.T, repo *fakeUserRepository, google oauth.GoogleService) auth.AuthService {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", "1h", "168h")
	return NewAuthService(repo, jwtService, google, config.OAuth2GoogleConfig{AllowedDomain: "cg-bd.com"})
}

func seedUser(t *testing.T, repo *fakeUserRepository, email, username, password, role string, active bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	created, err := repo.Create(context.Background(), user.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	})
	require.NoError(t, err)
	return created
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "ceo@cg-bd.com", "ceo", "secret123", user.RoleAdmin, true)
	svc := newTestService(t, repo, &fakeGoogleService{})

	resp, tokens, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ceo@cg-bd.com", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "ceo@cg-bd.com", resp.User.Email)
	assert.True(t, resp.User.IsAdmin)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "ceo@cg-bd.com", "ceo", "secret123", user.RoleAdmin, true)
	svc := newTestService(t, repo, &fakeGoogleService{})

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ceo@cg-bd.com", Password: "wrong-pass"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(t, newFakeUserRepository(), &fakeGoogleService{})

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@cg-bd.com", Password: "secret123"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "gone@cg-bd.com", "gone", "secret123", user.RoleDefault, false)
	svc := newTestService(t, repo, &fakeGoogleService{})

	_, _, err := svc.Login(context.Background(), auth.LoginRequest{Email: "gone@cg-bd.com", Password: "secret123"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "ceo@cg-bd.com", "ceo", "secret123", user.RoleAdmin, true)
	svc := newTestService(t, repo, &fakeGoogleService{})

	_, tokens, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ceo@cg-bd.com", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "ceo@cg-bd.com", "ceo", "secret123", user.RoleAdmin, true)
	svc := newTestService(t, repo, &fakeGoogleService{})

	_, tokens, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ceo@cg-bd.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "ceo@cg-bd.com", "ceo", "secret123", user.RoleAdmin, true)
	svc := newTestService(t, repo, &fakeGoogleService{})

	_, tokens, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ceo@cg-bd.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)
}

func TestGoogleCallbackRejectsForeignDomain(t *testing.T) {
	google := &fakeGoogleService{info: oauth.GoogleInformation{
		GoogleID:      "g-1",
		Email:         "someone@gmail.com",
		VerifiedEmail: true,
	}}
	svc := newTestService(t, newFakeUserRepository(), google)

	_, _, err := svc.GoogleCallback(context.Background(), "code")

	assert.ErrorIs(t, err, auth.ErrOAuthDomainForbidden)
}

func TestGoogleCallbackRejectsUnverifiedEmail(t *testing.T) {
	google := &fakeGoogleService{info: oauth.GoogleInformation{
		GoogleID:      "g-1",
		Email:         "ceo@cg-bd.com",
		VerifiedEmail: false,
	}}
	svc := newTestService(t, newFakeUserRepository(), google)

	_, _, err := svc.GoogleCallback(context.Background(), "code")

	assert.ErrorIs(t, err, auth.ErrOAuthDomainForbidden)
}

func TestGoogleCallbackProvisionsNewUser(t *testing.T) {
	repo := newFakeUserRepository()
	google := &fakeGoogleService{info: oauth.GoogleInformation{
		GoogleID:      "g-42",
		Email:         "newhire@cg-bd.com",
		VerifiedEmail: true,
	}}
	svc := newTestService(t, repo, google)

	resp, tokens, err := svc.GoogleCallback(context.Background(), "code")

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "newhire@cg-bd.com", resp.User.Email)
	assert.Equal(t, "newhire", resp.User.Username)
	assert.Equal(t, user.RoleDefault, resp.User.Role)

	provisioned, err := repo.GetByEmail(context.Background(), "newhire@cg-bd.com")
	require.NoError(t, err)
	require.NotNil(t, provisioned.OAuthProviderID)
	assert.Equal(t, "g-42", *provisioned.OAuthProviderID)
}

func TestGoogleCallbackExistingUser(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "ceo@cg-bd.com", "ceo", "secret123", user.RoleAdmin, true)
	google := &fakeGoogleService{info: oauth.GoogleInformation{
		GoogleID:      "g-7",
		Email:         "CEO@cg-bd.com",
		VerifiedEmail: true,
	}}
	svc := newTestService(t, repo, google)

	resp, _, err := svc.GoogleCallback(context.Background(), "code")

	require.NoError(t, err)
	assert.True(t, resp.User.IsAdmin)
	assert.Equal(t, int64(1), resp.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(t, repo, "ceo@cg-bd.com", "ceo", "secret123", user.RoleAdmin, true)
	svc := newTestService(t, repo, &fakeGoogleService{})

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "ceo@cg-bd.com",
		Username: "other",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, user.ErrEmailExists)
}
