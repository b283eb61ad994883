package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"tedumasters/internal/common"
	"tedumasters/internal/common/security"
	"tedumasters/internal/domain/model"
	"tedumasters/internal/platform/config"
	"tedumasters/internal/platform/tokenstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	m.Run()
}

// fakeUserRepo is an in-memory UserRepository. Create enforces the same
// uniqueness the database constraints do, and createErr can simulate a
// constraint violation that the pre-checks did not see.
type fakeUserRepo struct {
	users     map[string]*model.User // by ID
	createErr error
	findErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Username == user.Username {
			return common.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return common.ErrDuplicateEmail
		}
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return common.ErrNotFound
	}
	for _, u := range f.users {
		if u.ID != user.ID && u.Email == user.Email {
			return common.ErrDuplicateEmail
		}
	}
	stored.Email = user.Email
	stored.FullName = user.FullName
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(f.users), nil
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Username:     "alice",
		Email:        "a@x.com",
		PasswordHash: "secret123",
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, token, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, model.RoleStudent, user.Role, "role defaults to student")
	assert.Empty(t, user.PasswordHash, "hash is scrubbed before the user crosses the boundary")
	assert.False(t, user.CreatedAt.IsZero())

	stored := repo.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash, "scrubbing the response must not erase the stored hash")
	assert.NotEqual(t, "secret123", stored.PasswordHash, "plaintext is never persisted")
	assert.True(t, security.CheckPasswordHash("secret123", stored.PasswordHash))
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterRequest)
		wantErr error
	}{
		{"missing username", func(r *RegisterRequest) { r.Username = "" }, common.ErrMissingCredentials},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, common.ErrMissingCredentials},
		{"missing password", func(r *RegisterRequest) { r.PasswordHash = "" }, common.ErrMissingCredentials},
		{"malformed email", func(r *RegisterRequest) { r.Email = "not-an-email" }, common.ErrInvalidEmail},
		{"short password", func(r *RegisterRequest) { r.PasswordHash = "short" }, common.ErrPasswordTooShort},
		{"username over column width", func(r *RegisterRequest) { r.Username = strings.Repeat("a", 51) }, common.ErrUsernameTooLong},
		{"email over column width", func(r *RegisterRequest) { r.Email = strings.Repeat("a", 95) + "@x.com" }, common.ErrEmailTooLong},
		{"full name over column width", func(r *RegisterRequest) { r.FullName = strings.Repeat("a", 101) }, common.ErrFullNameTooLong},
		{"unknown role", func(r *RegisterRequest) { r.Role = "superuser" }, common.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(newFakeUserRepo())
			req := validRegistration()
			tt.mutate(&req)

			_, _, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterAcceptsExplicitRole(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	req := validRegistration()
	req.Role = model.RoleInstructor

	user, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.RoleInstructor, user.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Email = "other@x.com"
	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrDuplicateUsername)
	assert.Equal(t, "Username already exists", err.Error())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	req := validRegistration()
	req.Username = "bob"
	_, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Equal(t, "Email already exists", err.Error())
}

// A concurrent duplicate that slips past the pre-checks surfaces from the
// storage constraint and still maps to the same domain error.
func TestRegisterConstraintRace(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = common.ErrDuplicateUsername
	svc := NewAuthService(repo)

	_, _, err := svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, common.ErrDuplicateUsername)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	registered, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	user, token, err := svc.Authenticate(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)
	assert.Empty(t, user.PasswordHash)
}

// Wrong password and unknown username must be observationally identical.
func TestAuthenticateFailuresIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, _, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, _, wrongPassword := svc.Authenticate(context.Background(), "alice", "wrong")
	_, _, unknownUser := svc.Authenticate(context.Background(), "mallory", "secret123")
	_, _, emptyInput := svc.Authenticate(context.Background(), "", "")

	assert.ErrorIs(t, wrongPassword, common.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, common.ErrInvalidCredentials)
	assert.ErrorIs(t, emptyInput, common.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLogoutRequiresTokenID(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	err := svc.Logout(context.Background(), "", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

type memoryTokenStore struct {
	revoked map[string]bool
}

func (m *memoryTokenStore) Revoke(_ context.Context, jti string, _ time.Duration) error {
	m.revoked[jti] = true
	return nil
}

func (m *memoryTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], nil
}

func TestLogoutRevokesToken(t *testing.T) {
	store := &memoryTokenStore{revoked: map[string]bool{}}
	tokenstore.Use(store)
	defer tokenstore.Use(nil)

	svc := NewAuthService(newFakeUserRepo())
	require.NoError(t, svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour)))

	revoked, err := tokenstore.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// An already-expired token needs no deny-list entry.
	require.NoError(t, svc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute)))
	revoked, err = tokenstore.IsRevoked(context.Background(), "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
