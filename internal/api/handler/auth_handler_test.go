package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tedumasters/internal/app/service"
	"tedumasters/internal/common"
	"tedumasters/internal/common/security"
	"tedumasters/internal/domain/model"
	"tedumasters/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	m.Run()
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
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
	for _, u := range f.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
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
	if _, ok := f.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(f.users), nil
}

func newAuthRouter() http.Handler {
	authService := service.NewAuthService(newFakeUserRepo())
	authHandler := NewAuthHandler(authService)

	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(security.TokenAuth))
	r.Route("/api/auth", authHandler.RegisterRoutes)
	return r
}

func doRegister(t *testing.T, router http.Handler, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func doLogin(t *testing.T, router http.Handler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login?username="+username+"&password="+password, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// The full register/login round trip: hash never leaks, wrong credentials and
// duplicate registrations return their exact error bodies.
func TestAuthFlow(t *testing.T) {
	router := newAuthRouter()

	// Register alice.
	rec := doRegister(t, router, map[string]string{
		"username":     "alice",
		"email":        "a@x.com",
		"passwordHash": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Authorization"))

	var registered map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	userID, _ := registered["id"].(string)
	assert.NotEmpty(t, userID)
	assert.Equal(t, "alice", registered["username"])
	assert.Equal(t, "student", registered["role"])
	_, hasHash := registered["passwordHash"]
	assert.False(t, hasHash, "passwordHash must be absent from the response")

	// Login with the right password returns the same user.
	rec = doLogin(t, router, "alice", "secret123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Authorization"))

	var loggedIn map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))
	assert.Equal(t, userID, loggedIn["id"])
	_, hasHash = loggedIn["passwordHash"]
	assert.False(t, hasHash)

	// Wrong password.
	rec = doLogin(t, router, "alice", "wrong")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid username or password"}`, rec.Body.String())

	// Unknown user looks exactly the same.
	rec = doLogin(t, router, "mallory", "secret123")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid username or password"}`, rec.Body.String())

	// Duplicate username, different email.
	rec = doRegister(t, router, map[string]string{
		"username":     "alice",
		"email":        "other@x.com",
		"passwordHash": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Username already exists"}`, rec.Body.String())

	// Duplicate email, different username.
	rec = doRegister(t, router, map[string]string{
		"username":     "bob",
		"email":        "a@x.com",
		"passwordHash": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email already exists"}`, rec.Body.String())
}

func TestRegisterRejectsMalformedPayload(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterValidationStatus(t *testing.T) {
	router := newAuthRouter()

	rec := doRegister(t, router, map[string]string{
		"username":     "alice",
		"email":        "a@x.com",
		"passwordHash": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"password must be at least 8 characters"}`, rec.Body.String())
}

func TestAuthTestEndpoint(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/test", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "Auth endpoint is working!", rec.Body.String())
}

func TestLogout(t *testing.T) {
	router := newAuthRouter()

	rec := doRegister(t, router, map[string]string{
		"username":     "alice",
		"email":        "a@x.com",
		"passwordHash": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token := rec.Header().Get("Authorization")
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Without a token logout is rejected.
	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
