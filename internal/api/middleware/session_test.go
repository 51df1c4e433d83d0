package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/service"
)

const testSecret = "secret"

type stubSessions struct {
	sessions map[string]*domain.Session
}

func (s *stubSessions) Save(_ context.Context, sess *domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessions) Find(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessions) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubAccounts struct {
	accounts map[int64]*domain.Account
}

func (s *stubAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, acct := range s.accounts {
		if acct.Email == email {
			return acct, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (s *stubAccounts) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	acct, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acct, nil
}

func (s *stubAccounts) Create(_ context.Context, acct *domain.Account) (int64, error) {
	id := int64(len(s.accounts) + 1)
	acct.ID = id
	s.accounts[id] = acct
	return id, nil
}

type guardEnv struct {
	sessions *stubSessions
	accounts *stubAccounts
	guard    *service.SessionGuard
}

func newGuardEnv() *guardEnv {
	sessions := &stubSessions{sessions: make(map[string]*domain.Session)}
	accounts := &stubAccounts{accounts: make(map[int64]*domain.Account)}
	return &guardEnv{
		sessions: sessions,
		accounts: accounts,
		guard:    service.NewSessionGuard(sessions, accounts, testSecret, zerolog.Nop()),
	}
}

func (env *guardEnv) seed(t *testing.T, role string) string {
	t.Helper()

	env.accounts.accounts[1] = &domain.Account{ID: 1, Email: "a@b.com", RoleName: role}
	env.sessions.sessions["sess-1"] = &domain.Session{
		ID:        "sess-1",
		AccountID: 1,
		Email:     "a@b.com",
		RoleName:  role,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti": "sess-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runProtected(mw echo.MiddlewareFunc, token string, inner echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(inner)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestSessionMiddleware_Authorized(t *testing.T) {
	env := newGuardEnv()
	token := env.seed(t, domain.RoleFarmer)

	var seen struct {
		sessionID string
		accountID int64
		email     string
		role      string
	}
	rec := runProtected(Session(env.guard), token, func(c echo.Context) error {
		seen.sessionID, _ = c.Get("session_id").(string)
		seen.accountID, _ = c.Get("account_id").(int64)
		seen.email, _ = c.Get("email").(string)
		seen.role, _ = c.Get("role").(string)
		return c.NoContent(http.StatusOK)
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if seen.sessionID != "sess-1" || seen.accountID != 1 || seen.email != "a@b.com" || seen.role != domain.RoleFarmer {
		t.Fatalf("identity not injected: %+v", seen)
	}
}

func TestSessionMiddleware_NoToken(t *testing.T) {
	env := newGuardEnv()

	rec := runProtected(Session(env.guard), "", okHandler)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body unauthorizedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Redirect != service.LoginPath {
		t.Fatalf("expected redirect to %s, got %q", service.LoginPath, body.Redirect)
	}
}

func TestSessionMiddleware_RevokedSession(t *testing.T) {
	env := newGuardEnv()
	token := env.seed(t, domain.RoleFarmer)
	delete(env.sessions.sessions, "sess-1")

	rec := runProtected(Session(env.guard), token, okHandler)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a revoked session, got %d", rec.Code)
	}
}

func TestSessionMiddleware_GarbageToken(t *testing.T) {
	env := newGuardEnv()

	rec := runProtected(Session(env.guard), "not.a.jwt", okHandler)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	e := echo.New()
	for header, want := range map[string]string{
		"":               "",
		"Bearer abc":     "abc",
		"bearer abc":     "abc",
		"Basic dXNlcg==": "",
		"Bearer":         "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		if got := bearerToken(c); got != want {
			t.Fatalf("header %q: expected %q, got %q", header, want, got)
		}
	}
}
