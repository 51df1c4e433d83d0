package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmlink/auth-service/internal/api"
	"github.com/farmlink/auth-service/internal/api/handler"
	"github.com/farmlink/auth-service/internal/core/domain"
	"github.com/farmlink/auth-service/internal/core/ports"
)

type stubAuthService struct {
	registerResult *ports.RegisterResult
	registerErr    error
	registerInput  ports.RegisterInput

	loginResult *ports.LoginResult
	loginErr    error

	loggedOut []string
	logoutErr error
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	s.registerInput = in
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerResult, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (*ports.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) Logout(_ context.Context, sessionID string) error {
	if s.logoutErr != nil {
		return s.logoutErr
	}
	s.loggedOut = append(s.loggedOut, sessionID)
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

// serve runs a handler function the way the router would, routing any
// returned error through the central error handler.
func serve(e *echo.Echo, fn echo.HandlerFunc, req *http.Request, prepare func(echo.Context)) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if prepare != nil {
		prepare(c)
	}
	if err := fn(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{registerResult: &ports.RegisterResult{AccountID: 7, Email: "a@b.com"}}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	req := jsonRequest(http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","password":"secret123","firstName":"Ana","lastName":"G","role_name":"farmer"}`)
	rec := serve(e, h.Register, req, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "account registered" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	result, _ := body["result"].(map[string]interface{})
	if result["accountId"] != float64(7) || result["email"] != "a@b.com" {
		t.Fatalf("unexpected result: %v", result)
	}
	if svc.registerInput.FirstName != "Ana" || svc.registerInput.RoleName != "farmer" {
		t.Fatalf("input not forwarded: %+v", svc.registerInput)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{})
	e := newTestEcho()

	for name, payload := range map[string]string{
		"no email":    `{"password":"secret123","role_name":"farmer"}`,
		"no password": `{"email":"a@b.com","role_name":"farmer"}`,
		"no role":     `{"email":"a@b.com","password":"secret123"}`,
	} {
		rec := serve(e, h.Register, jsonRequest(http.MethodPost, "/api/auth/register", payload), nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", name, rec.Code, rec.Body.String())
		}
		if _, ok := decodeBody(t, rec)["message"]; !ok {
			t.Fatalf("%s: missing message envelope: %s", name, rec.Body.String())
		}
	}
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{})
	e := newTestEcho()

	rec := serve(e, h.Register, jsonRequest(http.MethodPost, "/api/auth/register", `{"email":`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "invalid payload" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ServiceErrors(t *testing.T) {
	e := newTestEcho()

	for _, tc := range []struct {
		err     error
		message string
	}{
		{domain.ErrEmailTaken, "email already registered"},
		{domain.ErrUnknownRole, "unknown role"},
		{fmt.Errorf("%w: dial tcp refused", domain.ErrServiceUnavailable), "service unavailable"},
		{fmt.Errorf("insert profile: disk full"), "internal server error"},
	} {
		h := handler.NewAuthHandler(&stubAuthService{registerErr: tc.err})
		req := jsonRequest(http.MethodPost, "/api/auth/register",
			`{"email":"a@b.com","password":"secret123","role_name":"farmer"}`)
		rec := serve(e, h.Register, req, nil)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%v: expected 500, got %d", tc.err, rec.Code)
		}
		if got := decodeBody(t, rec)["message"]; got != tc.message {
			t.Fatalf("%v: expected message %q, got %v", tc.err, tc.message, got)
		}
	}
}

func TestAuthHandler_Login_OK(t *testing.T) {
	svc := &stubAuthService{loginResult: &ports.LoginResult{
		AccountID: 7,
		Email:     "a@b.com",
		RoleName:  "farmer",
		Token:     "signed-token",
	}}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"secret123"}`)
	rec := serve(e, h.Login, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "login successful" || body["token"] != "signed-token" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	result, _ := body["result"].(map[string]interface{})
	if result["id"] != float64(7) || result["email"] != "a@b.com" || result["role_name"] != "farmer" {
		t.Fatalf("unexpected result: %v", result)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})
	e := newTestEcho()

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"nope"}`)
	rec := serve(e, h.Login, req, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "invalid credentials" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{})
	e := newTestEcho()

	rec := serve(e, h.Login, jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@b.com"}`), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Session(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{})
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	rec := serve(e, h.Session, req, func(c echo.Context) {
		c.Set("account_id", int64(7))
		c.Set("email", "a@b.com")
		c.Set("role", "farmer")
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["id"] != float64(7) || body["email"] != "a@b.com" || body["role_name"] != "farmer" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Session_NoIdentity(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{})
	e := newTestEcho()

	rec := serve(e, h.Session, httptest.NewRequest(http.MethodGet, "/api/auth/session", nil), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuthService{}
	h := handler.NewAuthHandler(svc)
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := serve(e, h.Logout, req, func(c echo.Context) {
		c.Set("session_id", "sess-1")
	})

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "sess-1" {
		t.Fatalf("logout not forwarded: %v", svc.loggedOut)
	}
}

func TestAuthHandler_Logout_NoSession(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{})
	e := newTestEcho()

	rec := serve(e, h.Logout, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
