package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"solverpro/internal/middleware"
	"solverpro/internal/models"
)

func newAuthRouter(sessions *mockSessions) *chi.Mux {
	h := NewAuthHandler(sessions, time.Hour, zap.NewNop())
	r := chi.NewRouter()
	r.With(middleware.ValidateRequest[*models.LoginRequest]()).Post("/login", h.LoginHandler)
	r.Post("/logout", h.LogoutHandler)
	r.Get("/session", h.SessionHandler)
	r.With(middleware.ValidateRequest[*models.NavigateRequest]()).Post("/navigate", h.NavigateHandler)
	return r
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) models.SessionResponse {
	t.Helper()
	var resp models.SessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLoginSetsCookieAndFlag(t *testing.T) {
	sessions := newMockSessions()
	router := newAuthRouter(sessions)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"admin","password":"admin123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeSession(t, rec); !resp.Authenticated || resp.Mode != "ADMIN" {
		t.Fatalf("unexpected session response: %+v", resp)
	}
	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", cookie)
	}
	if !sessions.flags[cookie.Value] {
		t.Fatal("expected flag stored under the cookie session id")
	}

	// session resumes in the admin area
	req = httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if resp := decodeSession(t, rec); resp.Mode != "ADMIN" {
		t.Fatalf("expected ADMIN after reload, got %+v", resp)
	}

	// logout clears the flag and the cookie
	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if resp := decodeSession(t, rec); resp.Authenticated || resp.Mode != "LOGIN" {
		t.Fatalf("unexpected logout response: %+v", resp)
	}
	if c := sessionCookie(rec); c == nil || c.MaxAge >= 0 {
		t.Fatalf("expected cookie to be expired, got %+v", c)
	}
	if sessions.flags[cookie.Value] {
		t.Fatal("expected flag cleared")
	}
}

func TestLoginIssuesFreshSessionID(t *testing.T) {
	sessions := newMockSessions()
	sessions.flags["planted"] = true
	router := newAuthRouter(sessions)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"admin","password":"admin123"}`))
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "planted"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	cookie := sessionCookie(rec)
	if cookie == nil || cookie.Value == "planted" {
		t.Fatalf("expected a new session id, got %+v", cookie)
	}
	if sessions.flags["planted"] {
		t.Fatal("client-supplied session id must not stay authenticated")
	}
	if !sessions.flags[cookie.Value] {
		t.Fatal("expected the new session id to be authenticated")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	sessions := newMockSessions()
	router := newAuthRouter(sessions)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"admin","password":"nope"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if sessionCookie(rec) != nil {
		t.Fatal("no cookie expected on failed login")
	}
	if len(sessions.flags) != 0 {
		t.Fatal("no flag expected on failed login")
	}
}

func TestLoginSessionStoreFailure(t *testing.T) {
	sessions := newMockSessions()
	sessions.storeErr = errStorage
	router := newAuthRouter(sessions)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"username":"admin","password":"admin123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSessionWithoutCookie(t *testing.T) {
	router := newAuthRouter(newMockSessions())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session", nil))

	if resp := decodeSession(t, rec); resp.Authenticated || resp.Mode != "LOGIN" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestNavigate(t *testing.T) {
	sessions := newMockSessions()
	sessions.flags["s1"] = true
	router := newAuthRouter(sessions)

	cases := []struct {
		name   string
		body   string
		cookie string
		want   string
	}{
		{"student entry", `{"mode":"LOGIN","intent":"enter_student"}`, "", "STUDENT"},
		{"admin blocked", `{"mode":"STUDENT","intent":"enter_admin"}`, "", "LOGIN"},
		{"admin allowed", `{"mode":"STUDENT","intent":"enter_admin"}`, "s1", "ADMIN"},
		{"unknown mode falls back", `{"mode":"weird","intent":"noop"}`, "s1", "ADMIN"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/navigate", bytes.NewBufferString(tc.body))
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tc.cookie})
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if resp := decodeSession(t, rec); resp.Mode != tc.want {
			t.Fatalf("%s: expected %s, got %+v", tc.name, tc.want, resp)
		}
	}
}
