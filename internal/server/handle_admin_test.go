package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// adminLogin authenticates with the seeded bootstrap admin and returns
// the session cookies.
func adminLogin(t *testing.T, r *chi.Mux) []*http.Cookie {
	t.Helper()

	body, _ := json.Marshal(AdminLoginRequest{Email: "admin@globetrotter.game", Password: "changeme"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func TestAdminLoginGoodCredentials(t *testing.T) {
	r, _ := testRouter(t)

	body, _ := json.Marshal(AdminLoginRequest{Email: "admin@globetrotter.game", Password: "changeme"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp AdminMeResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Email != "admin@globetrotter.game" {
		t.Errorf("email = %q, want admin@globetrotter.game", resp.Email)
	}

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected an admin_session cookie")
	}
}

func TestAdminLoginBadPassword(t *testing.T) {
	r, _ := testRouter(t)

	body, _ := json.Marshal(AdminLoginRequest{Email: "admin@globetrotter.game", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	r, _ := testRouter(t)

	body, _ := json.Marshal(AdminLoginRequest{Email: "nobody@globetrotter.game", Password: "changeme"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminMe(t *testing.T) {
	r, _ := testRouter(t)

	// Unauthenticated.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", w.Code)
	}

	// Authenticated.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	for _, c := range adminLogin(t, r) {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminLogout(t *testing.T) {
	r, _ := testRouter(t)
	cookies := adminLogin(t, r)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	// The session is gone server-side.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", w.Code)
	}
}
