package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestApp(t *testing.T) (*App, *http.ServeMux) {
	t.Helper()
	t.Setenv("TASKFLOW_JWT_SECRET", "test-secret-0123456789abcdef")
	t.Setenv("TASKFLOW_DATABASE_URL", "")

	cfg := LoadConfig()
	a, err := New(cfg, NewLogger("error", "test"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.dbEnabled {
		t.Fatalf("dbEnabled = true without a database URL")
	}

	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, nil, false, a.metrics, a.gate, a.auth, a.projects, a.tasks)
	return a, mux
}

func TestAppServesHealthAndMetrics(t *testing.T) {
	_, mux := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, rec.Code)
		}
	}
}

// End-to-end smoke through the fully wired mux: register, create a
// project, add a task, refresh the session.
func TestAppEndToEnd(t *testing.T) {
	_, mux := newTestApp(t)

	do := func(method, path, body, bearer string, cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/auth/register",
		`{"name":"Grace Hopper","email":"grace@example.com","password":"a very long password"}`, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("register = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var reg struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &reg); err != nil || reg.Data.AccessToken == "" {
		t.Fatalf("register body: %v (%s)", err, rec.Body.String())
	}
	var refresh *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" {
			refresh = c
		}
	}
	if refresh == nil {
		t.Fatalf("no refresh cookie")
	}
	token := reg.Data.AccessToken

	rec = do(http.MethodPost, "/projects", `{"name":"Compilers"}`, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("create project = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	var proj struct {
		Data struct {
			Project struct {
				ID string `json:"id"`
			} `json:"project"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &proj); err != nil || proj.Data.Project.ID == "" {
		t.Fatalf("project body: %v", err)
	}

	rec = do(http.MethodPost, "/projects/"+proj.Data.Project.ID+"/tasks", `{"title":"Write the parser"}`, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("create task = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	rec = do(http.MethodPost, "/auth/refresh", "", "", []*http.Cookie{refresh})
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh = %d (%s)", rec.Code, rec.Body.String())
	}

	// The consumed refresh token is gone.
	rec = do(http.MethodPost, "/auth/refresh", "", "", []*http.Cookie{refresh})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("replayed refresh = %d, want 401", rec.Code)
	}
}
