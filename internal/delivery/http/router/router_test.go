package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	authService "filehub/internal/application/auth"
	fileService "filehub/internal/application/file"
	"filehub/internal/delivery/http/handler"
	"filehub/internal/domain/user"
	"filehub/internal/infrastructure/database"
	"filehub/internal/infrastructure/repository"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWithRole(t, user.RoleUser)
}

func newTestServerWithRole(t *testing.T, defaultRole user.Role) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.New(filepath.Join(dir, "filehub.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}

	storage := filepath.Join(dir, "files")
	authSvc := authService.NewService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		authService.NewSessionCache(16, time.Minute),
		time.Hour,
		defaultRole,
	)
	fileSvc := fileService.NewService(
		repository.NewNamespaceResolver(storage),
		repository.NewFilesystemRepository(),
		fileService.DefaultMaxPreviewSize,
	)

	handlers := Handlers{
		File:   handler.NewFileHandler(fileSvc, 1<<20, logger),
		Auth:   handler.NewAuthHandler(authSvc, logger),
		User:   handler.NewUserHandler(authSvc),
		Health: handler.NewHealthHandler(db, dir),
	}

	srv := httptest.NewServer(Setup(handlers, authSvc, logger))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req, _ := http.NewRequest(method, url, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func login(t *testing.T, base, email, username string) string {
	t.Helper()
	creds := map[string]string{"email": email, "username": username, "password": "secret123"}
	if resp, body := doJSON(t, http.MethodPost, base+"/api/auth/register", "", creds); resp.StatusCode != http.StatusOK {
		t.Fatalf("register: %d %v", resp.StatusCode, body)
	}
	resp, body := doJSON(t, http.MethodPost, base+"/api/auth/login", "", creds)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: %d %v", resp.StatusCode, body)
	}
	return body["data"].(map[string]any)["token"].(string)
}

func upload(t *testing.T, base, token, name, content string) int {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", name)
	fw.Write([]byte(content))
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, base+"/api/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestFileRoutesRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/files", "/api/files/download?name=a", "/api/files/preview?name=a", "/api/user/profile"} {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestNamespacesAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv.URL, "alice@example.com", "alice")
	bob := login(t, srv.URL, "bob@example.com", "bob")

	if code := upload(t, srv.URL, alice, "secret.txt", "alice only"); code != http.StatusOK {
		t.Fatalf("upload status = %d", code)
	}

	_, body := doJSON(t, http.MethodGet, srv.URL+"/api/files", alice, nil)
	files := body["data"].(map[string]any)["files"].([]any)
	if len(files) != 1 {
		t.Fatalf("alice files = %v", files)
	}

	_, body = doJSON(t, http.MethodGet, srv.URL+"/api/files", bob, nil)
	if files := body["data"].(map[string]any)["files"].([]any); len(files) != 0 {
		t.Errorf("bob sees %v", files)
	}

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/files/download?name=secret.txt", bob, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("bob download status = %d, want 404", resp.StatusCode)
	}
}

func TestDownloadWithQueryToken(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv.URL, "alice@example.com", "alice")
	upload(t, srv.URL, token, "a.txt", "payload")

	resp, err := http.Get(srv.URL + "/api/files/download?name=a.txt&token=" + token)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(data) != "payload" {
		t.Errorf("download = %d %q", resp.StatusCode, data)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv.URL, "alice@example.com", "alice")

	if resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}
	if resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/auth/logout", token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", resp.StatusCode)
	}
	if resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/auth/me", token, nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d, want 401", resp.StatusCode)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/healthz", "", nil)
	if resp.StatusCode != http.StatusOK || body["success"] != true {
		t.Errorf("healthz = %d %v", resp.StatusCode, body)
	}

	mresp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer mresp.Body.Close()
	data, _ := io.ReadAll(mresp.Body)
	if !strings.Contains(string(data), "filehub_http_requests_total") {
		t.Error("metrics output lacks filehub_http_requests_total")
	}
}

func TestChangePasswordEndsSessions(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv.URL, "alice@example.com", "alice")

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/user/profile", token, nil)
	if resp.StatusCode != http.StatusOK || body["data"].(map[string]any)["username"] != "alice" {
		t.Fatalf("profile = %d %v", resp.StatusCode, body)
	}

	change := map[string]string{"currentPassword": "wrong", "newPassword": "another123"}
	if resp, _ := doJSON(t, http.MethodPut, srv.URL+"/api/user/password", token, change); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong current password status = %d, want 401", resp.StatusCode)
	}

	change["currentPassword"] = "secret123"
	if resp, _ := doJSON(t, http.MethodPut, srv.URL+"/api/user/password", token, change); resp.StatusCode != http.StatusOK {
		t.Fatalf("change status = %d", resp.StatusCode)
	}

	if resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/user/profile", token, nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("old token status = %d, want 401", resp.StatusCode)
	}

	creds := map[string]string{"email": "alice@example.com", "password": "another123"}
	if resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", creds); resp.StatusCode != http.StatusOK {
		t.Errorf("login with new password status = %d", resp.StatusCode)
	}
}

func TestViewersCannotModifyFiles(t *testing.T) {
	srv := newTestServerWithRole(t, user.RoleViewer)
	admin := login(t, srv.URL, "admin@example.com", "admin")
	viewer := login(t, srv.URL, "viewer@example.com", "viewer")

	if code := upload(t, srv.URL, admin, "a.txt", "data"); code != http.StatusOK {
		t.Fatalf("admin upload status = %d", code)
	}
	if code := upload(t, srv.URL, viewer, "a.txt", "data"); code != http.StatusForbidden {
		t.Errorf("viewer upload status = %d, want 403", code)
	}
	if resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/files/delete", viewer, map[string]string{"name": "a.txt"}); resp.StatusCode != http.StatusForbidden {
		t.Errorf("viewer delete status = %d, want 403", resp.StatusCode)
	}
	if resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/files", viewer, nil); resp.StatusCode != http.StatusOK {
		t.Errorf("viewer list status = %d, want 200", resp.StatusCode)
	}
}

func requestCount(t *testing.T, route, status string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != "filehub_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == route && labels["status"] == status {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestPanicsAreCountedAsServerErrors(t *testing.T) {
	r := newRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	before := requestCount(t, "/boom", "500")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := requestCount(t, "/boom", "500") - before; got != 1 {
		t.Errorf("500 count delta = %v, want 1", got)
	}
}
