package panel

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func mustHandler(t *testing.T, dir string) http.Handler {
	t.Helper()
	h, err := Handler(dir)
	if err != nil {
		t.Fatalf("Handler(%q) error = %v", dir, err)
	}
	return h
}

func TestHandlerServesRoot(t *testing.T) {
	w := get(t, mustHandler(t, ""), "/")

	if w.Code != http.StatusOK {
		t.Errorf("GET /: got status %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<!DOCTYPE html>") {
		t.Error("GET /: response doesn't contain HTML doctype")
	}
	if w.Header().Get("Cache-Control") != "no-cache, must-revalidate" {
		t.Errorf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}
}

func TestHandlerServesStaticAssets(t *testing.T) {
	h := mustHandler(t, "")

	tests := map[string]string{
		"/app.js":    "timeline.changed",
		"/style.css": ".entry",
	}
	for path, want := range tests {
		w := get(t, h, path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: got status %d, want 200", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("GET %s: body missing %q", path, want)
		}
	}
}

func TestHandlerSPAFallback(t *testing.T) {
	h := mustHandler(t, "")

	for _, path := range []string{"/nonexistent", "/some/deep/route"} {
		w := get(t, h, path)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: got status %d, want 200 (index fallback)", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "<!DOCTYPE html>") {
			t.Errorf("GET %s: fallback didn't serve index.html", path)
		}
	}
}

func TestHandlerAPIPathsAreNotFound(t *testing.T) {
	h := mustHandler(t, "")

	for _, path := range []string{"/api", "/api/v2/devices", "/api/v1/unknown"} {
		if w := get(t, h, path); w.Code != http.StatusNotFound {
			t.Errorf("GET %s: got status %d, want 404", path, w.Code)
		}
	}
}

func TestHandlerFilesystemMode(t *testing.T) {
	dir := t.TempDir()
	indexContent := `<!DOCTYPE html><html><body>filesystem timeline</body></html>`
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexContent), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "test.js"), []byte("console.log('test')"), 0644); err != nil {
		t.Fatal(err)
	}

	h := mustHandler(t, dir)

	if w := get(t, h, "/"); !strings.Contains(w.Body.String(), "filesystem timeline") {
		t.Errorf("filesystem GET /: expected filesystem content, got %q", w.Body.String())
	}
	if w := get(t, h, "/test.js"); w.Code != http.StatusOK {
		t.Errorf("filesystem GET /test.js: got status %d, want 200", w.Code)
	}
	if w := get(t, h, "/deep/route"); !strings.Contains(w.Body.String(), "filesystem timeline") {
		t.Error("filesystem fallback didn't serve filesystem index.html")
	}
}

func TestHandlerInvalidDirFallsBackToEmbed(t *testing.T) {
	w := get(t, mustHandler(t, "/nonexistent/dir/that/does/not/exist"), "/")

	if w.Code != http.StatusOK {
		t.Errorf("invalid dir GET /: got status %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Device Timeline") {
		t.Error("invalid dir should serve the embedded page")
	}
}
