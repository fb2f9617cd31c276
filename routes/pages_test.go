package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chicknext/chicknext/config"
	"github.com/chicknext/chicknext/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
	utils.Sugar = utils.Logger.Sugar()
	os.Exit(m.Run())
}

func newWebRouter(t *testing.T) (*gin.Engine, *utils.SessionStore) {
	t.Helper()

	pagesDir := t.TempDir()
	for name, body := range map[string]string{
		"Home.html":  "<h1>home</h1>",
		"admin.html": "<h1>admin console</h1>",
	} {
		if err := os.WriteFile(filepath.Join(pagesDir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write page %s error: %v", name, err)
		}
	}

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "site.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatalf("write asset error: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run error: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	sessions := utils.NewSessionStore(rdb, utils.SessionTTL)

	cfg := config.AppConfig{
		PagesDir:   pagesDir,
		StaticDirs: []string{staticDir},
		GinMode:    "test",
		GinPath:    filepath.Join(t.TempDir(), "access.log"),
		LogLevel:   "info",
	}
	return SetupWebRouter(cfg, sessions), sessions
}

func TestWebRouter_ServesHomePage(t *testing.T) {
	r, _ := newWebRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != "<h1>home</h1>" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestAdminPage_WithoutCookieRedirectsToRoot(t *testing.T) {
	r, _ := newWebRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect location = %q, want /", loc)
	}
}

func TestAdminPage_WithUnknownTokenRedirects(t *testing.T) {
	r, _ := newWebRouter(t)

	// A cookie whose token the store has never issued is as good as none.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "cookie", Value: "forged-token"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("redirect location = %q, want /", loc)
	}
}

func TestAdminPage_WithValidTokenServesPage(t *testing.T) {
	r, sessions := newWebRouter(t)

	token, err := sessions.Create(context.Background(), "ada")
	if err != nil {
		t.Fatalf("session create error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "cookie", Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %q", w.Code, w.Body.String())
	}
	if w.Body.String() != "<h1>admin console</h1>" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestStaticFallthrough_ServesAsset(t *testing.T) {
	r, _ := newWebRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/site.css", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != "body{}" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestStaticFallthrough_UnknownPathIs404(t *testing.T) {
	r, _ := newWebRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-such-asset.css", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestStaticFallthrough_TraversalStaysInsideRoots(t *testing.T) {
	r, _ := newWebRouter(t)

	// Dot segments are collapsed before probing, so a climbing path can
	// only resolve inside the configured roots.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x/", nil)
	req.URL.Path = "/x/../../outside.txt"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestStaticFallthrough_NonGETIs404(t *testing.T) {
	r, _ := newWebRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/site.css", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
