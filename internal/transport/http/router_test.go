package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vialtyfake/vialty-blog/internal/config"
	"github.com/vialtyfake/vialty-blog/internal/images"
	"github.com/vialtyfake/vialty-blog/internal/models"
	"github.com/vialtyfake/vialty-blog/internal/store"
)

const (
	adminIP    = "127.0.0.1"
	strangerIP = "198.51.100.77"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (Router, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	logger := zap.NewNop()
	imgs := images.NewService(images.NewMemStorage(), logger)
	r := NewRouter(&config.Config{Port: "0"}, logger, st, imgs)
	return r, st
}

// do runs one request against the router, optionally as the given caller IP.
func do(t *testing.T, r Router, method, target, ip string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestCreateThenFetchPost(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, "POST", "/api/posts", adminIP, map[string]any{
		"title":   "A",
		"content": "B",
		"tags":    []string{"x"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d body %s", w.Code, w.Body.String())
	}
	created := decode[models.Post](t, w)
	if created.ID == "" || created.CreatedAt.IsZero() || !created.IsPublished {
		t.Fatalf("defaults not applied: %+v", created)
	}

	w = do(t, r, "GET", "/api/posts", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	posts := decode[[]models.Post](t, w)
	if len(posts) != 1 || posts[0].ID != created.ID {
		t.Fatalf("created post missing from public list: %+v", posts)
	}
}

func TestUnauthorizedAdminActionLeavesCollectionUnchanged(t *testing.T) {
	r, st := newTestServer(t)

	w := do(t, r, "POST", "/api/posts", adminIP, map[string]any{"title": "keep me"})
	if w.Code != http.StatusCreated {
		t.Fatalf("seed post: %d", w.Code)
	}
	created := decode[models.Post](t, w)

	for _, tc := range []struct{ method, target string }{
		{"DELETE", "/api/admin-posts?id=" + created.ID},
		{"GET", "/api/admin-posts"},
		{"POST", "/api/posts"},
		{"GET", "/api/admin-ips"},
		{"GET", "/api/stats"},
		{"POST", "/api/admin-images"},
	} {
		w = do(t, r, tc.method, tc.target, strangerIP, map[string]any{})
		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s from stranger = %d, want 403", tc.method, tc.target, w.Code)
		}
	}

	posts, _ := store.ReadCollection[models.Post](context.Background(), st, store.KeyPosts)
	if len(posts) != 1 {
		t.Fatalf("collection changed by denied request: %+v", posts)
	}
}

func TestAdminCheck(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, "GET", "/api/admin-check", adminIP, nil)
	res := decode[map[string]any](t, w)
	if res["isAdmin"] != true || res["ip"] != adminIP {
		t.Fatalf("admin caller: %v", res)
	}

	w = do(t, r, "GET", "/api/admin-check", "::ffff:"+strangerIP, nil)
	res = decode[map[string]any](t, w)
	if res["isAdmin"] != false || res["ip"] != strangerIP {
		t.Fatalf("stranger (prefix normalized): %v", res)
	}
}

func TestUpdateAndDeletePost(t *testing.T) {
	r, _ := newTestServer(t)

	created := decode[models.Post](t, do(t, r, "POST", "/api/posts", adminIP,
		map[string]any{"title": "v1", "content": "body"}))

	w := do(t, r, "PUT", "/api/admin-posts?id="+created.ID, adminIP,
		map[string]any{"title": "v2", "is_published": false})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	updated := decode[models.Post](t, w)
	if updated.Title != "v2" || updated.Content != "body" || updated.IsPublished {
		t.Fatalf("merge: %+v", updated)
	}

	if w := do(t, r, "PUT", "/api/admin-posts?id=missing", adminIP, map[string]any{"title": "x"}); w.Code != http.StatusNotFound {
		t.Fatalf("update missing id = %d", w.Code)
	}
	if w := do(t, r, "PUT", "/api/admin-posts", adminIP, map[string]any{"title": "x"}); w.Code != http.StatusBadRequest {
		t.Fatalf("update without id = %d", w.Code)
	}

	// Unpublished post is hidden from the public list but visible to admin.
	if posts := decode[[]models.Post](t, do(t, r, "GET", "/api/posts", "", nil)); len(posts) != 0 {
		t.Fatalf("draft leaked publicly: %+v", posts)
	}
	if posts := decode[[]models.Post](t, do(t, r, "GET", "/api/admin-posts", adminIP, nil)); len(posts) != 1 {
		t.Fatalf("admin list: %+v", posts)
	}

	w = do(t, r, "DELETE", "/api/admin-posts?id="+created.ID, adminIP, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	// Idempotent delete.
	if w := do(t, r, "DELETE", "/api/admin-posts?id="+created.ID, adminIP, nil); w.Code != http.StatusOK {
		t.Fatalf("second delete: %d", w.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	_ = do(t, r, "POST", "/api/posts", adminIP, map[string]any{"title": "Go notes", "content": "channels"})

	if w := do(t, r, "GET", "/api/search?q=a", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("1-char query = %d, want 400", w.Code)
	}
	w := do(t, r, "GET", "/api/search?q=zz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("no-match query = %d", w.Code)
	}
	if results := decode[[]models.Post](t, w); len(results) != 0 {
		t.Fatalf("no-match results: %+v", results)
	}
	w = do(t, r, "GET", "/api/search?q=chan", "", nil)
	if results := decode[[]models.Post](t, w); len(results) != 1 {
		t.Fatalf("match results: %+v", results)
	}
}

func TestViewsEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	created := decode[models.Post](t, do(t, r, "POST", "/api/posts", adminIP, map[string]any{"title": "p"}))

	if w := do(t, r, "POST", "/api/views", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("missing postId = %d", w.Code)
	}

	w := do(t, r, "POST", "/api/views?postId="+created.ID, "", nil)
	if res := decode[map[string]int64](t, w); res["views"] != 1 {
		t.Fatalf("first view = %v", res)
	}
	w = do(t, r, "POST", "/api/views?postId="+created.ID, "", nil)
	if res := decode[map[string]int64](t, w); res["views"] != 2 {
		t.Fatalf("second view = %v", res)
	}
	w = do(t, r, "GET", "/api/views?postId="+created.ID, "", nil)
	if res := decode[map[string]int64](t, w); res["views"] != 2 {
		t.Fatalf("read view = %v", res)
	}
}

func TestProjectsEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(t, r, "POST", "/api/admin-projects", adminIP, map[string]any{
		"title": "vialty", "role": "author", "stack": "go",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project: %d %s", w.Code, w.Body.String())
	}
	created := decode[models.Project](t, w)

	// Projects are publicly listed.
	projects := decode[[]models.Project](t, do(t, r, "GET", "/api/projects", "", nil))
	if len(projects) != 1 || projects[0].ID != created.ID {
		t.Fatalf("public projects: %+v", projects)
	}

	w = do(t, r, "PUT", "/api/admin-projects?id="+created.ID, adminIP, map[string]any{"link": "https://example.com"})
	if updated := decode[models.Project](t, w); updated.Link != "https://example.com" || updated.Title != "vialty" {
		t.Fatalf("update project: %+v", updated)
	}

	if w := do(t, r, "DELETE", "/api/admin-projects?id="+created.ID, adminIP, nil); w.Code != http.StatusOK {
		t.Fatalf("delete project: %d", w.Code)
	}
}

func TestAdminIPsEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	entries := decode[[]models.AllowListEntry](t, do(t, r, "GET", "/api/admin-ips", adminIP, nil))
	if len(entries) != 2 {
		t.Fatalf("seeded entries: %+v", entries)
	}

	w := do(t, r, "POST", "/api/admin-ips", adminIP, map[string]any{"ip_address": strangerIP, "name": "office"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add ip: %d %s", w.Code, w.Body.String())
	}
	added := decode[models.AllowListEntry](t, w)

	// The new address can now perform admin calls.
	if w := do(t, r, "GET", "/api/admin-posts", strangerIP, nil); w.Code != http.StatusOK {
		t.Fatalf("newly added ip denied: %d", w.Code)
	}

	if w := do(t, r, "DELETE", "/api/admin-ips?id="+added.ID, adminIP, nil); w.Code != http.StatusOK {
		t.Fatalf("remove ip: %d", w.Code)
	}
	if w := do(t, r, "GET", "/api/admin-posts", strangerIP, nil); w.Code != http.StatusForbidden {
		t.Fatalf("removed ip still allowed: %d", w.Code)
	}

	if w := do(t, r, "POST", "/api/admin-ips", adminIP, map[string]any{"name": "no ip"}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty ip_address = %d", w.Code)
	}
}

func TestImageEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	img := imaging.New(8, 8, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatal(err)
	}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	w := do(t, r, "POST", "/api/admin-images", adminIP, map[string]any{
		"name": "../../etc/passwd.png",
		"data": payload,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}
	asset := decode[images.Asset](t, w)
	if asset.Name != "etcpasswd.png" {
		t.Fatalf("sanitized name = %q", asset.Name)
	}

	list := decode[[]images.Asset](t, do(t, r, "GET", "/api/admin-images", adminIP, nil))
	if len(list) != 1 || list[0].Name != "etcpasswd.png" {
		t.Fatalf("list: %+v", list)
	}

	w = do(t, r, "PUT", "/api/admin-images", adminIP, map[string]any{
		"oldName": "etcpasswd.png", "newName": "avatar.png",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("rename: %d %s", w.Code, w.Body.String())
	}

	if w := do(t, r, "DELETE", "/api/admin-images?name=avatar.png", adminIP, nil); w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	if w := do(t, r, "DELETE", "/api/admin-images?name=avatar.png", adminIP, nil); w.Code != http.StatusNotFound {
		t.Fatalf("delete missing = %d, want 404", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r, _ := newTestServer(t)
	if w := do(t, r, "PATCH", "/api/posts", adminIP, nil); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PATCH /api/posts = %d, want 405", w.Code)
	}
}
