package exhibition

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"museumhub/pkg/models"
)

func newRouter(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, _ := newTestStore(t, nil)
	r := gin.New()
	NewHandler(s).RegisterRoutes(r.Group("/exhibitions"))
	return r, s
}

func do(r http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ExhibitionLifecycle(t *testing.T) {
	r, _ := newRouter(t)

	w := do(r, http.MethodPost, "/exhibitions", map[string]string{"title": "Sea & Sky"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: want 201, got %d: %s", w.Code, w.Body)
	}
	var ex models.Exhibition
	if err := json.Unmarshal(w.Body.Bytes(), &ex); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ex.Slug != "sea-sky" || ex.ID == "" {
		t.Fatalf("unexpected exhibition %+v", ex)
	}

	art := map[string]any{
		"id":           "27992",
		"title":        "A Sunday on La Grande Jatte",
		"image":        map[string]string{"imageURL": "https://img/27992.jpg"},
		"styles":       "Painting",
		"museumSource": "aic",
		"note":         "centerpiece",
	}
	if w := do(r, http.MethodPost, "/exhibitions/"+ex.ID+"/artworks", art); w.Code != http.StatusCreated {
		t.Fatalf("add: want 201, got %d: %s", w.Code, w.Body)
	}
	if w := do(r, http.MethodPost, "/exhibitions/"+ex.ID+"/artworks", art); w.Code != http.StatusConflict {
		t.Fatalf("duplicate add: want 409, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/exhibitions/selected/artworks", art); w.Code != http.StatusCreated {
		t.Fatalf("add selected: want 201, got %d: %s", w.Code, w.Body)
	}

	w = do(r, http.MethodGet, "/exhibitions/"+ex.Slug, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by slug: want 200, got %d", w.Code)
	}
	var got models.Exhibition
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Artworks) != 1 || got.Artworks[0].Note != "centerpiece" || got.Artworks[0].Styles.String() != "Painting" {
		t.Fatalf("unexpected artworks %+v", got.Artworks)
	}

	w = do(r, http.MethodGet, "/exhibitions/selected", nil)
	var sel struct {
		Items []models.ExhibitionArtwork `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &sel); err != nil || len(sel.Items) != 1 {
		t.Fatalf("selected: %s, %v", w.Body, err)
	}

	if w := do(r, http.MethodDelete, "/exhibitions/artworks/aic/27992", nil); w.Code != http.StatusOK {
		t.Fatalf("remove artwork: want 200, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/exhibitions/artworks/aic/27992", nil); w.Code != http.StatusNotFound {
		t.Fatalf("remove again: want 404, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/exhibitions/artworks/louvre/1", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown source: want 400, got %d", w.Code)
	}

	if w := do(r, http.MethodDelete, "/exhibitions/"+ex.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/exhibitions/"+ex.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("get deleted: want 404, got %d", w.Code)
	}
}

func TestHandler_Validation(t *testing.T) {
	r, _ := newRouter(t)

	if w := do(r, http.MethodPost, "/exhibitions", map[string]string{"title": ""}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty title: want 400, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/exhibitions/nope/artworks", map[string]string{"id": "1", "museumSource": "met"}); w.Code != http.StatusNotFound {
		t.Fatalf("unknown exhibition: want 404, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/exhibitions/selected/artworks", map[string]string{"id": "1"}); w.Code != http.StatusBadRequest {
		t.Fatalf("missing source: want 400, got %d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/exhibitions/nope", nil); w.Code != http.StatusNotFound {
		t.Fatalf("delete unknown: want 404, got %d", w.Code)
	}
}
