package museum

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"museumhub/internal/imagecheck"
	"museumhub/pkg/models"
	"museumhub/pkg/utils"
)

// brokenImages rejects every URL containing "broken".
var brokenImages = imagecheck.CheckerFunc(func(_ context.Context, u string) bool {
	return u != "" && !strings.Contains(u, "broken")
})

type fakeAIC struct {
	mu      sync.Mutex
	listed  []AICRecord
	details map[int]AICRecord
	// fail maps an id to the statuses returned, in order, before success.
	fail    map[int][]int
	queries []url.Values
	hits    int
}

func newFakeAIC() *fakeAIC {
	return &fakeAIC{details: map[int]AICRecord{}, fail: map[int][]int{}}
}

func (f *fakeAIC) add(r AICRecord) {
	f.listed = append(f.listed, r)
	f.details[r.ID] = r
}

func (f *fakeAIC) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits++
	f.queries = append(f.queries, r.URL.Query())

	path := strings.TrimPrefix(r.URL.Path, "/")
	switch {
	case path == "":
		writeJSON(w, AICListResponse{})
	case path == "search":
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		start := min(offset, len(f.listed))
		end := min(start+limit, len(f.listed))
		writeJSON(w, AICListResponse{Data: f.listed[start:end], Pagination: AICPagination{Total: len(f.listed), Limit: limit, Offset: offset}})
	default:
		id, err := strconv.Atoi(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if statuses := f.fail[id]; len(statuses) > 0 {
			f.fail[id] = statuses[1:]
			w.WriteHeader(statuses[0])
			return
		}
		rec, ok := f.details[id]
		if !ok {
			http.Error(w, `{"status":404,"error":"Not found"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, AICDetailResponse{Data: rec})
	}
}

func (f *fakeAIC) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

type fakeMet struct {
	mu      sync.Mutex
	ids     map[string][]int // query -> ids
	objects map[int]MetRecord
	fail    map[int][]int
	hits    int
}

func newFakeMet() *fakeMet {
	return &fakeMet{ids: map[string][]int{}, objects: map[int]MetRecord{}, fail: map[int][]int{}}
}

func (f *fakeMet) add(query string, r MetRecord) {
	f.ids[query] = append(f.ids[query], r.ObjectID)
	f.objects[r.ObjectID] = r
}

func (f *fakeMet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits++

	switch {
	case r.URL.Path == "/departments":
		writeJSON(w, map[string]any{"departments": []map[string]any{{"departmentId": 11, "displayName": "European Paintings"}}})
	case r.URL.Path == "/search":
		ids := f.ids[r.URL.Query().Get("q")]
		writeJSON(w, MetSearchResponse{Total: len(ids), ObjectIDs: ids})
	case strings.HasPrefix(r.URL.Path, "/objects/"):
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/objects/"))
		if err != nil {
			writeJSON(w, map[string]string{"message": metInvalidObject})
			return
		}
		if statuses := f.fail[id]; len(statuses) > 0 {
			f.fail[id] = statuses[1:]
			w.WriteHeader(statuses[0])
			return
		}
		rec, ok := f.objects[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			writeJSON(w, map[string]string{"message": "ObjectID not found"})
			return
		}
		writeJSON(w, rec)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeMet) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func aicRecord(id int, imageID string, public bool) AICRecord {
	return AICRecord{
		ID:             id,
		Title:          "AIC " + strconv.Itoa(id),
		ArtistDisplay:  "Artist " + strconv.Itoa(id),
		ImageID:        imageID,
		DateDisplay:    "1890",
		IsPublicDomain: public,
		CategoryTitles: models.StringList{"Painting"},
	}
}

func metRecord(id int, image string, public bool) MetRecord {
	return MetRecord{
		ObjectID:          id,
		IsPublicDomain:    public,
		PrimaryImage:      image,
		PrimaryImageSmall: image,
		Title:             "Met " + strconv.Itoa(id),
		ArtistDisplayName: "Artist " + strconv.Itoa(id),
		ObjectDate:        "1875",
		Classification:    "Paintings",
		ObjectURL:         "https://www.metmuseum.org/art/collection/search/" + strconv.Itoa(id),
	}
}

func startAIC(t *testing.T, f *fakeAIC) *AIC {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewAIC(Options{BaseURL: srv.URL, Checker: brokenImages, Logger: utils.DiscardLogger()})
}

func startMet(t *testing.T, f *fakeMet) *Met {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewMet(Options{BaseURL: srv.URL, Checker: brokenImages, Logger: utils.DiscardLogger()})
}

func ids(arts []models.Artwork) []string {
	out := make([]string, len(arts))
	for i, a := range arts {
		out[i] = a.ID
	}
	return out
}
