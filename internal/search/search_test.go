package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/post_shop/internal/models"
)

type fakeES struct {
	mu      sync.Mutex
	indexed []string
	query   map[string]any
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case strings.HasPrefix(r.URL.Path, "/posts/_doc/"):
		f.indexed = append(f.indexed, strings.TrimPrefix(r.URL.Path, "/posts/_doc/"))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case r.URL.Path == "/posts/_search":
		_ = json.NewDecoder(r.Body).Decode(&f.query)
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_source":{"postId":4,"title":"title D"}},{"_source":{"postId":2,"title":"title B"}}]}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{}`)
	}
}

func newTestIndex(t *testing.T) (*ESIndex, *fakeES) {
	t.Helper()

	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	idx, err := NewClient(context.Background(), Config{URL: srv.URL, Index: "posts"})
	require.NoError(t, err)
	return idx, fake
}

func TestESIndex_IndexPosts(t *testing.T) {
	idx, fake := newTestIndex(t)

	err := idx.IndexPosts(context.Background(), []models.Post{
		{PostID: 1, Title: "title A"},
		{PostID: 2, Title: "title B"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, fake.indexed)
}

func TestESIndex_SearchPostIDs(t *testing.T) {
	idx, fake := newTestIndex(t)

	ids, err := idx.SearchPostIDs(context.Background(), "title")
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 2}, ids)

	mm := fake.query["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "title", mm["query"])
}

func TestNewClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(context.Background(), Config{URL: srv.URL, Index: "posts"})
	require.Error(t, err)
}
