// internal/search/search_test.go
package search

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/models"
	"scholarship-workers/internal/scholarship"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeES records requests and answers the handful of endpoints the index uses.
type fakeES struct {
	mu          sync.Mutex
	exists      bool
	created     bool
	bulkLines   int
	searchBody  map[string]interface{}
	searchPath  string
	searchState int
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodHead:
		if f.exists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut:
		f.created = true
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		sc := bufio.NewScanner(r.Body)
		sc.Buffer(make([]byte, 1<<20), 1<<20)
		items := []string{}
		for sc.Scan() {
			f.bulkLines++
			if f.bulkLines%2 == 1 {
				items = append(items, `{"index":{"status":201}}`)
			}
		}
		_, _ = w.Write([]byte(`{"errors":false,"items":[` + strings.Join(items, ",") + `]}`))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		f.searchPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&f.searchBody)
		if f.searchState != 0 {
			w.WriteHeader(f.searchState)
			_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":1},"hits":[{"_score":2.5,"_source":{"id":"bihar","kind":"portal","name":"Bihar Scholarship Portal","url":"https://scholarship.bih.nic.in","jurisdiction":"State","states":["Bihar"]}}]}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestIndex(t *testing.T, f *fakeES) *Index {
	t.Helper()
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return NewIndex(client, "scholarships", logger.NewTestLogger(t))
}

func TestIndex_EnsureIndex(t *testing.T) {
	f := &fakeES{}
	ix := newTestIndex(t, f)

	require.NoError(t, ix.EnsureIndex(context.Background()))
	assert.True(t, f.created)

	f.created = false
	f.exists = true
	require.NoError(t, ix.EnsureIndex(context.Background()))
	assert.False(t, f.created)
}

func TestIndex_SyncCatalog(t *testing.T) {
	f := &fakeES{}
	ix := newTestIndex(t, f)
	entries := scholarship.Entries()

	n, err := ix.Sync(context.Background(), entries)

	require.NoError(t, err)
	assert.Equal(t, len(entries), n)
	assert.Equal(t, 2*len(entries), f.bulkLines)
}

func TestIndex_Search(t *testing.T) {
	f := &fakeES{}
	ix := newTestIndex(t, f)

	res, err := ix.Search(context.Background(), Query{Text: "bihar", State: "Bihar", Kind: "portal"})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "Bihar Scholarship Portal", res.Hits[0].Name)
	assert.Equal(t, 2.5, res.Hits[0].Score)
	assert.Equal(t, "/scholarships/_search", f.searchPath)

	raw, _ := json.Marshal(f.searchBody)
	assert.Contains(t, string(raw), `"states":["Bihar","ALL"]`)
	assert.Contains(t, string(raw), `"kind":"portal"`)
}

func TestIndex_SearchMissingIndex(t *testing.T) {
	f := &fakeES{searchState: http.StatusNotFound}
	ix := newTestIndex(t, f)

	_, err := ix.Search(context.Background(), Query{Text: "nsp"})

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIndexNotFound, errors.Normalize(err).Code)
}

func TestNewDocument(t *testing.T) {
	d := NewDocument(models.ScholarshipEntry(models.IndividualScholarship{
		ID: "tata", Name: "Tata Trusts Scholarship", Jurisdiction: models.JurisdictionPrivate, Category: "Merit",
	}))

	assert.Equal(t, []string{models.AllStates}, d.States)
	assert.Equal(t, "individual", d.Kind)
	assert.Equal(t, "Merit", d.Category)
}

func TestClampSize(t *testing.T) {
	assert.Equal(t, DefaultSize, clampSize(0))
	assert.Equal(t, 5, clampSize(5))
	assert.Equal(t, MaxSize, clampSize(500))
}
