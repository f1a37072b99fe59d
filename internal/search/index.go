// internal/search/index.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Document is the indexed form of one catalog entry. Entries without a
// state restriction are indexed under models.AllStates.
type Document struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	URL          string   `json:"url"`
	Jurisdiction string   `json:"jurisdiction"`
	States       []string `json:"states"`
	Eligibility  string   `json:"eligibility,omitempty"`
	Category     string   `json:"category,omitempty"`
}

func NewDocument(e models.CatalogEntry) Document {
	d := Document{
		ID:           e.ID(),
		Kind:         string(e.Kind),
		Name:         e.Name(),
		Description:  e.Description(),
		URL:          e.URL(),
		Jurisdiction: string(e.Jurisdiction()),
		States:       e.States(),
	}
	if e.Portal != nil {
		d.Eligibility = e.Portal.Eligibility
	}
	if e.Scholarship != nil {
		d.Category = e.Scholarship.Category
	}
	if len(d.States) == 0 {
		d.States = []string{models.AllStates}
	}
	return d
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "kind":         {"type": "keyword"},
      "name":         {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description":  {"type": "text"},
      "url":          {"type": "keyword", "index": false},
      "jurisdiction": {"type": "keyword"},
      "states":       {"type": "keyword"},
      "eligibility":  {"type": "text"},
      "category":     {"type": "keyword"}
    }
  }
}`

// Index owns one Elasticsearch index holding the scholarship catalog.
type Index struct {
	client *elasticsearch.Client
	name   string
	logger logger.Logger
}

func NewIndex(client *elasticsearch.Client, name string, log logger.Logger) *Index {
	return &Index{
		client: client,
		name:   name,
		logger: logger.ForComponent(log, "catalog-index"),
	}
}

func (ix *Index) Name() string { return ix.name }

// EnsureIndex creates the index with its mapping when it does not exist.
func (ix *Index) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{ix.name}}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("check index %s: %w", ix.name, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{
		Index: ix.name,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("create index %s: %w", ix.name, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", ix.name, readError(res))
	}

	ix.logger.Info("catalog index created", map[string]interface{}{"index": ix.name})
	return nil
}

// Sync bulk-indexes entries, replacing documents with the same id.
func (ix *Index) Sync(ctx context.Context, entries []models.CatalogEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, e := range entries {
		doc := NewDocument(e)
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": ix.name, "_id": doc.ID}}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(doc); err != nil {
			return 0, err
		}
	}

	res, err := esapi.BulkRequest{Body: &body, Refresh: "true"}.Do(ctx, ix.client)
	if err != nil {
		return 0, fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("bulk index: %s", readError(res))
	}

	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}

	indexed := 0
	for _, item := range parsed.Items {
		for _, r := range item {
			if r.Status < 300 {
				indexed++
			}
		}
	}
	if parsed.Errors {
		ix.logger.Warn("some catalog documents failed to index", map[string]interface{}{
			"indexed": indexed,
			"total":   len(entries),
		})
	}
	return indexed, nil
}

func readError(res *esapi.Response) string {
	b, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	return fmt.Sprintf("%s %s", res.Status(), strings.TrimSpace(string(b)))
}
