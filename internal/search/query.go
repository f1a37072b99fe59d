// internal/search/query.go
package search

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	DefaultSize = 10
	MaxSize     = 50
)

type Query struct {
	Text  string `json:"query"`
	State string `json:"state,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Size  int    `json:"size,omitempty"`
}

type Hit struct {
	Document
	Score float64 `json:"score"`
}

type Result struct {
	Hits  []Hit `json:"hits"`
	Total int   `json:"total"`
}

// Search runs a full-text query over the catalog. State narrows results to
// entries for that state or for every state.
func (ix *Index) Search(ctx context.Context, q Query) (*Result, error) {
	body, err := json.Marshal(buildQuery(q))
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}
	size := clampSize(q.Size)

	res, err := esapi.SearchRequest{
		Index: []string{ix.name},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}.Do(ctx, ix.client)
	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewSearchTimeoutError()
		}
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errors.NewIndexNotFoundError(ix.name)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(stderrors.New(readError(res)))
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Score  float64  `json:"_score"`
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	out := &Result{Total: parsed.Hits.Total.Value, Hits: make([]Hit, 0, len(parsed.Hits.Hits))}
	for _, h := range parsed.Hits.Hits {
		out.Hits = append(out.Hits, Hit{Document: h.Source, Score: h.Score})
	}
	return out, nil
}

func buildQuery(q Query) map[string]interface{} {
	must := []interface{}{}
	filter := []interface{}{}

	if text := strings.TrimSpace(q.Text); text != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  text,
				"fields": []string{"name^3", "description^2", "eligibility", "category"},
				"type":   "best_fields",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	if state := strings.TrimSpace(q.State); state != "" {
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"states": []string{state, models.AllStates}},
		})
	}
	if kind := strings.TrimSpace(q.Kind); kind != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"kind": kind},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
	}
}

func clampSize(n int) int {
	switch {
	case n <= 0:
		return DefaultSize
	case n > MaxSize:
		return MaxSize
	default:
		return n
	}
}
