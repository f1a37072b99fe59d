// internal/workers/search/search-scholarships/models.go
package searchscholarships

import "scholarship-workers/internal/search"

type Input struct {
	Query string `json:"query"`
	State string `json:"state,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Size  int    `json:"size,omitempty"`
}

type Output struct {
	Hits  []search.Hit `json:"hits"`
	Total int          `json:"total"`
}
