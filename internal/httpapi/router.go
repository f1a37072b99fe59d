// internal/httpapi/router.go
package httpapi

import (
	"net/http"

	"scholarship-workers/internal/common/logger"
)

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

// NewMux returns the API routes without middleware so the caller can mount
// extra handlers.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	limiter := NewClientLimiter(d.ChatRatePerSec, d.ChatBurst)
	ch := ChatHandler{Chat: d.Chat}
	mux.Handle("/api/chatbot", limiter.Middleware(methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ch.Post,
	})))

	wh := WelcomeHandler{Welcome: d.Welcome}
	mux.HandleFunc("/api/send-welcome-email", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: wh.Post,
	}))

	cat := CatalogHandler{Profiles: d.Profiles, Search: d.Search}
	mux.HandleFunc("/api/scholarships", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cat.Scholarships,
	}))
	mux.HandleFunc("/api/scholarships/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cat.SearchCatalog,
	}))
	mux.HandleFunc("/api/recommendations", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cat.Recommendations,
	}))

	return mux
}

// NewHandler wraps NewMux with request ids, panic recovery and access logs.
func NewHandler(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = logger.ForComponent(log, "http-api")
	return Chain(NewMux(d), RequestID, Recover(log), AccessLog(log))
}
