// internal/httpapi/handlers.go
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"scholarship-workers/internal/models"
	"scholarship-workers/internal/notify"
	"scholarship-workers/internal/profile"
	"scholarship-workers/internal/scholarship"
	"scholarship-workers/internal/search"
)

const maxBodyBytes = 64 << 10

type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}

type chatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
	Source  string `json:"source"`
}

type ChatHandler struct {
	Chat ChatReplier
}

func (h ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "Message is required")
		return
	}

	reply := h.Chat.Reply(r.Context(), req.Message, req.UserID)
	WriteJSON(w, http.StatusOK, chatResponse{
		Success: true,
		Message: reply.Text,
		Link:    reply.Link,
		Source:  reply.Source,
	})
}

type welcomeRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type WelcomeHandler struct {
	Welcome WelcomeSender
}

func (h WelcomeHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req welcomeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "Email is required")
		return
	}

	res, err := h.Welcome.Send(r.Context(), notify.Recipient{
		Email:       req.Email,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Welcome email sent successfully",
		"messageId": res.MessageID,
		"smsSent":   res.SMSSent,
	})
}

type CatalogHandler struct {
	Profiles profile.Loader
	Search   Searcher
}

// Scholarships lists portals and individual scholarships in priority order
// for the optional state. type narrows portals to one jurisdiction and
// scope=local drops portals that do not serve the state.
func (h CatalogHandler) Scholarships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := strings.TrimSpace(q.Get("state"))

	portals := scholarship.Portals()
	if q.Get("scope") == "local" {
		if state == "" {
			WriteError(w, r, http.StatusBadRequest, "invalid_input", "state is required for local scope")
			return
		}
		portals = scholarship.PortalsByState(state)
	}
	if t := strings.TrimSpace(q.Get("type")); t != "" {
		j, ok := parseJurisdiction(t)
		if !ok {
			WriteError(w, r, http.StatusBadRequest, "invalid_input", "type must be Central, State or Private")
			return
		}
		portals = intersectPortals(portals, scholarship.PortalsByType(j))
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"state":        state,
		"portals":      scholarship.OrderPortals(portals, state),
		"scholarships": scholarship.OrderScholarships(scholarship.IndividualScholarships(), state),
	})
}

func parseJurisdiction(s string) (models.Jurisdiction, bool) {
	for _, j := range []models.Jurisdiction{models.JurisdictionCentral, models.JurisdictionState, models.JurisdictionPrivate} {
		if strings.EqualFold(s, string(j)) {
			return j, true
		}
	}
	return "", false
}

func intersectPortals(base, keep []models.Portal) []models.Portal {
	ids := make(map[string]bool, len(keep))
	for _, p := range keep {
		ids[p.ID] = true
	}
	out := make([]models.Portal, 0, len(keep))
	for _, p := range base {
		if ids[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

func (h CatalogHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	uid := strings.TrimSpace(r.URL.Query().Get("userId"))
	if uid == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_input", "userId is required")
		return
	}

	p, err := h.Profiles.Get(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"userId":          uid,
		"state":           p.State,
		"recommendations": scholarship.Recommend(p),
	})
}

func (h CatalogHandler) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	if h.Search == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "search_disabled", "catalog search is not configured")
		return
	}

	q := r.URL.Query()
	size, _ := strconv.Atoi(q.Get("size"))
	res, err := h.Search.Search(r.Context(), search.Query{
		Text:  q.Get("q"),
		State: q.Get("state"),
		Kind:  q.Get("kind"),
		Size:  size,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}
