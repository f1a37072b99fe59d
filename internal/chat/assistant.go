// internal/chat/assistant.go
package chat

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/models"
	"scholarship-workers/internal/scholarship"
)

const (
	MessageGreeting = "Hello! 👋 I'm your scholarship advisor. I can help you:\n\n" +
		"• Find scholarships based on your state\n" +
		"• Show you state, central, and private scholarships in order\n" +
		"• Provide direct links to application portals\n" +
		"• Answer questions about eligibility and requirements\n\n" +
		"How can I assist you today?"
	MessageAPINotConfigured = "OpenAI API is not configured. Please contact support."
	MessageRateLimit        = "OpenAI API rate limit exceeded. Please try again later."
	MessageError            = "Sorry, I encountered an error. Please try again."
	MessageNoResponse       = "I'm sorry, I couldn't generate a response."
)

// Reply sources.
const (
	SourceLink     = "link"
	SourceCatalog  = "catalog"
	SourceGenAI    = "genai"
	SourceFallback = "fallback"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

type Reply struct {
	Text   string `json:"reply"`
	Link   string `json:"link,omitempty"`
	Source string `json:"source"`
}

// ProfileLoader resolves the student's state for a user id.
type ProfileLoader interface {
	Get(ctx context.Context, uid string) (*models.StudentProfile, error)
}

// Assistant answers chat messages from the local catalog where it can and
// from the generative API otherwise.
type Assistant struct {
	genai    Completer
	profiles ProfileLoader
	logger   logger.Logger
}

func NewAssistant(genai Completer, profiles ProfileLoader, log logger.Logger) *Assistant {
	return &Assistant{
		genai:    genai,
		profiles: profiles,
		logger:   logger.ForComponent(log, "chat-assistant"),
	}
}

type intent struct {
	link        bool
	scholarship bool
	needsGenAI  bool
}

func classify(message string) intent {
	m := strings.ToLower(message)
	has := func(s string) bool { return strings.Contains(m, s) }

	var in intent
	in.link = has("link") || has("url") || (has("apply") && has("keliye"))
	in.scholarship = has("scholarship") || has("show me") || has("find") || has("recommend") || has("available")
	in.needsGenAI = !in.scholarship || in.link || has("apply") || has("credit") || has("loan")
	return in
}

// Reply never fails; problems downgrade to fallback text.
func (a *Assistant) Reply(ctx context.Context, message, userID string) Reply {
	message = strings.TrimSpace(message)
	in := classify(message)

	if in.link {
		if url, ok := scholarship.ResolveLink(message); ok {
			metrics.LinkResolutions.WithLabelValues("resolved").Inc()
			return a.done(Reply{Text: url, Link: url, Source: SourceLink})
		}
		metrics.LinkResolutions.WithLabelValues("unresolved").Inc()
	}

	state := a.stateFor(ctx, userID)
	if in.scholarship && (state == "" || !in.needsGenAI) {
		return a.done(Reply{Text: scholarship.FormatPriorityList(state), Source: SourceCatalog})
	}

	if a.genai == nil {
		return a.done(a.fallback(message, in, errors.NewLLMNotConfiguredError()))
	}

	text, err := a.genai.Complete(ctx, systemPrompt(in.link, state), message)
	if err != nil {
		a.logger.Warn("generative reply failed, using fallback", map[string]interface{}{
			"error": err.Error(),
			"link":  in.link,
		})
		return a.done(a.fallback(message, in, err))
	}

	if in.link {
		if url := urlPattern.FindString(text); url != "" {
			return a.done(Reply{Text: url, Link: url, Source: SourceGenAI})
		}
		url := linkFallback(message)
		return a.done(Reply{Text: url, Link: url, Source: SourceFallback})
	}
	return a.done(Reply{Text: text, Source: SourceGenAI})
}

func (a *Assistant) done(r Reply) Reply {
	metrics.ChatReplies.WithLabelValues(r.Source).Inc()
	return r
}

func (a *Assistant) stateFor(ctx context.Context, userID string) string {
	if userID == "" || a.profiles == nil {
		return ""
	}
	p, err := a.profiles.Get(ctx, userID)
	if err != nil || p == nil {
		return ""
	}
	return strings.TrimSpace(p.State)
}

func (a *Assistant) fallback(message string, in intent, err error) Reply {
	if in.link {
		url := linkFallback(message)
		return Reply{Text: url, Link: url, Source: SourceFallback}
	}

	var stdErr *errors.StandardError
	switch {
	case stderrors.As(err, &stdErr) && stdErr.Code == errors.ErrCodeLLMNotConfigured:
		return Reply{Text: MessageAPINotConfigured, Source: SourceFallback}
	case stderrors.Is(err, ErrRateLimited):
		return Reply{Text: MessageRateLimit, Source: SourceFallback}
	case isGreeting(message):
		return Reply{Text: MessageGreeting, Source: SourceFallback}
	default:
		return Reply{Text: fallbackText(message), Source: SourceFallback}
	}
}

func linkFallback(message string) string {
	if url, ok := scholarship.ResolveLink(message); ok {
		return url
	}
	return scholarship.NSPURL
}

func isGreeting(message string) bool {
	m := strings.ToLower(strings.TrimSpace(message))
	switch m {
	case "hello", "hi", "hey", "hey bro":
		return true
	}
	return (strings.Contains(m, "hello") && len(m) < 10) || (strings.Contains(m, "hi") && len(m) < 5)
}

func fallbackText(message string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I understand you're asking: %q\n\n", message)
	b.WriteString("I can help you with scholarships, student credits, loans, and more!\n\n")
	b.WriteString("Try asking:\n")
	b.WriteString("• \"Show me scholarships\" - to see available options\n")
	b.WriteString("• \"Student credit apply link\" - for application links\n")
	b.WriteString("• Any specific question about scholarships or student financial aid\n\n")
	b.WriteString(MessageError)
	return b.String()
}

func systemPrompt(linkOnly bool, state string) string {
	catalog := scholarship.BuildChatContext(state)
	if linkOnly {
		return "CRITICAL: The user is asking for a SPECIFIC LINK. Your response must be ONLY the URL, nothing else. " +
			"No explanations, no suggestions, no extra text. Just the link.\n\n" +
			"Example:\nUser: \"student credit ko apply krne keliye link do\"\nYou: " + scholarship.NSPURL + "\n\n" +
			catalog + "\n\nWhen user asks for a link, provide ONLY the URL that matches their request."
	}

	return "You are a helpful scholarship and student financial aid advisor chatbot for Indian students. Your role is to:\n\n" +
		"1. Help students find relevant scholarships based on their state and profile\n" +
		"2. Provide information about scholarship portals and application processes\n" +
		"3. Answer questions about student credits, loans, and financial aid\n" +
		"4. Provide direct links to application portals when available\n" +
		"5. Answer questions in the language the user uses (English, Hindi, or mixed)\n\n" +
		catalog + "\n\n" +
		"IMPORTANT INFORMATION:\n" +
		"- Students can apply for scholarships through National Scholarship Portal: " + scholarship.NSPURL + "\n" +
		"- For student credits/loans, students can check with banks like SBI, HDFC, PNB, or government schemes\n" +
		"- List state-level scholarships first, then central government, then private\n\n" +
		"Answer questions clearly and concisely in the same language/style the user uses."
}
