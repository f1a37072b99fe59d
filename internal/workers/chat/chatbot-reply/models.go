// internal/workers/chat/chatbot-reply/models.go
package chatbotreply

type Input struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}

type Output struct {
	Reply  string `json:"reply"`
	Link   string `json:"link,omitempty"`
	Source string `json:"source"`
}
