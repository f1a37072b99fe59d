// internal/workers/chat/chatbot-reply/config.go
package chatbotreply

import "time"

type Config struct {
	Timeout    time.Duration
	MaxMessage int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    60 * time.Second,
		MaxMessage: 2000,
	}
}
