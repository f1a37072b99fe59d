// internal/workers/communication/send-welcome-email/config.go
package sendwelcomeemail

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
