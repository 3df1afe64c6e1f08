// internal/workers/listing/generate-description/config.go
package generatedescription

import (
	"time"

	"listing-assistant/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	timeout := config.GetDuration(wcfg.Timeout)
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Config{Timeout: timeout}
}
