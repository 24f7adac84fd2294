// internal/workers/data-access/query-corpus/config.go
package querycorpus

import (
	"fmt"
	"time"

	"marketplace-datagen/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// MaxPageSize caps pagination.size; larger requests are clamped.
	MaxPageSize int
}

func LoadConfig(appCfg *config.Config) *Config {
	return &Config{
		Timeout:     config.GetDuration(config.GetWorkerConfig(appCfg, TaskType).Timeout),
		MaxPageSize: 100,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxPageSize <= 0 {
		return fmt.Errorf("max page size must be positive")
	}
	return nil
}
