// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Generation    GenerationConfig        `mapstructure:"generation"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Publish       PublishConfig           `mapstructure:"publish"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Schedule      ScheduleConfig          `mapstructure:"schedule"`
	Metrics       MetricsConfig           `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GenerationConfig drives the population modes.
type GenerationConfig struct {
	// Seed fixes the random source; 0 means non-deterministic.
	Seed               uint64   `mapstructure:"seed"`
	QuickCount         int      `mapstructure:"quick_count"`
	QuickCategoryLimit int      `mapstructure:"quick_category_limit"`
	PerScenario        int      `mapstructure:"per_scenario"`
	Scenarios          []string `mapstructure:"scenarios"`
	SupplierQuickCount int      `mapstructure:"supplier_quick_count"`
	Workers            int      `mapstructure:"workers"`
	ValidateRecords    bool     `mapstructure:"validate_records"`
	RecencyWindowDays  int      `mapstructure:"recency_window_days"`
	TopN               int      `mapstructure:"top_n"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // single URL shorthand
}

// GetURL returns the URL field or the first address.
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PublishConfig selects which downstream sinks receive the corpus.
type PublishConfig struct {
	Redis struct {
		Enabled   bool   `mapstructure:"enabled"`
		KeyPrefix string `mapstructure:"key_prefix"`
		TTL       int    `mapstructure:"ttl"` // seconds
	} `mapstructure:"redis"`
	Elasticsearch struct {
		Enabled       bool   `mapstructure:"enabled"`
		RFQIndex      string `mapstructure:"rfq_index"`
		SupplierIndex string `mapstructure:"supplier_index"`
		BatchSize     int    `mapstructure:"batch_size"`
	} `mapstructure:"elasticsearch"`
	Postgres struct {
		Enabled bool   `mapstructure:"enabled"`
		Table   string `mapstructure:"table"`
	} `mapstructure:"postgres"`
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// WorkerConfig holds the core settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// NotificationConfig holds AWS settings for the run notice.
type NotificationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// ScheduleConfig enables periodic corpus refresh in worker mode.
type ScheduleConfig struct {
	RefreshCron string `mapstructure:"refresh_cron"`
	RefreshMode string `mapstructure:"refresh_mode"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}
