package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:rssfeeder.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1),description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`

	Backoff BackoffConfig `yaml:"backoff" json:"backoff" jsonschema:"description=Retry of temporary fetch failures"`

	Queue QueueConfig `yaml:"queue" json:"queue" jsonschema:"description=Task queue configuration"`

	Schedule struct {
		Enabled        bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Periodically update all unflagged feeds"`
		UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=30m,description=Interval between periodic updates"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Sanitizer SanitizerConfig `yaml:"sanitizer" json:"sanitizer" jsonschema:"description=HTML allowed in entry content"`
}

// FetchConfig holds feed fetching settings
type FetchConfig struct {
	Timeout              time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Timeout of a single feed request"`
	UserAgent            string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=rssfeeder/1.0,description=User agent for HTTP requests"`
	MaxRedirects         int           `yaml:"max_redirects" json:"max_redirects" jsonschema:"default=1,minimum=0,description=Permanent redirects followed in one update"`
	PerDomainConcurrency int           `yaml:"per_domain_concurrency" json:"per_domain_concurrency" jsonschema:"default=2,minimum=1,description=Maximum parallel requests to one domain"`
	PerDomainDelay       time.Duration `yaml:"per_domain_delay" json:"per_domain_delay" jsonschema:"default=1s,description=Minimum delay between requests to one domain"`
}

// BackoffConfig holds exponential backoff settings for temporary fetch failures
type BackoffConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=3,minimum=1,description=Total fetch attempts of one update"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay" jsonschema:"default=1s,description=Delay after the first failed attempt"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay" jsonschema:"default=1m,description=Maximum delay between attempts"`
	Jitter      float64       `yaml:"jitter" json:"jitter" jsonschema:"default=0,minimum=0,maximum=1,description=Randomization factor of delays"`
}

// QueueConfig holds task queue settings
type QueueConfig struct {
	Workers      int           `yaml:"workers" json:"workers" jsonschema:"default=5,minimum=1,description=Concurrent feed updates"`
	MaxRetries   int           `yaml:"max_retries" json:"max_retries" jsonschema:"default=3,minimum=0,description=Retries of a failed task"`
	RetryDelay   time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=5s,description=Delay before the first task retry"`
	TimeLimit    time.Duration `yaml:"time_limit" json:"time_limit" jsonschema:"default=10m,description=Maximum duration of a task run"`
	AgeLimit     time.Duration `yaml:"age_limit" json:"age_limit" jsonschema:"default=24h,description=Tasks waiting longer are dropped"`
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"default=1s,description=Interval of polling for due tasks"`
}

// SanitizerConfig holds allow-lists for entry html
type SanitizerConfig struct {
	AllowedTags       []string            `yaml:"allowed_tags" json:"allowed_tags" jsonschema:"description=Allowed html tags"`
	AllowedAttributes map[string][]string `yaml:"allowed_attributes" json:"allowed_attributes" jsonschema:"description=Allowed attributes by tag, * for all tags"`
	AllowedStyles     []string            `yaml:"allowed_styles" json:"allowed_styles" jsonschema:"description=Allowed inline style properties"`
}

// default allow-lists follow the WHATWG sanitization rules without form elements
var (
	defaultAllowedTags = []string{
		"a", "abbr", "acronym", "aside", "b", "bdi", "bdo", "blockquote", "br", "code", "data", "dd", "del",
		"dfn", "div", "dl", "dt", "em", "h1", "h2", "h3", "h4", "h5", "h6", "hr", "i", "img", "ins", "kbd",
		"li", "ol", "p", "pre", "q", "s", "samp", "small", "span", "strike", "strong", "sub", "sup",
		"table", "tbody", "td", "tfoot", "th", "thead", "tr", "time", "tt", "u", "var", "wbr", "ul",
	}
	defaultAllowedAttributes = map[string][]string{
		"*":       {"lang", "dir"},
		"a":       {"href", "title"},
		"abbr":    {"title"},
		"acronym": {"title"},
		"data":    {"value"},
		"dfn":     {"title"},
		"img":     {"src", "alt", "width", "height", "title"},
		"li":      {"value"},
		"ol":      {"reversed", "start", "type"},
		"td":      {"align", "valign", "width", "colspan", "rowspan"},
		"th":      {"align", "valign", "width", "colspan", "rowspan"},
		"time":    {"datetime"},
	}
)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	presetDefaults(&cfg)
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults set, used when no config file is given
func Default() *Config {
	var cfg Config
	presetDefaults(&cfg)
	setDefaults(&cfg)
	return &cfg
}

// presetDefaults sets defaults for fields where the zero value is meaningful,
// it runs before the file is parsed so only missing keys keep them
func presetDefaults(cfg *Config) {
	cfg.Schedule.Enabled = true
	cfg.Fetch.MaxRedirects = 1 // 0 disables following permanent redirects
	cfg.Queue.MaxRetries = 3   // 0 disables task retries
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:rssfeeder.db?cache=shared&mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "rssfeeder/1.0"
	}
	if cfg.Fetch.PerDomainConcurrency == 0 {
		cfg.Fetch.PerDomainConcurrency = 2
	}
	if cfg.Fetch.PerDomainDelay == 0 {
		cfg.Fetch.PerDomainDelay = time.Second
	}

	// backoff
	if cfg.Backoff.MaxAttempts == 0 {
		cfg.Backoff.MaxAttempts = 3
	}
	if cfg.Backoff.BaseDelay == 0 {
		cfg.Backoff.BaseDelay = time.Second
	}
	if cfg.Backoff.MaxDelay == 0 {
		cfg.Backoff.MaxDelay = time.Minute
	}

	// queue
	if cfg.Queue.Workers == 0 {
		cfg.Queue.Workers = 5
	}
	if cfg.Queue.RetryDelay == 0 {
		cfg.Queue.RetryDelay = 5 * time.Second
	}
	if cfg.Queue.TimeLimit == 0 {
		cfg.Queue.TimeLimit = 10 * time.Minute
	}
	if cfg.Queue.AgeLimit == 0 {
		cfg.Queue.AgeLimit = 24 * time.Hour
	}
	if cfg.Queue.PollInterval == 0 {
		cfg.Queue.PollInterval = time.Second
	}

	// schedule
	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = 30 * time.Minute
	}

	// sanitizer
	if cfg.Sanitizer.AllowedTags == nil {
		cfg.Sanitizer.AllowedTags = append([]string(nil), defaultAllowedTags...)
	}
	if cfg.Sanitizer.AllowedAttributes == nil {
		cfg.Sanitizer.AllowedAttributes = make(map[string][]string, len(defaultAllowedAttributes))
		for tag, attrs := range defaultAllowedAttributes {
			cfg.Sanitizer.AllowedAttributes[tag] = append([]string(nil), attrs...)
		}
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}

	// validate fetch config
	if cfg.Fetch.Timeout < time.Second {
		return errors.New("fetch timeout must be at least 1 second")
	}
	if cfg.Fetch.MaxRedirects < 0 {
		return errors.New("fetch.max_redirects must be non-negative")
	}
	if cfg.Fetch.PerDomainConcurrency < 1 {
		return errors.New("fetch.per_domain_concurrency must be at least 1")
	}
	if cfg.Fetch.PerDomainDelay < 0 {
		return errors.New("fetch.per_domain_delay must be non-negative")
	}

	// validate backoff config
	if cfg.Backoff.MaxAttempts < 1 {
		return errors.New("backoff.max_attempts must be at least 1")
	}
	if cfg.Backoff.BaseDelay < 0 {
		return errors.New("backoff.base_delay must be non-negative")
	}
	if cfg.Backoff.MaxDelay < cfg.Backoff.BaseDelay {
		return fmt.Errorf("backoff.max_delay %v is less than base_delay %v", cfg.Backoff.MaxDelay, cfg.Backoff.BaseDelay)
	}
	if cfg.Backoff.Jitter < 0 || cfg.Backoff.Jitter >= 1 {
		return errors.New("backoff.jitter must be in [0, 1)")
	}

	// validate queue config
	if cfg.Queue.Workers < 1 {
		return errors.New("queue.workers must be at least 1")
	}
	if cfg.Queue.MaxRetries < 0 {
		return errors.New("queue.max_retries must be non-negative")
	}

	// validate schedule config
	if cfg.Schedule.Enabled && cfg.Schedule.UpdateInterval < time.Minute {
		return errors.New("schedule.update_interval must be at least 1 minute")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
