package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Feeds       FeedsConfig     `toml:"feeds"`
	Triage      TriageConfig    `toml:"triage"`
	Analysis    AnalysisConfig  `toml:"analysis"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Quotes      QuotesConfig    `toml:"quotes"`
	WebSocket   WebSocketConfig `toml:"websocket"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Claude      ClaudeConfig    `toml:"claude"`
	LLM         LLMConfig       `toml:"llm"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// FeedsConfig controls headline discovery.
type FeedsConfig struct {
	SourcesFile           string        `toml:"sources_file"`             // Optional YAML file overriding the built-in RSS source list
	MaxHeadlinesPerSource int           `toml:"max_headlines_per_source"` // Cap per RSS source per scan
	FetchTimeout          time.Duration `toml:"fetch_timeout"`            // Per-source RSS fetch timeout
	EnableDiscovery       bool          `toml:"enable_discovery"`         // LLM web-search discovery channel
	DiscoveryTimeout      time.Duration `toml:"discovery_timeout"`        // Timeout for one discovery call
}

// TriageConfig controls the triage funnel and relevance classification.
type TriageConfig struct {
	MaxAITriagePerScan int           `toml:"max_ai_triage_per_scan"` // Top-N budget for the relevance classifier
	RelevanceTimeout   time.Duration `toml:"relevance_timeout"`      // Per-headline classification timeout
	FlagScoreThreshold float64       `toml:"flag_score_threshold"`   // AI score needed to upgrade to flagged (default 7)
	ConfidenceFloor    float64       `toml:"confidence_floor"`       // Minimum confidence for deep-analysis eligibility
	CostPerHeadline    float64       `toml:"cost_per_headline"`      // Estimated USD per relevance call, for reporting
}

// AnalysisConfig controls the deep-analysis path.
type AnalysisConfig struct {
	Timeout        time.Duration `toml:"timeout"`          // Deep reasoning call timeout (minutes-scale)
	UseWeighting   bool          `toml:"use_weighting"`    // Use the LLM directional weighting as the authoritative score path
	CostPerRequest float64       `toml:"cost_per_request"` // Estimated USD per deep analysis, for reporting
}

// SchedulerConfig controls periodic background scans.
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule, e.g. "*/3 * * * *"
}

// QuotesConfig contains market-data provider configuration.
type QuotesConfig struct {
	APIKey    string        `toml:"api_key"`    // Finnhub API key
	BaseURL   string        `toml:"base_url"`   // Override for tests
	Timeout   time.Duration `toml:"timeout"`    // HTTP request timeout
	RateLimit int           `toml:"rate_limit"` // Requests per second
}

// WebSocketConfig contains configuration for the UI event stream.
type WebSocketConfig struct {
	// Whitelist of event types to broadcast. Empty list allows all events.
	AllowedEvents []string `toml:"allowed_events"`
	// Throttle intervals for high-frequency events, e.g. {"scan_progress": "1s"}.
	ThrottleIntervals map[string]string `toml:"throttle_intervals"`
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model for deep analysis (default: "gemini-3-flash-preview")
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "5m")
	Temperature float32 `toml:"temperature"` // Completion temperature
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for lightweight calls (default: "claude-haiku-3-5-20241022")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 8192)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	Temperature float32 `toml:"temperature"` // Completion temperature
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects providers per role. The relevance classifier and risk
// weighting use the fast provider; deep analysis uses the deep provider.
type LLMConfig struct {
	FastProvider LLMProvider `toml:"fast_provider"` // "claude" or "gemini" (default: "claude")
	DeepProvider LLMProvider `toml:"deep_provider"` // "claude" or "gemini" (default: "gemini")
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings should be exposed in sentinel.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
		Feeds: FeedsConfig{
			MaxHeadlinesPerSource: 20,
			FetchTimeout:          10 * time.Second,
			EnableDiscovery:       true,
			DiscoveryTimeout:      60 * time.Second,
		},
		Triage: TriageConfig{
			MaxAITriagePerScan: 10,
			RelevanceTimeout:   20 * time.Second,
			FlagScoreThreshold: 7.0,
			ConfidenceFloor:    0.4,
			CostPerHeadline:    0.0008,
		},
		Analysis: AnalysisConfig{
			Timeout:        2 * time.Minute,
			UseWeighting:   true,
			CostPerRequest: 0.035,
		},
		Scheduler: SchedulerConfig{
			Enabled:  false, // Manual scans by default
			Schedule: "*/3 * * * *",
		},
		Quotes: QuotesConfig{
			Timeout:   10 * time.Second,
			RateLimit: 10,
		},
		WebSocket: WebSocketConfig{
			AllowedEvents: []string{},
			ThrottleIntervals: map[string]string{
				"scan_progress": "1s",
			},
		},
		Gemini: GeminiConfig{
			Model:       "gemini-3-flash-preview",
			Timeout:     "5m",
			Temperature: 0.3,
		},
		Claude: ClaudeConfig{
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   8192,
			Timeout:     "2m",
			Temperature: 0.1, // Low temperature for consistent scoring
		},
		LLM: LLMConfig{
			FastProvider: LLMProviderClaude,
			DeepProvider: LLMProviderGemini,
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files; later files override
// earlier files, and environment variables override everything.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SENTINEL_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("SENTINEL_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SENTINEL_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if badgerPath := os.Getenv("SENTINEL_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	if level := os.Getenv("SENTINEL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("SENTINEL_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// API keys follow the provider's conventional variable names first.
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("SENTINEL_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && config.Gemini.APIKey == "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("SENTINEL_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" && config.Quotes.APIKey == "" {
		config.Quotes.APIKey = key
	}
	if key := os.Getenv("SENTINEL_QUOTES_API_KEY"); key != "" {
		config.Quotes.APIKey = key
	}

	if provider := os.Getenv("SENTINEL_LLM_FAST_PROVIDER"); provider != "" {
		config.LLM.FastProvider = LLMProvider(provider)
	}
	if provider := os.Getenv("SENTINEL_LLM_DEEP_PROVIDER"); provider != "" {
		config.LLM.DeepProvider = LLMProvider(provider)
	}
}

// Validate checks configuration invariants before startup.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.LLM.FastProvider {
	case LLMProviderClaude, LLMProviderGemini:
	default:
		return fmt.Errorf("invalid llm fast_provider %q: must be 'claude' or 'gemini'", c.LLM.FastProvider)
	}
	switch c.LLM.DeepProvider {
	case LLMProviderClaude, LLMProviderGemini:
	default:
		return fmt.Errorf("invalid llm deep_provider %q: must be 'claude' or 'gemini'", c.LLM.DeepProvider)
	}
	if c.Triage.MaxAITriagePerScan < 0 {
		return fmt.Errorf("triage max_ai_triage_per_scan cannot be negative")
	}
	if c.Triage.ConfidenceFloor < 0 || c.Triage.ConfidenceFloor > 1 {
		return fmt.Errorf("triage confidence_floor must be in [0,1]")
	}
	return nil
}
