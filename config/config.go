package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	// LLM transport strategy
	LLM LLMConfig

	// Extraction pipeline tuning
	Extraction ExtractionConfig

	// Optional Google Calendar scheduling
	Calendar CalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	RateLimitPerMin int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// LLMConfig configures the transport strategy and its retry policy.
// Transport order (by Priority) is the fallback order.
type LLMConfig struct {
	Transports      []TransportConfig
	MaxRetries      int
	BaseDelay       string
	MaxDelay        string
	RequestTimeout  string
	RateLimitPerMin int
}

// TransportConfig holds configuration for a single LLM transport.
type TransportConfig struct {
	Name     string
	Enabled  bool
	Priority int
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  string
}

// ExtractionConfig tunes the capture pipeline.
type ExtractionConfig struct {
	MaxInputChars int    // inputs longer than this go through the optimizer
	StrictJSON    bool   // force a JSON-only closing turn before interpreting
	Timezone      string // IANA name, used for calendar scheduling
	CacheSize     int
	CacheTTL      string
	SessionTTL    string
	MaxSessions   int
}

type CalendarConfig struct {
	Enabled         bool
	CredentialsPath string
	CalendarID      string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitPerMin = viper.GetInt("http_server.rate_limit_per_min")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// LLM transport strategy
	cfg.LLM.MaxRetries = viper.GetInt("llm.max_retries")
	cfg.LLM.BaseDelay = viper.GetString("llm.base_delay")
	cfg.LLM.MaxDelay = viper.GetString("llm.max_delay")
	cfg.LLM.RequestTimeout = viper.GetString("llm.request_timeout")
	cfg.LLM.RateLimitPerMin = viper.GetInt("llm.rate_limit_per_min")

	if viper.IsSet("llm.transports") {
		transportsRaw := viper.Get("llm.transports")
		if transportsList, ok := transportsRaw.([]interface{}); ok {
			for _, t := range transportsList {
				if transportMap, ok := t.(map[string]interface{}); ok {
					transport := TransportConfig{
						Name:     getStringFromMap(transportMap, "name"),
						Enabled:  getBoolFromMap(transportMap, "enabled"),
						Priority: getIntFromMap(transportMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(transportMap, "api_key")),
						BaseURL:  getStringFromMap(transportMap, "base_url"),
						Model:    getStringFromMap(transportMap, "model"),
						Timeout:  getStringFromMap(transportMap, "timeout"),
					}
					cfg.LLM.Transports = append(cfg.LLM.Transports, transport)
				}
			}
		}
	}

	// Extraction pipeline
	cfg.Extraction.MaxInputChars = viper.GetInt("extraction.max_input_chars")
	cfg.Extraction.StrictJSON = viper.GetBool("extraction.strict_json")
	cfg.Extraction.Timezone = viper.GetString("extraction.timezone")
	cfg.Extraction.CacheSize = viper.GetInt("extraction.cache_size")
	cfg.Extraction.CacheTTL = viper.GetString("extraction.cache_ttl")
	cfg.Extraction.SessionTTL = viper.GetString("extraction.session_ttl")
	cfg.Extraction.MaxSessions = viper.GetInt("extraction.max_sessions")

	// Calendar
	cfg.Calendar.Enabled = viper.GetBool("calendar.enabled")
	cfg.Calendar.CredentialsPath = viper.GetString("calendar.credentials_path")
	cfg.Calendar.CalendarID = viper.GetString("calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.Calendar.CredentialsPath = googleCreds
	}

	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// Validate checks the loaded configuration and returns every problem found
// as a human-readable message, not just the first one.
func (c *Config) Validate() []string {
	var problems []string

	if len(c.LLM.Transports) == 0 {
		problems = append(problems, "no LLM transports configured - add llm.transports to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)
	for i, t := range c.LLM.Transports {
		if t.Name == "" {
			problems = append(problems, fmt.Sprintf("transport %d: name is required", i))
		}
		if !t.Enabled {
			continue
		}
		enabledCount++
		if t.Priority <= 0 {
			problems = append(problems, fmt.Sprintf("transport %s: priority must be positive", t.Name))
		}
		if priorityMap[t.Priority] {
			problems = append(problems, fmt.Sprintf("transport %s: duplicate priority %d", t.Name, t.Priority))
		}
		priorityMap[t.Priority] = true
	}
	if len(c.LLM.Transports) > 0 && enabledCount == 0 {
		problems = append(problems, "no enabled LLM transports")
	}

	if c.LLM.MaxRetries < 0 {
		problems = append(problems, "llm.max_retries must not be negative")
	}
	for name, value := range map[string]string{
		"llm.base_delay":      c.LLM.BaseDelay,
		"llm.max_delay":       c.LLM.MaxDelay,
		"llm.request_timeout": c.LLM.RequestTimeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			problems = append(problems, fmt.Sprintf("%s: invalid duration %q", name, value))
		}
	}

	if c.Extraction.MaxInputChars <= 0 {
		problems = append(problems, "extraction.max_input_chars must be positive")
	}
	if c.Extraction.Timezone != "" {
		if _, err := time.LoadLocation(c.Extraction.Timezone); err != nil {
			problems = append(problems, fmt.Sprintf("extraction.timezone: unknown timezone %q", c.Extraction.Timezone))
		}
	}

	if c.Calendar.Enabled && c.Calendar.CredentialsPath == "" {
		problems = append(problems, "calendar.enabled is set but calendar.credentials_path is empty")
	}

	return problems
}

// Duration parses a duration config value, falling back when empty or invalid.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_per_min", 60)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// LLM defaults
	viper.SetDefault("llm.max_retries", 3)
	viper.SetDefault("llm.base_delay", "1s")
	viper.SetDefault("llm.max_delay", "30s")
	viper.SetDefault("llm.request_timeout", "60s")
	viper.SetDefault("llm.rate_limit_per_min", 30)

	// Extraction defaults
	viper.SetDefault("extraction.max_input_chars", 5000)
	viper.SetDefault("extraction.strict_json", true)
	viper.SetDefault("extraction.timezone", "UTC")
	viper.SetDefault("extraction.cache_size", 128)
	viper.SetDefault("extraction.cache_ttl", "10m")
	viper.SetDefault("extraction.session_ttl", "30m")
	viper.SetDefault("extraction.max_sessions", 256)

	viper.SetDefault("calendar.enabled", false)
	viper.SetDefault("calendar.calendar_id", "primary")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
