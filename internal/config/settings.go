package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// Color mode constants
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const envPrefix = "GITM"

// AuthSettings configuration for authentication
type AuthSettings struct {
	Type    string            `mapstructure:"type" validate:"omitempty,oneof=none basic apikey"`
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// BM25Settings ranking parameters
type BM25Settings struct {
	K1 float64 `mapstructure:"k1" validate:"gte=0"`
	B  float64 `mapstructure:"b" validate:"gte=0,lte=1"`
}

// Settings application settings
type Settings struct {
	Query string `mapstructure:"query"`

	// Language model
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model" validate:"required"`
	LLMBaseURL string        `mapstructure:"llm_base_url" validate:"required,url"`
	LLMTimeout time.Duration `mapstructure:"llm_timeout" validate:"gt=0"`

	// Search scope
	IssuesOnly             bool `mapstructure:"issues_only"`
	IssuesToo              bool `mapstructure:"issues_too"`
	IncludeCodePatches     bool `mapstructure:"include_code_patches"`
	DisableClassifications bool `mapstructure:"disable_classifications"`
	SearchAll              bool `mapstructure:"search_all"`

	MaxResults       int          `mapstructure:"max_results" validate:"gt=0"`
	BM25             BM25Settings `mapstructure:"bm25"`
	HistoryThreshold int          `mapstructure:"history_threshold" validate:"gt=0"`
	HistorySince     string       `mapstructure:"history_since" validate:"required"`
	IssueLimit       int          `mapstructure:"issue_limit" validate:"gt=0"`

	// Output
	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Color    string `mapstructure:"color" validate:"oneof=auto always never"`

	// Serve mode
	Transport string       `mapstructure:"transport" validate:"oneof=stdio sse"`
	Host      string       `mapstructure:"host"`
	Port      int          `mapstructure:"port" validate:"gte=0,lte=65535"`
	Auth      AuthSettings `mapstructure:"auth"`
}

// Classify reports whether queries should be classified into filters.
func (s *Settings) Classify() bool {
	return !s.DisableClassifications && !s.IssuesOnly
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("model", "gpt-3.5-turbo")
	v.SetDefault("llm_base_url", "https://api.openai.com/v1")
	v.SetDefault("llm_timeout", 30*time.Second)
	v.SetDefault("max_results", 10)
	v.SetDefault("bm25.k1", 1.2)
	v.SetDefault("bm25.b", 0.75)
	v.SetDefault("history_threshold", 1000)
	v.SetDefault("history_since", "3 months ago")
	v.SetDefault("issue_limit", 100)
	v.SetDefault("color", ColorAuto)
	v.SetDefault("transport", "stdio")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("auth.type", AuthTypeNone)

	// Environment variables
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The API key is also read from the conventional unprefixed variable.
	_ = v.BindEnv("api_key", "GITM_API_KEY", "OPENAI_API_KEY")

	// Bind specific env vars for nested config
	_ = v.BindEnv("bm25.k1", "GITM_BM25_K1")
	_ = v.BindEnv("bm25.b", "GITM_BM25_B")
	_ = v.BindEnv("auth.type", "GITM_AUTH_TYPE")
	_ = v.BindEnv("auth.basic.username", "GITM_AUTH_BASIC_USERNAME")
	_ = v.BindEnv("auth.basic.password", "GITM_AUTH_BASIC_PASSWORD")
	_ = v.BindEnv("auth.api_keys", "GITM_AUTH_API_KEYS")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		for key, flag := range flagBindings {
			if f := flags.Lookup(flag); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Handle explicit parsing of API keys if provided via env var as comma-separated string
	apiKeysEnv := os.Getenv("GITM_AUTH_API_KEYS")
	if apiKeysEnv != "" {
		if len(settings.Auth.APIKeys) == 0 || (len(settings.Auth.APIKeys) == 1 && strings.Contains(settings.Auth.APIKeys[0], ",")) {
			settings.Auth.APIKeys = strings.Split(apiKeysEnv, ",")
		}
	}

	// Trim spaces from API keys
	for i := range settings.Auth.APIKeys {
		settings.Auth.APIKeys[i] = strings.TrimSpace(settings.Auth.APIKeys[i])
	}
	settings.Auth.APIKeys = filterEmptyStrings(settings.Auth.APIKeys)

	settings.Query = strings.TrimSpace(settings.Query)
	settings.APIKey = strings.TrimSpace(settings.APIKey)

	return &settings, nil
}

// flagBindings maps setting keys to CLI flag names. Flags that a command
// does not register are skipped.
var flagBindings = map[string]string{
	"query":                   "query",
	"api_key":                 "api-key",
	"model":                   "model",
	"llm_base_url":            "llm-base-url",
	"llm_timeout":             "llm-timeout",
	"issues_only":             "issues-only",
	"issues_too":              "issues-too",
	"include_code_patches":    "include-code-patches",
	"disable_classifications": "disable-classifications",
	"search_all":              "search-all",
	"max_results":             "max-results",
	"bm25.k1":                 "bm25-k1",
	"bm25.b":                  "bm25-b",
	"history_threshold":       "history-threshold",
	"history_since":           "history-since",
	"issue_limit":             "issue-limit",
	"log_level":               "log-level",
	"color":                   "color",
	"transport":               "transport",
	"host":                    "host",
	"port":                    "port",
	"auth.type":               "auth-type",
	"auth.basic.username":     "auth-basic-username",
	"auth.basic.password":     "auth-basic-password",
	"auth.api_keys":           "auth-api-keys",
}

// filterEmptyStrings removes empty strings from a slice
func filterEmptyStrings(s []string) []string {
	var result []string
	for _, str := range s {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}
