package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validSettings() *Settings {
	return &Settings{
		Query:            "fix parser",
		APIKey:           "sk-test",
		Model:            "gpt-3.5-turbo",
		LLMBaseURL:       "https://api.openai.com/v1",
		LLMTimeout:       30 * time.Second,
		MaxResults:       10,
		BM25:             BM25Settings{K1: 1.2, B: 0.75},
		HistoryThreshold: 1000,
		HistorySince:     "3 months ago",
		IssueLimit:       100,
		Color:            ColorAuto,
		Transport:        "stdio",
		Port:             8080,
		Auth:             AuthSettings{Type: AuthTypeNone},
	}
}

func TestValidateSettings_Valid(t *testing.T) {
	if err := ValidateSettings(validSettings()); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
}

func TestValidateSettings_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantKey string
	}{
		{"zero max results", func(s *Settings) { s.MaxResults = 0 }, "max_results"},
		{"negative k1", func(s *Settings) { s.BM25.K1 = -1 }, "k1"},
		{"b above one", func(s *Settings) { s.BM25.B = 1.5 }, "b"},
		{"zero threshold", func(s *Settings) { s.HistoryThreshold = 0 }, "history_threshold"},
		{"empty since", func(s *Settings) { s.HistorySince = "" }, "history_since"},
		{"zero issue limit", func(s *Settings) { s.IssueLimit = 0 }, "issue_limit"},
		{"empty model", func(s *Settings) { s.Model = "" }, "model"},
		{"bad base url", func(s *Settings) { s.LLMBaseURL = "not a url" }, "llm_base_url"},
		{"zero timeout", func(s *Settings) { s.LLMTimeout = 0 }, "llm_timeout"},
		{"bad log level", func(s *Settings) { s.LogLevel = "verbose" }, "log_level"},
		{"bad color", func(s *Settings) { s.Color = "sometimes" }, "color"},
		{"bad transport", func(s *Settings) { s.Transport = "http" }, "transport"},
		{"bad port", func(s *Settings) { s.Port = 70000 }, "port"},
		{"bad auth type", func(s *Settings) { s.Auth.Type = "oauth" }, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)

			err := ValidateSettings(s)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("Expected error to mention '%s', got: %v", tt.wantKey, err)
			}
		})
	}
}

func TestValidateSettings_ConflictingModes(t *testing.T) {
	s := validSettings()
	s.IssuesOnly = true
	s.IssuesToo = true

	if err := ValidateSettings(s); !errors.Is(err, ErrConflictingModes) {
		t.Errorf("Expected ErrConflictingModes, got: %v", err)
	}
}

func TestValidateSettings_Auth(t *testing.T) {
	tests := []struct {
		name    string
		auth    AuthSettings
		wantErr string
	}{
		{"none", AuthSettings{Type: AuthTypeNone}, ""},
		{"empty type", AuthSettings{}, ""},
		{"valid basic", AuthSettings{Type: AuthTypeBasic, Basic: BasicAuthSettings{Username: "admin", Password: "secret"}}, ""},
		{"valid apikey", AuthSettings{Type: AuthTypeAPIKey, APIKeys: []string{"k1", "k2"}}, ""},
		{"none with basic creds", AuthSettings{Type: AuthTypeNone, Basic: BasicAuthSettings{Username: "admin"}}, "incompatible"},
		{"none with api keys", AuthSettings{Type: AuthTypeNone, APIKeys: []string{"k"}}, "incompatible"},
		{"basic missing password", AuthSettings{Type: AuthTypeBasic, Basic: BasicAuthSettings{Username: "admin"}}, "requires both"},
		{"basic with api keys", AuthSettings{Type: AuthTypeBasic, Basic: BasicAuthSettings{Username: "a", Password: "b"}, APIKeys: []string{"k"}}, "mutually exclusive"},
		{"apikey without keys", AuthSettings{Type: AuthTypeAPIKey}, "at least one"},
		{"apikey with basic creds", AuthSettings{Type: AuthTypeAPIKey, APIKeys: []string{"k"}, Basic: BasicAuthSettings{Password: "p"}}, "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			s.Auth = tt.auth

			err := ValidateSettings(s)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing '%s', got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateSearchSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr error
	}{
		{"valid", func(*Settings) {}, nil},
		{"missing query", func(s *Settings) { s.Query = "" }, ErrMissingQuery},
		{"missing api key", func(s *Settings) { s.APIKey = "" }, ErrMissingAPIKey},
		{"no api key without classification", func(s *Settings) {
			s.APIKey = ""
			s.DisableClassifications = true
		}, nil},
		{"no api key for issues only", func(s *Settings) {
			s.APIKey = ""
			s.IssuesOnly = true
		}, nil},
		{"conflicting modes", func(s *Settings) {
			s.IssuesOnly = true
			s.IssuesToo = true
		}, ErrConflictingModes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)

			err := ValidateSearchSettings(s)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateServeSettings(t *testing.T) {
	s := validSettings()
	s.Query = ""
	if err := ValidateServeSettings(s); err != nil {
		t.Errorf("Expected no error without query, got: %v", err)
	}

	s.APIKey = ""
	if err := ValidateServeSettings(s); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got: %v", err)
	}

	s.DisableClassifications = true
	if err := ValidateServeSettings(s); err != nil {
		t.Errorf("Expected no error with classification disabled, got: %v", err)
	}
}
