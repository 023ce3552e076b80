package config

import (
	"context"
	"log/slog"
)

const masked = "****"

// Log logs the resolved settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.DebugContext(ctx, "Config: model", "value", s.Model)
	logger.DebugContext(ctx, "Config: llm_base_url", "value", s.LLMBaseURL)
	logger.DebugContext(ctx, "Config: api_key", "value", maskSecret(s.APIKey))
	logger.DebugContext(ctx, "Config: classify", "value", s.Classify())
	logger.DebugContext(ctx, "Config: max_results", "value", s.MaxResults)
	logger.DebugContext(ctx, "Config: bm25", "k1", s.BM25.K1, "b", s.BM25.B)
	logger.DebugContext(ctx, "Config: history", "threshold", s.HistoryThreshold, "since", s.HistorySince, "search_all", s.SearchAll)
}

// LogServe logs the settings relevant to serve mode.
func LogServe(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	LogWithLogger(s, logger)
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == "sse" {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}

	logger.InfoContext(ctx, "Config: auth.type", "value", s.Auth.Type)
	switch s.Auth.Type {
	case AuthTypeBasic:
		logger.InfoContext(ctx, "Config: auth.basic.username", "value", s.Auth.Basic.Username)
		logger.InfoContext(ctx, "Config: auth.basic.password", "value", masked)
	case AuthTypeAPIKey:
		logger.InfoContext(ctx, "Config: auth.api_keys", "count", len(s.Auth.APIKeys))
	}
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return masked
}

// AuthSettingsLogValue returns a slog.Value for AuthSettings with masked data
func AuthSettingsLogValue(s AuthSettings) slog.Value {
	keys := make([]string, len(s.APIKeys))
	for i := range s.APIKeys {
		keys[i] = masked
	}
	return slog.GroupValue(
		slog.String("type", s.Type),
		slog.Any("basic", BasicAuthSettingsLogValue(s.Basic)),
		slog.Any("api_keys", keys),
	)
}

// BasicAuthSettingsLogValue returns a slog.Value for BasicAuthSettings with masked data
func BasicAuthSettingsLogValue(s BasicAuthSettings) slog.Value {
	return slog.GroupValue(
		slog.String("username", s.Username),
		slog.String("password", masked),
	)
}

// SettingsLogValue returns a slog.Value for Settings with masked data
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("model", s.Model),
		slog.String("api_key", maskSecret(s.APIKey)),
		slog.Int("max_results", s.MaxResults),
		slog.Bool("issues_only", s.IssuesOnly),
		slog.Bool("issues_too", s.IssuesToo),
		slog.Bool("include_code_patches", s.IncludeCodePatches),
		slog.String("transport", s.Transport),
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.Any("auth", AuthSettingsLogValue(s.Auth)),
	)
}
