package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLog(t *testing.T) {
	// Just verify it doesn't panic
	Log(validSettings())
}

func TestLogWithLogger_MasksAPIKey(t *testing.T) {
	var buf bytes.Buffer

	LogWithLogger(validSettings(), debugLogger(&buf))

	output := buf.String()
	if strings.Contains(output, "sk-test") {
		t.Error("API key leaked into log output")
	}
	if !strings.Contains(output, "api_key") || !strings.Contains(output, "****") {
		t.Errorf("Expected masked api_key in log output, got: %s", output)
	}
	if !strings.Contains(output, "gpt-3.5-turbo") {
		t.Error("Expected model in log output")
	}
}

func TestLogWithLogger_InfoLevelIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogWithLogger(validSettings(), logger)

	if buf.Len() != 0 {
		t.Errorf("Expected no output at info level, got: %s", buf.String())
	}
}

func TestLogServe_StdioTransport(t *testing.T) {
	var buf bytes.Buffer
	s := validSettings()

	LogServe(s, debugLogger(&buf))

	output := buf.String()
	if !strings.Contains(output, "transport") {
		t.Error("Expected 'transport' in log output")
	}
	if strings.Contains(output, "Config: host") {
		t.Error("Expected no host in log output for stdio transport")
	}
}

func TestLogServe_SSETransport(t *testing.T) {
	var buf bytes.Buffer
	s := validSettings()
	s.Transport = "sse"
	s.Host = "localhost"

	LogServe(s, debugLogger(&buf))

	output := buf.String()
	if !strings.Contains(output, "Config: host") || !strings.Contains(output, "Config: port") {
		t.Errorf("Expected host and port in log output, got: %s", output)
	}
}

func TestLogServe_BasicAuth(t *testing.T) {
	var buf bytes.Buffer
	s := validSettings()
	s.Auth = AuthSettings{Type: AuthTypeBasic, Basic: BasicAuthSettings{Username: "admin", Password: "secret123"}}

	LogServe(s, debugLogger(&buf))

	output := buf.String()
	if strings.Contains(output, "secret123") {
		t.Error("Password leaked into log output")
	}
	if !strings.Contains(output, "admin") {
		t.Error("Expected username in log output")
	}
}

func TestLogServe_APIKeyAuth(t *testing.T) {
	var buf bytes.Buffer
	s := validSettings()
	s.Auth = AuthSettings{Type: AuthTypeAPIKey, APIKeys: []string{"k1", "k2", "k3"}}

	LogServe(s, debugLogger(&buf))

	if !strings.Contains(buf.String(), "count=3") {
		t.Errorf("Expected 'count=3' in log output, got: %s", buf.String())
	}
}

func TestSettingsLogValue(t *testing.T) {
	val := SettingsLogValue(*validSettings())
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
	if strings.Contains(val.String(), "sk-test") {
		t.Error("API key leaked into log value")
	}
}

func TestAuthSettingsLogValue(t *testing.T) {
	s := AuthSettings{
		Type:    AuthTypeAPIKey,
		APIKeys: []string{"key1", "key2"},
		Basic:   BasicAuthSettings{Username: "user", Password: "pass"},
	}

	val := AuthSettingsLogValue(s)
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
	if strings.Contains(val.String(), "key1") {
		t.Error("API key leaked into log value")
	}
}

func TestBasicAuthSettingsLogValue(t *testing.T) {
	val := BasicAuthSettingsLogValue(BasicAuthSettings{Username: "admin", Password: "secret"})
	if val.Kind() != slog.KindGroup {
		t.Errorf("Expected group kind, got %v", val.Kind())
	}
}
