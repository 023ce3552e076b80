package app

import (
	"testing"

	"github.com/spf13/pflag"
)

var sharedFlags = []string{
	"api-key",
	"model",
	"llm-base-url",
	"llm-timeout",
	"disable-classifications",
	"max-results",
	"bm25-k1",
	"bm25-b",
	"history-threshold",
	"history-since",
	"issue-limit",
	"log-level",
}

func TestRegisterFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	for _, name := range sharedFlags {
		if flags.Lookup(name) == nil {
			t.Errorf("Expected flag %q to be registered", name)
		}
	}
	if flags.Lookup("query") != nil || flags.Lookup("transport") != nil {
		t.Error("Expected command specific flags to be absent")
	}
}

func TestRegisterSearchFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterSearchFlags(flags)

	expected := append([]string{
		"query",
		"issues-only",
		"issues-too",
		"include-code-patches",
		"search-all",
		"color",
	}, sharedFlags...)

	for _, name := range expected {
		if flags.Lookup(name) == nil {
			t.Errorf("Expected flag %q to be registered", name)
		}
	}
	if flags.Lookup("transport") != nil {
		t.Error("Expected serve flags to be absent")
	}
}

func TestRegisterServeFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterServeFlags(flags)

	expected := append([]string{
		"transport",
		"host",
		"port",
		"auth-type",
		"auth-basic-username",
		"auth-basic-password",
		"auth-api-keys",
	}, sharedFlags...)

	for _, name := range expected {
		if flags.Lookup(name) == nil {
			t.Errorf("Expected flag %q to be registered", name)
		}
	}
	if flags.Lookup("query") != nil {
		t.Error("Expected search flags to be absent")
	}
}

func TestRegisterServeFlags_Shorthand(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterServeFlags(flags)

	shorthandFlags := map[string]string{
		"transport":           "t",
		"host":                "H",
		"port":                "p",
		"auth-type":           "a",
		"auth-basic-username": "u",
		"auth-basic-password": "P",
		"auth-api-keys":       "k",
		"max-results":         "n",
		"log-level":           "l",
	}

	for name, shorthand := range shorthandFlags {
		flag := flags.Lookup(name)
		if flag == nil {
			t.Errorf("Flag %q not found", name)
			continue
		}
		if flag.Shorthand != shorthand {
			t.Errorf("Flag %q expected shorthand %q, got %q", name, shorthand, flag.Shorthand)
		}
	}
}

func TestRegisterSearchFlags_SetValues(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterSearchFlags(flags)

	err := flags.Parse([]string{
		"-q", "fix parser",
		"-I",
		"-p",
		"-n", "5",
		"--color", "never",
	})
	if err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	query, _ := flags.GetString("query")
	if query != "fix parser" {
		t.Errorf("Expected query 'fix parser', got '%s'", query)
	}

	issuesToo, _ := flags.GetBool("issues-too")
	if !issuesToo {
		t.Error("Expected issues-too to be set")
	}

	patches, _ := flags.GetBool("include-code-patches")
	if !patches {
		t.Error("Expected include-code-patches to be set")
	}

	maxResults, _ := flags.GetInt("max-results")
	if maxResults != 5 {
		t.Errorf("Expected max-results 5, got %d", maxResults)
	}

	color, _ := flags.GetString("color")
	if color != "never" {
		t.Errorf("Expected color 'never', got '%s'", color)
	}
}

func TestRegisterServeFlags_SetValues(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterServeFlags(flags)

	err := flags.Parse([]string{
		"--transport", "sse",
		"--host", "localhost",
		"--port", "9090",
		"--auth-type", "basic",
	})
	if err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	transport, _ := flags.GetString("transport")
	if transport != "sse" {
		t.Errorf("Expected transport 'sse', got '%s'", transport)
	}

	host, _ := flags.GetString("host")
	if host != "localhost" {
		t.Errorf("Expected host 'localhost', got '%s'", host)
	}

	port, _ := flags.GetInt("port")
	if port != 9090 {
		t.Errorf("Expected port 9090, got %d", port)
	}

	authType, _ := flags.GetString("auth-type")
	if authType != "basic" {
		t.Errorf("Expected auth-type 'basic', got '%s'", authType)
	}
}
