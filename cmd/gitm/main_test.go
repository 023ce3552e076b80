package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/sha1n/gitm/internal/config"
)

func TestExecute_Version(t *testing.T) {
	err := Execute("1.0.0", "abc123", "gitm", []string{"--version"})
	if err != nil {
		t.Errorf("Expected no error for --version, got: %v", err)
	}
}

func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"serve", "--help"}} {
		if err := Execute("1.0.0", "abc123", "gitm", args); err != nil {
			t.Errorf("Expected no error for %v, got: %v", args, err)
		}
	}
}

func TestExecute_InvalidFlag(t *testing.T) {
	err := Execute("1.0.0", "abc123", "gitm", []string{"--invalid-flag"})
	if err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestExecute_SearchFlagsNotOnServe(t *testing.T) {
	err := Execute("1.0.0", "abc123", "gitm", []string{"serve", "--issues-only"})
	if err == nil {
		t.Error("Expected error for a search flag passed to serve")
	}
}

func TestExecute_MissingQuery(t *testing.T) {
	t.Setenv("GITM_QUERY", "")

	err := Execute("1.0.0", "abc123", "gitm", []string{"--disable-classifications"})
	if !errors.Is(err, config.ErrMissingQuery) {
		t.Errorf("Expected %v, got: %v", config.ErrMissingQuery, err)
	}
}

func TestExecute_ConflictingModes(t *testing.T) {
	err := Execute("1.0.0", "abc123", "gitm", []string{"--issues-only", "--issues-too", "fix", "parser"})
	if !errors.Is(err, config.ErrConflictingModes) {
		t.Errorf("Expected %v, got: %v", config.ErrConflictingModes, err)
	}
}

func TestExecute_InvalidTransport(t *testing.T) {
	err := Execute("1.0.0", "abc123", "gitm", []string{"serve", "--transport", "invalid"})
	if err == nil {
		t.Fatal("Expected error for invalid transport")
	}
	if !strings.Contains(err.Error(), "transport") {
		t.Errorf("Expected error about transport, got: %v", err)
	}
}

func TestRunMain_Success(t *testing.T) {
	exitCode := -1
	mockExit := func(code int) {
		exitCode = code
	}

	// --help should succeed
	runMain([]string{"gitm", "--help"}, mockExit)

	if exitCode != -1 {
		t.Errorf("Expected no exit call for --help, got exit code: %d", exitCode)
	}
}

func TestRunMain_Failure(t *testing.T) {
	exitCode := -1
	mockExit := func(code int) {
		exitCode = code
	}

	runMain([]string{"gitm", "--invalid"}, mockExit)

	if exitCode != 1 {
		t.Errorf("Expected exit code 1 for invalid flag, got: %d", exitCode)
	}
}
