// Package proc runs external command-line tools. Every call spawns a fresh
// process; nothing is kept alive between calls.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

var (
	// ErrToolMissing indicates a required executable is not on PATH.
	ErrToolMissing = errors.New("required tool not found")

	// ErrNonUTF8 indicates a tool wrote output that is not valid UTF-8.
	ErrNonUTF8 = errors.New("output is not valid UTF-8")
)

// CommandExecutor abstracts command execution for testing.
type CommandExecutor interface {
	// Run executes a command and returns its standard output.
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// DefaultExecutor executes commands using os/exec.
type DefaultExecutor struct{}

// Run executes a command and returns its standard output. A non-zero exit
// status is an error carrying the tool's stderr.
func (e *DefaultExecutor) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

// Text converts tool output to a string, rejecting invalid UTF-8.
func Text(out []byte) (string, error) {
	if !utf8.Valid(out) {
		return "", ErrNonUTF8
	}
	return string(out), nil
}

// LookPath finds an executable on PATH.
type LookPath func(file string) (string, error)

// RequireTools checks that every named tool is installed.
func RequireTools(lookPath LookPath, tools ...string) error {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, tool := range tools {
		if _, err := lookPath(tool); err != nil {
			return fmt.Errorf("%w: %s", ErrToolMissing, tool)
		}
	}
	return nil
}
