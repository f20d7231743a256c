// Package executor runs external tools (yt-dlp, whisper.cpp) with captured
// output. Callers depend on the Executor interface so tests can substitute a
// fake.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Executor runs an external command and returns its stdout.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}

type implExecutor struct{}

// New creates a new Executor instance.
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments. Stderr is folded
// into the returned error for debugging.
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("command %q failed: %w\nstderr: %s", name, err, stderrStr)
		}
		return "", fmt.Errorf("command %q failed: %w", name, err)
	}

	return stdout.String(), nil
}
