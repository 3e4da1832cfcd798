// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolexec runs external command-line tools (bq, snow) and captures
// their output. The Executor interface exists so tests can substitute a fake
// instead of shelling out.
package toolexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Executor abstracts command execution for testing.
type Executor interface {
	// RunOutput runs the command and returns its stdout. A non-zero exit
	// produces an error that includes trailing stderr; a missing binary
	// surfaces as exec.ErrNotFound; context expiry cancels the process.
	RunOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// OS is the production Executor backed by os/exec.
type OS struct{}

func (OS) RunOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s timed out: %w", name, ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
