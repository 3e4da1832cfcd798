// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snowflake

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/patent-intel/internal/toolexec"
	"github.com/pdiddy/patent-intel/pkg/types"
)

const defaultExecTimeout = 60 * time.Second

// Runner executes SQL text through the snow CLI. It fails soft: a missing
// binary or a failed statement produces a diagnostic on the configured
// writer rather than an error, so callers can fall back to printing the
// generated SQL.
type Runner struct {
	timeout time.Duration
	exec    toolexec.Executor
	w       io.Writer
}

// NewRunner builds a Runner. Diagnostics go to w; pass io.Discard to
// silence them.
func NewRunner(cfg types.SnowflakeConfig, w io.Writer) *Runner {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultExecTimeout
	}
	return &Runner{timeout: timeout, exec: toolexec.OS{}, w: w}
}

// Execute runs one SQL statement via `snow sql -q` and returns the CLI
// output together with whether the statement succeeded.
func (r *Runner) Execute(ctx context.Context, query string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.exec.RunOutput(ctx, "snow", "sql", "-q", query)
	if err != nil {
		fmt.Fprintf(r.w, "[Snowflake execution error: %v]\n", err)
		return string(out), false
	}
	return string(out), true
}
