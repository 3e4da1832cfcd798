// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snowflake

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/patent-intel/pkg/types"
)

type fakeExecutor struct {
	output  []byte
	err     error
	gotName string
	gotArgs []string
}

func (f *fakeExecutor) RunOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	f.gotName = name
	f.gotArgs = args
	return f.output, f.err
}

func newTestRunner(fx *fakeExecutor) (*Runner, *bytes.Buffer) {
	out := &bytes.Buffer{}
	r := NewRunner(types.SnowflakeConfig{}, out)
	r.exec = fx
	return r, out
}

func TestRunnerExecute(t *testing.T) {
	fx := &fakeExecutor{output: []byte("1 row affected\n")}
	r, out := newTestRunner(fx)

	result, ok := r.Execute(context.Background(), "SELECT 1;")

	assert.True(t, ok)
	assert.Equal(t, "1 row affected\n", result)
	assert.Empty(t, out.String())
	assert.Equal(t, "snow", fx.gotName)
	assert.Equal(t, []string{"sql", "-q", "SELECT 1;"}, fx.gotArgs)
}

func TestRunnerExecuteFailsSoft(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "cli not installed", err: exec.ErrNotFound},
		{name: "statement rejected", err: errors.New("snow sql: exit status 1: SQL compilation error")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, out := newTestRunner(&fakeExecutor{err: tt.err})

			_, ok := r.Execute(context.Background(), "SELECT 1;")

			assert.False(t, ok)
			assert.Contains(t, out.String(), "[Snowflake execution error:")
		})
	}
}

func TestRunnerTimeoutDefault(t *testing.T) {
	r := NewRunner(types.SnowflakeConfig{}, &bytes.Buffer{})
	assert.Equal(t, defaultExecTimeout, r.timeout)

	r = NewRunner(types.SnowflakeConfig{Timeout: 5 * time.Second}, &bytes.Buffer{})
	assert.Equal(t, 5*time.Second, r.timeout)
}
