package provider

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("subprocess tests rely on POSIX utilities")
	}
}

func TestSubprocessEchoesStdin(t *testing.T) {
	requireUnix(t)

	adapter := NewSubprocess("local", []string{"cat"}, nil)
	result := adapter.Generate(context.Background(), "User: hello there\nBot:")

	assert.Equal(t, Success, result.Kind)
	assert.Equal(t, "hello there", result.Text)
}

func TestSubprocessTriesNextCandidate(t *testing.T) {
	requireUnix(t)

	adapter := NewSubprocess("local", []string{"definitely-not-a-real-binary-0b1c2d", "cat"}, nil)
	result := adapter.Generate(context.Background(), "User: hi\nBot:")

	assert.Equal(t, Success, result.Kind)
	assert.Equal(t, "hi", result.Text)
}

func TestSubprocessExecutableNotFound(t *testing.T) {
	adapter := NewSubprocess("local", []string{"definitely-not-a-real-binary-0b1c2d"}, nil)
	result := adapter.Generate(context.Background(), "User: hi\nBot:")

	assert.Equal(t, Failure, result.Kind)
	assert.Equal(t, FailExecNotFound, result.Failure)
}

func TestSubprocessNonZeroExit(t *testing.T) {
	requireUnix(t)

	adapter := NewSubprocess("local", []string{"false"}, nil)
	result := adapter.Generate(context.Background(), "User: hi\nBot:")

	assert.Equal(t, Failure, result.Kind)
	assert.Equal(t, FailExitError, result.Failure)
}

func TestSubprocessEmptyOutput(t *testing.T) {
	requireUnix(t)

	adapter := NewSubprocess("local", []string{"true"}, nil)
	result := adapter.Generate(context.Background(), "User: hi\nBot:")

	assert.Equal(t, Failure, result.Kind)
	assert.Equal(t, FailNoOutput, result.Failure)
}

func TestSubprocessKilledOnDeadline(t *testing.T) {
	requireUnix(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	adapter := NewSubprocess("local", []string{"sleep"}, []string{"10"})

	start := time.Now()
	result := adapter.Generate(ctx, "User: hi\nBot:")
	elapsed := time.Since(start)

	assert.Equal(t, Timeout, result.Kind)
	assert.Less(t, elapsed, 2*time.Second, "process must be killed, not awaited")
}
