package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/snorelax/snorelax-be/internal/prompt"
)

// Subprocess runs a local chatbot executable: message on stdin, reply on
// stdout. The script has no conversational context window at all, so the
// adapter sends only the most recent user message.
type Subprocess struct {
	name     string
	commands []string // candidate interpreters, tried in order
	args     []string
}

var _ Adapter = (*Subprocess)(nil)

// NewSubprocess creates the adapter. commands are candidate binaries
// (e.g. python, python3) tried until one exists; args typically hold the
// script path.
func NewSubprocess(name string, commands, args []string) *Subprocess {
	return &Subprocess{name: name, commands: commands, args: args}
}

func (s *Subprocess) Name() string { return s.name }

// Generate invokes the executable with the last user message on stdin.
// A deadline overrun kills the process and reports Timeout. Missing
// executables, non-zero exits and empty stdout map to distinct failure
// kinds so they can be told apart in logs.
func (s *Subprocess) Generate(ctx context.Context, fullPrompt string) Result {
	input := prompt.LastUserMessage(fullPrompt)

	var lastErr error
	for _, command := range s.commands {
		cmd := exec.CommandContext(ctx, command, s.args...)
		cmd.Stdin = strings.NewReader(input)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err := cmd.Run()

		if ctx.Err() == context.DeadlineExceeded {
			return TimedOut()
		}
		if ctx.Err() == context.Canceled {
			return TimedOut()
		}

		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				lastErr = err
				continue // try the next candidate interpreter
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return Fail(FailExitError, fmt.Sprintf("%s exited %d: %s",
					command, exitErr.ExitCode(), strings.TrimSpace(stderr.String())))
			}
			return Fail(FailUnavailable, err.Error())
		}

		text := strings.TrimSpace(stdout.String())
		if text == "" {
			return Fail(FailNoOutput, command+" produced no output")
		}
		return Succeed(text)
	}

	detail := "no candidate executable found"
	if lastErr != nil {
		detail = lastErr.Error()
	}
	return Fail(FailExecNotFound, detail)
}
