package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/snorelax/snorelax-be/pkg/cohere"
)

// CohereGenerator is the slice of pkg/cohere.Client the adapter needs.
type CohereGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Cohere adapts the hosted Cohere generate endpoint. It receives the
// full conversational prompt, truncated to its context budget.
type Cohere struct {
	name   string
	gen    CohereGenerator
	budget int // max prompt chars, recency-biased
}

var _ Adapter = (*Cohere)(nil)

// NewCohere creates the adapter. promptBudget <= 0 disables truncation.
func NewCohere(name string, gen CohereGenerator, promptBudget int) *Cohere {
	return &Cohere{name: name, gen: gen, budget: promptBudget}
}

func (c *Cohere) Name() string { return c.name }

func (c *Cohere) Generate(ctx context.Context, fullPrompt string) Result {
	text, err := c.gen.Generate(ctx, TruncateRecent(fullPrompt, c.budget))
	if err != nil {
		if isCancellation(err) {
			return TimedOut()
		}
		var statusErr *cohere.StatusError
		if errors.As(err, &statusErr) {
			return Fail(FailBadStatus, err.Error())
		}
		if errors.Is(err, cohere.ErrMalformed) {
			return Fail(FailMalformed, err.Error())
		}
		return Fail(FailUnavailable, err.Error())
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Fail(FailEmptyText, "provider returned empty text")
	}
	return Succeed(text)
}

// isCancellation reports whether the attempt died because its deadline
// expired or the request context was torn down.
func isCancellation(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
