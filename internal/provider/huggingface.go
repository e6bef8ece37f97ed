package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/snorelax/snorelax-be/internal/prompt"
	"github.com/snorelax/snorelax-be/pkg/hfinference"
)

// HFGenerator is the slice of pkg/hfinference.Client the adapter needs.
type HFGenerator interface {
	Generate(ctx context.Context, input string) (string, error)
}

// HuggingFace adapts a hosted inference model with a single-utterance
// contract: it gets only the most recent user message, the tightest
// recency-biased window there is.
type HuggingFace struct {
	name string
	gen  HFGenerator
}

var _ Adapter = (*HuggingFace)(nil)

// NewHuggingFace creates the adapter.
func NewHuggingFace(name string, gen HFGenerator) *HuggingFace {
	return &HuggingFace{name: name, gen: gen}
}

func (h *HuggingFace) Name() string { return h.name }

func (h *HuggingFace) Generate(ctx context.Context, fullPrompt string) Result {
	text, err := h.gen.Generate(ctx, prompt.LastUserMessage(fullPrompt))
	if err != nil {
		if isCancellation(err) {
			return TimedOut()
		}
		var statusErr *hfinference.StatusError
		if errors.As(err, &statusErr) {
			return Fail(FailBadStatus, err.Error())
		}
		if errors.Is(err, hfinference.ErrMalformed) {
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
