package cascade

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/snorelax/snorelax-be/internal/circuitbreaker"
	"github.com/snorelax/snorelax-be/internal/intent"
	"github.com/snorelax/snorelax-be/internal/provider"
)

// DefaultSource labels a reply produced by exhaustion rather than a
// provider.
const DefaultSource = "default"

const (
	defaultAttemptTimeout = 10 * time.Second
	breakerMaxFailures    = 5
	breakerResetTimeout   = time.Minute
)

// state tracks the orchestration state machine for logging.
type state int

const (
	statePending state = iota
	stateAttempting
	stateSucceeded
	stateExhausted
)

func (s state) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateAttempting:
		return "attempting"
	case stateSucceeded:
		return "succeeded"
	case stateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Entry pairs a provider spec with its adapter.
type Entry struct {
	Spec    provider.Spec
	Adapter provider.Adapter

	breaker *circuitbreaker.CircuitBreaker
}

// Orchestrator drives the ordered provider cascade. It is safe for
// concurrent use; the entry table is immutable after New.
type Orchestrator struct {
	entries      []*Entry
	defaultReply string
}

// New creates an orchestrator over the configured providers. Each entry
// gets its own circuit breaker so one flapping backend is skipped
// without affecting the others.
func New(entries []Entry, defaultReply string) *Orchestrator {
	o := &Orchestrator{defaultReply: defaultReply}
	for i := range entries {
		e := entries[i]
		e.breaker = circuitbreaker.New(breakerMaxFailures, breakerResetTimeout)
		o.entries = append(o.entries, &e)
	}
	return o
}

// attemptPlan is one scheduled attempt after heuristic adjustment.
type attemptPlan struct {
	entry   *Entry
	timeout time.Duration
}

// plan orders enabled providers by priority, then applies the heuristic:
// when a quality reply is not preferred, quality providers move to the
// back of the line and their timeout budget is halved. Ordering is fully
// deterministic for a given heuristic result.
func (o *Orchestrator) plan(pref intent.Result) []attemptPlan {
	var enabled []*Entry
	for _, e := range o.entries {
		if e.Spec.Enabled {
			enabled = append(enabled, e)
		}
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		if enabled[i].Spec.Priority != enabled[j].Spec.Priority {
			return enabled[i].Spec.Priority < enabled[j].Spec.Priority
		}
		return enabled[i].Spec.Name < enabled[j].Spec.Name
	})

	if !pref.PreferQuality {
		sort.SliceStable(enabled, func(i, j int) bool {
			return !enabled[i].Spec.Quality && enabled[j].Spec.Quality
		})
	}

	plans := make([]attemptPlan, 0, len(enabled))
	for _, e := range enabled {
		timeout := e.Spec.PerAttemptTimeout
		if timeout <= 0 {
			timeout = defaultAttemptTimeout
		}
		if !pref.PreferQuality && e.Spec.Quality {
			timeout /= 2
		}
		plans = append(plans, attemptPlan{entry: e, timeout: timeout})
	}
	return plans
}

// Resolve tries providers in order until one returns non-empty text,
// bounded per attempt and by ctx's overall deadline. It never fails:
// exhaustion degrades to the default reply with DefaultSource.
func (o *Orchestrator) Resolve(ctx context.Context, prompt string, pref intent.Result) (string, string) {
	plans := o.plan(pref)
	current := statePending

	for i, p := range plans {
		if ctx.Err() != nil {
			log.Printf("Cascade: overall deadline expired before %s, state=%s", p.entry.Spec.Name, current)
			break
		}

		name := p.entry.Spec.Name

		if !p.entry.breaker.Allow() {
			log.Printf("Cascade: provider %s circuit open, skipping", name)
			continue
		}

		timeout := p.timeout
		if deadline, ok := ctx.Deadline(); ok {
			if remaining := time.Until(deadline); remaining < timeout {
				timeout = remaining
			}
		}
		if timeout <= 0 {
			break
		}

		current = stateAttempting
		log.Printf("Cascade: state=%s provider=%s (%d/%d) timeout=%s", current, name, i+1, len(plans), timeout)

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		result := attempt(attemptCtx, p.entry.Adapter, prompt)
		cancel()

		switch result.Kind {
		case provider.Success:
			if strings.TrimSpace(result.Text) == "" {
				p.entry.breaker.RecordFailure()
				log.Printf("Cascade: provider %s returned empty text, trying next", name)
				continue
			}
			p.entry.breaker.RecordSuccess()
			current = stateSucceeded
			log.Printf("Cascade: state=%s provider=%s", current, name)
			return strings.TrimSpace(result.Text), name

		case provider.Timeout:
			p.entry.breaker.RecordFailure()
			log.Printf("Cascade: provider %s timed out after %s, trying next", name, timeout)

		case provider.Failure:
			p.entry.breaker.RecordFailure()
			log.Printf("Cascade: provider %s failed (%s): %s, trying next", name, result.Failure, result.Detail)
		}
	}

	current = stateExhausted
	log.Printf("Cascade: state=%s, using default reply", current)
	return o.defaultReply, DefaultSource
}

// attempt runs one adapter call in its own goroutine so an adapter that
// outlives its deadline is abandoned, never awaited. The adapter sees
// the cancelled context and tears its request or process down; the
// buffered channel lets its late result be dropped without a leak.
func attempt(ctx context.Context, adapter provider.Adapter, prompt string) provider.Result {
	ch := make(chan provider.Result, 1)

	go func() {
		ch <- adapter.Generate(ctx, prompt)
	}()

	select {
	case result := <-ch:
		return result
	case <-ctx.Done():
		return provider.TimedOut()
	}
}
