package provider

import (
	"context"
	"time"
)

// ResultKind is the outcome category of one generation attempt.
type ResultKind int

const (
	Success ResultKind = iota
	Failure
	Timeout
)

func (k ResultKind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// FailureKind narrows a Failure for logging. The cascade treats all of
// them identically.
type FailureKind string

const (
	FailExecNotFound FailureKind = "exec_not_found"
	FailExitError    FailureKind = "exit_error"
	FailNoOutput     FailureKind = "no_output"
	FailBadStatus    FailureKind = "bad_status"
	FailMalformed    FailureKind = "malformed_response"
	FailUnavailable  FailureKind = "unavailable"
	FailEmptyText    FailureKind = "empty_text"
)

// Result is the tagged outcome of one attempt. It is never persisted.
type Result struct {
	Kind    ResultKind
	Text    string
	Failure FailureKind
	Detail  string
}

// Succeed builds a Success result.
func Succeed(text string) Result {
	return Result{Kind: Success, Text: text}
}

// Fail builds a Failure result with a kind and detail for logging.
func Fail(kind FailureKind, detail string) Result {
	return Result{Kind: Failure, Failure: kind, Detail: detail}
}

// TimedOut builds a Timeout result.
func TimedOut() Result {
	return Result{Kind: Timeout}
}

// Adapter is a uniform wrapper around one text-generation backend.
// Generate must honor ctx cancellation (the in-flight request or child
// process is torn down, not merely ignored) and must never panic past
// its boundary; every outcome is a Result value.
type Adapter interface {
	Name() string
	Generate(ctx context.Context, prompt string) Result
}

// SpecKind distinguishes adapter implementations in configuration.
type SpecKind string

const (
	KindSubprocess SpecKind = "subprocess"
	KindHostedAPI  SpecKind = "hosted-api"
)

// Spec is one static provider configuration entry. The table is built
// at startup and never mutated afterwards.
type Spec struct {
	Name              string
	Kind              SpecKind
	Priority          int // lower tries earlier
	PerAttemptTimeout time.Duration
	Enabled           bool
	Quality           bool // the slow, high-quality provider the heuristic reorders
}
