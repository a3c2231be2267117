package timer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Messenger is the narrow port through which the engine reaches the chat
// platform. Every call is non-fatal for a timer: the driver logs failures and
// moves on, because the next eligible tick supersedes any lost frame.
type Messenger interface {
	// PostTimer sends the initial timer embed with its action buttons and
	// returns a reference to the created message.
	PostTimer(ctx context.Context, channelID uint64, v View) (MessageRef, error)
	// EditTimer replaces the embed and buttons in place.
	EditTimer(ctx context.Context, ref MessageRef, v View) error
	// SendText posts a fresh message in the channel (milestones, finish and
	// stop notices).
	SendText(ctx context.Context, channelID uint64, content string) error
	// ReplyPrivate answers an interaction so only the actor sees it
	// (refusals and acknowledgments). The token is opaque to the engine.
	ReplyPrivate(ctx context.Context, interactionToken string, content string) error
	// DeleteTimer removes an orphaned embed (start conflict recovery).
	DeleteTimer(ctx context.Context, ref MessageRef) error
}

// AdapterErrorKind classifies messaging failures. The engine only logs the
// classification; none of the kinds affect timer state.
type AdapterErrorKind int

const (
	AdapterOther AdapterErrorKind = iota
	AdapterNotFound
	AdapterForbidden
	AdapterRateLimited
	AdapterTimeout
)

func (k AdapterErrorKind) String() string {
	switch k {
	case AdapterNotFound:
		return "not_found"
	case AdapterForbidden:
		return "forbidden"
	case AdapterRateLimited:
		return "rate_limited"
	case AdapterTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// AdapterError wraps a chat-platform failure with its classification.
// RetryAfter is set for AdapterRateLimited and is logged, never acted on.
type AdapterError struct {
	Kind       AdapterErrorKind
	RetryAfter time.Duration
	Err        error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("messaging %s: %v", e.Kind, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// ClassifyAdapterError extracts the kind from any error returned by a
// Messenger, defaulting to AdapterOther.
func ClassifyAdapterError(err error) AdapterErrorKind {
	var ae *AdapterError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return AdapterTimeout
	}
	return AdapterOther
}
