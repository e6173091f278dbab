// Package controller implements the per-screen view-state machine shared by
// every list/detail screen:
//
//	Idle -> Loading -> {Ready | Errored}
//	Ready -> Submitting -> {Ready | Errored}
//
// A Ready state with zero items is a valid empty screen, distinct from
// Errored; renderers must never conflate the two.
package controller

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vkuzmenko/classmate/internal/logging"
)

type Phase int

const (
	Idle Phase = iota
	Loading
	Ready
	Errored
	Submitting
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "error"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

// State is an immutable snapshot of a screen. Message is the inline error
// text when Phase is Errored.
type State[T any] struct {
	Phase   Phase
	Items   []T
	Message string
}

// Fetch loads the screen's collection. Single-record screens wrap the record
// in a one-element slice.
type Fetch[T any] func(ctx context.Context) ([]T, error)

// List coordinates one screen's fetches and mutations.
//
// Every Load is stamped with a request id; a response is applied only while
// its stamp is still the newest one issued, so a slow earlier response can
// never overwrite fresher state. Close invalidates all outstanding stamps.
type List[T any] struct {
	mu      sync.Mutex
	fetch   Fetch[T]
	state   State[T]
	current string
	closed  bool
	log     logging.Logger
}

func NewList[T any](fetch Fetch[T], log logging.Logger) *List[T] {
	return &List[T]{fetch: fetch, state: State[T]{Phase: Idle}, log: log}
}

// Load issues one fetch and applies the result unless a newer Load has been
// issued in the meantime or the controller is closed. Errors surface in the
// state, never as a return value: the screen always renders something.
func (l *List[T]) Load(ctx context.Context) {
	stamp := l.begin()
	if stamp == "" {
		return
	}
	items, err := l.fetch(ctx)
	l.finish(ctx, stamp, items, err)
}

// Retry re-issues exactly one fetch. It exists so renderers can offer an
// explicit retry affordance on the Errored state.
func (l *List[T]) Retry(ctx context.Context) {
	l.Load(ctx)
}

func (l *List[T]) begin() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ""
	}
	stamp := uuid.NewString()
	l.current = stamp
	l.state.Phase = Loading
	return stamp
}

func (l *List[T]) finish(ctx context.Context, stamp string, items []T, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || stamp != l.current {
		l.log.Debug(ctx, "discarding stale response", "stamp", stamp)
		return
	}

	if err != nil {
		l.state = State[T]{Phase: Errored, Items: l.state.Items, Message: err.Error()}
		return
	}
	l.state = State[T]{Phase: Ready, Items: items}
}

// State returns a snapshot; the items slice is copied so renderers can't
// race with later patches.
func (l *List[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	snap := l.state
	snap.Items = append([]T(nil), l.state.Items...)
	return snap
}

// Submit runs a user-initiated mutation through the Submitting phase. On
// success the previous items are kept; the caller follows up with Patch for
// locally-derivable changes or Load when server-computed fields are needed.
// On failure the screen moves to Errored with the items retained.
func (l *List[T]) Submit(ctx context.Context, do func(ctx context.Context) error) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	prev := l.state.Phase
	l.state.Phase = Submitting
	l.mu.Unlock()

	err := do(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return err
	}
	if err != nil {
		l.state = State[T]{Phase: Errored, Items: l.state.Items, Message: err.Error()}
		return err
	}
	l.state.Phase = prev
	if l.state.Phase == Submitting {
		l.state.Phase = Ready
	}
	return nil
}

// Patch applies an in-place optimistic update to every matching item, with
// no re-fetch. Used when the mutation's effect is fully known locally
// (a grade set, a roster removal).
func (l *List[T]) Patch(match func(item *T) bool, apply func(item *T)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.state.Items {
		if match(&l.state.Items[i]) {
			apply(&l.state.Items[i])
		}
	}
}

// Remove drops every matching item from the local collection.
func (l *List[T]) Remove(match func(item *T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.state.Items[:0]
	for i := range l.state.Items {
		if !match(&l.state.Items[i]) {
			kept = append(kept, l.state.Items[i])
		}
	}
	l.state.Items = kept
}

// Close marks the screen unmounted: in-flight results are discarded when
// they resolve and no further loads start.
func (l *List[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.current = ""
}
