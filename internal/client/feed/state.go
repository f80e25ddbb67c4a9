// Package feed implements an incremental, offset-paged feed loader for
// clients of the events API.
package feed

import "slices"

// Phase is the loader's position in its state machine:
// Idle -> Fetching -> (Idle | Exhausted). Exhausted is terminal.
type Phase int

const (
	Idle Phase = iota
	Fetching
	Exhausted
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a feed. Items is shared between
// snapshots and must not be modified by receivers.
type State[T any] struct {
	Items  []T
	Offset int
	Limit  int
	Phase  Phase
	// LastErr is the failure of the most recent fetch, cleared by the next
	// successful one.
	LastErr error
}

// NewState returns the initial state of a feed paged by limit.
func NewState[T any](limit int) State[T] {
	return State[T]{Limit: limit, Phase: Idle}
}

func (s State[T]) IsFetching() bool { return s.Phase == Fetching }

func (s State[T]) Exhausted() bool { return s.Phase == Exhausted }

// StartFetch moves an Idle feed to Fetching. started is false, and s is
// returned unchanged, in any other phase.
func StartFetch[T any](s State[T]) (next State[T], started bool) {
	if s.Phase != Idle {
		return s, false
	}
	s.Phase = Fetching
	return s, true
}

// ApplyPage appends a fetched page in server order. A short or empty page
// exhausts the feed without advancing the offset; a full page advances it
// by Limit.
func ApplyPage[T any](s State[T], rows []T) State[T] {
	if s.Phase != Fetching {
		return s
	}
	s.Items = slices.Concat(s.Items, rows)
	s.LastErr = nil
	if len(rows) == 0 || len(rows) < s.Limit {
		s.Phase = Exhausted
		return s
	}
	s.Offset += s.Limit
	s.Phase = Idle
	return s
}

// ApplyFailure returns a failed feed to Idle with its offset unchanged, so
// the next trigger retries the same page.
func ApplyFailure[T any](s State[T], err error) State[T] {
	if s.Phase != Fetching {
		return s
	}
	s.Phase = Idle
	s.LastErr = err
	return s
}
