package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrFetchFailed wraps any error returned by the Fetcher.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrDisposed is returned by operations on a disposed loader.
	ErrDisposed = errors.New("feed loader disposed")
)

// Fetcher loads one page of a feed.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, offset, limit int) ([]T, error)
}

// Sentinel marks the tail of the feed at a given offset. A sentinel taken
// before the offset moved is stale and never triggers a fetch.
type Sentinel struct {
	Offset int
}

// Option configures a Loader.
type Option func(*options)

type options struct {
	log          *slog.Logger
	fetchTimeout time.Duration
}

// WithLogger sets the loader's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithFetchTimeout bounds every fetch. Zero means no timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) { o.fetchTimeout = d }
}

// Loader drives one feed. At most one fetch is in flight at any time; a
// trigger arriving while fetching or after exhaustion is a no-op.
type Loader[T any] struct {
	fetcher      Fetcher[T]
	log          *slog.Logger
	fetchTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	stop   func() bool

	mu       sync.Mutex
	state    State[T]
	disposed bool
	subs     map[int]func(State[T])
	nextSub  int
	notifyMu sync.Mutex
}

// NewLoader creates a loader paging by limit. The loader is disposed when
// ctx is done.
func NewLoader[T any](ctx context.Context, fetcher Fetcher[T], limit int, opts ...Option) *Loader[T] {
	o := options{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Loader[T]{
		fetcher:      fetcher,
		log:          o.log.With("component", "feed.loader"),
		fetchTimeout: o.fetchTimeout,
		state:        NewState[T](limit),
		subs:         make(map[int]func(State[T])),
	}
	l.ctx, l.cancel = context.WithCancel(context.WithoutCancel(ctx))

	l.mu.Lock()
	l.stop = context.AfterFunc(ctx, l.Dispose)
	l.mu.Unlock()
	return l
}

// State returns the current snapshot.
func (l *Loader[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Mount issues the first fetch. It is LoadMore under the name of the event
// that triggers it.
func (l *Loader[T]) Mount() (State[T], error) {
	return l.LoadMore()
}

// LoadMore fetches the next page if the feed is Idle and blocks until the
// result is applied. In any other phase it returns the current state
// unchanged. A failed fetch returns an error wrapping ErrFetchFailed and
// leaves the feed Idle at the same offset.
func (l *Loader[T]) LoadMore() (State[T], error) {
	l.mu.Lock()
	if l.disposed {
		s := l.state
		l.mu.Unlock()
		return s, ErrDisposed
	}
	next, started := StartFetch(l.state)
	if !started {
		l.mu.Unlock()
		return next, nil
	}
	l.state = next
	l.mu.Unlock()
	l.notify(next)

	rows, err := l.fetch(next.Offset, next.Limit)

	l.mu.Lock()
	if l.disposed {
		s := l.state
		l.mu.Unlock()
		l.log.Debug("result dropped after dispose", slog.Int("offset", next.Offset))
		return s, ErrDisposed
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
		l.state = ApplyFailure(l.state, err)
	} else {
		l.state = ApplyPage(l.state, rows)
	}
	s := l.state
	l.mu.Unlock()

	if err != nil {
		l.log.Warn("feed fetch failed",
			slog.Int("offset", next.Offset),
			slog.String("error", err.Error()),
		)
	}
	l.notify(s)
	return s, err
}

func (l *Loader[T]) fetch(offset, limit int) ([]T, error) {
	ctx := l.ctx
	if l.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.fetchTimeout)
		defer cancel()
	}
	return l.fetcher.FetchPage(ctx, offset, limit)
}

// Sentinel returns the tail marker for the current offset. ok is false once
// the feed is exhausted.
func (l *Loader[T]) Sentinel() (s Sentinel, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Exhausted() {
		return Sentinel{}, false
	}
	return Sentinel{Offset: l.state.Offset}, true
}

// Enter reports that the sentinel came into view. Only a sentinel for the
// current offset triggers LoadMore.
func (l *Loader[T]) Enter(s Sentinel) (State[T], error) {
	l.mu.Lock()
	stale := s.Offset != l.state.Offset
	cur := l.state
	l.mu.Unlock()
	if stale {
		return cur, nil
	}
	return l.LoadMore()
}

// Subscribe registers fn to receive every new state, in order. fn runs on
// the goroutine that caused the transition and must not call LoadMore, Enter
// or Mount. The returned func unregisters it.
func (l *Loader[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.disposed {
		return func() {}
	}
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

func (l *Loader[T]) notify(s State[T]) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	subs := make([]func(State[T]), 0, len(l.subs))
	for id := 0; id < l.nextSub; id++ {
		if fn, ok := l.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Dispose cancels any fetch in flight and drops its result. It is safe to
// call more than once.
func (l *Loader[T]) Dispose() {
	l.mu.Lock()
	if l.disposed {
		l.mu.Unlock()
		return
	}
	l.disposed = true
	clear(l.subs)
	stop := l.stop
	l.mu.Unlock()

	l.cancel()
	stop()
}
