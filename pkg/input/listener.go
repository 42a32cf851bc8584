package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// State describes the listener lifecycle for diagnostics.
type State string

const (
	// StateNotStarted is reported before Start or Run.
	StateNotStarted State = "not_started"
	// StateRunning means the source is delivering events.
	StateRunning State = "running"
	// StateStopped means the context ended the listener.
	StateStopped State = "stopped"
	// StateFailed means the subscription broke; see Err.
	StateFailed State = "failed"
)

// ListenerOptions wires the listener to its collaborators.
type ListenerOptions struct {
	Source  Source
	Session RecordingState
	Emitter Emitter
	Clock   func() time.Time
	Logger  *slog.Logger
}

// Stats counts how primary presses were handled.
type Stats struct {
	Moves     uint64
	Emitted   uint64
	Discarded uint64
	Failed    uint64
}

// Listener owns the single background capture loop.
type Listener struct {
	source  Source
	session RecordingState
	emitter Emitter
	clock   func() time.Time
	logger  *slog.Logger

	once  sync.Once
	done  chan struct{}
	state atomic.Value
	err   error

	moves     atomic.Uint64
	emitted   atomic.Uint64
	discarded atomic.Uint64
	failed    atomic.Uint64
}

// pointerState is owned by the capture loop and never shared.
type pointerState struct {
	x, y      float64
	lastStamp uint64
}

// NewListener validates options and constructs an unstarted listener.
func NewListener(opts ListenerOptions) (*Listener, error) {
	if opts.Source == nil {
		return nil, errors.New("input source must be provided")
	}
	if opts.Session == nil {
		return nil, errors.New("recording session must be provided")
	}
	if opts.Emitter == nil {
		return nil, errors.New("emitter must be provided")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := &Listener{
		source:  opts.Source,
		session: opts.Session,
		emitter: opts.Emitter,
		clock:   clock,
		logger:  logger,
		done:    make(chan struct{}),
	}
	l.state.Store(StateNotStarted)
	return l, nil
}

// Start launches the capture loop in its own goroutine. Only the first call
// has an effect.
func (l *Listener) Start(ctx context.Context) {
	l.once.Do(func() {
		l.state.Store(StateRunning)
		go l.run(ctx)
	})
}

// Run executes the capture loop on the calling goroutine and returns the
// terminal error. It returns ErrAlreadyStarted if the loop was launched before.
func (l *Listener) Run(ctx context.Context) error {
	ran := false
	l.once.Do(func() {
		ran = true
		l.state.Store(StateRunning)
		l.run(ctx)
	})
	if !ran {
		return ErrAlreadyStarted
	}
	return l.err
}

// Done is closed once the capture loop has ended.
func (l *Listener) Done() <-chan struct{} {
	return l.done
}

// Err reports why the loop ended. It is nil while running.
func (l *Listener) Err() error {
	select {
	case <-l.done:
		return l.err
	default:
		return nil
	}
}

// State returns the current lifecycle state.
func (l *Listener) State() State {
	return l.state.Load().(State)
}

// Stats returns a copy of the handling counters.
func (l *Listener) Stats() Stats {
	return Stats{
		Moves:     l.moves.Load(),
		Emitted:   l.emitted.Load(),
		Discarded: l.discarded.Load(),
		Failed:    l.failed.Load(),
	}
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.done)
	if ctx == nil {
		ctx = context.Background()
	}

	l.logger.Info("input listener started")
	var ptr pointerState
	err := l.source.Stream(ctx, func(ev RawEvent) {
		l.handle(&ptr, ev)
	})

	if ctxErr := ctx.Err(); ctxErr != nil && (err == nil || errors.Is(err, ctxErr)) {
		l.err = ctxErr
		l.state.Store(StateStopped)
		l.logger.Info("input listener stopped", "reason", ctxErr)
		return
	}
	if err == nil {
		err = ErrSubscriptionClosed
	}
	l.err = fmt.Errorf("%w: %w", ErrSubscriptionFailed, err)
	l.state.Store(StateFailed)
	l.logger.Error("input listener terminated; no further clicks will be captured", "error", err)
}

func (l *Listener) handle(ptr *pointerState, ev RawEvent) {
	switch ev.Kind {
	case KindMove:
		ptr.x, ptr.y = ev.X, ev.Y
		l.moves.Add(1)
	case KindPrimaryPress:
		if !l.session.Recording() {
			l.discarded.Add(1)
			return
		}
		click := ClickEvent{X: ptr.x, Y: ptr.y, Timestamp: ptr.stamp(l.clock())}
		if err := l.emitter.Emit(EventMouseClick, click); err != nil {
			l.failed.Add(1)
			l.logger.Debug("mouse click not delivered", "error", err)
			return
		}
		l.emitted.Add(1)
	}
}

// stamp converts now to Unix milliseconds, never going below the previous
// emission.
func (p *pointerState) stamp(now time.Time) uint64 {
	ms := now.UnixMilli()
	if ms < 0 {
		ms = 0
	}
	stamp := uint64(ms)
	if stamp < p.lastStamp {
		stamp = p.lastStamp
	}
	p.lastStamp = stamp
	return stamp
}
