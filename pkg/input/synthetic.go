package input

import (
	"context"
	"time"
)

// DefaultSyntheticInterval paces a looping script that was given no interval.
const DefaultSyntheticInterval = 250 * time.Millisecond

// SyntheticOptions configures the scripted source.
type SyntheticOptions struct {
	// Interval is the delay before each scripted event. Zero replays a
	// one-shot script instantly; a looping script uses DefaultSyntheticInterval.
	Interval time.Duration
	// Script overrides the default pointer choreography.
	Script []RawEvent
	// Loop replays the script until the context ends.
	Loop bool
}

type syntheticSource struct {
	interval time.Duration
	script   []RawEvent
	loop     bool
}

// NewSyntheticSource returns a deterministic Source. After the script is
// exhausted (and Loop is false) the stream idles until ctx is done, like a
// hook that sees no further input.
func NewSyntheticSource(opts SyntheticOptions) Source {
	script := opts.Script
	if len(script) == 0 {
		script = defaultScript()
	}
	interval := opts.Interval
	if opts.Loop && interval <= 0 {
		interval = DefaultSyntheticInterval
	}
	return syntheticSource{interval: interval, script: script, loop: opts.Loop}
}

func defaultScript() []RawEvent {
	return []RawEvent{
		Move(120, 80),
		Move(240, 160),
		Press(),
		{Kind: KindOther},
		Move(640, 360),
		Press(),
		Move(1024, 512),
		Press(),
	}
}

func (s syntheticSource) Stream(ctx context.Context, emit func(RawEvent)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		for _, ev := range s.script {
			if err := s.wait(ctx); err != nil {
				return err
			}
			emit(ev)
		}
		if !s.loop {
			break
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s syntheticSource) wait(ctx context.Context) error {
	if s.interval <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
