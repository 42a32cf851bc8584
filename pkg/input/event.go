package input

import "context"

// EventMouseClick is the outbound event name for emitted clicks.
const EventMouseClick = "mouse-click"

// Kind classifies raw pointer events.
type Kind int

const (
	// KindOther covers every raw event the listener ignores.
	KindOther Kind = iota
	// KindMove carries a new cursor position.
	KindMove
	// KindPrimaryPress is a press of the primary (left) button.
	KindPrimaryPress
)

// String returns the lower-case kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindPrimaryPress:
		return "primary-press"
	default:
		return "other"
	}
}

// RawEvent is a single sample from the OS pointer stream. X and Y are only
// meaningful for KindMove.
type RawEvent struct {
	Kind Kind
	X    float64
	Y    float64
}

// Move builds a KindMove event.
func Move(x, y float64) RawEvent {
	return RawEvent{Kind: KindMove, X: x, Y: y}
}

// Press builds a KindPrimaryPress event.
func Press() RawEvent {
	return RawEvent{Kind: KindPrimaryPress}
}

// ClickEvent is the payload of a "mouse-click" emission. Timestamp is in
// milliseconds since the Unix epoch.
type ClickEvent struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp uint64  `json:"timestamp"`
}

// Source is a blocking subscription to raw pointer events. Stream calls emit
// synchronously, in OS order, and returns only when the subscription ends.
type Source interface {
	Stream(ctx context.Context, emit func(RawEvent)) error
}

// SourceFunc adapts a function literal to the Source interface.
type SourceFunc func(ctx context.Context, emit func(RawEvent)) error

// Stream calls the underlying function.
func (f SourceFunc) Stream(ctx context.Context, emit func(RawEvent)) error {
	return f(ctx, emit)
}

// Emitter delivers named events to the host boundary. Implementations must
// not block; returned errors are treated as dropped deliveries.
type Emitter interface {
	Emit(name string, payload any) error
}

// RecordingState is the read side of the recording session.
type RecordingState interface {
	Recording() bool
}
