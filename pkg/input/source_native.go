//go:build cgo

package input

import (
	"context"

	hook "github.com/robotn/gohook"

	"github.com/offlinefirst/cursorcast/pkg/permissions"
)

// NativeSupported reports whether this build links the global hook.
const NativeSupported = true

type nativeSource struct{}

// NewNativeSource returns a Source backed by the process-wide gohook hook.
// Only one native stream may be active per process.
func NewNativeSource() Source {
	return nativeSource{}
}

func (nativeSource) Stream(ctx context.Context, emit func(RawEvent)) error {
	if permissions.ProbeAccessibility(nil).Status == permissions.StatusDenied {
		return ErrAccessibilityPermission
	}
	if ctx == nil {
		ctx = context.Background()
	}

	events := hook.Start()
	defer hook.End()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || ev.Kind == hook.HookDisabled {
				return ErrSubscriptionClosed
			}
			emit(translateHookEvent(ev))
		}
	}
}

// translateHookEvent maps gohook kinds onto raw events. gohook reports the
// physical button press as MouseHold; MouseDown fires on release.
func translateHookEvent(ev hook.Event) RawEvent {
	switch ev.Kind {
	case hook.MouseMove, hook.MouseDrag:
		return Move(float64(ev.X), float64(ev.Y))
	case hook.MouseHold:
		if ev.Button == hook.MouseMap["left"] {
			return Press()
		}
	}
	return RawEvent{Kind: KindOther}
}
