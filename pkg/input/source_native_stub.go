//go:build !cgo

package input

import "context"

// NativeSupported reports whether this build links the global hook.
const NativeSupported = false

// NewNativeSource returns a Source that fails immediately; the global hook
// needs cgo.
func NewNativeSource() Source {
	return SourceFunc(func(context.Context, func(RawEvent)) error {
		return ErrNativeUnavailable
	})
}
