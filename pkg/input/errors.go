package input

import "errors"

// ErrSubscriptionFailed wraps any error that ends the raw event subscription.
var ErrSubscriptionFailed = errors.New("input subscription failed")

// ErrSubscriptionClosed indicates the OS hook stopped delivering events.
var ErrSubscriptionClosed = errors.New("input subscription closed")

// ErrNativeUnavailable is returned by the native source in builds without cgo.
var ErrNativeUnavailable = errors.New("native input hook unavailable: built without cgo")

// ErrAccessibilityPermission indicates the host must grant Accessibility trust.
var ErrAccessibilityPermission = errors.New("accessibility permission required for global input capture")

// ErrAlreadyStarted is returned by Run when the listener was already launched.
var ErrAlreadyStarted = errors.New("input listener already started")
