package emit

import "errors"

// ErrNoSubscribers reports that an emitted message reached nobody.
var ErrNoSubscribers = errors.New("no active subscribers")

// ErrClosed is returned when subscribing to a closed broadcaster.
var ErrClosed = errors.New("broadcaster closed")
