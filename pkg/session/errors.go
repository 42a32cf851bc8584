package session

import "errors"

// ErrAlreadyRecording is returned by Start when a session is already active.
var ErrAlreadyRecording = errors.New("already recording")

// ErrNotRecording is returned by Stop when no session is active.
var ErrNotRecording = errors.New("not recording")
