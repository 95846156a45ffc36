package kv

import "errors"

// ErrConflict is returned by Update when ctx is cancelled before the
// underlying write transaction could be acquired/committed.
var ErrConflict = errors.New("kv: conflict")
