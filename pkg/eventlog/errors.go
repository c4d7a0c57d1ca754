package eventlog

import "errors"

// ErrUnknownListener is returned when an operation references a listener key
// that was never registered, or was already unregistered. A reused slot with
// a newer generation reports the same error for keys from the old tenant.
var ErrUnknownListener = errors.New("eventlog: unknown listener key")
