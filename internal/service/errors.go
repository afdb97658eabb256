package service

import "errors"

// Recoverable error taxonomy of the conversational core. None of these is
// fatal: each maps to a user-facing message and a state reset, and the
// process keeps serving.
var (
	// ErrDatasetUnavailable means the dataset failed to load at startup;
	// every request gets a fixed apology and performs no computation.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrNoMatch means the filter pipeline produced zero candidates.
	ErrNoMatch = errors.New("no matching recipes")

	// ErrInvalidSelection means a selection token was non-numeric or out of
	// range; transient selection state is cleared.
	ErrInvalidSelection = errors.New("invalid selection token")

	// ErrAmbiguousInput means the request carried no usable search terms;
	// dependent state is cleared so stale slots cannot leak into later turns.
	ErrAmbiguousInput = errors.New("no usable search terms")
)

// Recoverable reports whether err belongs to the conversational taxonomy and
// should surface as a message rather than a transport failure.
func Recoverable(err error) bool {
	return errors.Is(err, ErrDatasetUnavailable) ||
		errors.Is(err, ErrNoMatch) ||
		errors.Is(err, ErrInvalidSelection) ||
		errors.Is(err, ErrAmbiguousInput)
}
