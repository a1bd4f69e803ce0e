package engine

import "errors"

// Sending on a stopped actor and updating a poisoned actor are programming
// errors: shutdown must drain actors from the leaves up, and a panicking
// closure leaves the state unusable. Both propagate as panics.
var (
	ErrChannelClosed = errors.New("engine: update channel closed")
	ErrActorPoisoned = errors.New("engine: actor poisoned by earlier panic")
)
