package wizard

import "errors"

var (
	// ErrSessionNotFound when the session id is unknown or expired
	ErrSessionNotFound = errors.New("wizard session not found")

	// ErrAtFirstStep when prev is called on the first step
	ErrAtFirstStep = errors.New("already at the first step")

	// ErrAtLastStep when next is called on the last step
	ErrAtLastStep = errors.New("already at the last step")

	// ErrBadCandidateIndex when a candidate operation references a position
	// outside the current queue
	ErrBadCandidateIndex = errors.New("candidate index out of range")
)
