package aircraft

import "errors"

var (
	// ErrAircraftNotFound when the listing does not exist
	ErrAircraftNotFound = errors.New("aircraft not found")

	// ErrRegistrationTaken when another listing already carries the
	// registration mark
	ErrRegistrationTaken = errors.New("registration already listed")
)
