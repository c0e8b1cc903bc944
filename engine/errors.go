package engine

import "errors"

// Engine error taxonomy. All of these propagate to the caller unmodified;
// the engine never logs, retries, or substitutes business data. Callers
// match with errors.Is to decide user-visible behavior.
var (
	// ErrInvalidEquipmentConfiguration reports bad equipment data
	// (service life < 1 year, salvage above purchase price, negative
	// amounts). Detected at calculator construction and re-raised for
	// every call; never silently clamped.
	ErrInvalidEquipmentConfiguration = errors.New("invalid equipment configuration")

	// ErrMissingOperatingParameters reports that neither a month-specific
	// nor a default operating parameter record exists for a requested period.
	ErrMissingOperatingParameters = errors.New("missing operating parameters")

	// ErrNoActiveMembers reports an allocation of a positive cost with
	// nobody to allocate to.
	ErrNoActiveMembers = errors.New("no active members to allocate to")
)
