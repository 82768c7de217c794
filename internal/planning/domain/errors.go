package planning

import "errors"

var (
	// ErrInvalidLifespan indicates a missing or non-positive expected lifespan.
	ErrInvalidLifespan = errors.New("planning: expected lifespan must be positive")
	// ErrNegativeCost indicates a negative money amount.
	ErrNegativeCost = errors.New("planning: negative cost")
	// ErrNegativeYears indicates a negative projection span.
	ErrNegativeYears = errors.New("planning: negative year span")
	// ErrInvalidIndex indicates a non-positive construction cost index.
	ErrInvalidIndex = errors.New("planning: construction cost index must be positive")
)
