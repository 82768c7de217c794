package portfolio

import "errors"

var (
	// ErrEmptyCompanyID indicates a record without a company scope.
	ErrEmptyCompanyID = errors.New("portfolio: empty company id")
	// ErrEmptyComponentID indicates a missing component id.
	ErrEmptyComponentID = errors.New("portfolio: empty component id")
	// ErrEmptyComponentName indicates a missing component name.
	ErrEmptyComponentName = errors.New("portfolio: empty component name")
	// ErrEmptyRenovationID indicates a missing renovation id.
	ErrEmptyRenovationID = errors.New("portfolio: empty renovation id")
	// ErrInvalidLifespan indicates a missing or non-positive expected lifespan.
	ErrInvalidLifespan = errors.New("portfolio: expected lifespan must be positive")
	// ErrNegativeCost indicates a negative money amount.
	ErrNegativeCost = errors.New("portfolio: negative amount")
	// ErrInvalidSeverity indicates a severity grade outside 1..4.
	ErrInvalidSeverity = errors.New("portfolio: severity grade must be 1..4")
	// ErrInvalidStatus indicates an unknown lifecycle status.
	ErrInvalidStatus = errors.New("portfolio: invalid status")
	// ErrYearMismatch indicates planned/done year fields inconsistent with status.
	ErrYearMismatch = errors.New("portfolio: planned and done years inconsistent with status")
	// ErrAlreadyCompleted indicates a second completion of the same renovation.
	ErrAlreadyCompleted = errors.New("portfolio: renovation already completed")
	// ErrNonPositiveShares indicates a non-positive share count.
	ErrNonPositiveShares = errors.New("portfolio: total shares must be positive")
	// ErrNonPositiveArea indicates a non-positive living area.
	ErrNonPositiveArea = errors.New("portfolio: total area must be positive")
	// ErrNonPositiveTarget indicates a non-positive monthly expense target.
	ErrNonPositiveTarget = errors.New("portfolio: monthly target must be positive")
	// ErrInvalidInvoiceCount indicates a negative unpaid invoice count.
	ErrInvalidInvoiceCount = errors.New("portfolio: unpaid invoice count cannot be negative")
	// ErrNotFound indicates a missing record.
	ErrNotFound = errors.New("portfolio: not found")
)
