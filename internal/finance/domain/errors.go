package finance

import "errors"

var (
	// ErrNonPositivePrincipal indicates a missing or non-positive amount.
	ErrNonPositivePrincipal = errors.New("finance: amount must be positive")
	// ErrNegativeRate indicates a negative interest rate.
	ErrNegativeRate = errors.New("finance: negative interest rate")
	// ErrNonPositiveTerm indicates a missing or non-positive term.
	ErrNonPositiveTerm = errors.New("finance: term must be positive")
	// ErrNonPositiveShares indicates a non-positive share count.
	ErrNonPositiveShares = errors.New("finance: total shares must be positive")
	// ErrNonPositiveArea indicates a non-positive living area.
	ErrNonPositiveArea = errors.New("finance: total area must be positive")
	// ErrNegativeSavings indicates negative annual savings.
	ErrNegativeSavings = errors.New("finance: negative annual savings")
)
