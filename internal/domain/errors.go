package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when a comparison does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidObservation marks price data that fails ingestion validation
	// (negative prices, missing platform, duplicate platform). Invalid input
	// is rejected, never silently zeroed.
	ErrInvalidObservation = errors.New("invalid observation")

	// ErrInsufficientData is the expected "no comparison possible" outcome:
	// the reference platform is missing, there are no public observations, or
	// the public average is zero. Callers branch on it and render an explicit
	// unavailable state instead of a fabricated number.
	ErrInsufficientData = errors.New("insufficient data")
)
