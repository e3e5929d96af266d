package domain

import (
	"fmt"
	"strings"
	"time"
)

// PriceObservation is one platform's quote for a stay. Observations are
// immutable once recorded and belong to exactly one Comparison.
type PriceObservation struct {
	ID            int64
	ComparisonID  int64
	Platform      string
	PricePerNight float64
	TotalPrice    float64
	Currency      string
	ScreenshotURL *string
	ExtractedJSON []byte // raw payload the platform quote was extracted from
}

// Comparison is one hotel/stay with its per-platform observations.
type Comparison struct {
	ID           int64
	HotelName    string
	Location     string
	CheckIn      time.Time
	CheckOut     time.Time
	StarRating   *int
	Description  *string
	Observations []PriceObservation
}

// Nights is the stay length in whole days.
func (c Comparison) Nights() int {
	return int(c.CheckOut.Sub(c.CheckIn).Hours() / 24)
}

// Validate checks the structural invariants a producer must satisfy before a
// comparison is stored: non-empty descriptive fields, checkOut strictly after
// checkIn, star rating in [1,5], unique non-empty platforms, non-negative
// prices.
func (c Comparison) Validate() error {
	if strings.TrimSpace(c.HotelName) == "" {
		return fmt.Errorf("%w: empty hotel name", ErrInvalidObservation)
	}
	if strings.TrimSpace(c.Location) == "" {
		return fmt.Errorf("%w: empty location", ErrInvalidObservation)
	}
	if !c.CheckOut.After(c.CheckIn) {
		return fmt.Errorf("%w: check-out %s not after check-in %s",
			ErrInvalidObservation, c.CheckOut.Format("2006-01-02"), c.CheckIn.Format("2006-01-02"))
	}
	if c.StarRating != nil && (*c.StarRating < 1 || *c.StarRating > 5) {
		return fmt.Errorf("%w: star rating %d outside [1,5]", ErrInvalidObservation, *c.StarRating)
	}
	seen := make(map[string]struct{}, len(c.Observations))
	for _, o := range c.Observations {
		if err := o.Validate(); err != nil {
			return err
		}
		if _, dup := seen[o.Platform]; dup {
			return fmt.Errorf("%w: duplicate platform %q", ErrInvalidObservation, o.Platform)
		}
		seen[o.Platform] = struct{}{}
	}
	return nil
}

// Validate rejects negative or platform-less observations. Negative prices
// are a data fault and must never be coerced to zero.
func (o PriceObservation) Validate() error {
	if strings.TrimSpace(o.Platform) == "" {
		return fmt.Errorf("%w: empty platform", ErrInvalidObservation)
	}
	if o.PricePerNight < 0 {
		return fmt.Errorf("%w: platform %q price per night %.2f is negative",
			ErrInvalidObservation, o.Platform, o.PricePerNight)
	}
	if o.TotalPrice < 0 {
		return fmt.Errorf("%w: platform %q total price %.2f is negative",
			ErrInvalidObservation, o.Platform, o.TotalPrice)
	}
	return nil
}
