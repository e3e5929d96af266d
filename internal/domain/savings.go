package domain

import (
	"fmt"
	"math"
)

// SavingsResult is derived from a Comparison's observations; it is never the
// source of truth and can always be recomputed. All monetary fields are
// rounded to two decimals at this boundary only — intermediate arithmetic
// keeps full float64 precision so the three derived fields don't compound
// rounding error. Rounding mode is round-half-away-from-zero (math.Round).
type SavingsResult struct {
	ReferencePlatform  string  `json:"referencePlatform"`
	ReferenceTotal     float64 `json:"referenceTotal"`
	AveragePublicTotal float64 `json:"averagePublicTotal"`
	SavingsAmount      float64 `json:"savingsAmount"`
	SavingsPercentage  float64 `json:"savingsPercentage"`
	CashBackAmount     float64 `json:"cashBackAmount"`
}

// ComputeSavings derives savings metrics from a set of per-platform
// observations. Pure function: no I/O, no shared state, safe to call
// concurrently.
//
// Observations are partitioned into the single reference (matching
// referencePlatform) and the public rest. The public average is the
// arithmetic mean over ALL public totals — sum divided by count, whatever the
// arity. SavingsAmount may be negative; a reference above market is a
// meaningful signal and is surfaced as-is.
//
// Returns ErrInvalidObservation if any input has negative prices, and
// ErrInsufficientData when the reference is missing, there are no public
// observations, or the public average is zero.
func ComputeSavings(observations []PriceObservation, referencePlatform string, cashBackRate float64) (SavingsResult, error) {
	var (
		reference   *PriceObservation
		publicSum   float64
		publicCount int
	)
	for i := range observations {
		o := observations[i]
		if err := o.Validate(); err != nil {
			return SavingsResult{}, err
		}
		if o.Platform == referencePlatform {
			if reference != nil {
				return SavingsResult{}, fmt.Errorf("%w: duplicate reference platform %q",
					ErrInvalidObservation, referencePlatform)
			}
			reference = &observations[i]
			continue
		}
		publicSum += o.TotalPrice
		publicCount++
	}

	if reference == nil {
		return SavingsResult{}, fmt.Errorf("%w: no observation for reference platform %q",
			ErrInsufficientData, referencePlatform)
	}
	if publicCount == 0 {
		return SavingsResult{}, fmt.Errorf("%w: no public observations", ErrInsufficientData)
	}

	avg := publicSum / float64(publicCount)
	if avg == 0 {
		return SavingsResult{}, fmt.Errorf("%w: public average is zero", ErrInsufficientData)
	}

	savings := avg - reference.TotalPrice
	pct := savings / avg * 100

	return SavingsResult{
		ReferencePlatform:  referencePlatform,
		ReferenceTotal:     round2(reference.TotalPrice),
		AveragePublicTotal: round2(avg),
		SavingsAmount:      round2(savings),
		SavingsPercentage:  round2(pct),
		CashBackAmount:     round2(reference.TotalPrice * cashBackRate),
	}, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
