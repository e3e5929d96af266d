package domain

import (
	"context"
	"time"
)

type ComparisonRepository interface {
	// Write paths
	UpsertComparison(ctx context.Context, c Comparison) (int64, error)
	ReplaceObservations(ctx context.Context, comparisonID int64, obs []PriceObservation) error
	LogMiss(ctx context.Context, platform, location, reason string) error

	// Read paths
	GetComparison(ctx context.Context, id int64) (Comparison, error)
	ListComparisons(ctx context.Context, q ComparisonsQuery) (ComparisonsPage, error)
}

// PriceSource supplies per-platform quote payloads for one stay. Payloads are
// duck-typed JSON straight off the feed; the app layer validates them into
// PriceObservations before anything downstream sees them.
type PriceSource interface {
	GetQuotes(ctx context.Context, q StayQuery) ([]map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

// ComparisonView is a Comparison plus its derived savings. Savings is nil
// when the data is insufficient; SavingsAvailable makes the branch explicit
// on the wire so the UI never assumes a number exists.
type ComparisonView struct {
	Comparison
	Savings          *SavingsResult
	SavingsAvailable bool
}

type StayQuery struct {
	HotelName  string
	Location   string
	CheckIn    time.Time
	CheckOut   time.Time
	StarRating *int
}

type ComparisonsQuery struct {
	Limit int
}

type ComparisonsPage struct {
	Items      []Comparison
	NextCursor *string
}
