package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"ratewatch/internal/domain"
)

type IngestionService struct {
	source            domain.PriceSource
	repo              domain.ComparisonRepository
	cache             domain.Cache
	referencePlatform string
}

func NewIngestionService(src domain.PriceSource, r domain.ComparisonRepository, cache domain.Cache, referencePlatform string) *IngestionService {
	return &IngestionService{source: src, repo: r, cache: cache, referencePlatform: referencePlatform}
}

// IngestComparison fetches quotes for one stay from the price feed, validates
// them into observations, and stores the result. Per-platform failures are
// recorded as misses and skipped — a scrape run regularly loses one platform
// without losing the comparison. A stay with no usable quotes at all is a
// miss, not an error. Storage failures bubble up.
func (s *IngestionService) IngestComparison(ctx context.Context, stay domain.StayQuery) (int64, error) {
	quotes, err := s.source.GetQuotes(ctx, stay)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_ = s.repo.LogMiss(ctx, "", stay.Location, "feed: not found")
			return 0, nil
		}
		return 0, fmt.Errorf("fetch quotes for %q/%q: %w", stay.HotelName, stay.Location, err)
	}

	c := NewComparison(stay)
	nights := c.Nights()
	for _, q := range quotes {
		o, merr := MapObservation(q, nights)
		if merr != nil {
			// rejected, not dropped silently: the miss is recorded
			platform := firstNonEmptyAlias(q, "platform")
			log.Warn().Str("platform", platform).Str("location", stay.Location).Err(merr).Msg("quote rejected")
			_ = s.repo.LogMiss(ctx, platform, stay.Location, merr.Error())
			continue
		}
		c.Observations = append(c.Observations, o)
	}
	if len(c.Observations) == 0 {
		_ = s.repo.LogMiss(ctx, "", stay.Location, "no usable quotes")
		return 0, nil
	}

	return s.StoreComparison(ctx, c)
}

// StoreComparison validates and persists a fully-assembled comparison (from
// the feed or from the demo seeder) and invalidates the read caches touching
// it.
func (s *IngestionService) StoreComparison(ctx context.Context, c domain.Comparison) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	id, err := s.repo.UpsertComparison(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("upsert comparison %q: %w", c.HotelName, err)
	}
	if err := s.repo.ReplaceObservations(ctx, id, c.Observations); err != nil {
		return 0, fmt.Errorf("replace observations for %d: %w", id, err)
	}
	if s.cache != nil {
		s.invalidate(ctx, id)
	}
	return id, nil
}

func (s *IngestionService) invalidate(ctx context.Context, id int64) {
	_ = s.cache.Del(ctx, fmt.Sprintf("comparison:%d", id))
	// list caches for the common limits the API hands out
	for _, lim := range []int{20, 50, 100} {
		_ = s.cache.Del(ctx, fmt.Sprintf("comparisons:%d", lim))
	}
}
