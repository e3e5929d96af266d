package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ratewatch/internal/domain"
)

type QueryService struct {
	repo              domain.ComparisonRepository
	cache             domain.Cache
	cacheTTL          time.Duration
	referencePlatform string
	cashBackRate      float64
}

func NewQueryService(r domain.ComparisonRepository, c domain.Cache, ttl time.Duration, referencePlatform string, cashBackRate float64) *QueryService {
	return &QueryService{
		repo:              r,
		cache:             c,
		cacheTTL:          ttl,
		referencePlatform: referencePlatform,
		cashBackRate:      cashBackRate,
	}
}

// GetComparison returns one comparison with its derived savings. Insufficient
// data is a normal branch: the view comes back with Savings nil and
// SavingsAvailable false, never a fabricated zero.
func (s *QueryService) GetComparison(ctx context.Context, id int64) (domain.ComparisonView, error) {
	key := fmt.Sprintf("comparison:%d", id)
	var cv domain.ComparisonView
	if ok, _ := s.cache.Get(ctx, key, &cv); ok {
		return cv, nil
	}

	c, err := s.repo.GetComparison(ctx, id)
	if err != nil {
		return domain.ComparisonView{}, err
	}
	cv, err = s.buildView(c)
	if err != nil {
		return domain.ComparisonView{}, err
	}

	_ = s.cache.Set(ctx, key, cv, int(s.cacheTTL.Seconds()))
	return cv, nil
}

// ListComparisons returns recent comparisons without observations or savings;
// the detail endpoint carries those.
func (s *QueryService) ListComparisons(ctx context.Context, q domain.ComparisonsQuery) (domain.ComparisonsPage, error) {
	key := fmt.Sprintf("comparisons:%d", q.Limit)
	var out domain.ComparisonsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	page, err := s.repo.ListComparisons(ctx, q)
	if err != nil {
		return domain.ComparisonsPage{}, err
	}

	// copy slice to avoid aliasing the repo's backing array (prevents callers
	// from mutating the cached value)
	copyPage := deepCopyComparisonsPage(page)

	// optional size guard
	if b, _ := json.Marshal(copyPage); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, copyPage, int(s.cacheTTL.Seconds()))
	}
	return copyPage, nil
}

func (s *QueryService) buildView(c domain.Comparison) (domain.ComparisonView, error) {
	cv := domain.ComparisonView{Comparison: c}
	sv, err := domain.ComputeSavings(c.Observations, s.referencePlatform, s.cashBackRate)
	switch {
	case err == nil:
		cv.Savings = &sv
		cv.SavingsAvailable = true
	case errors.Is(err, domain.ErrInsufficientData):
		log.Debug().Int64("id", c.ID).Err(err).Msg("savings unavailable")
	default:
		// stored data failed validation; that's a data fault, not a branch
		return domain.ComparisonView{}, err
	}
	return cv, nil
}

func deepCopyComparisonsPage(in domain.ComparisonsPage) domain.ComparisonsPage {
	out := domain.ComparisonsPage{NextCursor: in.NextCursor}
	if n := len(in.Items); n > 0 {
		out.Items = make([]domain.Comparison, n)
		copy(out.Items, in.Items)
	}
	return out
}
