package app_test

import (
	"context"
	"testing"
	"time"

	"ratewatch/internal/app"
	"ratewatch/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	c      domain.Comparison
	page   domain.ComparisonsPage
	misses []string
}

func (f *fakeRepo) UpsertComparison(ctx context.Context, c domain.Comparison) (int64, error) {
	return 1, nil
}
func (f *fakeRepo) ReplaceObservations(ctx context.Context, id int64, obs []domain.PriceObservation) error {
	return nil
}
func (f *fakeRepo) LogMiss(ctx context.Context, platform, location, reason string) error {
	f.misses = append(f.misses, platform+"|"+reason)
	return nil
}
func (f *fakeRepo) GetComparison(ctx context.Context, id int64) (domain.Comparison, error) {
	if f.c.ID == 0 {
		return domain.Comparison{}, domain.ErrNotFound
	}
	return f.c, nil
}
func (f *fakeRepo) ListComparisons(ctx context.Context, q domain.ComparisonsQuery) (domain.ComparisonsPage, error) {
	return f.page, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.ComparisonView:
		*d = v.(domain.ComparisonView)
	case *domain.ComparisonsPage:
		*d = v.(domain.ComparisonsPage)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

const refPlatform = "wholesalehotelrates"

func fixtureComparison() domain.Comparison {
	in, _ := time.Parse("2006-01-02", "2026-09-10")
	return domain.Comparison{
		ID:        42,
		HotelName: "Hilton Tokyo",
		Location:  "Tokyo, Japan",
		CheckIn:   in,
		CheckOut:  in.AddDate(0, 0, 4),
		Observations: []domain.PriceObservation{
			{Platform: "booking.com", PricePerNight: 175, TotalPrice: 700, Currency: "USD"},
			{Platform: "expedia", PricePerNight: 200, TotalPrice: 800, Currency: "USD"},
			{Platform: refPlatform, PricePerNight: 150, TotalPrice: 600, Currency: "USD"},
		},
	}
}

// ---- tests ----

func TestGetComparison_CacheMissThenHit(t *testing.T) {
	repo := &fakeRepo{c: fixtureComparison()}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute, refPlatform, 0.03)

	// Miss (first time, populates cache)
	cv, err := q.GetComparison(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !cv.SavingsAvailable || cv.Savings == nil {
		t.Fatalf("expected savings, got %+v", cv)
	}
	if cv.Savings.AveragePublicTotal != 750 || cv.Savings.SavingsAmount != 150 {
		t.Fatalf("unexpected savings: %+v", cv.Savings)
	}

	// Mutate repo to ensure second read indeed comes from cache
	repo.c.HotelName = "SHOULD NOT SEE THIS"

	cv2, err := q.GetComparison(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if cv2.HotelName != "Hilton Tokyo" {
		t.Fatalf("expected cached name, got %s", cv2.HotelName)
	}
}

func TestGetComparison_SavingsUnavailableIsABranchNotAnError(t *testing.T) {
	c := fixtureComparison()
	c.Observations = c.Observations[:2] // drop the reference observation
	repo := &fakeRepo{c: c}
	q := app.NewQueryService(repo, &fakeCache{}, 10*time.Minute, refPlatform, 0.03)

	cv, err := q.GetComparison(context.Background(), 42)
	if err != nil {
		t.Fatalf("insufficient data must not error: %v", err)
	}
	if cv.SavingsAvailable || cv.Savings != nil {
		t.Fatalf("expected absent savings, got %+v", cv.Savings)
	}
}

func TestListComparisons_Cache(t *testing.T) {
	repo := &fakeRepo{page: domain.ComparisonsPage{Items: []domain.Comparison{fixtureComparison()}}}
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute, refPlatform, 0.03)

	out, err := q.ListComparisons(context.Background(), domain.ComparisonsQuery{Limit: 10})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].HotelName != "Hilton Tokyo" {
		t.Fatalf("unexpected page: %+v", out.Items)
	}

	// Change repo, call again -> should come from cache
	repo.page.Items[0].HotelName = "Changed"
	out2, _ := q.ListComparisons(context.Background(), domain.ComparisonsQuery{Limit: 10})
	if out2.Items[0].HotelName != "Hilton Tokyo" {
		t.Fatalf("expected cached item, got %s", out2.Items[0].HotelName)
	}
}
