package domain_test

import (
	"errors"
	"testing"
	"time"

	"ratewatch/internal/domain"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func validComparison() domain.Comparison {
	stars := 4
	return domain.Comparison{
		HotelName:  "Hilton Tokyo",
		Location:   "Tokyo, Japan",
		CheckIn:    day("2026-09-10"),
		CheckOut:   day("2026-09-13"),
		StarRating: &stars,
		Observations: []domain.PriceObservation{
			obs("booking.com", 200, 600),
			obs(ref, 170, 510),
		},
	}
}

func TestComparisonValidate(t *testing.T) {
	if err := validComparison().Validate(); err != nil {
		t.Fatalf("valid comparison rejected: %v", err)
	}

	cases := map[string]func(*domain.Comparison){
		"empty hotel name":   func(c *domain.Comparison) { c.HotelName = " " },
		"empty location":     func(c *domain.Comparison) { c.Location = "" },
		"checkout at checkin": func(c *domain.Comparison) { c.CheckOut = c.CheckIn },
		"checkout before":    func(c *domain.Comparison) { c.CheckOut = c.CheckIn.AddDate(0, 0, -1) },
		"stars out of range": func(c *domain.Comparison) { s := 6; c.StarRating = &s },
		"duplicate platform": func(c *domain.Comparison) {
			c.Observations = append(c.Observations, obs("booking.com", 210, 630))
		},
		"negative price": func(c *domain.Comparison) {
			c.Observations[0].TotalPrice = -1
		},
	}
	for name, mutate := range cases {
		c := validComparison()
		mutate(&c)
		if err := c.Validate(); !errors.Is(err, domain.ErrInvalidObservation) {
			t.Fatalf("%s: got %v, want ErrInvalidObservation", name, err)
		}
	}
}

func TestComparisonNights(t *testing.T) {
	c := validComparison()
	if n := c.Nights(); n != 3 {
		t.Fatalf("nights: got %d want 3", n)
	}
}
