package app_test

import (
	"errors"
	"testing"

	"ratewatch/internal/app"
	"ratewatch/internal/domain"
)

func TestMapObservation(t *testing.T) {
	m := map[string]any{
		"platform":      "booking.com",
		"pricePerNight": 175.0,
		"totalPrice":    700.0,
		"currency":      "usd",
		"screenshotUrl": "https://cdn.example/shot.png",
	}
	o, err := app.MapObservation(m, 4)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if o.Platform != "booking.com" || o.PricePerNight != 175 || o.TotalPrice != 700 {
		t.Fatalf("unexpected observation: %+v", o)
	}
	if o.Currency != "USD" {
		t.Fatalf("currency not normalized: %q", o.Currency)
	}
	if o.ScreenshotURL == nil || *o.ScreenshotURL != "https://cdn.example/shot.png" {
		t.Fatalf("screenshot lost: %+v", o.ScreenshotURL)
	}
	if len(o.ExtractedJSON) == 0 {
		t.Fatal("raw payload not retained")
	}
}

func TestMapObservation_Aliases(t *testing.T) {
	// scraper variants disagree on naming; dollar strings with thousands
	// separators show up too
	m := map[string]any{
		"site":            "expedia",
		"price_per_night": "$1,234.56",
	}
	o, err := app.MapObservation(m, 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if o.Platform != "expedia" || o.PricePerNight != 1234.56 {
		t.Fatalf("unexpected observation: %+v", o)
	}
	// total derived from per-night when the payload omits it
	if o.TotalPrice != 2469.12 {
		t.Fatalf("derived total: got %v want 2469.12", o.TotalPrice)
	}
	if o.Currency != "USD" {
		t.Fatalf("default currency: %q", o.Currency)
	}
}

func TestMapObservation_DerivesPerNightFromTotal(t *testing.T) {
	m := map[string]any{"platform": "hotels.com", "total": 900.0}
	o, err := app.MapObservation(m, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if o.PricePerNight != 300 || o.TotalPrice != 900 {
		t.Fatalf("unexpected observation: %+v", o)
	}
}

func TestMapObservation_Rejects(t *testing.T) {
	cases := map[string]map[string]any{
		"no platform":    {"totalPrice": 700.0},
		"no price":       {"platform": "expedia"},
		"negative total": {"platform": "expedia", "totalPrice": -700.0},
		"negative night": {"platform": "expedia", "pricePerNight": -1.0, "totalPrice": 700.0},
	}
	for name, m := range cases {
		if _, err := app.MapObservation(m, 3); !errors.Is(err, domain.ErrInvalidObservation) {
			t.Fatalf("%s: got %v, want ErrInvalidObservation", name, err)
		}
	}
}
