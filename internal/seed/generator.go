// Package seed builds fixture comparisons for demo environments. Prices are
// invented but internally consistent (total == per-night x nights), and the
// reference platform lands roughly 15% below the public sites — that gap is a
// demo-fixture convention, not a business rule, so it is a knob here.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"ratewatch/internal/domain"
)

type City struct {
	Name    string
	Country string
	Code    string
}

// Major worldwide cities the demo rotates through.
var Cities = []City{
	{"Tokyo", "Japan", "TYO"},
	{"London", "United Kingdom", "LON"},
	{"New York", "United States", "NYC"},
	{"Paris", "France", "CDG"},
	{"Dubai", "United Arab Emirates", "DXB"},
	{"Singapore", "Singapore", "SIN"},
	{"Hong Kong", "Hong Kong", "HKG"},
	{"Sydney", "Australia", "SYD"},
	{"Bangkok", "Thailand", "BKK"},
	{"Barcelona", "Spain", "BCN"},
	{"Rome", "Italy", "FCO"},
	{"Amsterdam", "Netherlands", "AMS"},
	{"Toronto", "Canada", "YYZ"},
	{"Mexico City", "Mexico", "MEX"},
	{"Sao Paulo", "Brazil", "GIG"},
}

// Chains likely to exist in any of the cities above.
var HotelChains = []string{
	"Hilton", "Marriott", "Hyatt", "Four Seasons",
	"Ritz-Carlton", "InterContinental", "Sheraton", "Westin",
}

var publicPlatforms = []string{"booking.com", "expedia", "hotels.com"}

// Generator produces fixture comparisons from an injected random source, so a
// fixed seed reproduces the exact same demo data set.
type Generator struct {
	rnd               *rand.Rand
	referencePlatform string
	referenceDiscount float64 // fraction below the public average
}

func New(rnd *rand.Rand, referencePlatform string) *Generator {
	return &Generator{rnd: rnd, referencePlatform: referencePlatform, referenceDiscount: 0.15}
}

// SetReferenceDiscount overrides the default 15% wholesale gap.
func (g *Generator) SetReferenceDiscount(d float64) { g.referenceDiscount = d }

// Comparison invents one stay: a chain hotel in a random city, checking in
// 7-37 days after base, 3-5 nights, one public observation per platform plus
// the reference.
func (g *Generator) Comparison(base time.Time) domain.Comparison {
	city := Cities[g.rnd.Intn(len(Cities))]
	chain := HotelChains[g.rnd.Intn(len(HotelChains))]

	in := base.AddDate(0, 0, 7+g.rnd.Intn(30))
	checkIn := time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, time.UTC)
	nights := 3 + g.rnd.Intn(3)
	checkOut := checkIn.AddDate(0, 0, nights)
	stars := 3 + g.rnd.Intn(3)
	desc := fmt.Sprintf("%s %s, %s", chain, city.Name, city.Country)

	c := domain.Comparison{
		HotelName:   fmt.Sprintf("%s %s", chain, city.Name),
		Location:    fmt.Sprintf("%s, %s", city.Name, city.Country),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		StarRating:  &stars,
		Description: &desc,
	}

	// Public sites quote within a band; each platform jitters around a shared
	// base so the spread looks like the same room priced independently.
	basePerNight := 180 + g.rnd.Float64()*240
	var publicSum float64
	for _, p := range publicPlatforms {
		perNight := cents(basePerNight * (0.95 + g.rnd.Float64()*0.1))
		c.Observations = append(c.Observations, observation(p, perNight, nights))
		publicSum += perNight
	}

	avgPublic := publicSum / float64(len(publicPlatforms))
	refPerNight := cents(avgPublic * (1 - g.referenceDiscount) * (0.97 + g.rnd.Float64()*0.06))
	c.Observations = append(c.Observations, observation(g.referencePlatform, refPerNight, nights))

	return c
}

func observation(platform string, perNight float64, nights int) domain.PriceObservation {
	return domain.PriceObservation{
		Platform:      platform,
		PricePerNight: perNight,
		TotalPrice:    cents(perNight * float64(nights)),
		Currency:      "USD",
	}
}

func cents(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
