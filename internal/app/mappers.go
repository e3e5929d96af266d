package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ratewatch/internal/domain"
)

/********** alias registries (single source of truth) **********/

// The scrapers and the feed disagree on field names; each logical field has
// an ordered alias list, first non-empty wins.
var quoteAliases = map[string][]string{
	"platform":   {"platform", "site", "source", "provider"},
	"per_night":  {"pricePerNight", "price_per_night", "nightly", "nightlyRate", "rate.perNight"},
	"total":      {"totalPrice", "total_price", "total", "rate.total"},
	"currency":   {"currency", "currency_code", "currencyCode"},
	"screenshot": {"screenshotUrl", "screenshot_url", "screenshot", "screenshotRef"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) string {
	for _, p := range quoteAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like
// "$1,234.56").
func getFloatFlexible(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true
			}
		case string:
			s := strings.TrimSpace(strings.TrimPrefix(v, "$"))
			s = strings.ReplaceAll(s, ",", "")
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

/********** mapping **********/

// MapObservation validates one duck-typed quote payload into a
// PriceObservation. nights is the stay length; when a payload carries only
// one of per-night/total the other is derived from it. Payloads with no price
// at all, or a negative one, are rejected with ErrInvalidObservation — never
// zeroed.
func MapObservation(m map[string]any, nights int) (domain.PriceObservation, error) {
	platform := strings.TrimSpace(firstNonEmptyAlias(m, "platform"))
	if platform == "" {
		return domain.PriceObservation{}, fmt.Errorf("%w: quote without platform", domain.ErrInvalidObservation)
	}

	perNight, haveNight := getFloatFlexible(m, quoteAliases["per_night"]...)
	total, haveTotal := getFloatFlexible(m, quoteAliases["total"]...)
	switch {
	case !haveNight && !haveTotal:
		return domain.PriceObservation{}, fmt.Errorf("%w: platform %q quote without price", domain.ErrInvalidObservation, platform)
	case !haveTotal:
		if nights <= 0 {
			return domain.PriceObservation{}, fmt.Errorf("%w: platform %q missing total and stay has %d nights",
				domain.ErrInvalidObservation, platform, nights)
		}
		total = perNight * float64(nights)
	case !haveNight:
		if nights > 0 {
			perNight = total / float64(nights)
		}
	}

	currency := strings.ToUpper(firstNonEmptyAlias(m, "currency"))
	if currency == "" {
		currency = "USD"
	}

	o := domain.PriceObservation{
		Platform:      platform,
		PricePerNight: perNight,
		TotalPrice:    total,
		Currency:      currency,
	}
	if s := firstNonEmptyAlias(m, "screenshot"); s != "" {
		o.ScreenshotURL = &s
	}
	if raw, err := json.Marshal(m); err == nil {
		o.ExtractedJSON = raw
	}
	if err := o.Validate(); err != nil {
		return domain.PriceObservation{}, err
	}
	return o, nil
}

// NewComparison assembles the comparison skeleton for one stay.
func NewComparison(q domain.StayQuery) domain.Comparison {
	return domain.Comparison{
		HotelName:  q.HotelName,
		Location:   q.Location,
		CheckIn:    q.CheckIn,
		CheckOut:   q.CheckOut,
		StarRating: q.StarRating,
	}
}
