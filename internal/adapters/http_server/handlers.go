package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"ratewatch/internal/app"
	"ratewatch/internal/domain"
	"ratewatch/internal/player"
)

type Handlers struct {
	Q            *app.QueryService
	Presentation *player.Config // validated at startup
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/comparisons", h.listComparisons)
	s.mux.Get("/v1/comparisons/{id}", h.getComparison)
	s.mux.Get("/v1/presentations/demo", h.getPresentation)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// comparisonResponse is the wire shape of one comparison. The savings branch
// is explicit: savingsAvailable false + savings null means "not enough data",
// and the UI renders the unavailable state instead of a number.
type comparisonResponse struct {
	ID               int64                 `json:"id"`
	HotelName        string                `json:"hotelName"`
	Location         string                `json:"location"`
	CheckIn          string                `json:"checkIn"`
	CheckOut         string                `json:"checkOut"`
	Nights           int                   `json:"nights"`
	StarRating       *int                  `json:"starRating,omitempty"`
	Description      *string               `json:"description,omitempty"`
	Observations     []observationResponse `json:"observations,omitempty"`
	SavingsAvailable bool                  `json:"savingsAvailable"`
	Savings          *domain.SavingsResult `json:"savings"`
}

type observationResponse struct {
	Platform      string  `json:"platform"`
	PricePerNight float64 `json:"pricePerNight"`
	TotalPrice    float64 `json:"totalPrice"`
	Currency      string  `json:"currency"`
	ScreenshotURL *string `json:"screenshotUrl,omitempty"`
}

func toComparisonResponse(cv domain.ComparisonView) comparisonResponse {
	resp := comparisonResponse{
		ID:               cv.ID,
		HotelName:        cv.HotelName,
		Location:         cv.Location,
		CheckIn:          cv.CheckIn.Format("2006-01-02"),
		CheckOut:         cv.CheckOut.Format("2006-01-02"),
		Nights:           cv.Nights(),
		StarRating:       cv.StarRating,
		Description:      cv.Description,
		SavingsAvailable: cv.SavingsAvailable,
		Savings:          cv.Savings,
	}
	for _, o := range cv.Observations {
		resp.Observations = append(resp.Observations, observationResponse{
			Platform:      o.Platform,
			PricePerNight: o.PricePerNight,
			TotalPrice:    o.TotalPrice,
			Currency:      o.Currency,
			ScreenshotURL: o.ScreenshotURL,
		})
	}
	return resp
}

func (h *Handlers) getComparison(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	cv, err := h.Q.GetComparison(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeProblem(w, http.StatusNotFound, "Not Found", "comparison not found")
		case errors.Is(err, domain.ErrInvalidObservation):
			writeProblem(w, http.StatusUnprocessableEntity, "Invalid Data", "stored price data failed validation")
		default:
			writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}
	writeJSON(w, r, toComparisonResponse(cv))
}

func (h *Handlers) listComparisons(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	out, err := h.Q.ListComparisons(r.Context(), domain.ComparisonsQuery{Limit: limit})
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	items := make([]comparisonResponse, 0, len(out.Items))
	for _, c := range out.Items {
		items = append(items, toComparisonResponse(domain.ComparisonView{Comparison: c}))
	}
	writeJSON(w, r, map[string]any{"items": items})
}

func (h *Handlers) getPresentation(w http.ResponseWriter, r *http.Request) {
	if h.Presentation == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "no presentation configured")
		return
	}
	writeJSON(w, r, h.Presentation)
}
