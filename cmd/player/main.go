package main

import (
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"ratewatch/internal/adapters/observability"
	"ratewatch/internal/player"
	"ratewatch/internal/shared"
)

// Plays a presentation config against the wall clock, logging each slide as
// the playhead enters it. Useful for checking narration timing without a
// browser; the engine doesn't care that the "media clock" here is a ticker.
func main() {
	path := flag.String("config", "", "presentation config JSON (default: built-in demo)")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	pres := player.Demo()
	if *path != "" {
		var err error
		pres, err = player.Load(*path)
		if err != nil {
			log.Fatal().Err(err).Str("path", *path).Msg("presentation config rejected")
		}
	}

	eng, err := player.NewEngine(pres)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}

	log.Info().
		Str("title", pres.Title).
		Int("slides", len(pres.Slides)).
		Str("length", player.FormatTime(pres.TotalDuration)).
		Msg("playing")

	eng.Play()
	start := time.Now()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	lastSlide := -2 // sentinel so the first tick always logs
	for range ticker.C {
		now := time.Since(start).Milliseconds()
		if now >= pres.TotalDuration {
			st := eng.OnMediaEnded()
			log.Info().Str("at", player.FormatTime(st.CurrentTime)).Msg("presentation finished")
			return
		}
		st := eng.Tick(now)
		if st.CurrentSlideIndex != lastSlide {
			lastSlide = st.CurrentSlideIndex
			if st.CurrentSlideIndex < 0 {
				log.Info().Str("at", player.FormatTime(st.CurrentTime)).Msg("(gap)")
				continue
			}
			s := pres.Slides[st.CurrentSlideIndex]
			log.Info().
				Str("at", player.FormatTime(st.CurrentTime)).
				Str("slide", s.ID).
				Str("title", s.Title).
				Msg(s.Narration)
		}
	}
}
