package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidConfig marks a malformed presentation configuration. Malformed
// configs are rejected at load time, before any playback state exists.
var ErrInvalidConfig = errors.New("invalid presentation config")

// Slide animation styles the renderer understands.
const (
	AnimFade  = "fade"
	AnimSlide = "slide"
	AnimZoom  = "zoom"
)

var slideTypes = map[string]bool{
	"title": true, "intro": true, "hook": true, "value-prop": true, "cta": true,
}

var animations = map[string]bool{
	AnimFade: true, AnimSlide: true, AnimZoom: true,
}

// Slide is one timed segment of the presentation. Times are milliseconds on
// the presentation clock.
type Slide struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	Content         string `json:"content,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	StartTime       int64  `json:"startTime"`
	Duration        int64  `json:"duration"`
	Narration       string `json:"narration"`
	AnimationIn     string `json:"animationIn"`
	AnimationOut    string `json:"animationOut,omitempty"`
}

// End is the first millisecond after the slide.
func (s Slide) End() int64 { return s.StartTime + s.Duration }

type Presenter struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

type BackgroundMusic struct {
	URL     string  `json:"url"`
	Volume  float64 `json:"volume"`
	FadeIn  int64   `json:"fadeIn,omitempty"`
	FadeOut int64   `json:"fadeOut,omitempty"`
}

type Narration struct {
	Enabled bool    `json:"enabled"`
	Voice   string  `json:"voice"` // male|female
	Speed   float64 `json:"speed"` // 0.8-1.5
	Volume  float64 `json:"volume"`
}

// Config is an immutable presentation: an ordered, non-overlapping slide
// sequence plus optional audio descriptors. Loaded once per session.
type Config struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Presenter       *Presenter       `json:"presenter,omitempty"`
	Slides          []Slide          `json:"slides"`
	TotalDuration   int64            `json:"totalDuration"`
	BackgroundMusic *BackgroundMusic `json:"backgroundMusic,omitempty"`
	Narration       *Narration       `json:"narration,omitempty"`
}

// Load reads and validates a presentation config from a JSON file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presentation config: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a presentation config.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the structural invariants playback depends on: slides
// sorted by start time and non-overlapping, positive durations, narration on
// every slide, known animations, unique ids, and a total duration at least as
// long as the last slide's end.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidConfig)
	}
	if len(c.Slides) == 0 {
		return fmt.Errorf("%w: no slides", ErrInvalidConfig)
	}
	if c.TotalDuration <= 0 {
		return fmt.Errorf("%w: totalDuration must be positive", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Slides))
	for i, s := range c.Slides {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("%w: slide %d has empty id", ErrInvalidConfig, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate slide id %q", ErrInvalidConfig, s.ID)
		}
		seen[s.ID] = true
		if s.Type != "" && !slideTypes[s.Type] {
			return fmt.Errorf("%w: slide %q has unknown type %q", ErrInvalidConfig, s.ID, s.Type)
		}
		if s.StartTime < 0 {
			return fmt.Errorf("%w: slide %q starts at %d", ErrInvalidConfig, s.ID, s.StartTime)
		}
		if s.Duration <= 0 {
			return fmt.Errorf("%w: slide %q has non-positive duration %d", ErrInvalidConfig, s.ID, s.Duration)
		}
		if strings.TrimSpace(s.Narration) == "" {
			return fmt.Errorf("%w: slide %q has no narration", ErrInvalidConfig, s.ID)
		}
		if !animations[s.AnimationIn] {
			return fmt.Errorf("%w: slide %q has unknown animationIn %q", ErrInvalidConfig, s.ID, s.AnimationIn)
		}
		if s.AnimationOut != "" && !animations[s.AnimationOut] {
			return fmt.Errorf("%w: slide %q has unknown animationOut %q", ErrInvalidConfig, s.ID, s.AnimationOut)
		}
		if i > 0 {
			prev := c.Slides[i-1]
			if s.StartTime < prev.StartTime {
				return fmt.Errorf("%w: slide %q starts before slide %q", ErrInvalidConfig, s.ID, prev.ID)
			}
			if prev.End() > s.StartTime {
				return fmt.Errorf("%w: slides %q and %q overlap", ErrInvalidConfig, prev.ID, s.ID)
			}
		}
	}

	if last := c.Slides[len(c.Slides)-1]; c.TotalDuration < last.End() {
		return fmt.Errorf("%w: totalDuration %d shorter than last slide end %d",
			ErrInvalidConfig, c.TotalDuration, last.End())
	}

	if m := c.BackgroundMusic; m != nil {
		if m.URL == "" {
			return fmt.Errorf("%w: background music without url", ErrInvalidConfig)
		}
		if m.Volume < 0 || m.Volume > 1 {
			return fmt.Errorf("%w: background music volume %.2f outside [0,1]", ErrInvalidConfig, m.Volume)
		}
		if m.FadeIn < 0 || m.FadeOut < 0 {
			return fmt.Errorf("%w: negative music fade", ErrInvalidConfig)
		}
	}
	if n := c.Narration; n != nil && n.Enabled {
		if n.Voice != "male" && n.Voice != "female" {
			return fmt.Errorf("%w: unknown narration voice %q", ErrInvalidConfig, n.Voice)
		}
		if n.Speed < 0.8 || n.Speed > 1.5 {
			return fmt.Errorf("%w: narration speed %.2f outside [0.8,1.5]", ErrInvalidConfig, n.Speed)
		}
		if n.Volume < 0 || n.Volume > 1 {
			return fmt.Errorf("%w: narration volume %.2f outside [0,1]", ErrInvalidConfig, n.Volume)
		}
	}
	return nil
}

// SlideIndexAt returns the index of the slide covering t
// (startTime <= t < startTime+duration), or -1 when t falls before the first
// slide, after the last slide's end, or in a gap. Validated configs have no
// overlaps; if a malformed config slips through anyway, the earliest-starting
// covering slide wins. Never panics.
func (c *Config) SlideIndexAt(t int64) int {
	best := -1
	for i, s := range c.Slides {
		if t < s.StartTime || t >= s.End() {
			continue
		}
		if best == -1 || s.StartTime < c.Slides[best].StartTime {
			best = i
		}
	}
	return best
}
