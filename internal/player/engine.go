package player

import "fmt"

// State is the derived playback state for one presentation session.
type State struct {
	IsPlaying         bool    `json:"isPlaying"`
	CurrentTime       int64   `json:"currentTime"` // ms, clamped to [0, totalDuration]
	CurrentSlideIndex int     `json:"currentSlideIndex"`
	Progress          float64 `json:"progress"` // percent, clamped to [0,100]
}

// Engine maps media time onto presentation state. One engine instance owns
// one session's state; it is single-owner and holds no locks — the caller's
// tick loop (timer, frame callback, whatever) is the only driver. The engine
// never touches the media itself, it only consumes the media clock.
type Engine struct {
	cfg   *Config
	state State

	// volume/mute are orthogonal to the transport state machine: changing
	// them never affects IsPlaying or CurrentTime.
	volume float64
	muted  bool
}

// NewEngine validates cfg and returns an engine in the Stopped state. A
// malformed config is refused outright rather than producing undefined
// navigation behavior mid-playback.
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, volume: 0.8}
	e.recompute(0)
	return e, nil
}

func (e *Engine) Config() *Config { return e.cfg }

// State returns a copy of the current playback state.
func (e *Engine) State() State { return e.state }

// Play starts or resumes playback. Idempotent: a no-op while already playing.
func (e *Engine) Play() {
	e.state.IsPlaying = true
}

// Pause suspends playback at the current time. No-op when already paused or
// stopped.
func (e *Engine) Pause() {
	e.state.IsPlaying = false
}

// Seek jumps to t (clamped to [0, totalDuration]) and recomputes the derived
// fields. Valid in any state; never changes IsPlaying.
func (e *Engine) Seek(t int64) State {
	e.recompute(t)
	return e.state
}

// Tick feeds the engine the current media time. It recomputes the derived
// state from the supplied time alone, so ticks are idempotent and safe under
// re-entrancy — a tick carrying a time earlier than a previous one (after a
// seek, say) simply recomputes. Tick never mutates IsPlaying, and it is a
// no-op while not playing so a stale timer callback cannot move a paused
// session.
func (e *Engine) Tick(nowMs int64) State {
	if !e.state.IsPlaying {
		return e.state
	}
	e.recompute(nowMs)
	return e.state
}

// OnMediaEnded handles the media source's end-of-media event: playback pauses
// pinned at the end. Idempotent.
func (e *Engine) OnMediaEnded() State {
	e.state.IsPlaying = false
	e.recompute(e.cfg.TotalDuration)
	return e.state
}

// Volume is the master volume in [0,1], independent of mute.
func (e *Engine) Volume() float64 { return e.volume }

func (e *Engine) SetVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	e.volume = v
}

func (e *Engine) Muted() bool     { return e.muted }
func (e *Engine) SetMuted(m bool) { e.muted = m }

// Gain is the effective output volume: 0 while muted, Volume otherwise.
func (e *Engine) Gain() float64 {
	if e.muted {
		return 0
	}
	return e.volume
}

// recompute derives CurrentTime, CurrentSlideIndex and Progress from t.
// Out-of-range times come from media-clock jitter, not genuine faults, so
// they clamp instead of erroring.
func (e *Engine) recompute(t int64) {
	if t < 0 {
		t = 0
	}
	if t > e.cfg.TotalDuration {
		t = e.cfg.TotalDuration
	}
	e.state.CurrentTime = t
	e.state.CurrentSlideIndex = e.cfg.SlideIndexAt(t)
	p := float64(t) / float64(e.cfg.TotalDuration) * 100
	if p > 100 {
		p = 100
	}
	e.state.Progress = p
}

// FormatTime renders a millisecond timestamp as m:ss with zero-padded
// seconds. Minutes are unbounded; there is no hours component — presentations
// here run minutes, not hours. FormatTime(0) == "0:00".
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	secs := ms / 1000
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
