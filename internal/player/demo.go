package player

// Demo is the built-in pitch presentation used when no config file is
// supplied. Four timed slides over a 30 second track, matching the demo
// narration recording shipped with the app.
func Demo() *Config {
	return &Config{
		ID:    "rate-pitch-hero",
		Title: "Wholesale Rates - Pay Less For The Same Room",
		Presenter: &Presenter{
			Name:      "Mario G. Rodriguez",
			Title:     "The Hyper Driver",
			AvatarURL: "/mario-presenter.png",
			Bio:       "Semi-retired professional driver from Galveston, Texas",
		},
		Slides: []Slide{
			{
				ID: "slide-1", Type: "hook",
				Title: "Something Big", Subtitle: "And I Mean HUGE",
				StartTime: 0, Duration: 5000,
				Narration:       "Something big is about to happen this coming week. What you're about to see is not like anything you've seen before.",
				AnimationIn:     AnimFade,
				BackgroundColor: "#1a1a2e",
			},
			{
				ID: "slide-2", Type: "intro",
				Title: "Same Room, Two Prices", Subtitle: "Watch The Numbers",
				StartTime: 5000, Duration: 8000,
				Narration:       "We searched the same hotel, the same dates, the same room, on the public booking sites and on the wholesale platform. These are the real screenshots.",
				AnimationIn:     AnimFade,
				BackgroundColor: "#0f3460",
			},
			{
				ID: "slide-3", Type: "value-prop",
				Title: "Real Value", Subtitle: "No Smoke And Mirrors",
				StartTime: 13000, Duration: 7000,
				Narration:       "This is not hype. No smoke and mirrors, no pie-in-the-sky promises. The savings you see are computed from the prices on screen.",
				AnimationIn:     AnimFade,
				BackgroundColor: "#16213e",
			},
			{
				ID: "slide-4", Type: "cta",
				Title: "Book Wholesale", Subtitle: "Plus Cash Back On Every Stay",
				StartTime: 20000, Duration: 5000,
				Narration:       "Every booking at the wholesale rate also earns cash back. Same room, lower price, money back. That's the whole pitch.",
				AnimationIn:     AnimFade,
				BackgroundColor: "#0f3460",
			},
		},
		TotalDuration: 30000,
		BackgroundMusic: &BackgroundMusic{
			URL:    "/ambient-music.mp3",
			Volume: 0.3,
			FadeIn: 2000, FadeOut: 2000,
		},
		Narration: &Narration{
			Enabled: true,
			Voice:   "male",
			Speed:   1.0,
			Volume:  0.8,
		},
	}
}
