package model

// Classification is the set of facts derived for one row.
type Classification struct {
	Series     bool `json:"series,omitempty"`
	Bracket    bool `json:"bracket,omitempty"`
	HDR        bool `json:"hdr,omitempty"`
	Photo4K    bool `json:"photo_4k,omitempty"`
	Timelapse  bool `json:"timelapse,omitempty"`
	StopMotion bool `json:"stop_motion,omitempty"`
	Scene      bool `json:"scene,omitempty"`
	Creative   bool `json:"creative,omitempty"`
	Sun        bool `json:"sun,omitempty"`

	// Video facts.
	Burst4K   bool `json:"burst_4k,omitempty"`
	Film4K    bool `json:"film_4k,omitempty"`
	HighSpeed bool `json:"high_speed,omitempty"`
	FullHD    bool `json:"full_hd,omitempty"`
}

// Grouped reports whether the row belongs to a multi-shot group.
func (c Classification) Grouped() bool {
	return c.Series || c.Bracket || c.Timelapse || c.StopMotion
}
