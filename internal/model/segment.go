package model

// Segment is a single timed unit of transcript text as returned by the
// transcript source. Start and Duration are in seconds.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the absolute end time of the segment.
func (s Segment) End() float64 {
	return s.Start + s.Duration
}
