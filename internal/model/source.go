package model

// Source is a timestamp-anchored citation attached to an answer.
type Source struct {
	Excerpt string  `json:"excerpt"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Label   string  `json:"label"`
	Link    string  `json:"link"`
}
