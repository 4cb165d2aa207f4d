package model

// Chunk is a merged span of transcript text sized for embedding and
// retrieval. Text is the space-joined content of consecutive segments,
// possibly prefixed with the tail of the previous chunk for continuity.
// Start <= End always holds.
type Chunk struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}
