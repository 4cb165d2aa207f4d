package errcode

const (
	ErrUnknown = 10000000 + iota
	ErrInvalid
	ErrInvalidVideoRef
	ErrTranscriptsDisabled
	ErrTranscriptNotFound
	ErrSessionNotFound
	ErrEmbeddingUnavailable
	ErrGenerationFailed
	ErrInternal
)
