package errors

import "errors"

var (
	ErrInvalid              = errors.New("invalid")
	ErrInvalidVideoRef      = errors.New("invalid video reference")
	ErrTranscriptsDisabled  = errors.New("transcripts disabled for this video")
	ErrTranscriptNotFound   = errors.New("no transcript found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	ErrGenerationFailed     = errors.New("generation failed")
	ErrInternal             = errors.New("internal")
)

func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

func IsTranscriptUnavailable(err error) bool {
	return errors.Is(err, ErrTranscriptsDisabled) || errors.Is(err, ErrTranscriptNotFound)
}
