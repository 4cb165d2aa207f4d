package youtube

import (
	"fmt"
	"regexp"

	appErr "github.com/tubeask/tubeask/internal/pkg/errors"
)

var (
	videoIDPattern = regexp.MustCompile(`(?:youtu\.be/|v=|/embed/|/shorts/)([\w-]{11})`)
	bareIDPattern  = regexp.MustCompile(`^[\w-]{11}$`)
)

// ParseVideoID extracts the 11-character video id from a watch, share,
// embed or shorts URL. A bare id is accepted verbatim.
func ParseVideoID(raw string) (string, error) {
	if m := videoIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(raw) {
		return raw, nil
	}
	return "", fmt.Errorf("%w: %q", appErr.ErrInvalidVideoRef, raw)
}

// WatchURL returns the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// DeepLink returns a watch URL positioned at the given offset, truncated
// to whole seconds and clamped to zero.
func DeepLink(videoID string, start float64) string {
	if start < 0 {
		start = 0
	}
	return fmt.Sprintf("%s&t=%ds", WatchURL(videoID), int(start))
}
