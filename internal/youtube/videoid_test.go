package youtube

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/tubeask/tubeask/internal/pkg/errors"
)

func TestParseVideoID_URLShapes(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch with extra params", "https://m.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123&index=2"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ"},
		{"short link with offset", "https://youtu.be/dQw4w9WgXcQ?t=42"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseVideoID(tc.input)
			require.NoError(t, err)
			require.Equal(t, "dQw4w9WgXcQ", id)
		})
	}
}

func TestParseVideoID_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "abc123"},
		{"too long", "dQw4w9WgXcQextra"},
		{"unrelated url", "https://example.com/video/12345"},
		{"bad alphabet", "dQw4w9WgXc!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseVideoID(tc.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, appErr.ErrInvalidVideoRef))
		})
	}
}

func TestWatchURL(t *testing.T) {
	require.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WatchURL("dQw4w9WgXcQ"))
}

func TestDeepLink(t *testing.T) {
	require.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=90s", DeepLink("dQw4w9WgXcQ", 90.7))
	require.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=0s", DeepLink("dQw4w9WgXcQ", -5))
}
