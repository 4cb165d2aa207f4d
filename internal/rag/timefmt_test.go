package rag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{65, "01:05"},
		{59.9, "00:59"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{-1, "00:00"},
		{-42.5, "00:00"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatTimestamp(tc.seconds), "seconds=%v", tc.seconds)
	}
}
