package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tubeask/tubeask/internal/model"
)

func TestChunkSegments_SingleChunk(t *testing.T) {
	segments := []model.Segment{
		{Text: "hello world", Start: 0, Duration: 2},
		{Text: "there", Start: 2, Duration: 1},
		{Text: "friend", Start: 3, Duration: 2},
	}
	chunks := ChunkSegments(context.Background(), segments, 1000, 200)
	require.Len(t, chunks, 1)
	require.Equal(t, "hello world there friend", chunks[0].Text)
	require.Equal(t, 0.0, chunks[0].Start)
	require.Equal(t, 5.0, chunks[0].End)
}

func TestChunkSegments_OverlapAndRoundTrip(t *testing.T) {
	segments := []model.Segment{
		{Text: "aaaaaaaaaa", Start: 0, Duration: 2},
		{Text: "bbbbbbbbbb", Start: 2, Duration: 2},
		{Text: "cccccccccc", Start: 4, Duration: 2},
		{Text: "dddddddddd", Start: 6, Duration: 2},
	}
	overlap := 5
	chunks := ChunkSegments(context.Background(), segments, 25, overlap)
	require.Len(t, chunks, 3)
	require.Equal(t, "aaaaaaaaaa bbbbbbbbbb", chunks[0].Text)
	require.Equal(t, "bbbbb cccccccccc", chunks[1].Text)
	require.Equal(t, "ccccc dddddddddd", chunks[2].Text)

	// every chunk after the first starts with the tail of its predecessor
	for i := 1; i < len(chunks); i++ {
		prefix := tailRunes(chunks[i-1].Text, overlap)
		require.True(t, strings.HasPrefix(chunks[i].Text, prefix+" "))
	}

	// stripping the overlap prefixes reproduces the full transcript text
	rebuilt := chunks[0].Text
	for i := 1; i < len(chunks); i++ {
		prefix := tailRunes(chunks[i-1].Text, overlap)
		rebuilt += " " + strings.TrimPrefix(chunks[i].Text, prefix+" ")
	}
	require.Equal(t, "aaaaaaaaaa bbbbbbbbbb cccccccccc dddddddddd", rebuilt)
}

func TestChunkSegments_Invariants(t *testing.T) {
	segments := []model.Segment{
		{Text: "one two three four five", Start: 0, Duration: 3},
		{Text: "six seven eight nine ten", Start: 3, Duration: 3},
		{Text: "eleven twelve thirteen", Start: 6, Duration: 3},
		{Text: "fourteen fifteen sixteen", Start: 9, Duration: 3},
	}
	chunks := ChunkSegments(context.Background(), segments, 30, 10)
	require.NotEmpty(t, chunks)
	lastStart := chunks[0].Start
	for _, chunk := range chunks {
		require.LessOrEqual(t, chunk.Start, chunk.End)
		require.GreaterOrEqual(t, chunk.Start, lastStart)
		lastStart = chunk.Start
	}
}

func TestChunkSegments_SkipsBlankSegments(t *testing.T) {
	segments := []model.Segment{
		{Text: "   ", Start: 0, Duration: 1},
		{Text: "hello", Start: 1, Duration: 1},
		{Text: "", Start: 2, Duration: 1},
		{Text: "world", Start: 3, Duration: 1},
	}
	chunks := ChunkSegments(context.Background(), segments, 1000, 200)
	require.Len(t, chunks, 1)
	require.Equal(t, "hello world", chunks[0].Text)
	require.Equal(t, 1.0, chunks[0].Start)
	require.Equal(t, 4.0, chunks[0].End)
}

func TestChunkSegments_OversizedSegmentNotSplit(t *testing.T) {
	long := strings.Repeat("x", 50)
	chunks := ChunkSegments(context.Background(), []model.Segment{{Text: long, Start: 0, Duration: 10}}, 10, 5)
	require.Len(t, chunks, 1)
	require.Equal(t, long, chunks[0].Text)
}

func TestChunkSegments_Empty(t *testing.T) {
	require.Empty(t, ChunkSegments(context.Background(), nil, 1000, 200))
}

func TestChunkSegments_StructurallyDeterministic(t *testing.T) {
	segments := []model.Segment{
		{Text: "alpha beta gamma", Start: 0, Duration: 4},
		{Text: "delta epsilon", Start: 4, Duration: 4},
		{Text: "zeta eta theta", Start: 8, Duration: 4},
	}
	first := ChunkSegments(context.Background(), segments, 20, 5)
	second := ChunkSegments(context.Background(), segments, 20, 5)
	require.Equal(t, first, second)
}
