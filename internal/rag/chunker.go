package rag

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tubeask/tubeask/internal/model"
)

const (
	DefaultTargetChars  = 1000
	DefaultOverlapChars = 200
)

// ChunkSegments merges timed segments into retrieval-sized chunks while
// preserving start/end timestamps. Characters are counted as runes. Chunks
// only break between segments: a single segment longer than targetChars is
// emitted whole. Each chunk after the first carries the trailing
// overlapChars of the previous chunk as a continuity prefix.
func ChunkSegments(ctx context.Context, segments []model.Segment, targetChars, overlapChars int) []model.Chunk {
	logger := logutil.GetLogger(ctx)
	if targetChars <= 0 {
		targetChars = DefaultTargetChars
	}
	if overlapChars < 0 {
		overlapChars = DefaultOverlapChars
	}

	var chunks []model.Chunk
	var buf []string
	bufLen := 0
	chunkStart := 0.0
	chunkEnd := 0.0
	started := false

	flush := func(start, end float64) {
		text := strings.Join(buf, " ")
		chunks = append(chunks, model.Chunk{Text: text, Start: start, End: end})
		logger.Debug("flushing chunk",
			zap.Int("position", len(chunks)-1),
			zap.Int("chars", utf8.RuneCountInString(text)),
			zap.Float64("start", start),
			zap.Float64("end", end),
		)
	}

	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if !started {
			chunkStart = seg.Start
			started = true
		}
		chunkEnd = seg.End()
		if bufLen+utf8.RuneCountInString(text)+1 > targetChars && len(buf) > 0 {
			flush(chunkStart, chunkEnd)
			overlap := tailRunes(chunks[len(chunks)-1].Text, overlapChars)
			if overlap != "" {
				buf = []string{overlap, text}
			} else {
				buf = []string{text}
			}
			bufLen = utf8.RuneCountInString(strings.Join(buf, ""))
			chunkStart = seg.Start
		} else {
			buf = append(buf, text)
			bufLen += utf8.RuneCountInString(text) + 1
		}
	}
	if len(buf) > 0 {
		flush(chunkStart, chunkEnd)
	}
	logger.Debug("chunking completed", zap.Int("segments", len(segments)), zap.Int("chunks", len(chunks)))
	return chunks
}

func tailRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
