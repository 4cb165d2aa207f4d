package service

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tubeask/tubeask/internal/ai"
	"github.com/tubeask/tubeask/internal/model"
	appErr "github.com/tubeask/tubeask/internal/pkg/errors"
	"github.com/tubeask/tubeask/internal/rag"
	"github.com/tubeask/tubeask/internal/session"
	"github.com/tubeask/tubeask/internal/youtube"
)

// TranscriptFetcher returns the ordered timed segments for a video, or a
// transcript error kind when captions are disabled or missing.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string, language string) ([]model.Segment, error)
}

type IngestConfig struct {
	TargetChars  int
	OverlapChars int
	Timeout      int // seconds, bounds transcript fetch plus index build
}

type IngestService struct {
	fetcher  TranscriptFetcher
	embedder ai.IEmbedder
	registry *session.Registry
	cfg      IngestConfig
}

func NewIngestService(fetcher TranscriptFetcher, embedder ai.IEmbedder, registry *session.Registry, cfg IngestConfig) *IngestService {
	if cfg.TargetChars <= 0 {
		cfg.TargetChars = rag.DefaultTargetChars
	}
	if cfg.OverlapChars < 0 {
		cfg.OverlapChars = rag.DefaultOverlapChars
	}
	return &IngestService{fetcher: fetcher, embedder: embedder, registry: registry, cfg: cfg}
}

type IngestResult struct {
	SessionID    string `json:"session_id"`
	VideoID      string `json:"video_id"`
	CanonicalURL string `json:"canonical_url"`
	ChunkCount   int    `json:"chunk_count"`
}

// Ingest resolves the video reference, fetches its transcript, chunks it
// with timestamps, builds the similarity index and registers a session.
// Nothing is stored when any step fails.
func (s *IngestService) Ingest(ctx context.Context, source string, language string) (*IngestResult, error) {
	videoID, err := youtube.ParseVideoID(source)
	if err != nil {
		return nil, err
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Timeout)*time.Second)
		defer cancel()
	}
	logger := logutil.GetLogger(ctx).With(zap.String("video_id", videoID))

	segments, err := s.fetcher.Fetch(ctx, videoID, language)
	if err != nil {
		logger.Error("transcript fetch failed", zap.Error(err))
		return nil, err
	}
	chunks := rag.ChunkSegments(ctx, segments, s.cfg.TargetChars, s.cfg.OverlapChars)
	if len(chunks) == 0 {
		return nil, appErr.ErrTranscriptNotFound
	}
	index, err := rag.BuildIndex(ctx, s.embedder, chunks)
	if err != nil {
		logger.Error("index build failed", zap.Error(err))
		return nil, err
	}
	sess := s.registry.Create(videoID, index, chunks)
	logger.Info("video ingested",
		zap.String("session_id", sess.ID),
		zap.Int("segments", len(segments)),
		zap.Int("chunks", len(chunks)),
	)
	return &IngestResult{
		SessionID:    sess.ID,
		VideoID:      videoID,
		CanonicalURL: youtube.WatchURL(videoID),
		ChunkCount:   len(chunks),
	}, nil
}
