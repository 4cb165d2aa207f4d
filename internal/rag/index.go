package rag

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tubeask/tubeask/internal/ai"
	"github.com/tubeask/tubeask/internal/model"
	appErr "github.com/tubeask/tubeask/internal/pkg/errors"
)

const (
	taskTypeDocument = "RETRIEVAL_DOCUMENT"
	taskTypeQuery    = "RETRIEVAL_QUERY"
)

// ScoredChunk is a retrieval match ranked by similarity to the query.
type ScoredChunk struct {
	Chunk model.Chunk
	Score float32
}

// Index is an in-memory nearest-neighbor index over one video's chunk
// embeddings. It is write-once at build time and safe for concurrent
// searches afterwards.
type Index struct {
	embedder ai.IEmbedder
	chunks   []model.Chunk
	vectors  [][]float32
}

// BuildIndex embeds every chunk and assembles the searchable index.
func BuildIndex(ctx context.Context, embedder ai.IEmbedder, chunks []model.Chunk) (*Index, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder not configured", appErr.ErrEmbeddingUnavailable)
	}
	logger := logutil.GetLogger(ctx)
	vectors := make([][]float32, 0, len(chunks))
	for i, chunk := range chunks {
		vec, err := embedder.Embed(ctx, chunk.Text, taskTypeDocument)
		if err != nil {
			return nil, fmt.Errorf("%w: embed chunk %d: %v", appErr.ErrEmbeddingUnavailable, i, err)
		}
		vectors = append(vectors, vec)
	}
	logger.Debug("index built", zap.Int("chunks", len(chunks)), zap.String("model", embedder.ModelName()))
	return &Index{embedder: embedder, chunks: chunks, vectors: vectors}, nil
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	return len(idx.chunks)
}

// Search embeds the query and returns the k chunks whose embeddings are
// nearest by cosine similarity, best first.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]ScoredChunk, error) {
	queryVec, err := idx.embedder.Embed(ctx, query, taskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", appErr.ErrEmbeddingUnavailable, err)
	}
	matches := make([]ScoredChunk, 0, len(idx.chunks))
	for i, chunk := range idx.chunks {
		matches = append(matches, ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(queryVec, idx.vectors[i]),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
