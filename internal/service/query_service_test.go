package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tubeask/tubeask/internal/model"
	appErr "github.com/tubeask/tubeask/internal/pkg/errors"
	"github.com/tubeask/tubeask/internal/rag"
	"github.com/tubeask/tubeask/internal/session"
)

type fakeGenerator struct {
	answer string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// five chunks whose similarity to the query decreases with position
func queryFixture(t *testing.T, gen *fakeGenerator) (*QueryService, string) {
	t.Helper()
	vectors := map[string][]float32{"what happened?": {1, 0}}
	chunks := make([]model.Chunk, 0, 5)
	for i := 0; i < 5; i++ {
		text := fmt.Sprintf("chunk number %d", i)
		chunks = append(chunks, model.Chunk{Text: text, Start: float64(i * 60), End: float64(i*60 + 60)})
		vectors[text] = []float32{1, float32(i)}
	}
	embedder := &fakeEmbedder{vectors: vectors}
	index, err := rag.BuildIndex(context.Background(), embedder, chunks)
	require.NoError(t, err)

	registry := session.NewRegistry(8, time.Hour)
	sess := registry.Create("dQw4w9WgXcQ", index, chunks)
	svc := NewQueryService(registry, gen, QueryConfig{DefaultK: 4, CandidateK: 6})
	return svc, sess.ID
}

func TestQuery_ReturnsRankedSources(t *testing.T) {
	gen := &fakeGenerator{answer: "it was about chunks"}
	svc, sessionID := queryFixture(t, gen)

	result, err := svc.Query(context.Background(), sessionID, "what happened?", 2)
	require.NoError(t, err)
	require.Equal(t, "it was about chunks", result.Answer)
	require.Len(t, result.Sources, 2)

	// rank order follows similarity, best first
	require.Equal(t, "chunk number 0", result.Sources[0].Excerpt)
	require.Equal(t, "chunk number 1", result.Sources[1].Excerpt)
	require.Equal(t, "00:00", result.Sources[0].Label)
	require.Equal(t, "01:00", result.Sources[1].Label)
	require.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=0s", result.Sources[0].Link)
	require.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=60s", result.Sources[1].Link)
	require.Equal(t, 60.0, result.Sources[1].Start)
	require.Equal(t, 120.0, result.Sources[1].End)
}

func TestQuery_PromptContainsContextAndQuestion(t *testing.T) {
	gen := &fakeGenerator{answer: "answer"}
	svc, sessionID := queryFixture(t, gen)

	_, err := svc.Query(context.Background(), sessionID, "what happened?", 2)
	require.NoError(t, err)
	require.Contains(t, gen.prompt, "[Start 00:00] chunk number 0")
	require.Contains(t, gen.prompt, "Question: what happened?")
	require.Contains(t, gen.prompt, "say you don't know")
}

func TestQuery_DefaultK(t *testing.T) {
	gen := &fakeGenerator{answer: "answer"}
	svc, sessionID := queryFixture(t, gen)

	result, err := svc.Query(context.Background(), sessionID, "what happened?", 0)
	require.NoError(t, err)
	require.Len(t, result.Sources, 4)
}

func TestQuery_UnknownSession(t *testing.T) {
	gen := &fakeGenerator{answer: "answer"}
	svc, _ := queryFixture(t, gen)

	result, err := svc.Query(context.Background(), "deadbeefdeadbeefdeadbeefdeadbeef", "what happened?", 2)
	require.ErrorIs(t, err, appErr.ErrSessionNotFound)
	require.Nil(t, result)
	require.Empty(t, gen.prompt)
}

func TestQuery_EmptyQuestion(t *testing.T) {
	gen := &fakeGenerator{answer: "answer"}
	svc, sessionID := queryFixture(t, gen)

	_, err := svc.Query(context.Background(), sessionID, "   ", 2)
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestQuery_GenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model overloaded")}
	svc, sessionID := queryFixture(t, gen)

	result, err := svc.Query(context.Background(), sessionID, "what happened?", 2)
	require.ErrorIs(t, err, appErr.ErrGenerationFailed)
	require.Contains(t, err.Error(), "model overloaded")
	require.Nil(t, result)
}

func TestQuery_EmptyAnswerIsGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{answer: "   "}
	svc, sessionID := queryFixture(t, gen)

	_, err := svc.Query(context.Background(), sessionID, "what happened?", 2)
	require.ErrorIs(t, err, appErr.ErrGenerationFailed)
}

func TestTruncateExcerpt(t *testing.T) {
	short := "short text"
	require.Equal(t, short, truncateExcerpt(short, 250))

	long := strings.Repeat("a", 300)
	got := truncateExcerpt(long, 250)
	require.Equal(t, strings.Repeat("a", 250)+"...", got)
}
