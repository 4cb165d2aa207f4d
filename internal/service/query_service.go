package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tubeask/tubeask/internal/ai"
	"github.com/tubeask/tubeask/internal/model"
	appErr "github.com/tubeask/tubeask/internal/pkg/errors"
	"github.com/tubeask/tubeask/internal/rag"
	"github.com/tubeask/tubeask/internal/session"
	"github.com/tubeask/tubeask/internal/youtube"
)

const (
	DefaultTopK       = 4
	DefaultCandidateK = 6
	maxExcerptChars   = 250
)

const answerPromptTemplate = `You are a helpful assistant.
Answer ONLY from the provided transcript context. If the context is insufficient, say you don't know.

%s

Question: %s`

type QueryConfig struct {
	DefaultK   int
	CandidateK int // how many matches the retriever fetches before truncation
	Timeout    int // seconds, bounds retrieval plus generation
}

type QueryService struct {
	registry  *session.Registry
	generator ai.IGenerator
	cfg       QueryConfig
}

func NewQueryService(registry *session.Registry, generator ai.IGenerator, cfg QueryConfig) *QueryService {
	if cfg.DefaultK <= 0 {
		cfg.DefaultK = DefaultTopK
	}
	if cfg.CandidateK <= 0 {
		cfg.CandidateK = DefaultCandidateK
	}
	return &QueryService{registry: registry, generator: generator, cfg: cfg}
}

type QueryResult struct {
	Answer  string         `json:"answer"`
	Sources []model.Source `json:"sources"`
}

// Query retrieves the k chunks most relevant to the question, asks the
// model for a grounded answer and cites the chunks as timestamp-linked
// sources in retrieval-rank order.
func (s *QueryService) Query(ctx context.Context, sessionID string, question string, k int) (*QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", appErr.ErrInvalid)
	}
	if k <= 0 {
		k = s.cfg.DefaultK
	}
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Timeout)*time.Second)
		defer cancel()
	}
	logger := logutil.GetLogger(ctx).With(
		zap.String("session_id", sessionID),
		zap.String("video_id", sess.VideoID),
	)

	candidates := s.cfg.CandidateK
	if candidates < k {
		candidates = k
	}
	matches, err := sess.Index.Search(ctx, question, candidates)
	if err != nil {
		logger.Error("retrieval failed", zap.Error(err))
		return nil, err
	}
	if len(matches) > k {
		matches = matches[:k]
	}

	prompt := fmt.Sprintf(answerPromptTemplate, contextBlock(matches), question)
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", appErr.ErrGenerationFailed, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, fmt.Errorf("%w: empty model response", appErr.ErrGenerationFailed)
	}

	sources := make([]model.Source, 0, len(matches))
	for _, match := range matches {
		chunk := match.Chunk
		sources = append(sources, model.Source{
			Excerpt: truncateExcerpt(chunk.Text, maxExcerptChars),
			Start:   chunk.Start,
			End:     chunk.End,
			Label:   rag.FormatTimestamp(chunk.Start),
			Link:    youtube.DeepLink(sess.VideoID, chunk.Start),
		})
	}
	logger.Info("question answered", zap.Int("sources", len(sources)))
	return &QueryResult{Answer: answer, Sources: sources}, nil
}

// contextBlock renders the matches in retrieval-rank order, each tagged
// with its start label so the model can anchor claims to a moment.
func contextBlock(matches []rag.ScoredChunk) string {
	lines := make([]string, 0, len(matches))
	for _, match := range matches {
		lines = append(lines, fmt.Sprintf("[Start %s] %s", rag.FormatTimestamp(match.Chunk.Start), match.Chunk.Text))
	}
	return strings.Join(lines, "\n\n")
}

func truncateExcerpt(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}
