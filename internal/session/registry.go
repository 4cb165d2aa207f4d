package session

import (
	"encoding/hex"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tubeask/tubeask/internal/model"
	appErr "github.com/tubeask/tubeask/internal/pkg/errors"
	"github.com/tubeask/tubeask/internal/rag"
)

const (
	DefaultCapacity = 512
	DefaultTTL      = 6 * time.Hour
)

// Session is the server-side state created once per ingested video and
// reused across questions. Chunks and index are write-once at creation.
type Session struct {
	ID      string
	VideoID string
	Chunks  []model.Chunk
	Index   *rag.Index
	Ctime   time.Time
}

// Registry maps opaque session tokens to their sessions. Entries are
// bounded by capacity and expire after the configured TTL, so an abandoned
// session does not pin its index in memory forever.
type Registry struct {
	cache   *expirable.LRU[string, *Session]
	created atomic.Int64
	evicted atomic.Int64
}

func NewRegistry(capacity int, ttl time.Duration) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	r := &Registry{}
	r.cache = expirable.NewLRU[string, *Session](capacity, func(string, *Session) {
		r.evicted.Add(1)
	}, ttl)
	return r
}

// Create stores a fresh session and returns it. Every call yields a new
// opaque id, even for identical video content.
func (r *Registry) Create(videoID string, index *rag.Index, chunks []model.Chunk) *Session {
	s := &Session{
		ID:      newSessionID(),
		VideoID: videoID,
		Chunks:  chunks,
		Index:   index,
		Ctime:   time.Now(),
	}
	r.cache.Add(s.ID, s)
	r.created.Add(1)
	return s
}

// Get resolves a session id, failing when it was never created or has
// expired.
func (r *Registry) Get(id string) (*Session, error) {
	s, ok := r.cache.Get(id)
	if !ok {
		return nil, appErr.ErrSessionNotFound
	}
	return s, nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Stats reports lifetime created and evicted counts.
func (r *Registry) Stats() (created int64, evicted int64) {
	return r.created.Load(), r.evicted.Load()
}

func newSessionID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
