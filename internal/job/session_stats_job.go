package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tubeask/tubeask/internal/session"
)

// SessionStatsJob periodically reports session registry occupancy so
// eviction pressure is visible in the logs.
type SessionStatsJob struct {
	registry *session.Registry
}

func NewSessionStatsJob(registry *session.Registry) *SessionStatsJob {
	return &SessionStatsJob{registry: registry}
}

func (j *SessionStatsJob) Name() string {
	return "session_stats"
}

func (j *SessionStatsJob) Run(ctx context.Context) error {
	if j.registry == nil {
		return nil
	}
	created, evicted := j.registry.Stats()
	logutil.GetLogger(ctx).Info("session registry stats",
		zap.Int("live", j.registry.Len()),
		zap.Int64("created", created),
		zap.Int64("evicted", evicted),
	)
	return nil
}
