package cron

import (
	"go.uber.org/zap"

	"github.com/setlab/labsched/store"
)

// SweepIdleSessions drops session datasets idle past the TTL. Only the
// in-memory store needs sweeping; Redis expires its keys natively.
func (m *CronManager) SweepIdleSessions() {
	mem, ok := m.store.(*store.MemoryStore)
	if !ok {
		return
	}

	removed := mem.Sweep(m.sessionTTL)
	if removed > 0 {
		m.log.Info("evicted idle session datasets", zap.Int("count", removed))
	}
}
