// Package session runs the ledger's expiry sweep on a cron schedule.
package session

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"farmacore/internal/metrics"
	"farmacore/internal/store"
)

// Sweeper lazily expires overdue sessions and purges them. A deactivated
// or expired session never becomes active again.
type Sweeper struct {
	sessions *store.SessionStore
	lg       *zap.SugaredLogger
	cron     *cron.Cron
}

func NewSweeper(sessions *store.SessionStore, lg *zap.SugaredLogger) *Sweeper {
	return &Sweeper{sessions: sessions, lg: lg}
}

// Start schedules Sweep with a cron spec such as "@every 1h".
func (s *Sweeper) Start(spec string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep marks overdue-but-active sessions as expired, then deletes every
// session past its expiry.
func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	expired, err := s.sessions.ExpireOverdue(ctx)
	if err != nil {
		s.lg.Errorw("session sweep: expire", "error", err)
		return
	}
	purged, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.lg.Errorw("session sweep: purge", "error", err)
		return
	}
	metrics.SessionsSwept.Add(float64(purged))
	if expired > 0 || purged > 0 {
		s.lg.Infow("session sweep", "expired", expired, "purged", purged)
	}
}
