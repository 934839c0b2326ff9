// Package tick drives the periodic decay of the buddy's needs.
package tick

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultInterval = time.Minute

type Target interface {
	Tick(ctx context.Context) error
}

// Scheduler fires Target.Tick every Interval until its context is cancelled
// or Stop is called. The timer is released before Run returns, so no tick
// lands after shutdown.
type Scheduler struct {
	Interval time.Duration
	Target   Target
	Logger   *slog.Logger

	once     sync.Once
	stopOnce sync.Once
	stop     chan struct{}
}

func (s *Scheduler) init() {
	s.once.Do(func() {
		s.stop = make(chan struct{})
	})
}

func (s *Scheduler) Run(ctx context.Context) {
	s.init()
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("tick scheduler started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			logger.Info("tick scheduler stopped", "reason", "context")
			return
		case <-s.stop:
			logger.Info("tick scheduler stopped", "reason", "stop")
			return
		case <-ticker.C:
			// A stop racing the tick wins.
			select {
			case <-s.stop:
				continue
			default:
			}
			if err := s.Target.Tick(ctx); err != nil {
				logger.Warn("tick failed", "error", err)
			}
		}
	}
}

// Stop ends Run. It is safe to call repeatedly and from several goroutines.
func (s *Scheduler) Stop() {
	s.init()
	s.stopOnce.Do(func() { close(s.stop) })
}
