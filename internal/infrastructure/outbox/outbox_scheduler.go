package outbox

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Scheduler struct {
	dispatcher *Dispatcher
	interval   time.Duration
	logger     *zap.Logger
	wg         sync.WaitGroup
}

func NewScheduler(d *Dispatcher, intervalSec int, logger *zap.Logger) *Scheduler {
	if intervalSec <= 0 {
		intervalSec = 1
	}
	return &Scheduler{
		dispatcher: d,
		interval:   time.Duration(intervalSec) * time.Second,
		logger:     logger,
	}
}

// Start runs the dispatcher on every tick until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("outbox scheduler stopped")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

// Wait blocks until the scheduler goroutine has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) tick(ctx context.Context) {
	n, err := s.dispatcher.DispatchOnce(ctx)
	if err != nil {
		s.logger.Error("outbox dispatch error", zap.Error(err))
	} else if n > 0 {
		s.logger.Debug("outbox dispatch processed messages", zap.Int("count", n))
	}
}
