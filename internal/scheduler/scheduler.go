package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"tscat/internal/logger"
	"tscat/internal/service"
)

// Syncer is the part of service.SyncService the scheduler drives.
type Syncer interface {
	SyncDir(ctx context.Context, dir string) (service.SyncResult, error)
}

type Scheduler struct {
	syncer     Syncer
	dir        string
	interval   time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the sync in flight
	mu         sync.Mutex         // protects cancelFunc and the close of stopCh
}

func New(syncer Syncer, dir string, interval time.Duration) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		dir:      dir,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "sync", "resource", "catalog", "result", "ok", "dir", s.dir, "interval_ms", s.interval.Milliseconds())
}

// Stop is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		close(s.stopCh)
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.mu.Unlock()
	})
	s.wg.Wait()
	logger.Info("scheduler stopped", "module", "scheduler", "action", "sync", "resource", "catalog", "result", "ok")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// run immediately on start
	s.sync()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sync()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) sync() {
	// a sync never outlives its interval
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	s.mu.Lock()
	select {
	case <-s.stopCh:
		s.mu.Unlock()
		cancel()
		return
	default:
	}
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	result, err := s.syncer.SyncDir(ctx, s.dir)
	switch {
	case errors.Is(err, service.ErrSyncRunning):
		logger.Info("scheduled sync skipped", "module", "scheduler", "action", "sync", "resource", "catalog", "result", "skipped")
	case err != nil && ctx.Err() != nil:
		logger.Warn("scheduled sync cancelled", "module", "scheduler", "action", "sync", "resource", "catalog", "result", "cancelled")
	case err != nil:
		logger.Error("scheduled sync failed", "module", "scheduler", "action", "sync", "resource", "catalog", "result", "failed", "error", err)
	default:
		logger.Info("scheduled sync completed", "module", "scheduler", "action", "sync", "resource", "catalog", "result", "ok",
			"imported", result.Imported, "unchanged", result.Unchanged, "failed", result.Failed)
	}
}
