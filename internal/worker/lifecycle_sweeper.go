package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/metrics"
	"github.com/hairsol/booking-engine/internal/timezone"
)

const sweepLockName = "lifecycle-sweep"

// Refresher is the part of the lifecycle use case the sweeper drives.
type Refresher interface {
	RefreshDue(ctx context.Context, f domain.DueFilter) (int, error)
}

// Locker hands out a lease so only one replica sweeps per tick.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error)
}

// LocalLocker always grants the lease; used when no redis is configured.
type LocalLocker struct{}

func (LocalLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}

type SweeperConfig struct {
	Interval  time.Duration
	BatchSize int
}

// LifecycleSweeper advances due appointments in the background. Reads still
// refresh on their own; the sweep only keeps rows fresh for consumers that
// bypass the API.
type LifecycleSweeper struct {
	refresher Refresher
	locker    Locker
	clock     timezone.Clock
	logger    *zap.Logger
	interval  time.Duration
	batchSize int
}

func NewLifecycleSweeper(
	refresher Refresher,
	locker Locker,
	clock timezone.Clock,
	logger *zap.Logger,
	cfg SweeperConfig,
) *LifecycleSweeper {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if locker == nil {
		locker = LocalLocker{}
	}
	return &LifecycleSweeper{
		refresher: refresher,
		locker:    locker,
		clock:     clock,
		logger:    logger,
		interval:  cfg.Interval,
		batchSize: cfg.BatchSize,
	}
}

func (s *LifecycleSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("lifecycle sweeper disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass and reports how many appointments changed status.
func (s *LifecycleSweeper) Sweep(ctx context.Context) int {
	release, ok, err := s.locker.Acquire(ctx, sweepLockName, s.leaseTTL())
	if err != nil {
		metrics.RecordSweep("error")
		s.logger.Error("lifecycle sweep lock failed", zap.Error(err))
		return 0
	}
	if !ok {
		metrics.RecordSweep("skipped")
		return 0
	}
	defer release()

	changed, err := s.refresher.RefreshDue(ctx, domain.DueFilter{
		Until: timezone.DateOf(s.clock.Now().Add(24 * time.Hour)),
		Limit: s.batchSize,
	})
	if err != nil {
		metrics.RecordSweep("error")
		s.logger.Error("lifecycle sweep failed", zap.Error(err))
		return changed
	}

	metrics.RecordSweep("ok")
	if changed > 0 {
		s.logger.Info("lifecycle sweep advanced appointments", zap.Int("changed", changed))
	}
	return changed
}

func (s *LifecycleSweeper) leaseTTL() time.Duration {
	if s.interval > 0 {
		return s.interval
	}
	return time.Minute
}
