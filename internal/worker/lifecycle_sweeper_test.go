package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	domain "github.com/hairsol/booking-engine/internal/domain/appointment"
	"github.com/hairsol/booking-engine/internal/timezone"
)

type fakeRefresher struct {
	refreshDue func(ctx context.Context, f domain.DueFilter) (int, error)
}

func (f *fakeRefresher) RefreshDue(ctx context.Context, filter domain.DueFilter) (int, error) {
	return f.refreshDue(ctx, filter)
}

type fakeLocker struct {
	ok       bool
	err      error
	released int
}

func (l *fakeLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	if l.err != nil || !l.ok {
		return nil, false, l.err
	}
	return func() { l.released++ }, true, nil
}

func TestSweepRefreshesUpToTomorrow(t *testing.T) {
	clock := timezone.NewFixedClock(time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC))
	locker := &fakeLocker{ok: true}

	var got domain.DueFilter
	r := &fakeRefresher{refreshDue: func(ctx context.Context, f domain.DueFilter) (int, error) {
		got = f
		return 3, nil
	}}

	s := NewLifecycleSweeper(r, locker, clock, zap.NewNop(), SweeperConfig{Interval: time.Minute, BatchSize: 10})
	if n := s.Sweep(context.Background()); n != 3 {
		t.Fatalf("expected 3 changes, got %d", n)
	}
	if got.Until != "2025-06-02" || got.Limit != 10 {
		t.Fatalf("unexpected filter %+v", got)
	}
	if locker.released != 1 {
		t.Fatalf("expected lease release, got %d", locker.released)
	}
}

func TestSweepSkipsWithoutLease(t *testing.T) {
	clock := timezone.NewFixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	r := &fakeRefresher{refreshDue: func(ctx context.Context, f domain.DueFilter) (int, error) {
		t.Fatal("refresh must not run without the lease")
		return 0, nil
	}}

	for _, l := range []*fakeLocker{{ok: false}, {err: errors.New("redis down")}} {
		s := NewLifecycleSweeper(r, l, clock, zap.NewNop(), SweeperConfig{Interval: time.Minute})
		if n := s.Sweep(context.Background()); n != 0 {
			t.Fatalf("expected no changes, got %d", n)
		}
	}
}

func TestRunDisabledReturns(t *testing.T) {
	s := NewLifecycleSweeper(&fakeRefresher{}, nil, timezone.NewFixedClock(time.Now()), zap.NewNop(), SweeperConfig{})
	s.Run(context.Background())
}
