package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/polkiloo/bundlemart/internal/domain/model"
	testhelpers "github.com/polkiloo/bundlemart/internal/test"
)

func TestNewReconcileSchedulerDefaults(t *testing.T) {
	s := NewReconcileScheduler(&testhelpers.ReconcilerStub{}, nil, 0, nil)
	if s.interval != time.Minute {
		t.Fatalf("expected default interval, got %v", s.interval)
	}
}

func TestReconcileSchedulerRunsSweeps(t *testing.T) {
	reconciler := &testhelpers.ReconcilerStub{}
	lock := &testhelpers.SweepLockStub{}
	s := NewReconcileScheduler(reconciler, lock, 5*time.Millisecond, discardLogger())

	s.Start(context.Background())
	waitFor(t, func() bool { return reconciler.Calls() >= 2 })
	s.Stop()

	acquired, released := lock.Counts()
	if acquired < 2 || acquired != released {
		t.Fatalf("expected balanced lock usage, got %d acquired and %d released", acquired, released)
	}
}

func TestReconcileSchedulerSkipsWhenLockHeld(t *testing.T) {
	reconciler := &testhelpers.ReconcilerStub{}
	s := NewReconcileScheduler(reconciler, &testhelpers.SweepLockStub{Deny: true}, time.Millisecond, discardLogger())
	s.sweep(context.Background())
	if reconciler.Calls() != 0 {
		t.Fatal("expected sweep to be skipped while another instance holds the lock")
	}

	s = NewReconcileScheduler(reconciler, &testhelpers.SweepLockStub{Err: errors.New("redis down")}, time.Millisecond, discardLogger())
	s.sweep(context.Background())
	if reconciler.Calls() != 0 {
		t.Fatal("expected sweep to be skipped when the lock cannot be checked")
	}
}

func TestReconcileSchedulerReleasesLockOnFailure(t *testing.T) {
	reconciler := &testhelpers.ReconcilerStub{
		ReconcileFn: func(context.Context) (model.ReconcileReport, error) {
			return model.ReconcileReport{}, errors.New("db down")
		},
	}
	lock := &testhelpers.SweepLockStub{}
	s := NewReconcileScheduler(reconciler, lock, time.Millisecond, discardLogger())
	s.sweep(context.Background())

	if acquired, released := lock.Counts(); acquired != 1 || released != 1 {
		t.Fatalf("expected lock released after failed sweep, got %d/%d", acquired, released)
	}
}

func TestReconcileSchedulerWithoutLock(t *testing.T) {
	reconciler := &testhelpers.ReconcilerStub{}
	s := NewReconcileScheduler(reconciler, nil, time.Millisecond, discardLogger())
	s.sweep(context.Background())
	if reconciler.Calls() != 1 {
		t.Fatalf("expected one sweep, got %d", reconciler.Calls())
	}
}
