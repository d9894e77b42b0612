package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamtango/go/internal/location"
)

type stubOwners struct {
	owners []uuid.UUID
	err    error
}

func (s *stubOwners) ListOwnersMissingCoordinates(ctx context.Context) ([]uuid.UUID, error) {
	return s.owners, s.err
}

type recordingBackfill struct {
	mu    sync.Mutex
	calls []uuid.UUID
	fail  map[uuid.UUID]bool
}

func (r *recordingBackfill) Backfill(ctx context.Context, owner uuid.UUID) (*location.BackfillResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, owner)
	if r.fail[owner] {
		return nil, errors.New("boom")
	}
	return &location.BackfillResult{UpdatedCount: 1}, nil
}

func TestRunOnce_BackfillsEveryOwner(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	bf := &recordingBackfill{fail: map[uuid.UUID]bool{b: true}}
	s, err := NewBackfillScheduler(&stubOwners{owners: []uuid.UUID{a, b, c}}, bf, clockwork.NewFakeClock(), time.Minute)
	if err != nil {
		t.Fatalf("NewBackfillScheduler: %v", err)
	}

	s.RunOnce()

	if len(bf.calls) != 3 {
		t.Fatalf("backfilled %d owners, want 3 (one failure must not stop the run)", len(bf.calls))
	}
}

func TestRunOnce_OwnerListError(t *testing.T) {
	bf := &recordingBackfill{}
	s, err := NewBackfillScheduler(&stubOwners{err: errors.New("db down")}, bf, clockwork.NewFakeClock(), 0)
	if err != nil {
		t.Fatalf("NewBackfillScheduler: %v", err)
	}

	if s.interval != DefaultBackfillInterval {
		t.Errorf("interval = %v, want default", s.interval)
	}

	s.RunOnce()
	if len(bf.calls) != 0 {
		t.Error("no owners should be backfilled when listing fails")
	}
}

func TestStartAndShutdown(t *testing.T) {
	s, err := NewBackfillScheduler(&stubOwners{}, &recordingBackfill{}, clockwork.NewFakeClock(), time.Minute)
	if err != nil {
		t.Fatalf("NewBackfillScheduler: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
