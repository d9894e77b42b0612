// Package workers runs background jobs on a schedule.
package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamtango/go/internal/location"
	"github.com/rs/zerolog/log"
)

// DefaultBackfillInterval is how often the coordinate backfill runs
const DefaultBackfillInterval = 30 * time.Minute

// OwnerSource lists owners that have teams without coordinates
type OwnerSource interface {
	ListOwnersMissingCoordinates(ctx context.Context) ([]uuid.UUID, error)
}

// Backfill geocodes a single owner's teams
type Backfill interface {
	Backfill(ctx context.Context, ownerID uuid.UUID) (*location.BackfillResult, error)
}

// BackfillScheduler periodically backfills coordinates for every owner that needs it
type BackfillScheduler struct {
	scheduler gocron.Scheduler
	owners    OwnerSource
	backfill  Backfill
	interval  time.Duration
	timeout   time.Duration
}

func NewBackfillScheduler(owners OwnerSource, backfill Backfill, clock clockwork.Clock, interval time.Duration) (*BackfillScheduler, error) {
	if interval <= 0 {
		interval = DefaultBackfillInterval
	}

	s, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &BackfillScheduler{
		scheduler: s,
		owners:    owners,
		backfill:  backfill,
		interval:  interval,
		timeout:   interval / 2,
	}, nil
}

// Start registers the job and begins running it
func (b *BackfillScheduler) Start() error {
	_, err := b.scheduler.NewJob(
		gocron.DurationJob(b.interval),
		gocron.NewTask(b.RunOnce),
		gocron.WithName("coordinate-backfill"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule coordinate backfill: %w", err)
	}

	b.scheduler.Start()
	log.Info().Dur("interval", b.interval).Msg("coordinate backfill scheduler started")
	return nil
}

// RunOnce backfills every owner that currently has teams missing coordinates
func (b *BackfillScheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	owners, err := b.owners.ListOwnersMissingCoordinates(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list owners for backfill")
		return
	}

	for _, owner := range owners {
		if ctx.Err() != nil {
			log.Warn().Int("remaining", len(owners)).Msg("backfill run timed out")
			return
		}
		if _, err := b.backfill.Backfill(ctx, owner); err != nil {
			log.Error().Err(err).Str("owner_id", owner.String()).Msg("coordinate backfill failed")
		}
	}
}

// Shutdown stops the scheduler and waits for running jobs
func (b *BackfillScheduler) Shutdown() error {
	if err := b.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	return nil
}
