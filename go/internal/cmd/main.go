package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mcdev12/teamtango/go/internal/appconfig"
	"github.com/mcdev12/teamtango/go/internal/dbconfig"
	"github.com/mcdev12/teamtango/go/internal/discovery"
	"github.com/mcdev12/teamtango/go/internal/messages"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	appconfig.SetupLogging()

	config, err := appconfig.Load(appconfig.GetEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbCfg := dbconfig.NewConfigFromEnv()
	pool, err := setupDatabase(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup database")
	}
	defer pool.Close()

	services, err := setupServices(ctx, config, pool, dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup services")
	}
	defer services.Close()

	if err := services.Scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start backfill scheduler")
	}

	if owner := os.Getenv("WATCH_OWNER_ID"); owner != "" {
		ownerID, err := uuid.Parse(owner)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid WATCH_OWNER_ID")
		}
		if err := watchUnread(ctx, services, ownerID); err != nil {
			log.Fatal().Err(err).Msg("failed to watch messages")
		}
		logDiscovery(ctx, services, ownerID)
	}

	log.Info().
		Int("sports", len(services.Sports.All())).
		Msg("teamtango started")

	<-ctx.Done()
	log.Info().Msg("received shutdown signal")

	if err := services.Scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("backfill scheduler shutdown failed")
	}

	log.Info().Msg("teamtango shutdown complete")
}

// logDiscovery runs an unfiltered search as the owner's selected team
func logDiscovery(ctx context.Context, services *Services, ownerID uuid.UUID) {
	result, err := services.Discover(ctx, ownerID, discovery.Filters{})
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("discovery failed")
		return
	}
	log.Info().
		Str("owner_id", ownerID.String()).
		Int("candidates", len(result.Candidates)).
		Bool("distance_fallback", result.DistanceFallback).
		Msg("discovery candidates")
}

// watchUnread streams message changes for the owner's teams and logs unread counts
func watchUnread(ctx context.Context, services *Services, ownerID uuid.UUID) error {
	owned, err := services.Teams.ListUserTeams(ctx, ownerID)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(owned))
	for _, t := range owned {
		ids = append(ids, t.ID)
	}

	initial, err := services.Messages.UnreadCounts(ctx, ids)
	if err != nil {
		return err
	}

	tracker := messages.NewUnreadTracker(ids, initial)
	tracker.OnChange(func(teamID uuid.UUID, count int) {
		log.Info().
			Str("team_id", teamID.String()).
			Int("unread", count).
			Int("total_unread", tracker.Total()).
			Msg("unread messages changed")
	})

	sub, err := services.Realtime.Subscribe(ctx, ids)
	if err != nil {
		return err
	}
	go func() {
		defer sub.Close()
		tracker.Run(ctx, sub.Events())
	}()

	log.Info().
		Str("owner_id", ownerID.String()).
		Int("teams", len(ids)).
		Int("unread", tracker.Total()).
		Msg("watching team messages")
	return nil
}
