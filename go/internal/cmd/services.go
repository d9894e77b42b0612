package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamtango/go/internal/appconfig"
	"github.com/mcdev12/teamtango/go/internal/discovery"
	"github.com/mcdev12/teamtango/go/internal/events"
	"github.com/mcdev12/teamtango/go/internal/interactions"
	"github.com/mcdev12/teamtango/go/internal/location"
	"github.com/mcdev12/teamtango/go/internal/messages"
	"github.com/mcdev12/teamtango/go/internal/preferences"
	"github.com/mcdev12/teamtango/go/internal/realtime"
	"github.com/mcdev12/teamtango/go/internal/session"
	"github.com/mcdev12/teamtango/go/internal/sports"
	"github.com/mcdev12/teamtango/go/internal/storage/logos"
	"github.com/mcdev12/teamtango/go/internal/teams"
	"github.com/mcdev12/teamtango/go/internal/workers"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Clock        clockwork.Clock
	Events       *events.Bus
	Sports       *sports.Catalog
	Teams        *teams.App
	TeamsRepo    *teams.Repository
	Discovery    *discovery.Engine
	Interactions *interactions.Repository
	Messages     *messages.Repository
	Backfill     *location.Backfiller
	Scheduler    *workers.BackfillScheduler
	Realtime     *realtime.Listener
	Preferences  preferences.Store
	LastViewed   *preferences.LastViewedStore

	publisher events.Publisher
	closers   []func()
}

func setupServices(ctx context.Context, cfg *appconfig.Config, pool *pgxpool.Pool, databaseURL string) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer
	clock := clockwork.NewRealClock()
	s := &Services{Clock: clock, Events: events.NewBus()}
	s.closers = append(s.closers, s.Events.Close)

	// Events
	s.publisher = s.Events
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		natsCfg := events.DefaultNATSConfig()
		natsCfg.URL = natsURL
		np, err := events.NewNATSPublisher(ctx, natsCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to setup NATS publisher: %w", err)
		}
		s.publisher = events.MultiPublisher{s.Events, np}
		s.closers = append(s.closers, np.Close)
	}

	// Redis backs the geocode cache and user preferences when configured
	var rdb *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		s.closers = append(s.closers, func() { rdb.Close() })
	}

	// Sports
	s.Sports = sports.NewCatalog(sports.NewRepository(pool))
	if err := s.Sports.Load(ctx); err != nil {
		return nil, err
	}

	// Geocoding → location
	geocoder := appconfig.NewGeocoder(cfg, clock, rdb)
	resolver := location.NewResolver(geocoder, clock)

	// Teams
	s.TeamsRepo = teams.NewRepository(pool)
	logoStore, err := setupLogos(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var teamLogos teams.LogoStore
	if logoStore != nil {
		teamLogos = logoStore
	}
	s.Teams = teams.NewApp(s.TeamsRepo, s.Sports, resolver, teamLogos, s.publisher, clock)

	// Discovery
	s.Discovery = discovery.NewEngine(discovery.NewRepository(pool), s.Sports, resolver, cfg.Discovery.CandidateLimit)

	// Interactions
	s.Interactions = interactions.NewRepository(pool)

	// Messages
	s.Messages = messages.NewRepository(pool)
	listenerCfg := realtime.DefaultListenerConfig()
	listenerCfg.DatabaseURL = databaseURL
	s.Realtime = realtime.NewListener(listenerCfg, clock)

	// Backfill
	s.Backfill = location.NewBackfiller(resolver, s.TeamsRepo)
	s.Scheduler, err = workers.NewBackfillScheduler(s.TeamsRepo, s.Backfill, clock, cfg.Backfill.Interval)
	if err != nil {
		return nil, err
	}

	// Preferences
	if rdb != nil {
		s.Preferences = preferences.NewRedisStore(rdb, "teamtango:prefs:", 0)
	} else {
		s.Preferences = preferences.NewMemoryStore()
	}
	s.LastViewed = preferences.NewLastViewedStore(s.Preferences, clock)

	return s, nil
}

// OpenLedger loads the interaction ledger for all of a user's teams
func (s *Services) OpenLedger(ctx context.Context, ownerID uuid.UUID) (*interactions.Ledger, error) {
	owned, err := s.Teams.ListUserTeams(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(owned))
	for _, t := range owned {
		ids = append(ids, t.ID)
	}

	ledger := interactions.NewLedger(s.Interactions, s.Clock, s.publisher, ownerID, ids)
	if err := ledger.Reload(ctx); err != nil {
		ledger.Close()
		return nil, err
	}
	return ledger, nil
}

// Session returns the discovery context of a user
func (s *Services) Session(ownerID uuid.UUID) *session.Session {
	return session.New(ownerID, s.Teams, s.Discovery, s.Preferences, s.LastViewed)
}

// Discover searches on behalf of the team the user is viewing as
func (s *Services) Discover(ctx context.Context, ownerID uuid.UUID, filters discovery.Filters) (*discovery.Result, error) {
	return s.Session(ownerID).Discover(ctx, filters)
}

func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// setupLogos returns nil when no bucket is configured
func setupLogos(ctx context.Context, cfg *appconfig.Config) (*logos.S3Store, error) {
	bucket := appconfig.GetEnv("S3_BUCKET", cfg.Logos.Bucket)
	if bucket == "" {
		log.Info().Msg("logo storage not configured")
		return nil, nil
	}

	s3cfg := logos.Config{
		Endpoint:        appconfig.GetEnv("S3_ENDPOINT", cfg.Logos.Endpoint),
		Region:          appconfig.GetEnv("S3_REGION", cfg.Logos.Region),
		Bucket:          bucket,
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		AccessKeySecret: os.Getenv("S3_SECRET_ACCESS_KEY"),
		PublicBaseURL:   appconfig.GetEnv("S3_PUBLIC_BASE_URL", cfg.Logos.PublicBaseURL),
	}
	client, err := logos.NewS3Client(ctx, s3cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logo storage: %w", err)
	}
	return logos.NewS3Store(client, s3cfg.Bucket, s3cfg.PublicBaseURL), nil
}
