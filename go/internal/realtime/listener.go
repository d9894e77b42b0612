// Package realtime streams team message changes from Postgres LISTEN/NOTIFY.
package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type ListenerConfig struct {
	DatabaseURL          string
	NotifyChannel        string
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
	PingInterval         time.Duration
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel:        "team_messages_changes",
		MinReconnectInterval: 10 * time.Second,
		MaxReconnectInterval: time.Minute,
		PingInterval:         90 * time.Second,
	}
}

// Listener opens message subscriptions on a Postgres notify channel
type Listener struct {
	cfg   ListenerConfig
	clock clockwork.Clock
}

func NewListener(cfg ListenerConfig, clock clockwork.Clock) *Listener {
	return &Listener{cfg: cfg, clock: clock}
}

// Subscribe starts listening for changes to messages sent or received by
// teamIDs. The subscription runs until ctx is done or Close is called.
func (l *Listener) Subscribe(ctx context.Context, teamIDs []uuid.UUID) (*Subscription, error) {
	pl := pq.NewListener(
		l.cfg.DatabaseURL,
		l.cfg.MinReconnectInterval,
		l.cfg.MaxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := pl.Listen(l.cfg.NotifyChannel); err != nil {
		pl.Close()
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Int("teams", len(teamIDs)).
		Msg("listening for message changes")

	return newSubscription(ctx, pqSource{pl}, teamIDs, l.clock, l.cfg.PingInterval), nil
}

// source is the notification stream behind a subscription
type source interface {
	Notifications() <-chan *pq.Notification
	Ping() error
	Close() error
}

type pqSource struct {
	l *pq.Listener
}

func (s pqSource) Notifications() <-chan *pq.Notification { return s.l.Notify }
func (s pqSource) Ping() error                            { return s.l.Ping() }
func (s pqSource) Close() error                           { return s.l.Close() }

// Subscription is a cancellable stream of message events. It cannot be
// restarted once closed.
type Subscription struct {
	events chan MessageEvent
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func newSubscription(parent context.Context, src source, teamIDs []uuid.UUID, clock clockwork.Clock, pingInterval time.Duration) *Subscription {
	ctx, cancel := context.WithCancel(parent)
	s := &Subscription{
		events: make(chan MessageEvent),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	teams := make(map[uuid.UUID]bool, len(teamIDs))
	for _, id := range teamIDs {
		teams[id] = true
	}
	if pingInterval <= 0 {
		pingInterval = DefaultListenerConfig().PingInterval
	}

	go s.run(ctx, src, teams, clock.NewTicker(pingInterval))
	return s
}

// Events yields message events; the channel closes when the subscription ends
func (s *Subscription) Events() <-chan MessageEvent {
	return s.events
}

// Close stops the subscription and waits for it to finish
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

func (s *Subscription) run(ctx context.Context, src source, teams map[uuid.UUID]bool, ping clockwork.Ticker) {
	defer close(s.done)
	defer close(s.events)
	defer ping.Stop()
	defer func() {
		if err := src.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close listener")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case note, ok := <-src.Notifications():
			if !ok {
				return
			}
			if note == nil {
				// connection was re-established, notifications may have been missed
				log.Warn().Msg("message listener reconnected")
				continue
			}
			ev, err := ParseNotification(note.Extra)
			if err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
				continue
			}
			if !ev.Involves(teams) {
				continue
			}
			select {
			case s.events <- ev:
			case <-ctx.Done():
				return
			}
		case <-ping.Chan():
			if err := src.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}
