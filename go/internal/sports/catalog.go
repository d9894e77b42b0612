// Package sports holds the catalog of sports a team can play.
package sports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/rs/zerolog/log"
)

// ErrInvalidSport is returned when a sport name or id is not in the catalog
var ErrInvalidSport = errors.New("invalid sport selected")

// Source loads sports from storage
type Source interface {
	ListSports(ctx context.Context) ([]models.Sport, error)
}

// Catalog is an in-memory snapshot of the sports table
type Catalog struct {
	source Source

	mu     sync.RWMutex
	sports []models.Sport
	byID   map[uuid.UUID]models.Sport
	byName map[string]models.Sport
}

// NewCatalog creates an empty catalog; call Load before use
func NewCatalog(source Source) *Catalog {
	return &Catalog{
		source: source,
		byID:   make(map[uuid.UUID]models.Sport),
		byName: make(map[string]models.Sport),
	}
}

// Load replaces the snapshot with the current sports
func (c *Catalog) Load(ctx context.Context) error {
	sports, err := c.source.ListSports(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sports: %w", err)
	}

	byID := make(map[uuid.UUID]models.Sport, len(sports))
	byName := make(map[string]models.Sport, len(sports))
	for _, s := range sports {
		byID[s.ID] = s
		byName[strings.ToLower(s.Name)] = s
	}

	c.mu.Lock()
	c.sports = sports
	c.byID = byID
	c.byName = byName
	c.mu.Unlock()

	log.Info().Int("count", len(sports)).Msg("sports catalog loaded")
	return nil
}

// All returns the sports in name order
func (c *Catalog) All() []models.Sport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Sport, len(c.sports))
	copy(out, c.sports)
	return out
}

// GetByID looks up a sport by id
func (c *Catalog) GetByID(id uuid.UUID) (models.Sport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byID[id]
	if !ok {
		return models.Sport{}, fmt.Errorf("%w: %s", ErrInvalidSport, id)
	}
	return s, nil
}

// GetByName looks up a sport by name, case-insensitive
func (c *Catalog) GetByName(name string) (models.Sport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return models.Sport{}, fmt.Errorf("%w: %q", ErrInvalidSport, name)
	}
	return s, nil
}
