package sports

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
)

type staticSource struct {
	sports []models.Sport
	err    error
}

func (s staticSource) ListSports(ctx context.Context) ([]models.Sport, error) {
	return s.sports, s.err
}

func loadedCatalog(t *testing.T, sports ...models.Sport) *Catalog {
	t.Helper()
	c := NewCatalog(staticSource{sports: sports})
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestCatalogLookups(t *testing.T) {
	soccer := models.Sport{ID: uuid.New(), Name: "Soccer"}
	hockey := models.Sport{ID: uuid.New(), Name: "Hockey"}
	c := loadedCatalog(t, hockey, soccer)

	got, err := c.GetByName("soccer")
	if err != nil || got.ID != soccer.ID {
		t.Fatalf("GetByName(soccer) = %v, %v", got, err)
	}
	got, err = c.GetByID(hockey.ID)
	if err != nil || got.Name != "Hockey" {
		t.Fatalf("GetByID(hockey) = %v, %v", got, err)
	}
	if len(c.All()) != 2 {
		t.Errorf("All() = %d sports, want 2", len(c.All()))
	}
}

func TestCatalogUnknownSport(t *testing.T) {
	c := loadedCatalog(t, models.Sport{ID: uuid.New(), Name: "Soccer"})

	if _, err := c.GetByName("Quidditch"); !errors.Is(err, ErrInvalidSport) {
		t.Errorf("GetByName unknown: got %v, want ErrInvalidSport", err)
	}
	if _, err := c.GetByID(uuid.New()); !errors.Is(err, ErrInvalidSport) {
		t.Errorf("GetByID unknown: got %v, want ErrInvalidSport", err)
	}
}

func TestCatalogLoadError(t *testing.T) {
	c := NewCatalog(staticSource{err: errors.New("boom")})
	if err := c.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
}
