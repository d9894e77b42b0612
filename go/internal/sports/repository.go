package sports

import (
	"context"
	"fmt"

	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/mcdev12/teamtango/go/internal/sqlutil"
)

const listSportsSQL = `SELECT id, name FROM sports ORDER BY name`

// Repository reads the sports table
type Repository struct {
	db sqlutil.DBTX
}

// NewRepository creates a new sports repository
func NewRepository(db sqlutil.DBTX) *Repository {
	return &Repository{
		db: db,
	}
}

// ListSports returns every sport ordered by name
func (r *Repository) ListSports(ctx context.Context) ([]models.Sport, error) {
	rows, err := r.db.Query(ctx, listSportsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	defer rows.Close()

	var sports []models.Sport
	for rows.Next() {
		var s models.Sport
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan sport: %w", err)
		}
		sports = append(sports, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	return sports, nil
}
