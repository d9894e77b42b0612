package messages

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/sqlutil"
)

type Repository struct {
	db sqlutil.DBTX
}

func NewRepository(db sqlutil.DBTX) *Repository {
	return &Repository{db: db}
}

// UnreadCounts returns the number of unread messages received by each team.
// Teams with none are absent from the map.
func (r *Repository) UnreadCounts(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(teamIDs))
	if len(teamIDs) == 0 {
		return counts, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT receiver_team_id, count(*)
		FROM team_messages
		WHERE receiver_team_id = ANY($1::uuid[])
		  AND is_read = false
		GROUP BY receiver_team_id`, sqlutil.UUIDStrings(teamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			teamID uuid.UUID
			n      int
		)
		if err := rows.Scan(&teamID, &n); err != nil {
			return nil, fmt.Errorf("failed to scan unread count: %w", err)
		}
		counts[teamID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return counts, nil
}
