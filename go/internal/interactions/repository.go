package interactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/mcdev12/teamtango/go/internal/sqlutil"
)

const (
	interactionColumns = `id, user_team_id, target_team_id, interaction_type, created_at, updated_at`

	listInteractionsSQL = `
		SELECT ` + interactionColumns + ` FROM team_interactions
		WHERE user_team_id = ANY($1::uuid[]) OR target_team_id = ANY($1::uuid[])
		ORDER BY created_at DESC`

	ownsTeamSQL = `SELECT EXISTS (SELECT 1 FROM teams WHERE id = $1 AND user_id = $2)`

	upsertInteractionSQL = `
		INSERT INTO team_interactions (id, user_team_id, target_team_id, interaction_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (user_team_id, target_team_id)
		DO UPDATE SET interaction_type = EXCLUDED.interaction_type, updated_at = EXCLUDED.updated_at
		RETURNING ` + interactionColumns

	deleteInteractionSQL = `
		DELETE FROM team_interactions ti
		USING teams t
		WHERE ti.user_team_id = $1 AND ti.target_team_id = $2
		  AND t.id = ti.user_team_id AND t.user_id = $3`

	listStatsSQL = `
		SELECT target_team_id, like_count, dislike_count, total_interactions
		FROM team_interaction_stats
		WHERE target_team_id = ANY($1::uuid[])`
)

// Repository persists interactions in Postgres
type Repository struct {
	db sqlutil.TxBeginner
	q  sqlutil.DBTX
}

// NewRepository creates a new interactions repository. pool is usually a *pgxpool.Pool.
func NewRepository(pool interface {
	sqlutil.TxBeginner
	sqlutil.DBTX
}) *Repository {
	return &Repository{
		db: pool,
		q:  pool,
	}
}

// ListInteractions returns interactions where any of the teams acts or is targeted
func (r *Repository) ListInteractions(ctx context.Context, teamIDs []uuid.UUID) ([]models.Interaction, error) {
	rows, err := r.q.Query(ctx, listInteractionsSQL, sqlutil.UUIDStrings(teamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	var out []models.Interaction
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		out = append(out, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	return out, nil
}

// UpsertInteraction writes the kind for the pair, creating or overwriting the
// single row. The acting team must belong to ownerID.
func (r *Repository) UpsertInteraction(ctx context.Context, ownerID uuid.UUID, pair Pair, kind models.InteractionKind, at time.Time) (*models.Interaction, error) {
	var result *models.Interaction
	err := sqlutil.Run(ctx, r.db, func(tx sqlutil.DBTX) error {
		var owned bool
		if err := tx.QueryRow(ctx, ownsTeamSQL, pair.Acting, ownerID).Scan(&owned); err != nil {
			return fmt.Errorf("failed to check team owner: %w", err)
		}
		if !owned {
			return ErrNotOwnTeam
		}

		i, err := scanInteraction(tx.QueryRow(ctx, upsertInteractionSQL, uuid.New(), pair.Acting, pair.Target, string(kind), at))
		if err != nil {
			return fmt.Errorf("failed to upsert interaction: %w", err)
		}
		result = i
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteInteraction removes the pair's interaction, guarded by the acting team's owner
func (r *Repository) DeleteInteraction(ctx context.Context, ownerID uuid.UUID, pair Pair) error {
	tag, err := r.q.Exec(ctx, deleteInteractionSQL, pair.Acting, pair.Target, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInteractionNotFound
	}
	return nil
}

// ListStats returns aggregate counts for the targeted teams
func (r *Repository) ListStats(ctx context.Context, teamIDs []uuid.UUID) ([]models.InteractionStats, error) {
	rows, err := r.q.Query(ctx, listStatsSQL, sqlutil.UUIDStrings(teamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list interaction stats: %w", err)
	}
	defer rows.Close()

	var out []models.InteractionStats
	for rows.Next() {
		var s models.InteractionStats
		if err := rows.Scan(&s.TargetTeamID, &s.LikeCount, &s.DislikeCount, &s.TotalInteractions); err != nil {
			return nil, fmt.Errorf("failed to scan interaction stats: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list interaction stats: %w", err)
	}
	return out, nil
}

func scanInteraction(row pgx.Row) (*models.Interaction, error) {
	var (
		i    models.Interaction
		kind string
	)
	if err := row.Scan(&i.ID, &i.UserTeamID, &i.TargetTeamID, &kind, &i.CreatedAt, &i.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInteractionNotFound
		}
		return nil, err
	}
	i.Kind = models.InteractionKind(kind)
	return &i, nil
}
