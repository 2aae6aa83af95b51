package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sitiket/tiketops/internal/domain"
)

const insertProgressQuery = `
	INSERT INTO progress_updates (
		id, ticket_id, ts, source, message, status_after_update,
		created_by, attachments
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const listProgressQuery = `
	SELECT id, ticket_id, ts, source, message, status_after_update,
	       created_by, attachments
	FROM progress_updates
	WHERE ticket_id = $1
	ORDER BY ts DESC`

type ProgressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

func (r *ProgressRepository) Append(ctx context.Context, u *domain.ProgressUpdate) error {
	_, err := r.pool.Exec(ctx, insertProgressQuery,
		u.ID, u.TicketID, u.Timestamp, u.Source, u.Message,
		u.StatusAfterUpdate, u.CreatedBy, u.Attachments,
	)
	if err != nil {
		return fmt.Errorf("insert progress update: %w", err)
	}
	return nil
}

// ListByTicket returns a ticket's updates, newest first.
func (r *ProgressRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ProgressUpdate, error) {
	rows, err := r.pool.Query(ctx, listProgressQuery, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list progress updates: %w", err)
	}
	defer rows.Close()

	var updates []domain.ProgressUpdate
	for rows.Next() {
		var u domain.ProgressUpdate
		if err := rows.Scan(
			&u.ID, &u.TicketID, &u.Timestamp, &u.Source, &u.Message,
			&u.StatusAfterUpdate, &u.CreatedBy, &u.Attachments,
		); err != nil {
			return nil, fmt.Errorf("scan progress update: %w", err)
		}
		updates = append(updates, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress updates: %w", err)
	}
	return updates, nil
}
