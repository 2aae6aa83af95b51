// Package repository contains the Postgres data access layer.
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sitiket/tiketops/internal/domain"
)

const ticketColumns = `
	id, provider, inc_numbers, tiket_tacc, induk_gamas, kategori,
	jarak_km_range, site_code, site_name, network_element, lokasi_text,
	latitude, longitude, jam_open, ttr_target_hours, max_jam_close,
	sisa_ttr_hours, ttr_real_hours, ttr_compliance, status,
	assigned_to, assigned_at, assigned_by, teknisi_list, penyebab,
	segmen, is_permanent, permanent_notes, created_by_admin,
	created_at, updated_at`

const insertTicketQuery = `
	INSERT INTO tickets (
		id, provider, inc_numbers, tiket_tacc, induk_gamas, kategori,
		jarak_km_range, site_code, site_name, network_element, lokasi_text,
		latitude, longitude, jam_open, ttr_target_hours, max_jam_close,
		sisa_ttr_hours, ttr_real_hours, ttr_compliance, status,
		assigned_to, assigned_at, assigned_by, teknisi_list, penyebab,
		segmen, is_permanent, permanent_notes, created_by_admin,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
		$29, $30, $31
	)`

const updateTicketQuery = `
	UPDATE tickets SET
		provider = $2, inc_numbers = $3, tiket_tacc = $4, induk_gamas = $5,
		kategori = $6, jarak_km_range = $7, site_code = $8, site_name = $9,
		network_element = $10, lokasi_text = $11, latitude = $12,
		longitude = $13, jam_open = $14, ttr_target_hours = $15,
		max_jam_close = $16, sisa_ttr_hours = $17, ttr_real_hours = $18,
		ttr_compliance = $19, status = $20, assigned_to = $21,
		assigned_at = $22, assigned_by = $23, teknisi_list = $24,
		penyebab = $25, segmen = $26, is_permanent = $27,
		permanent_notes = $28, updated_at = $29
	WHERE id = $1`

// TicketFilter narrows a listing at the database level. Fine-grained
// search and sorting happen in memory afterwards.
type TicketFilter struct {
	Status   string
	Kategori string
	From     *time.Time
	To       *time.Time
}

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	_, err := r.pool.Exec(ctx, insertTicketQuery,
		t.ID, t.Provider, t.IncNumbers, t.TiketTacc, t.IndukGamas,
		t.Kategori, t.JarakKmRange, t.SiteCode, t.SiteName,
		t.NetworkElement, t.LokasiText, t.Latitude, t.Longitude,
		t.JamOpen, t.TTRTargetHours, t.MaxJamClose, t.SisaTtrHours,
		t.TTRRealHours, t.TTRCompliance, t.Status, t.AssignedTo,
		t.AssignedAt, t.AssignedBy, t.TeknisiList, t.Penyebab, t.Segmen,
		t.IsPermanent, t.PermanentNotes, t.CreatedByAdmin, t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) Update(ctx context.Context, t *domain.Ticket) error {
	_, err := r.pool.Exec(ctx, updateTicketQuery,
		t.ID, t.Provider, t.IncNumbers, t.TiketTacc, t.IndukGamas,
		t.Kategori, t.JarakKmRange, t.SiteCode, t.SiteName,
		t.NetworkElement, t.LokasiText, t.Latitude, t.Longitude,
		t.JamOpen, t.TTRTargetHours, t.MaxJamClose, t.SisaTtrHours,
		t.TTRRealHours, t.TTRCompliance, t.Status, t.AssignedTo,
		t.AssignedAt, t.AssignedBy, t.TeknisiList, t.Penyebab, t.Segmen,
		t.IsPermanent, t.PermanentNotes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT` + ticketColumns + ` FROM tickets WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTicket(row)
}

// List fetches tickets matching the coarse filter, newest first. The
// date bounds widen to whole days so the result stays a superset of the
// in-memory filter's day-inclusive range.
func (r *TicketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	var (
		clauses []string
		args    []any
	)
	addClause := func(condition string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(condition, len(args)))
	}

	if filter.Status != "" {
		addClause("status = $%d", filter.Status)
	}
	if filter.Kategori != "" {
		addClause("kategori = $%d", filter.Kategori)
	}
	lower, upper := dateBounds(filter.From, filter.To)
	if lower != nil {
		addClause("jam_open >= $%d", *lower)
	}
	if upper != nil {
		addClause("jam_open < $%d", *upper)
	}

	query := `SELECT` + ticketColumns + ` FROM tickets`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY jam_open DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListOpen fetches every ticket not yet closed, for alert sweeps.
func (r *TicketRepository) ListOpen(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT` + ticketColumns + ` FROM tickets WHERE status <> $1`
	rows, err := r.pool.Query(ctx, query, domain.StatusClosed)
	if err != nil {
		return nil, fmt.Errorf("list open tickets: %w", err)
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// dateBounds converts jamOpen range endpoints to whole-day SQL bounds:
// inclusive from the start of the from-day, exclusive before the start
// of the day after the to-day. Any time component on the inputs is
// discarded, matching the day-granular dashboard filter.
func dateBounds(from, to *time.Time) (lower, upper *time.Time) {
	if from != nil {
		l := startOfDay(*from)
		lower = &l
	}
	if to != nil {
		u := startOfDay(*to).AddDate(0, 0, 1)
		upper = &u
	}
	return lower, upper
}

func startOfDay(ts time.Time) time.Time {
	year, month, day := ts.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, ts.Location())
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID, &t.Provider, &t.IncNumbers, &t.TiketTacc, &t.IndukGamas,
		&t.Kategori, &t.JarakKmRange, &t.SiteCode, &t.SiteName,
		&t.NetworkElement, &t.LokasiText, &t.Latitude, &t.Longitude,
		&t.JamOpen, &t.TTRTargetHours, &t.MaxJamClose, &t.SisaTtrHours,
		&t.TTRRealHours, &t.TTRCompliance, &t.Status, &t.AssignedTo,
		&t.AssignedAt, &t.AssignedBy, &t.TeknisiList, &t.Penyebab,
		&t.Segmen, &t.IsPermanent, &t.PermanentNotes, &t.CreatedByAdmin,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var tickets []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}
	return tickets, nil
}
