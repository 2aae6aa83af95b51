package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/query"
	"github.com/sitiket/tiketops/internal/report"
	"github.com/sitiket/tiketops/internal/repository"
	apperrors "github.com/sitiket/tiketops/pkg/util/errorutil"
)

// ReportDependencies bundles the collaborators of ReportService.
type ReportDependencies struct {
	Tickets *repository.TicketRepository
	Logger  *zap.Logger
	Now     func() time.Time
}

type ReportService struct {
	deps ReportDependencies
}

func NewReportService(deps ReportDependencies) *ReportService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &ReportService{deps: deps}
}

func (s *ReportService) fetch(ctx context.Context, criteria query.Criteria) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{
		From: criteria.DateFrom,
		To:   criteria.DateTo,
	}
	if criteria.Status != "" && criteria.Status != query.All {
		filter.Status = criteria.Status
	}
	tickets, err := s.deps.Tickets.List(ctx, filter)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}
	return query.Filter(tickets, criteria), nil
}

// ByCategory aggregates the matching tickets per kategori.
func (s *ReportService) ByCategory(ctx context.Context, criteria query.Criteria) (map[string]report.CategorySummary, error) {
	tickets, err := s.fetch(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return report.ByCategory(tickets, s.deps.Now()), nil
}

// ByDay produces the zero-filled daily series for the range.
func (s *ReportService) ByDay(ctx context.Context, criteria query.Criteria, from, to time.Time) ([]report.DailyCount, error) {
	tickets, err := s.fetch(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return report.ByDay(tickets, from, to), nil
}

// ExportCSV renders the full-detail export for the matching tickets.
func (s *ReportService) ExportCSV(ctx context.Context, criteria query.Criteria) (string, error) {
	tickets, err := s.fetch(ctx, criteria)
	if err != nil {
		return "", err
	}
	s.deps.Logger.Info("csv export generated", zap.Int("tickets", len(tickets)))
	return report.FullExportCSV(tickets, s.deps.Now()), nil
}

// ExportSummaryCSV renders the per-kategori summary export.
func (s *ReportService) ExportSummaryCSV(ctx context.Context, criteria query.Criteria) (string, error) {
	byCategory, err := s.ByCategory(ctx, criteria)
	if err != nil {
		return "", err
	}
	return report.SummaryExportCSV(byCategory), nil
}
