package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sitiket/tiketops/internal/query"
	"github.com/sitiket/tiketops/internal/service"
	apperrors "github.com/sitiket/tiketops/pkg/util/errorutil"
)

// ReportsHandler exposes the aggregation and export endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

func criteriaFromQuery(c *fiber.Ctx) query.Criteria {
	criteria := query.Criteria{
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		Compliance:   c.Query("compliance"),
		Kategori:     c.Query("kategori"),
		JarakKmRange: c.Query("jarak"),
	}
	if from, ok := parseTime(c.Query("from")); ok {
		criteria.DateFrom = &from
	}
	if to, ok := parseTime(c.Query("to")); ok {
		criteria.DateTo = &to
	}
	return criteria
}

// ByCategory returns the per-kategori summary counts.
func (h *ReportsHandler) ByCategory(c *fiber.Ctx) error {
	summary, err := h.reports.ByCategory(c.UserContext(), criteriaFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// ByDay returns the daily series for an explicit date range.
func (h *ReportsHandler) ByDay(c *fiber.Ctx) error {
	from, okFrom := parseTime(c.Query("from"))
	to, okTo := parseTime(c.Query("to"))
	if !okFrom || !okTo {
		return apperrors.Invalid("from and to are required", nil)
	}

	criteria := criteriaFromQuery(c)
	series, err := h.reports.ByDay(c.UserContext(), criteria, from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": series})
}

// ExportCSV streams the full-detail export.
func (h *ReportsHandler) ExportCSV(c *fiber.Ctx) error {
	csvBody, err := h.reports.ExportCSV(c.UserContext(), criteriaFromQuery(c))
	if err != nil {
		return err
	}
	return sendCSV(c, "tickets", csvBody)
}

// ExportSummaryCSV streams the per-kategori summary export.
func (h *ReportsHandler) ExportSummaryCSV(c *fiber.Ctx) error {
	csvBody, err := h.reports.ExportSummaryCSV(c.UserContext(), criteriaFromQuery(c))
	if err != nil {
		return err
	}
	return sendCSV(c, "tickets-summary", csvBody)
}

func sendCSV(c *fiber.Ctx, name, body string) error {
	filename := name + "-" + time.Now().Format("20060102-150405") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(body)
}
