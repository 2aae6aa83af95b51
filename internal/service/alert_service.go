package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sitiket/tiketops/internal/domain"
	"github.com/sitiket/tiketops/internal/events"
	"github.com/sitiket/tiketops/internal/observability"
	"github.com/sitiket/tiketops/internal/repository"
	"github.com/sitiket/tiketops/internal/settings"
	"github.com/sitiket/tiketops/internal/ttr"
)

// AlertDependencies bundles the collaborators of AlertService.
type AlertDependencies struct {
	Tickets    *repository.TicketRepository
	Settings   *settings.Store
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Now        func() time.Time
}

// AlertService watches live tickets for SLA breaches, approaching
// deadlines and stale progress. Alerts are currently emitted as
// structured log lines; a push channel can subscribe to the dispatcher.
type AlertService struct {
	deps AlertDependencies

	mu    sync.Mutex
	fired map[string]struct{}
}

func NewAlertService(deps AlertDependencies) *AlertService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &AlertService{deps: deps, fired: make(map[string]struct{})}
}

// RegisterHandlers subscribes the service to ticket lifecycle events so
// closed tickets stop alerting immediately.
func (s *AlertService) RegisterHandlers() {
	s.deps.Dispatcher.Subscribe(events.TicketClosed, func(_ context.Context, ev events.Event) error {
		if t, ok := ev.Payload.(*domain.Ticket); ok {
			s.clearTicket(t.ID)
		}
		return nil
	})
	s.deps.Dispatcher.Subscribe(events.TicketProgressAdded, func(_ context.Context, ev events.Event) error {
		if t, ok := ev.Payload.(*domain.Ticket); ok {
			s.clear(t.ID, "no_update")
		}
		return nil
	})
}

// Scan sweeps the live tickets once. Closed tickets never alert.
func (s *AlertService) Scan(ctx context.Context) error {
	tickets, err := s.deps.Tickets.ListOpen(ctx)
	if err != nil {
		return err
	}

	now := s.deps.Now()
	thresholds := s.deps.Settings.Settings().TTRThresholds
	staleAfter := time.Duration(thresholds.NoUpdateAlertMinutes) * time.Minute

	for i := range tickets {
		t := &tickets[i]
		remaining := ttr.RemainingHours(t, now)

		switch {
		case ttr.Classify(remaining, thresholds) == ttr.SeverityOverdue:
			s.fire(t, "overdue", remaining)
		case ttr.IsDueSoon(remaining, thresholds):
			s.fire(t, "due_soon", remaining)
		}

		if staleAfter > 0 && now.Sub(t.UpdatedAt) >= staleAfter {
			s.fire(t, "no_update", remaining)
		}
	}
	return nil
}

// fire emits an alert once per ticket and kind until cleared.
func (s *AlertService) fire(t *domain.Ticket, kind string, remaining float64) {
	key := alertKey(t.ID, kind)
	s.mu.Lock()
	if _, seen := s.fired[key]; seen {
		s.mu.Unlock()
		return
	}
	s.fired[key] = struct{}{}
	s.mu.Unlock()

	s.deps.Metrics.IncAlertsDispatched()
	s.deps.Logger.Warn("ticket alert",
		zap.String("kind", kind),
		zap.String("ticket_id", t.ID),
		zap.String("inc", t.PrimaryInc()),
		zap.String("site_code", t.SiteCode),
		zap.Float64("remaining_hours", remaining),
	)
}

func (s *AlertService) clear(ticketID, kind string) {
	s.mu.Lock()
	delete(s.fired, alertKey(ticketID, kind))
	s.mu.Unlock()
}

func (s *AlertService) clearTicket(ticketID string) {
	for _, kind := range []string{"overdue", "due_soon", "no_update"} {
		s.clear(ticketID, kind)
	}
}

func alertKey(ticketID, kind string) string {
	return fmt.Sprintf("%s:%s", ticketID, kind)
}
