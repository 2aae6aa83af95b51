package observability

import "sync"

// Metrics keeps coarse in-memory counters exposed on the health
// endpoint. Not a metrics backend, just enough for a liveness glance.
type Metrics struct {
	mu               sync.Mutex
	requestsTotal    int64
	requestErrors    int64
	ticketsImported  int64
	alertsDispatched int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) IncRequests() {
	m.mu.Lock()
	m.requestsTotal++
	m.mu.Unlock()
}

func (m *Metrics) IncRequestErrors() {
	m.mu.Lock()
	m.requestErrors++
	m.mu.Unlock()
}

func (m *Metrics) IncTicketsImported() {
	m.mu.Lock()
	m.ticketsImported++
	m.mu.Unlock()
}

func (m *Metrics) IncAlertsDispatched() {
	m.mu.Lock()
	m.alertsDispatched++
	m.mu.Unlock()
}

// Snapshot returns a copy of the counters for serialization.
func (m *Metrics) Snapshot() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int64{
		"requests_total":    m.requestsTotal,
		"request_errors":    m.requestErrors,
		"tickets_imported":  m.ticketsImported,
		"alerts_dispatched": m.alertsDispatched,
	}
}
