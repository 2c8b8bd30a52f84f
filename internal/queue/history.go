package queue

import (
	"fmt"
	"strings"
)

// HistoryGraph renders the snapshot log as a per-service text graph, one bar
// per event (bar length = waiting count at that event). Read-only.
func (m *Manager) HistoryGraph() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder
	b.WriteString("Queue Length vs Event (ASCII graph)")

	for _, id := range m.order {
		svc := m.services[id]
		fmt.Fprintf(&b, "\n\n%s [%s]", svc.displayName, svc.id)
		for i, snapshot := range m.history {
			qLen := snapshot[id]
			fmt.Fprintf(&b, "\nevent %02d: %s (%d)", i, strings.Repeat("#", qLen), qLen)
		}
	}

	return b.String()
}

// StatusRows renders one aligned text row per service for console output.
func (m *Manager) StatusRows() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]string, 0, len(m.order))
	for _, id := range m.order {
		s := m.services[id]
		rows = append(rows, fmt.Sprintf(
			"%-12s | waiting=%-3d | served=%-3d | booked=%-3d/%-3d | avg=%dm | est_wait_new=%dm",
			s.id, s.PeopleWaiting(), s.servedCount, s.totalBookings, s.dailyCapacity,
			s.avgServiceMinutes, s.EstimateWaitMinutes(),
		))
	}
	return rows
}
