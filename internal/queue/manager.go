package queue

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tdnguyen2104/virtual-queue/internal/domain"
	apperrors "github.com/tdnguyen2104/virtual-queue/internal/errors"
)

// Manager owns a fixed set of named ServiceQueues, a global token index and
// an append-only history of queue-length snapshots. All state lives in memory
// and is scoped to one Manager instance; reset means discard and reconstruct.
//
// A single coarse lock guards every state-changing operation so that token
// issuance stays unique and history ordering stays monotonic when the manager
// is shared between callers. Read-only queries take the shared side.
type Manager struct {
	mu sync.RWMutex

	services map[string]*ServiceQueue
	order    []string

	// bookingIndex grows monotonically; served bookings are never removed.
	// This is an accepted tradeoff: the index doubles as an audit trail.
	bookingIndex map[string]domain.Booking

	history []domain.Snapshot
}

// NewManager builds one ServiceQueue per config, keyed by service id, in the
// given order. Duplicate ids: last one wins. The initial empty state is
// recorded as history event 0.
func NewManager(configs []domain.ServiceConfig) *Manager {
	m := &Manager{
		services:     make(map[string]*ServiceQueue, len(configs)),
		bookingIndex: make(map[string]domain.Booking),
	}

	for _, cfg := range configs {
		if _, exists := m.services[cfg.ID]; !exists {
			m.order = append(m.order, cfg.ID)
		}
		m.services[cfg.ID] = newServiceQueue(cfg)
	}

	m.recordHistory()

	return m
}

// recordHistory appends one snapshot of all waiting counts. Caller must hold
// the write lock (or have exclusive access during construction).
func (m *Manager) recordHistory() {
	snapshot := make(domain.Snapshot, len(m.services))
	for id, svc := range m.services {
		snapshot[id] = svc.PeopleWaiting()
	}
	m.history = append(m.history, snapshot)
}

// BookSlot admits a user to a service's waiting line and returns the created
// booking. On failure the returned error wraps one of ErrServiceNotFound,
// ErrEmptyUserName or ErrCapacityExceeded and no state changes.
func (m *Manager) BookSlot(userName, serviceID string) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	svc, ok := m.services[serviceID]
	if !ok {
		return domain.Booking{}, fmt.Errorf("invalid service id %q: %w", serviceID, apperrors.ErrServiceNotFound)
	}

	userName = strings.TrimSpace(userName)
	if userName == "" {
		return domain.Booking{}, apperrors.ErrEmptyUserName
	}

	b := svc.createBooking(userName)
	if b == nil {
		return domain.Booking{}, fmt.Errorf("service %q: %w", svc.displayName, apperrors.ErrCapacityExceeded)
	}

	m.bookingIndex[b.Token] = *b
	m.recordHistory()

	return *b, nil
}

// MarkServed removes and returns the front booking of a service's waiting
// line. On failure the returned error wraps ErrServiceNotFound or
// ErrQueueEmpty and no state changes.
func (m *Manager) MarkServed(serviceID string) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	svc, ok := m.services[serviceID]
	if !ok {
		return domain.Booking{}, fmt.Errorf("invalid service id %q: %w", serviceID, apperrors.ErrServiceNotFound)
	}

	served := svc.markNextServed()
	if served == nil {
		return domain.Booking{}, fmt.Errorf("service %q: %w", svc.displayName, apperrors.ErrQueueEmpty)
	}

	m.recordHistory()

	return *served, nil
}

// ListServices returns the configured services in configuration order.
func (m *Manager) ListServices() []domain.ServiceInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]domain.ServiceInfo, 0, len(m.order))
	for _, id := range m.order {
		infos = append(infos, m.services[id].info())
	}
	return infos
}

// QueueStatus returns a live per-service summary in configuration order.
func (m *Manager) QueueStatus() []domain.ServiceStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statuses := make([]domain.ServiceStatus, 0, len(m.order))
	for _, id := range m.order {
		statuses = append(statuses, m.services[id].status())
	}
	return statuses
}

// LookupBooking finds a booking by token. Served bookings remain findable.
func (m *Manager) LookupBooking(token string) (domain.Booking, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookingIndex[token]
	return b, ok
}

// History returns a copy of the snapshot log. Index 0 is the initial empty
// state; every successful booking or serve appends exactly one entry.
func (m *Manager) History() []domain.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Snapshot, len(m.history))
	for i, snap := range m.history {
		cp := make(domain.Snapshot, len(snap))
		for id, n := range snap {
			cp[id] = n
		}
		out[i] = cp
	}
	return out
}
