package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen2104/virtual-queue/internal/domain"
	apperrors "github.com/tdnguyen2104/virtual-queue/internal/errors"
)

func newTestManager() *Manager {
	return NewManager([]domain.ServiceConfig{
		{ID: "cashier", DisplayName: "Cashier", DailyCapacity: 5, AvgServiceMinutes: 4},
		{ID: "doctor", DisplayName: "Doctor Consultation", DailyCapacity: 2, AvgServiceMinutes: 10},
	})
}

func TestManager_BookUntilCapacity(t *testing.T) {
	mgr := newTestManager()

	b, err := mgr.BookSlot("Asha", "doctor")
	require.NoError(t, err)
	assert.Equal(t, "DOCTOR-001", b.Token)
	assert.Equal(t, 0, b.EstimatedWaitMinutes)

	b, err = mgr.BookSlot("Ben", "doctor")
	require.NoError(t, err)
	assert.Equal(t, "DOCTOR-002", b.Token)
	assert.Equal(t, 10, b.EstimatedWaitMinutes)

	_, err = mgr.BookSlot("Cara", "doctor")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)
	assert.Contains(t, err.Error(), "Doctor Consultation")
}

func TestManager_ServeInBookingOrder(t *testing.T) {
	mgr := newTestManager()

	_, err := mgr.BookSlot("Asha", "doctor")
	require.NoError(t, err)
	_, err = mgr.BookSlot("Ben", "doctor")
	require.NoError(t, err)

	served, err := mgr.MarkServed("doctor")
	require.NoError(t, err)
	assert.Equal(t, "Asha", served.UserName)

	served, err = mgr.MarkServed("doctor")
	require.NoError(t, err)
	assert.Equal(t, "Ben", served.UserName)

	_, err = mgr.MarkServed("doctor")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrQueueEmpty)
}

func TestManager_EmptyUserName(t *testing.T) {
	mgr := newTestManager()

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := mgr.BookSlot(name, "cashier")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrEmptyUserName)
	}

	status := mgr.QueueStatus()
	assert.Equal(t, 0, status[0].BookedTotal)
	assert.Len(t, mgr.History(), 1)
}

func TestManager_UnknownService(t *testing.T) {
	mgr := newTestManager()

	_, err := mgr.BookSlot("Deep", "unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceNotFound)
	assert.Contains(t, err.Error(), `"unknown"`)

	_, err = mgr.MarkServed("unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceNotFound)

	assert.Len(t, mgr.History(), 1)
}

func TestManager_TrimsUserName(t *testing.T) {
	mgr := newTestManager()

	b, err := mgr.BookSlot("  Asha  ", "cashier")
	require.NoError(t, err)
	assert.Equal(t, "Asha", b.UserName)
}

func TestManager_FreshStatus(t *testing.T) {
	mgr := NewManager([]domain.ServiceConfig{
		{ID: "consult", DisplayName: "General Consultation", DailyCapacity: 5, AvgServiceMinutes: 4},
	})

	status := mgr.QueueStatus()
	require.Len(t, status, 1)
	assert.Equal(t, 0, status[0].Waiting)
	assert.Equal(t, 0, status[0].Served)
	assert.Equal(t, 0, status[0].BookedTotal)
	assert.Equal(t, 5, status[0].Capacity)
	assert.Equal(t, 0, status[0].EstWaitNewUser)

	assert.Len(t, mgr.History(), 1)
	assert.Equal(t, domain.Snapshot{"consult": 0}, mgr.History()[0])
}

func TestManager_HistoryAppendOnly(t *testing.T) {
	mgr := newTestManager()
	require.Len(t, mgr.History(), 1)

	_, err := mgr.BookSlot("Asha", "doctor")
	require.NoError(t, err)
	assert.Len(t, mgr.History(), 2)

	// Failed operations never append.
	_, err = mgr.BookSlot("Ben", "unknown")
	require.Error(t, err)
	_, err = mgr.BookSlot("", "doctor")
	require.Error(t, err)
	_, err = mgr.MarkServed("cashier")
	require.Error(t, err)
	assert.Len(t, mgr.History(), 2)

	_, err = mgr.MarkServed("doctor")
	require.NoError(t, err)

	history := mgr.History()
	require.Len(t, history, 3)
	assert.Equal(t, 0, history[0]["doctor"])
	assert.Equal(t, 1, history[1]["doctor"])
	assert.Equal(t, 0, history[2]["doctor"])
	assert.Equal(t, 0, history[1]["cashier"])
}

func TestManager_ListServicesConfigurationOrder(t *testing.T) {
	mgr := NewManager([]domain.ServiceConfig{
		{ID: "c", DisplayName: "C", DailyCapacity: 1, AvgServiceMinutes: 1},
		{ID: "a", DisplayName: "A", DailyCapacity: 1, AvgServiceMinutes: 1},
		{ID: "b", DisplayName: "B", DailyCapacity: 1, AvgServiceMinutes: 1},
	})

	infos := mgr.ListServices()
	require.Len(t, infos, 3)
	assert.Equal(t, "c", infos[0].ID)
	assert.Equal(t, "a", infos[1].ID)
	assert.Equal(t, "b", infos[2].ID)
}

func TestManager_DuplicateServiceIDLastWins(t *testing.T) {
	mgr := NewManager([]domain.ServiceConfig{
		{ID: "doctor", DisplayName: "Old Doctor", DailyCapacity: 1, AvgServiceMinutes: 1},
		{ID: "doctor", DisplayName: "New Doctor", DailyCapacity: 7, AvgServiceMinutes: 3},
	})

	infos := mgr.ListServices()
	require.Len(t, infos, 1)
	assert.Equal(t, "New Doctor", infos[0].DisplayName)
	assert.Equal(t, 7, infos[0].DailyCapacity)
}

func TestManager_LookupBookingSurvivesServe(t *testing.T) {
	mgr := newTestManager()

	b, err := mgr.BookSlot("Asha", "doctor")
	require.NoError(t, err)

	_, err = mgr.MarkServed("doctor")
	require.NoError(t, err)

	found, ok := mgr.LookupBooking(b.Token)
	require.True(t, ok)
	assert.Equal(t, b.Token, found.Token)
	assert.Equal(t, "Asha", found.UserName)

	_, ok = mgr.LookupBooking("DOCTOR-999")
	assert.False(t, ok)
}

func TestManager_HistoryGraph(t *testing.T) {
	mgr := newTestManager()

	_, err := mgr.BookSlot("Asha", "doctor")
	require.NoError(t, err)
	_, err = mgr.BookSlot("Ben", "doctor")
	require.NoError(t, err)

	graph := mgr.HistoryGraph()
	assert.Contains(t, graph, "Queue Length vs Event (ASCII graph)")
	assert.Contains(t, graph, "Doctor Consultation [doctor]")
	assert.Contains(t, graph, "Cashier [cashier]")
	assert.Contains(t, graph, "event 00:  (0)")
	assert.Contains(t, graph, "event 01: # (1)")
	assert.Contains(t, graph, "event 02: ## (2)")
}

func TestManager_StatusRows(t *testing.T) {
	mgr := newTestManager()

	_, err := mgr.BookSlot("Asha", "doctor")
	require.NoError(t, err)

	rows := mgr.StatusRows()
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0], "cashier")
	assert.Contains(t, rows[1], "doctor")
	assert.Contains(t, rows[1], "waiting=1")
	assert.Contains(t, rows[1], "est_wait_new=10m")
}
