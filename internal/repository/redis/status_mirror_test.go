package repository

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen2104/virtual-queue/internal/domain"
	"github.com/tdnguyen2104/virtual-queue/pkg/logger"
	"github.com/tdnguyen2104/virtual-queue/pkg/util"
)

func setupMirror() (StatusMirror, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	mirror := NewRedisStatusMirror(db, logger.InitializeTestZapLogger())
	return mirror, mock
}

func TestStatusMirror_MirrorStatus(t *testing.T) {
	mirror, mock := setupMirror()

	statuses := []domain.ServiceStatus{
		{
			ServiceID:         "doctor",
			DisplayName:       "Doctor Consultation",
			Waiting:           2,
			Served:            1,
			BookedTotal:       3,
			Capacity:          4,
			AvgServiceMinutes: 12,
			EstWaitNewUser:    24,
		},
	}

	mock.ExpectHSet("virtualqueue:status:doctor",
		"waiting", 2,
		"served", 1,
		"booked_total", 3,
		"capacity", 4,
		"avg_service_minutes", 12,
		"est_wait_new_user", 24,
	).SetVal(6)

	err := mirror.MirrorStatus(context.Background(), statuses)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusMirror_MirrorBooking(t *testing.T) {
	mirror, mock := setupMirror()

	createdAt := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	b := domain.Booking{
		ID:                   "b-1",
		Token:                "DOCTOR-001",
		UserName:             "Asha",
		ServiceID:            "doctor",
		EstimatedWaitMinutes: 0,
		CreatedAt:            createdAt,
	}

	mock.ExpectHSet("virtualqueue:booking:DOCTOR-001",
		"id", "b-1",
		"user_name", "Asha",
		"service_id", "doctor",
		"estimated_wait_minutes", 0,
		"created_at", util.TimeToISO8601Str(createdAt),
	).SetVal(5)

	err := mirror.MirrorBooking(context.Background(), b)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusMirror_Clear(t *testing.T) {
	mirror, mock := setupMirror()

	mock.ExpectDel("virtualqueue:status:cashier", "virtualqueue:status:doctor").SetVal(2)

	err := mirror.Clear(context.Background(), []string{"cashier", "doctor"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusMirror_ClearEmpty(t *testing.T) {
	mirror, mock := setupMirror()

	err := mirror.Clear(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
