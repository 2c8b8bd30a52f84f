package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tdnguyen2104/virtual-queue/internal/domain"
	"github.com/tdnguyen2104/virtual-queue/pkg/logger"
	"github.com/tdnguyen2104/virtual-queue/pkg/util"
)

// StatusMirror pushes queue state to an external store for dashboards. The
// engine never reads it back: all authoritative state stays in memory, so a
// restart starts from an empty manager regardless of what the mirror holds.
type StatusMirror interface {
	MirrorStatus(ctx context.Context, statuses []domain.ServiceStatus) error
	MirrorBooking(ctx context.Context, b domain.Booking) error
	Clear(ctx context.Context, serviceIDs []string) error
}

type redisStatusMirror struct {
	cli *redis.Client
	l   logger.Logger
}

func NewRedisStatusMirror(cli *redis.Client, l logger.Logger) StatusMirror {
	return &redisStatusMirror{
		cli: cli,
		l:   l,
	}
}

func (r *redisStatusMirror) statusKey(serviceID string) string {
	return fmt.Sprintf("virtualqueue:status:%s", serviceID)
}

func (r *redisStatusMirror) bookingKey(token string) string {
	return fmt.Sprintf("virtualqueue:booking:%s", token)
}

func (r *redisStatusMirror) MirrorStatus(ctx context.Context, statuses []domain.ServiceStatus) error {
	for _, s := range statuses {
		// Fields are listed explicitly to keep the wire order stable.
		if err := r.cli.HSet(ctx, r.statusKey(s.ServiceID),
			"waiting", s.Waiting,
			"served", s.Served,
			"booked_total", s.BookedTotal,
			"capacity", s.Capacity,
			"avg_service_minutes", s.AvgServiceMinutes,
			"est_wait_new_user", s.EstWaitNewUser,
		).Err(); err != nil {
			r.l.Errorf(ctx, "redisStatusMirror.MirrorStatus: %v", err)
			return err
		}
	}

	return nil
}

func (r *redisStatusMirror) MirrorBooking(ctx context.Context, b domain.Booking) error {
	if err := r.cli.HSet(ctx, r.bookingKey(b.Token),
		"id", b.ID,
		"user_name", b.UserName,
		"service_id", b.ServiceID,
		"estimated_wait_minutes", b.EstimatedWaitMinutes,
		"created_at", util.TimeToISO8601Str(b.CreatedAt),
	).Err(); err != nil {
		r.l.Errorf(ctx, "redisStatusMirror.MirrorBooking: %v", err)
		return err
	}

	return nil
}

// Clear drops the mirrored status hashes. Booking records are kept: the
// mirror follows the engine's never-remove audit semantics.
func (r *redisStatusMirror) Clear(ctx context.Context, serviceIDs []string) error {
	keys := make([]string, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		keys = append(keys, r.statusKey(id))
	}

	if len(keys) == 0 {
		return nil
	}

	if err := r.cli.Del(ctx, keys...).Err(); err != nil {
		r.l.Errorf(ctx, "redisStatusMirror.Clear: %v", err)
		return err
	}

	return nil
}
