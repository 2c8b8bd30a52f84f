package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafka "github.com/tdnguyen2104/virtual-queue/internal/delivery/kafka"
	"github.com/tdnguyen2104/virtual-queue/internal/delivery/kafka/producer"
	"github.com/tdnguyen2104/virtual-queue/internal/domain"
	apperrors "github.com/tdnguyen2104/virtual-queue/internal/errors"
	"github.com/tdnguyen2104/virtual-queue/internal/monitoring"
	"github.com/tdnguyen2104/virtual-queue/internal/queue"
	repo "github.com/tdnguyen2104/virtual-queue/internal/repository/redis"
	"github.com/tdnguyen2104/virtual-queue/pkg/logger"
)

type BookingService interface {
	BookSlot(ctx context.Context, in BookSlotInput) (*BookSlotOutput, error)
	MarkServed(ctx context.Context, serviceID string) (*MarkServedOutput, error)
	ListServices(ctx context.Context) []domain.ServiceInfo
	QueueStatus(ctx context.Context) []domain.ServiceStatus
	GetBooking(ctx context.Context, token string) (domain.Booking, error)
	History(ctx context.Context) []domain.Snapshot
	HistoryGraph(ctx context.Context) string
	Reset(ctx context.Context) error
}

// bookingService wraps the in-memory queue manager with the outward-facing
// concerns: Kafka events, Prometheus metrics and the Redis status mirror.
// Event publishing and mirroring are best-effort; a failure there never
// fails the booking.
type bookingService struct {
	mu      sync.RWMutex // guards mgr swap on Reset
	mgr     *queue.Manager
	configs []domain.ServiceConfig
	prod    producer.Producer // nil disables event publishing
	mirror  repo.StatusMirror // nil disables mirroring
	l       logger.Logger
}

func NewBookingService(
	configs []domain.ServiceConfig,
	prod producer.Producer,
	mirror repo.StatusMirror,
	l logger.Logger,
) BookingService {
	return &bookingService{
		mgr:     queue.NewManager(configs),
		configs: configs,
		prod:    prod,
		mirror:  mirror,
		l:       l,
	}
}

func (s *bookingService) manager() *queue.Manager {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mgr
}

func (s *bookingService) BookSlot(ctx context.Context, in BookSlotInput) (*BookSlotOutput, error) {
	mgr := s.manager()

	b, err := mgr.BookSlot(in.UserName, in.ServiceID)
	if err != nil {
		monitoring.RecordBookingRejected(in.ServiceID, rejectReason(err))
		s.l.Warnf(ctx, "service.bookingService.BookSlot: %v", err)
		return nil, err
	}

	monitoring.RecordBooking(b.ServiceID)

	statuses := mgr.QueueStatus()
	monitoring.UpdateQueueGauges(statuses)

	position := waitingFor(statuses, b.ServiceID)

	if s.prod != nil {
		if err := s.prod.PublishBookingCreated(ctx, kafka.BookingCreatedEvent{
			BookingID:            b.ID,
			Token:                b.Token,
			UserName:             b.UserName,
			ServiceID:            b.ServiceID,
			Position:             position,
			EstimatedWaitMinutes: b.EstimatedWaitMinutes,
			BookedAt:             b.CreatedAt,
		}); err != nil {
			s.l.Errorf(ctx, "service.bookingService.BookSlot: publish booking created: %v", err)
		}
	}

	if s.mirror != nil {
		if err := s.mirror.MirrorBooking(ctx, b); err != nil {
			s.l.Errorf(ctx, "service.bookingService.BookSlot: mirror booking: %v", err)
		}
		if err := s.mirror.MirrorStatus(ctx, statuses); err != nil {
			s.l.Errorf(ctx, "service.bookingService.BookSlot: mirror status: %v", err)
		}
	}

	s.l.Infof(ctx, "Booking confirmed: token=%s service=%s position=%d", b.Token, b.ServiceID, position)

	return &BookSlotOutput{
		Booking:  b,
		Position: position,
		Message:  "Booking confirmed.",
	}, nil
}

func (s *bookingService) MarkServed(ctx context.Context, serviceID string) (*MarkServedOutput, error) {
	mgr := s.manager()

	b, err := mgr.MarkServed(serviceID)
	if err != nil {
		s.l.Warnf(ctx, "service.bookingService.MarkServed: %v", err)
		return nil, err
	}

	monitoring.RecordServed(b.ServiceID)

	statuses := mgr.QueueStatus()
	monitoring.UpdateQueueGauges(statuses)

	waiting := waitingFor(statuses, b.ServiceID)

	if s.prod != nil {
		if err := s.prod.PublishBookingServed(ctx, kafka.BookingServedEvent{
			BookingID: b.ID,
			Token:     b.Token,
			UserName:  b.UserName,
			ServiceID: b.ServiceID,
			Waiting:   waiting,
			ServedAt:  time.Now(),
		}); err != nil {
			s.l.Errorf(ctx, "service.bookingService.MarkServed: publish booking served: %v", err)
		}
	}

	if s.mirror != nil {
		if err := s.mirror.MirrorStatus(ctx, statuses); err != nil {
			s.l.Errorf(ctx, "service.bookingService.MarkServed: mirror status: %v", err)
		}
	}

	s.l.Infof(ctx, "Marked served: token=%s user=%s service=%s", b.Token, b.UserName, b.ServiceID)

	return &MarkServedOutput{
		Booking: b,
		Waiting: waiting,
		Message: fmt.Sprintf("Marked served: token %s (%s).", b.Token, b.UserName),
	}, nil
}

func (s *bookingService) ListServices(ctx context.Context) []domain.ServiceInfo {
	return s.manager().ListServices()
}

func (s *bookingService) QueueStatus(ctx context.Context) []domain.ServiceStatus {
	return s.manager().QueueStatus()
}

func (s *bookingService) GetBooking(ctx context.Context, token string) (domain.Booking, error) {
	b, ok := s.manager().LookupBooking(token)
	if !ok {
		return domain.Booking{}, fmt.Errorf("token %q: %w", token, apperrors.ErrBookingNotFound)
	}
	return b, nil
}

func (s *bookingService) History(ctx context.Context) []domain.Snapshot {
	return s.manager().History()
}

func (s *bookingService) HistoryGraph(ctx context.Context) string {
	return s.manager().HistoryGraph()
}

// Reset discards the manager and reconstructs it from the original
// configuration. Token sequences restart at 001 in the new instance.
func (s *bookingService) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.mgr = queue.NewManager(s.configs)
	mgr := s.mgr
	s.mu.Unlock()

	statuses := mgr.QueueStatus()
	monitoring.UpdateQueueGauges(statuses)

	if s.mirror != nil {
		ids := make([]string, 0, len(s.configs))
		for _, cfg := range s.configs {
			ids = append(ids, cfg.ID)
		}
		if err := s.mirror.Clear(ctx, ids); err != nil {
			s.l.Errorf(ctx, "service.bookingService.Reset: clear mirror: %v", err)
		}
		if err := s.mirror.MirrorStatus(ctx, statuses); err != nil {
			s.l.Errorf(ctx, "service.bookingService.Reset: mirror status: %v", err)
		}
	}

	s.l.Info(ctx, "Queue manager reset")

	return nil
}

func waitingFor(statuses []domain.ServiceStatus, serviceID string) int {
	for _, st := range statuses {
		if st.ServiceID == serviceID {
			return st.Waiting
		}
	}
	return 0
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrServiceNotFound):
		return "invalid_service"
	case errors.Is(err, apperrors.ErrEmptyUserName):
		return "empty_name"
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return "capacity_exceeded"
	default:
		return "unknown"
	}
}
