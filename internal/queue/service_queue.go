package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tdnguyen2104/virtual-queue/internal/domain"
)

// ServiceQueue holds the waiting line and counters for exactly one service
// type. It is not safe for concurrent use on its own; the owning Manager
// serializes access.
type ServiceQueue struct {
	id                string
	displayName       string
	dailyCapacity     int
	avgServiceMinutes int

	waiting         []domain.Booking
	totalBookings   int
	servedCount     int
	nextTokenNumber int
}

func newServiceQueue(cfg domain.ServiceConfig) *ServiceQueue {
	return &ServiceQueue{
		id:                cfg.ID,
		displayName:       cfg.DisplayName,
		dailyCapacity:     cfg.DailyCapacity,
		avgServiceMinutes: cfg.AvgServiceMinutes,
		nextTokenNumber:   1,
	}
}

func (s *ServiceQueue) ID() string          { return s.id }
func (s *ServiceQueue) DisplayName() string { return s.displayName }

// IsFull reports whether the daily booking cap is exhausted. Capacity counts
// lifetime bookings (served + waiting), not current occupancy: once the cap
// is reached the service stays unbookable even while people are served.
func (s *ServiceQueue) IsFull() bool {
	return s.totalBookings >= s.dailyCapacity
}

func (s *ServiceQueue) PeopleWaiting() int {
	return len(s.waiting)
}

// EstimateWaitMinutes is the linear estimate for a new arrival: people ahead
// times the average handling time.
func (s *ServiceQueue) EstimateWaitMinutes() int {
	return len(s.waiting) * s.avgServiceMinutes
}

// createBooking admits one user. Returns nil without mutation when the daily
// cap is exhausted. The estimate is snapshotted before the booking is
// appended, so it reflects only the people strictly ahead.
func (s *ServiceQueue) createBooking(userName string) *domain.Booking {
	if s.IsFull() {
		return nil
	}

	b := domain.Booking{
		ID:                   uuid.NewString(),
		Token:                fmt.Sprintf("%s-%03d", strings.ToUpper(s.id), s.nextTokenNumber),
		UserName:             userName,
		ServiceID:            s.id,
		EstimatedWaitMinutes: s.EstimateWaitMinutes(),
		CreatedAt:            time.Now(),
	}

	s.waiting = append(s.waiting, b)
	s.totalBookings++
	s.nextTokenNumber++

	return &b
}

// markNextServed removes and returns the front of the waiting line, or nil
// without mutation when nobody is waiting.
func (s *ServiceQueue) markNextServed() *domain.Booking {
	if len(s.waiting) == 0 {
		return nil
	}

	served := s.waiting[0]
	s.waiting = s.waiting[1:]
	s.servedCount++

	return &served
}

func (s *ServiceQueue) info() domain.ServiceInfo {
	return domain.ServiceInfo{
		ID:                s.id,
		DisplayName:       s.displayName,
		DailyCapacity:     s.dailyCapacity,
		AvgServiceMinutes: s.avgServiceMinutes,
	}
}

func (s *ServiceQueue) status() domain.ServiceStatus {
	return domain.ServiceStatus{
		ServiceID:         s.id,
		DisplayName:       s.displayName,
		Waiting:           s.PeopleWaiting(),
		Served:            s.servedCount,
		BookedTotal:       s.totalBookings,
		Capacity:          s.dailyCapacity,
		AvgServiceMinutes: s.avgServiceMinutes,
		EstWaitNewUser:    s.EstimateWaitMinutes(),
	}
}
