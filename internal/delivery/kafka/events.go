package kafka

import "time"

const (
	TopicBookingCreated = "booking.created"
	TopicBookingServed  = "booking.served"
)

// Events published by the queue service.

type BookingCreatedEvent struct {
	BookingID            string    `json:"booking_id"`
	Token                string    `json:"token"`
	UserName             string    `json:"user_name"`
	ServiceID            string    `json:"service_id"`
	Position             int       `json:"position"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes"`
	BookedAt             time.Time `json:"booked_at"`
	Timestamp            time.Time `json:"timestamp"`
}

type BookingServedEvent struct {
	BookingID string    `json:"booking_id"`
	Token     string    `json:"token"`
	UserName  string    `json:"user_name"`
	ServiceID string    `json:"service_id"`
	Waiting   int       `json:"waiting"`
	ServedAt  time.Time `json:"served_at"`
	Timestamp time.Time `json:"timestamp"`
}
