package domain

import "time"

// Booking is an immutable record of one reserved queue slot. It is created
// once on admission and never mutated; serving removes it from the waiting
// line but it stays in the manager's token index as an audit trail.
type Booking struct {
	ID                   string    `json:"id"`
	Token                string    `json:"token"`
	UserName             string    `json:"user_name"`
	ServiceID            string    `json:"service_id"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes"`
	CreatedAt            time.Time `json:"created_at"`
}
