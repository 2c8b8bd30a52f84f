package errors

import "errors"

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrEmptyUserName    = errors.New("user name cannot be empty")
	ErrCapacityExceeded = errors.New("service is at full daily capacity")
	ErrQueueEmpty       = errors.New("queue is empty")
	ErrBookingNotFound  = errors.New("booking not found")
)
