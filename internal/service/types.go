package service

import "github.com/tdnguyen2104/virtual-queue/internal/domain"

type BookSlotInput struct {
	UserName  string `json:"user_name"`
	ServiceID string `json:"service_id"`
}

type BookSlotOutput struct {
	Booking  domain.Booking `json:"booking"`
	Position int            `json:"position"`
	Message  string         `json:"message"`
}

type MarkServedOutput struct {
	Booking domain.Booking `json:"booking"`
	Waiting int            `json:"waiting"`
	Message string         `json:"message"`
}
