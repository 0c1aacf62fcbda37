package handler

import "time"

type createEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Capacity    int       `json:"volunteers_needed" validate:"gte=0"`
}

type updateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	Category    *string    `json:"category"`
	Image       *string    `json:"image"`
	Capacity    *int       `json:"volunteers_needed"`
}

type approveEventRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}
