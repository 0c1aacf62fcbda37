package handler

type createRegistrationRequest struct {
	EventID string `json:"event_id" validate:"required"`
}

type updateRegistrationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}
