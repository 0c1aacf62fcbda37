package handler

import "github.com/volunteerhub/volunteerhub-api/internal/core/domain"

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type introspectRequest struct {
	Token string `json:"token" validate:"required"`
}

type introspectResponse struct {
	Valid bool `json:"valid"`
}
