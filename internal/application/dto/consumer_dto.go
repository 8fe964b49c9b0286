package dto

import "time"

// CreateConsumerRequest body para POST /api/consumers.
type CreateConsumerRequest struct {
	FullName     string `json:"full_name" validate:"required,min=2,max=120"`
	Email        string `json:"email" validate:"required,email,max=255"`
	MobileNumber string `json:"mobile_number" validate:"required,min=7,max=20"`
	Address      string `json:"address" validate:"required,max=255"`
}

// UpdateConsumerRequest body para PUT /api/consumers/:id (campos opcionales).
type UpdateConsumerRequest struct {
	FullName     *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=120"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	MobileNumber *string `json:"mobile_number,omitempty" validate:"omitempty,min=7,max=20"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

// ConsumerResponse consumidor en respuestas.
type ConsumerResponse struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number"`
	Address      string    `json:"address"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
