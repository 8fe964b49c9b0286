package dto

import "time"

// AccountRequestCreate body para POST /api/account-requests.
type AccountRequestCreate struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Address string `json:"address" validate:"required,max=255"`
}

// AccountRequestReview body para PUT /api/account-requests/review.
// La decisión se valida en el caso de uso (una decisión desconocida es un error de estado).
type AccountRequestReview struct {
	RequestID string `json:"request_id" validate:"required"`
	Decision  string `json:"decision" validate:"required"`
}

// AccountRequestResponse solicitud en respuestas.
type AccountRequestResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Address    string     `json:"address"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}
