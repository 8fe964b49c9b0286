package entity

import "time"

// Estados de una solicitud de cuenta.
const (
	AccountRequestPending  = "PENDING"
	AccountRequestApproved = "APPROVED"
	AccountRequestRejected = "REJECTED"
)

// Decisiones de revisión.
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// AccountRequest solicitud de alta hecha por un consumidor (autoservicio).
// PENDING → APPROVED | REJECTED, ambos terminales.
type AccountRequest struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Address    string
	Status     string
	CreatedAt  time.Time
	ReviewedAt *time.Time
}

// IsPending indica si la solicitud todavía puede revisarse.
func (r *AccountRequest) IsPending() bool {
	return r.Status == AccountRequestPending
}
