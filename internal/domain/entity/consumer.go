package entity

import "time"

// Consumer representa un cliente del servicio público (registro de consumidores).
// La baja es lógica (Active = false).
type Consumer struct {
	ID           string
	FullName     string
	Email        string
	MobileNumber string
	Address      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
