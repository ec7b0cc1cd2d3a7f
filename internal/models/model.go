package models

import "time"

// Model is a directory entry for a bookable model. Earnings is a running
// total of net amounts settled to the model; it is only ever incremented.
type Model struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Password     string     `json:"password,omitempty"`
	Bio          string     `json:"bio"`
	PricePerHour float64    `json:"price_per_hour"`
	Earnings     float64    `json:"earnings"`
	IsOnline     bool       `json:"is_online"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}
