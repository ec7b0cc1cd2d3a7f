package models

import "time"

// Booking is the canonical record of a booking. The model-side list and the
// user-side history are projections of this one row, so both parties always
// observe the same status and confirmation flags.
type Booking struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	ModelID string `json:"model_id"`

	// Display fields denormalized at creation time.
	UserName  string  `json:"user_name"`
	ModelName string  `json:"model_name"`
	Price     float64 `json:"price"` // model's net price per hour when booked

	Date string `json:"date"`
	Time string `json:"time"`

	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"` // gross amount paid by the user, fixed at creation
	IsPaid     bool    `json:"is_paid"`

	UserConfirmed  bool `json:"user_confirmed"`
	ModelConfirmed bool `json:"model_confirmed"`

	// Opaque contact/location strings carried through unchanged.
	UserLocation     string `json:"user_location"`
	LiveLocationLink string `json:"live_location_link"`
	CallerLine       string `json:"caller_line"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type CreateBookingRequest struct {
	ModelID          string  `json:"model_id"`
	UserID           string  `json:"user_id"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	UserLocation     string  `json:"user_location"`
	LiveLocationLink string  `json:"live_location_link"`
	CallerLine       string  `json:"caller_line"`
	TotalPrice       float64 `json:"total_price"`
}

// CancellationReceipt reports the money breakdown of a user cancellation.
// The refund amount is informational for unpaid bookings: no money ever
// moved, so nothing is actually returned.
type CancellationReceipt struct {
	Booking          Booking `json:"booking"`
	RefundAmount     float64 `json:"refund_amount"`
	CommissionAmount float64 `json:"commission_amount"`
}

// BookingQuote is the user-facing price for booking one hour with a model.
type BookingQuote struct {
	ModelID      string  `json:"model_id"`
	ModelName    string  `json:"model_name"`
	PricePerHour float64 `json:"price_per_hour"`
	TotalPrice   float64 `json:"total_price"`
}
