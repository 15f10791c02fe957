package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyBooked is returned by the repository when inserting a booking
// whose (event_id, email) pair already exists.
var ErrAlreadyBooked = errors.New("already booked")

// Booking records one email address registering interest in one Event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a new Booking. ID is set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	// Create inserts the booking. Returns ErrAlreadyBooked on a
	// (event_id, email) unique-constraint conflict.
	Create(ctx context.Context, booking *Booking) error
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Booking, error)
}

// BookingService defines attendee-facing booking operations.
type BookingService interface {
	// Create registers the email for the event. Returns (booking, created, err):
	// created is true when a new booking was stored, false when the pair was
	// already registered. Duplicate registration is not an error.
	// Returns ErrInvalidInput for a malformed email and ErrNotFound when the
	// event does not exist.
	Create(ctx context.Context, eventID, email string) (*Booking, bool, error)
}
