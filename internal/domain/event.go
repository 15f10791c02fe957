package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a request fails validation (missing fields, malformed email, empty agenda/tags).
var ErrInvalidInput = errors.New("invalid input")

// Event modes.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Field length caps for events.
const (
	MaxTitleLen       = 100
	MaxOverviewLen    = 500
	MaxDescriptionLen = 1000
)

// Event represents a publishable activity with schedule, venue, and descriptive metadata.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Organizer   string    `json:"organizer"`
	Agenda      []string  `json:"agenda"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns all events ordered by creation time, newest first.
	List(ctx context.Context) ([]*Event, error)
}

// CreateEventInput carries the form fields for creating an event.
// Image holds the raw upload; the resolved public URL is set on the stored Event.
type CreateEventInput struct {
	Title       string
	Description string
	Overview    string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Organizer   string
	Agenda      []string
	Tags        []string
	Image       []byte
	ImageType   string
}

// EventService defines organizer-facing event operations.
type EventService interface {
	// Create validates the input, uploads the cover image, and persists the event.
	// Returns ErrInvalidInput on validation failure and ErrUploadFailed when the image store rejects the upload.
	Create(ctx context.Context, input CreateEventInput) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
}
