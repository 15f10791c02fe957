package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"devevent/internal/domain"
)

// emailRegex is the standard HTML5 address pattern.
var emailRegex = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService with the given repositories.
func NewBookingService(eventRepo domain.EventRepository, bookingRepo domain.BookingRepository, timeout time.Duration) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		contextTimeout: timeout,
	}
}

func (s *bookingService) Create(ctx context.Context, eventID, email string) (*domain.Booking, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Reject bookings that reference a non-existent event. This check is
	// advisory only: duplicate prevention is enforced by the unique index
	// on (event_id, email), not by anything sequenced here.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return nil, false, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}

	now := time.Now()
	booking := domain.NewBooking(eventID, email, now, now)
	err := s.bookingRepo.Create(ctx, booking)
	if err == nil {
		return booking, true, nil
	}
	if !errors.Is(err, domain.ErrAlreadyBooked) {
		return nil, false, fmt.Errorf("create booking: %w", err)
	}

	// The pair already exists, possibly inserted by a concurrent request.
	// Treat it as an idempotent re-registration and return the stored row.
	existing, err := s.bookingRepo.GetByEventAndEmail(ctx, eventID, email)
	if err != nil {
		return nil, false, fmt.Errorf("get existing booking: %w", err)
	}
	return existing, false, nil
}
