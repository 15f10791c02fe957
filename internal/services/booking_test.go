package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devevent/internal/domain"
)

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = "ev-created"
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	events := make([]*domain.Event, 0, len(m.events))
	for _, ev := range m.events {
		events = append(events, ev)
	}
	return events, nil
}

type mockBookingRepository struct {
	bookings  map[string]*domain.Booking
	createErr error
	getErr    error
	created   []*domain.Booking
}

func key(eventID, email string) string { return eventID + ":" + email }

func (m *mockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.bookings[key(b.EventID, b.Email)]; ok {
		return domain.ErrAlreadyBooked
	}
	b.ID = "bk-created"
	if m.bookings == nil {
		m.bookings = map[string]*domain.Booking{}
	}
	m.bookings[key(b.EventID, b.Email)] = b
	m.created = append(m.created, b)
	return nil
}

func (m *mockBookingRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.bookings[key(eventID, email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func TestBookingService_Create_New(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"ev-1": {ID: "ev-1"}}}
	bookingRepo := &mockBookingRepository{}
	svc := NewBookingService(eventRepo, bookingRepo, 2*time.Second)

	booking, created, err := svc.Create(context.Background(), "ev-1", "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for a fresh registration")
	}
	if booking.Email != "a@b.com" || booking.EventID != "ev-1" {
		t.Fatalf("unexpected booking: %+v", booking)
	}
	if len(bookingRepo.created) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(bookingRepo.created))
	}
}

func TestBookingService_Create_DuplicateIsIdempotent(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"ev-1": {ID: "ev-1"}}}
	bookingRepo := &mockBookingRepository{}
	svc := NewBookingService(eventRepo, bookingRepo, 2*time.Second)

	_, created, err := svc.Create(context.Background(), "ev-1", "a@b.com")
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}

	booking, created, err := svc.Create(context.Background(), "ev-1", "a@b.com")
	if err != nil {
		t.Fatalf("second call must not error, got %v", err)
	}
	if created {
		t.Fatal("expected created=false on duplicate registration")
	}
	if booking.ID != "bk-created" {
		t.Fatalf("expected the existing booking to be returned, got %+v", booking)
	}
	if len(bookingRepo.created) != 1 {
		t.Fatalf("expected a single stored row, got %d", len(bookingRepo.created))
	}
}

func TestBookingService_Create_NormalizesEmail(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"ev-1": {ID: "ev-1"}}}
	bookingRepo := &mockBookingRepository{}
	svc := NewBookingService(eventRepo, bookingRepo, 2*time.Second)

	booking, created, err := svc.Create(context.Background(), "ev-1", " A@B.COM ")
	if err != nil || !created {
		t.Fatalf("first call: created=%v err=%v", created, err)
	}
	if booking.Email != "a@b.com" {
		t.Fatalf("expected normalized email, got %q", booking.Email)
	}

	_, created, err = svc.Create(context.Background(), "ev-1", "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected the normalized pair to collide with the first registration")
	}
}

func TestBookingService_Create_InvalidEmail(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"ev-1": {ID: "ev-1"}}}
	svc := NewBookingService(eventRepo, &mockBookingRepository{}, 2*time.Second)

	for _, email := range []string{"", "not-an-email", "a@", "@b.com", "a b@c.com"} {
		_, _, err := svc.Create(context.Background(), "ev-1", email)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("email %q: expected ErrInvalidInput, got %v", email, err)
		}
	}
}

func TestBookingService_Create_EventNotFound(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{}}
	svc := NewBookingService(eventRepo, &mockBookingRepository{}, 2*time.Second)

	_, _, err := svc.Create(context.Background(), "ev-missing", "a@b.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The missing event dominates even when the email is malformed.
	_, _, err = svc.Create(context.Background(), "ev-missing", "not-an-email")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound regardless of email validity, got %v", err)
	}
}

func TestBookingService_Create_RaceLosingInsertIsNotAnError(t *testing.T) {
	// Simulates losing the race: the pre-insert existence check passes and
	// nothing is registered yet, but the insert hits the unique index because
	// a concurrent request committed first.
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"ev-1": {ID: "ev-1"}}}
	existing := &domain.Booking{ID: "bk-winner", EventID: "ev-1", Email: "a@b.com"}
	bookingRepo := &mockBookingRepository{
		createErr: domain.ErrAlreadyBooked,
		bookings:  map[string]*domain.Booking{key("ev-1", "a@b.com"): existing},
	}
	svc := NewBookingService(eventRepo, bookingRepo, 2*time.Second)

	booking, created, err := svc.Create(context.Background(), "ev-1", "a@b.com")
	if err != nil {
		t.Fatalf("losing the race must not surface an error, got %v", err)
	}
	if created {
		t.Fatal("expected created=false when the unique index rejects the insert")
	}
	if booking.ID != "bk-winner" {
		t.Fatalf("expected the winning row to be returned, got %+v", booking)
	}
}

func TestBookingService_Create_StoreErrorPropagates(t *testing.T) {
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{"ev-1": {ID: "ev-1"}}}
	storeErr := errors.New("connection reset")
	bookingRepo := &mockBookingRepository{createErr: storeErr}
	svc := NewBookingService(eventRepo, bookingRepo, 2*time.Second)

	_, _, err := svc.Create(context.Background(), "ev-1", "a@b.com")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected the store error to propagate, got %v", err)
	}
}
