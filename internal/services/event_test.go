package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"devevent/internal/domain"
)

type mockImageStore struct {
	url      string
	err      error
	gotData  []byte
	gotType  string
	gotLabel string
}

func (m *mockImageStore) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	m.gotData = data
	m.gotType = contentType
	m.gotLabel = folder
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

func validInput() domain.CreateEventInput {
	return domain.CreateEventInput{
		Title:       "Workshop de React Native",
		Description: "A hands-on workshop",
		Overview:    "One day of mobile development",
		Venue:       "Auditório Principal",
		Location:    "São Paulo, SP",
		Date:        "2026-03-15",
		Time:        "09:00 - 16:00",
		Mode:        "offline",
		Audience:    "mobile developers",
		Organizer:   "DevEvent",
		Agenda:      []string{" Opening ", "Main talk", " Networking"},
		Tags:        []string{"react-native", " mobile "},
		Image:       []byte{0xff, 0xd8, 0xff},
		ImageType:   "image/jpeg",
	}
}

func TestEventService_Create(t *testing.T) {
	repo := &mockEventRepository{events: map[string]*domain.Event{}}
	store := &mockImageStore{url: "https://cdn.example.com/devevent/abc.jpg"}
	svc := NewEventService(repo, store, 2*time.Second)

	event, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID != "ev-created" {
		t.Fatalf("expected repository-assigned id, got %q", event.ID)
	}
	if event.Image != store.url {
		t.Fatalf("expected resolved image URL, got %q", event.Image)
	}
	if store.gotLabel != uploadFolder {
		t.Fatalf("expected upload folder %q, got %q", uploadFolder, store.gotLabel)
	}

	// Agenda and tags are trimmed, blanks dropped, order preserved.
	wantAgenda := []string{"Opening", "Main talk", "Networking"}
	if fmt.Sprint(event.Agenda) != fmt.Sprint(wantAgenda) {
		t.Fatalf("agenda = %v, want %v", event.Agenda, wantAgenda)
	}
	wantTags := []string{"react-native", "mobile"}
	if fmt.Sprint(event.Tags) != fmt.Sprint(wantTags) {
		t.Fatalf("tags = %v, want %v", event.Tags, wantTags)
	}
	if event.CreatedAt.IsZero() || event.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestEventService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CreateEventInput)
	}{
		{"missing title", func(in *domain.CreateEventInput) { in.Title = "" }},
		{"blank organizer", func(in *domain.CreateEventInput) { in.Organizer = "   " }},
		{"title too long", func(in *domain.CreateEventInput) {
			for len(in.Title) <= domain.MaxTitleLen {
				in.Title += "x"
			}
		}},
		{"bad mode", func(in *domain.CreateEventInput) { in.Mode = "in-person" }},
		{"bad date", func(in *domain.CreateEventInput) { in.Date = "15 Mar, 2026" }},
		{"agenda reduces to empty", func(in *domain.CreateEventInput) { in.Agenda = []string{"", "  "} }},
		{"tags reduce to empty", func(in *domain.CreateEventInput) { in.Tags = []string{" ", ""} }},
		{"missing image", func(in *domain.CreateEventInput) { in.Image = nil }},
		{"unsupported image type", func(in *domain.CreateEventInput) { in.ImageType = "application/pdf" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockEventRepository{events: map[string]*domain.Event{}}
			store := &mockImageStore{url: "https://cdn.example.com/x.jpg"}
			svc := NewEventService(repo, store, 2*time.Second)

			input := validInput()
			tt.mutate(&input)
			_, err := svc.Create(context.Background(), input)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if store.gotData != nil {
				t.Fatal("validation failure must not reach the image store")
			}
		})
	}
}

func TestEventService_Create_MultibyteTitleAtCap(t *testing.T) {
	repo := &mockEventRepository{events: map[string]*domain.Event{}}
	store := &mockImageStore{url: "https://cdn.example.com/x.jpg"}
	svc := NewEventService(repo, store, 2*time.Second)

	// 100 two-byte runes: within the character cap even though the byte
	// length is double it.
	input := validInput()
	input.Title = strings.Repeat("é", domain.MaxTitleLen)

	event, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Title != input.Title {
		t.Fatalf("title altered: got %q", event.Title)
	}

	input.Title += "é"
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput one rune over the cap, got %v", err)
	}
}

func TestEventService_Create_UploadFailureFailsRequest(t *testing.T) {
	repo := &mockEventRepository{events: map[string]*domain.Event{}}
	store := &mockImageStore{err: fmt.Errorf("%w: bucket unreachable", domain.ErrUploadFailed)}
	svc := NewEventService(repo, store, 2*time.Second)

	_, err := svc.Create(context.Background(), validInput())
	if !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}

func TestEventService_List(t *testing.T) {
	t.Run("empty repo yields empty slice", func(t *testing.T) {
		repo := &mockEventRepository{events: map[string]*domain.Event{}}
		svc := NewEventService(repo, &mockImageStore{}, 2*time.Second)

		events, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if events == nil || len(events) != 0 {
			t.Fatalf("expected empty non-nil slice, got %v", events)
		}
	})

	t.Run("repo error wraps", func(t *testing.T) {
		repo := &mockEventRepository{err: errors.New("down")}
		svc := NewEventService(repo, &mockImageStore{}, 2*time.Second)

		_, err := svc.List(context.Background())
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}
