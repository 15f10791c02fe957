package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"devevent/internal/domain"
)

// uploadFolder is the image-store grouping label for event cover images.
const uploadFolder = "devevent"

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

type eventService struct {
	eventRepo      domain.EventRepository
	imageStore     domain.ImageStore
	contextTimeout time.Duration
}

// NewEventService creates an EventService backed by the given repository and image store.
func NewEventService(eventRepo domain.EventRepository, imageStore domain.ImageStore, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		imageStore:     imageStore,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, input domain.CreateEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := buildEvent(input)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.imageStore.Upload(ctx, input.Image, input.ImageType, uploadFolder)
	if err != nil {
		return nil, fmt.Errorf("upload cover image: %w", err)
	}
	event.Image = imageURL

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// buildEvent validates the input and assembles an Event without image URL or timestamps.
func buildEvent(input domain.CreateEventInput) (*domain.Event, error) {
	required := []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"description", input.Description},
		{"overview", input.Overview},
		{"venue", input.Venue},
		{"location", input.Location},
		{"date", input.Date},
		{"time", input.Time},
		{"mode", input.Mode},
		{"audience", input.Audience},
		{"organizer", input.Organizer},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, f.name)
		}
	}

	if utf8.RuneCountInString(input.Title) > domain.MaxTitleLen {
		return nil, fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidInput, domain.MaxTitleLen)
	}
	if utf8.RuneCountInString(input.Overview) > domain.MaxOverviewLen {
		return nil, fmt.Errorf("%w: overview must be at most %d characters", domain.ErrInvalidInput, domain.MaxOverviewLen)
	}
	if utf8.RuneCountInString(input.Description) > domain.MaxDescriptionLen {
		return nil, fmt.Errorf("%w: description must be at most %d characters", domain.ErrInvalidInput, domain.MaxDescriptionLen)
	}

	mode := strings.ToLower(strings.TrimSpace(input.Mode))
	switch mode {
	case domain.ModeOnline, domain.ModeOffline, domain.ModeHybrid:
	default:
		return nil, fmt.Errorf("%w: mode must be online, offline, or hybrid", domain.ErrInvalidInput)
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(input.Date))
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", domain.ErrInvalidInput)
	}

	agenda := trimNonEmpty(input.Agenda)
	if len(agenda) == 0 {
		return nil, fmt.Errorf("%w: agenda must have at least one item", domain.ErrInvalidInput)
	}
	tags := trimNonEmpty(input.Tags)
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: tags must have at least one item", domain.ErrInvalidInput)
	}

	if len(input.Image) == 0 {
		return nil, fmt.Errorf("%w: image file is required", domain.ErrInvalidInput)
	}
	if _, ok := allowedImageTypes[input.ImageType]; !ok {
		return nil, fmt.Errorf("%w: unsupported image type %q", domain.ErrInvalidInput, input.ImageType)
	}

	return &domain.Event{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Overview:    strings.TrimSpace(input.Overview),
		Venue:       strings.TrimSpace(input.Venue),
		Location:    strings.TrimSpace(input.Location),
		Date:        date,
		Time:        strings.TrimSpace(input.Time),
		Mode:        mode,
		Audience:    strings.TrimSpace(input.Audience),
		Organizer:   strings.TrimSpace(input.Organizer),
		Agenda:      agenda,
		Tags:        tags,
	}, nil
}

// trimNonEmpty trims each entry and drops blanks, preserving order.
func trimNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
