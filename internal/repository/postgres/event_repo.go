package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"devevent/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, overview, image, venue, location, date, time, mode, audience, organizer, agenda, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, e.Audience, e.Organizer,
		pq.Array(e.Agenda), pq.Array(e.Tags), e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, overview, image, venue, location, date, time, mode, audience, organizer, agenda, tags, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var agenda, tags pq.StringArray
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Overview, &e.Image, &e.Venue, &e.Location,
		&e.Date, &e.Time, &e.Mode, &e.Audience, &e.Organizer,
		&agenda, &tags, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Agenda = agenda
	e.Tags = tags
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, overview, image, venue, location, date, time, mode, audience, organizer, agenda, tags, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var agenda, tags pq.StringArray
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Overview, &e.Image, &e.Venue, &e.Location,
			&e.Date, &e.Time, &e.Mode, &e.Audience, &e.Organizer,
			&agenda, &tags, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Agenda = agenda
		e.Tags = tags
		events = append(events, e)
	}
	return events, rows.Err()
}
