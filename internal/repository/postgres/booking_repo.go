package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"devevent/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt).
		Scan(&b.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrAlreadyBooked
		}
		return err
	}
	return nil
}

func (r *bookingRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	query := `
		SELECT id, event_id, email, created_at, updated_at
		FROM bookings
		WHERE event_id = $1 AND email = $2
	`
	b := &domain.Booking{}
	err := r.DB.QueryRowContext(ctx, query, eventID, email).
		Scan(&b.ID, &b.EventID, &b.Email, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
