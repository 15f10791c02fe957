package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type BookingController struct {
	Logger    *slog.Logger
	Service   domain.BookingService
	Analytics domain.Analytics
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService, analytics domain.Analytics) *BookingController {
	return &BookingController{
		Logger:    logger,
		Service:   svc,
		Analytics: analytics,
	}
}

// CreateBookingRequest is the request body for POST /bookings.
// Slug is non-authoritative metadata from the booking UI; it is forwarded
// to analytics and never persisted.
type CreateBookingRequest struct {
	EventID string `json:"eventId"`
	Slug    string `json:"slug"`
	Email   string `json:"email"`
}

// CreateBookingResponse is the success body for POST /bookings.
// swagger:model CreateBookingResponse
type CreateBookingResponse struct {
	Success bool   `json:"success"`
	IsNew   bool   `json:"isNew"`
	Message string `json:"message,omitempty"`
}

// BookingErrorResponse is the failure body for POST /bookings.
// swagger:model BookingErrorResponse
type BookingErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// CreateBooking godoc
// @Summary Register an email for an event
// @Description Registers the email for the event. Idempotent: a repeated registration for the same (event, email) pair responds 200 with isNew=false instead of an error.
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body controllers.CreateBookingRequest true "Event id and attendee email"
// @Success 200 {object} controllers.CreateBookingResponse "Already registered"
// @Success 201 {object} controllers.CreateBookingResponse "New registration"
// @Failure 400 {object} controllers.BookingErrorResponse
// @Failure 404 {object} controllers.BookingErrorResponse
// @Failure 500 {object} controllers.BookingErrorResponse
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		helpers.WriteJSON(w, http.StatusBadRequest, BookingErrorResponse{Success: false, Error: err.Error()})
		return
	}
	if strings.TrimSpace(req.EventID) == "" {
		helpers.WriteJSON(w, http.StatusBadRequest, BookingErrorResponse{Success: false, Error: "eventId is required"})
		return
	}
	if !uuidRegex.MatchString(req.EventID) {
		helpers.WriteJSON(w, http.StatusBadRequest, BookingErrorResponse{Success: false, Error: "invalid eventId"})
		return
	}

	booking, created, err := c.Service.Create(r.Context(), req.EventID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSON(w, http.StatusNotFound, BookingErrorResponse{Success: false, Error: "event not found"})
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSON(w, http.StatusBadRequest, BookingErrorResponse{Success: false, Error: err.Error()})
		default:
			c.Logger.ErrorContext(r.Context(), "create booking failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSON(w, http.StatusInternalServerError, BookingErrorResponse{Success: false, Error: "failed to create booking"})
		}
		return
	}

	if !created {
		helpers.WriteJSON(w, http.StatusOK, CreateBookingResponse{
			Success: true,
			IsNew:   false,
			Message: "You are already registered for this event.",
		})
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, CreateBookingResponse{Success: true, IsNew: true})

	// Best-effort signal, emitted only for fresh registrations. Dispatched
	// off the handler goroutine so a slow sink cannot hold up delivery of
	// the buffered response.
	go c.Analytics.Capture("event_booked", map[string]any{
		"eventId": booking.EventID,
		"slug":    req.Slug,
		"email":   booking.Email,
	})
}
