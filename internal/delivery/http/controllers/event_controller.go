package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// maxUploadBytes bounds the multipart form, dominated by the cover image.
const maxUploadBytes = 10 << 20

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEventsResponse is the success body for GET /events.
// swagger:model ListEventsResponse
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event from a multipart form. The image file is uploaded to the image store and its public URL is persisted with the event. Agenda and tags are repeated form fields and must each keep at least one non-blank entry after trimming.
// @Tags events
// @Accept mpfd
// @Produce json
// @Param title formData string true "Event title (max 100 chars)"
// @Param description formData string true "Full description (max 1000 chars)"
// @Param overview formData string true "Short overview (max 500 chars)"
// @Param venue formData string true "Venue"
// @Param location formData string true "Location"
// @Param date formData string true "Date (YYYY-MM-DD)"
// @Param time formData string true "Time"
// @Param mode formData string true "online | offline | hybrid"
// @Param audience formData string true "Target audience"
// @Param organizer formData string true "Organizer"
// @Param agenda formData []string true "Agenda items (repeated field)"
// @Param tags formData []string true "Tags (repeated field)"
// @Param image formData file true "Cover image"
// @Success 201 {object} domain.Event
// @Failure 400 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.FailureResponse
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteMessage(w, http.StatusBadRequest, "invalid multipart form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteMessage(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()
	imageData, err := io.ReadAll(file)
	if err != nil {
		helpers.WriteMessage(w, http.StatusBadRequest, "failed to read image file")
		return
	}
	imageType := header.Header.Get("Content-Type")
	if imageType == "" {
		imageType = http.DetectContentType(imageData)
	}

	input := domain.CreateEventInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Overview:    r.PostFormValue("overview"),
		Venue:       r.PostFormValue("venue"),
		Location:    r.PostFormValue("location"),
		Date:        r.PostFormValue("date"),
		Time:        r.PostFormValue("time"),
		Mode:        r.PostFormValue("mode"),
		Audience:    r.PostFormValue("audience"),
		Organizer:   r.PostFormValue("organizer"),
		Agenda:      r.PostForm["agenda"],
		Tags:        r.PostForm["tags"],
		Image:       imageData,
		ImageType:   imageType,
	}

	event, err := c.Service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "event creation failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusInternalServerError, helpers.FailureResponse{
			Message: "Event Creation Failed",
			Error:   err.Error(),
		})
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Returns all events, most recently created first.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list events failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSON(w, http.StatusInternalServerError, helpers.ErrorResponse{Error: "Failed to fetch events"})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListEventsResponse{Events: events})
}
