package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"devevent/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, bookingController *controllers.BookingController) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /bookings", bookingController.CreateBooking)

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
