package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"courtbook/internal/api/handler"
	"courtbook/internal/api/middleware"
	"courtbook/internal/services/booking"
	"courtbook/internal/services/directory"
	"courtbook/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	DirectoryService  *directory.Service
	SessionStore      *session.Store
	BookingController *booking.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.DirectoryService, cfg.SessionStore)
	dayHandler := handler.NewDayHandler(cfg.BookingController)
	bookingHandler := handler.NewBookingHandler(cfg.BookingController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.SessionStore)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// User routes (no auth required for registering/logging in)
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	// Protected user routes
	userProtected := api.PathPrefix("/users").Subrouter()
	userProtected.Use(authMiddleware)
	userProtected.HandleFunc("/logout", userHandler.Logout).Methods(http.MethodPost)
	userProtected.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)

	// Day grid routes: viewing is open, mutating requires auth
	api.HandleFunc("/days/{date}", dayHandler.Get).Methods(http.MethodGet)

	dayProtected := api.PathPrefix("/days").Subrouter()
	dayProtected.Use(authMiddleware)
	dayProtected.HandleFunc("/{date}/bookings", dayHandler.Confirm).Methods(http.MethodPost)
	dayProtected.HandleFunc("/{date}/slots/{slot}", dayHandler.CancelSlot).Methods(http.MethodDelete)

	// Global booking listing
	api.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
