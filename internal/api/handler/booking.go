package handler

import (
	"net/http"

	"courtbook/internal/api/response"
	"courtbook/internal/model"
	"courtbook/internal/services/booking"
)

// BookingHandler handles the global booking listing
type BookingHandler struct {
	booking *booking.Controller
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingController *booking.Controller) *BookingHandler {
	return &BookingHandler{
		booking: bookingController,
	}
}

// List handles GET /api/v1/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.booking.ListAll(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	if entries == nil {
		entries = []model.BookingEntry{}
	}
	response.JSON(w, http.StatusOK, response.BookingList{Bookings: entries})
}
