package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"courtbook/internal/api/middleware"
	"courtbook/internal/api/request"
	"courtbook/internal/api/response"
	"courtbook/internal/model"
	"courtbook/internal/services/booking"
	"courtbook/internal/services/grid"
)

// DayHandler handles the per-date grid view, confirmation and cancellation
type DayHandler struct {
	booking *booking.Controller
}

// NewDayHandler creates a new day handler
func NewDayHandler(bookingController *booking.Controller) *DayHandler {
	return &DayHandler{
		booking: bookingController,
	}
}

// Get handles GET /api/v1/days/{date}
//
// A date that was never booked is a valid, all-available day rather
// than an error: navigation must always land on a usable grid.
func (h *DayHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, err := model.ParseDateKey(mux.Vars(r)["date"])
	if err != nil {
		WriteError(w, err)
		return
	}

	record, err := h.booking.LoadDay(r.Context(), date)
	if err != nil && !errors.Is(err, model.ErrDayNotFound) {
		WriteError(w, err)
		return
	}

	g := grid.New()
	g.RestoreConfirmed(record)

	response.JSON(w, http.StatusOK, response.DayFromGrid(date, g, record))
}

// Confirm handles POST /api/v1/days/{date}/bookings
func (h *DayHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	date, err := model.ParseDateKey(mux.Vars(r)["date"])
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.ConfirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Purpose == "" {
		WriteError(w, NewInvalidRequestError("purpose is required"))
		return
	}
	if req.PurposeDetail == "" {
		WriteError(w, NewInvalidRequestError("purpose_detail is required"))
		return
	}
	if req.NumberOfPeople <= 0 {
		WriteError(w, NewInvalidRequestError("number_of_people is required"))
		return
	}

	slots := make([]model.SlotKey, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, model.SlotKey(s))
	}

	user := middleware.MustGetUser(r.Context())
	receipt, err := h.booking.ConfirmBooking(r.Context(), date, slots, booking.Details{
		Purpose:       model.ParsePurpose(req.Purpose),
		PurposeDetail: req.PurposeDetail,
		Headcount:     req.NumberOfPeople,
	}, user)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ConfirmedBookingFromReceipt(receipt))
}

// CancelSlot handles DELETE /api/v1/days/{date}/slots/{slot}
// Cancellation is idempotent: cancelling an unbooked slot succeeds.
func (h *DayHandler) CancelSlot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	date, err := model.ParseDateKey(vars["date"])
	if err != nil {
		WriteError(w, err)
		return
	}

	hour, court, err := model.SlotKey(vars["slot"]).Parse()
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.booking.CancelSlot(r.Context(), date, hour, court); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
