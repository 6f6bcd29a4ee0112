package response

import (
	"courtbook/internal/model"
	"courtbook/internal/services/booking"
	"courtbook/internal/services/grid"
	"courtbook/internal/services/session"
)

// User is a user snapshot without credentials
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserFromModel converts a model user to its response form
func UserFromModel(u *model.User) User {
	return User{
		ID:   string(u.ID),
		Name: u.Name,
	}
}

// Session is the response to a successful login or registration
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SessionFromStore converts a session to its response form
func SessionFromStore(s *session.Session) Session {
	return Session{
		Token: s.Token,
		User:  UserFromModel(&s.User),
	}
}

// Slot is one grid cell in a day view
type Slot struct {
	Hour    int    `json:"hour"`
	Court   string `json:"court"`
	Status  string `json:"status"`
	OwnerID string `json:"ownerId,omitempty"`
}

// Day is the full grid view for one date
type Day struct {
	Date              string `json:"date"`
	Slots             []Slot `json:"slots"`
	Purpose           string `json:"purpose,omitempty"`
	PurposeDetail     string `json:"purposeDetail,omitempty"`
	ResponsiblePerson string `json:"responsiblePerson,omitempty"`
	NumberOfPeople    int    `json:"numberOfPeople,omitempty"`
}

// DayFromGrid builds a day view from a restored grid and its record.
// The record may be nil for dates with no reservations.
func DayFromGrid(date model.DateKey, g *grid.Grid, record *model.DayRecord) Day {
	day := Day{
		Date:  string(date),
		Slots: make([]Slot, 0, 2*(model.LastHour-model.FirstHour+1)),
	}

	for hour := model.FirstHour; hour <= model.LastHour; hour++ {
		for _, court := range model.Courts() {
			status, err := g.Status(hour, court)
			if err != nil {
				continue
			}
			slot := Slot{
				Hour:   hour,
				Court:  string(court),
				Status: string(status),
			}
			if owner, ok := g.Owner(hour, court); ok {
				slot.OwnerID = string(owner)
			}
			day.Slots = append(day.Slots, slot)
		}
	}

	if record != nil {
		day.Purpose = string(record.Purpose)
		day.PurposeDetail = record.PurposeDetail
		day.ResponsiblePerson = record.ResponsiblePerson
		day.NumberOfPeople = record.Headcount
	}
	return day
}

// ConfirmedBooking is the response to a successful confirmation
type ConfirmedBooking struct {
	Date      string         `json:"date"`
	Confirmed []Slot         `json:"confirmed"`
	CourtFees map[string]int `json:"courtFees"`
	TotalFee  int            `json:"totalFee"`
}

// ConfirmedBookingFromReceipt converts a booking receipt to its response form
func ConfirmedBookingFromReceipt(r *booking.Receipt) ConfirmedBooking {
	resp := ConfirmedBooking{
		Date:      string(r.Record.Date),
		Confirmed: make([]Slot, 0, len(r.Confirmed)),
		CourtFees: make(map[string]int, len(r.CourtFees)),
		TotalFee:  r.TotalFee,
	}
	for _, slot := range r.Confirmed {
		resp.Confirmed = append(resp.Confirmed, Slot{
			Hour:    slot.Hour,
			Court:   string(slot.Court),
			Status:  string(slot.Status),
			OwnerID: string(slot.Owner),
		})
	}
	for court, fee := range r.CourtFees {
		resp.CourtFees[string(court)] = fee
	}
	return resp
}

// BookingList is the global booking listing
type BookingList struct {
	Bookings []model.BookingEntry `json:"bookings"`
}
