package request

// RegisterRequest is the body for POST /users/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /users/login
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ConfirmBookingRequest is the body for POST /days/{date}/bookings
type ConfirmBookingRequest struct {
	Slots          []string `json:"slots"`
	Purpose        string   `json:"purpose"`
	PurposeDetail  string   `json:"purpose_detail"`
	NumberOfPeople int      `json:"number_of_people"`
}
