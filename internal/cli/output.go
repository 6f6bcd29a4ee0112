package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Day:
		o.printDay(v)
	case ConfirmedBooking:
		o.printConfirmedBooking(v)
	case BookingList:
		o.printBookingList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthResult combines user and token
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Slot response type
type Slot struct {
	Hour    int    `json:"hour"`
	Court   string `json:"court"`
	Status  string `json:"status"`
	OwnerID string `json:"ownerId,omitempty"`
}

// Day response type
type Day struct {
	Date              string `json:"date"`
	Slots             []Slot `json:"slots"`
	Purpose           string `json:"purpose,omitempty"`
	PurposeDetail     string `json:"purposeDetail,omitempty"`
	ResponsiblePerson string `json:"responsiblePerson,omitempty"`
	NumberOfPeople    int    `json:"numberOfPeople,omitempty"`
}

// ConfirmedBooking response type
type ConfirmedBooking struct {
	Date      string         `json:"date"`
	Confirmed []Slot         `json:"confirmed"`
	CourtFees map[string]int `json:"courtFees"`
	TotalFee  int            `json:"totalFee"`
}

// BookingEntry response type
type BookingEntry struct {
	Date              string `json:"date"`
	Hour              int    `json:"hour"`
	Court             string `json:"court"`
	OwnerID           string `json:"ownerId,omitempty"`
	Purpose           string `json:"purpose"`
	PurposeDetail     string `json:"purposeDetail,omitempty"`
	ResponsiblePerson string `json:"responsiblePerson"`
	NumberOfPeople    int    `json:"numberOfPeople"`
}

// BookingList response type
type BookingList struct {
	Bookings []BookingEntry `json:"bookings"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Name, u.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printDay(d Day) {
	fmt.Printf("Date: %s\n", d.Date)
	if d.Purpose != "" {
		fmt.Printf("Purpose: %s", d.Purpose)
		if d.PurposeDetail != "" {
			fmt.Printf(" (%s)", d.PurposeDetail)
		}
		fmt.Println()
	}
	if d.ResponsiblePerson != "" {
		fmt.Printf("Responsible: %s\n", d.ResponsiblePerson)
	}
	if d.NumberOfPeople > 0 {
		fmt.Printf("People: %d\n", d.NumberOfPeople)
	}

	// Gather the court columns in a stable order
	courts := map[string]bool{}
	for _, s := range d.Slots {
		courts[s.Court] = true
	}
	courtList := make([]string, 0, len(courts))
	for c := range courts {
		courtList = append(courtList, c)
	}
	sort.Strings(courtList)

	status := map[int]map[string]string{}
	for _, s := range d.Slots {
		if status[s.Hour] == nil {
			status[s.Hour] = map[string]string{}
		}
		status[s.Hour][s.Court] = statusMark(s.Status)
	}

	hours := make([]int, 0, len(status))
	for h := range status {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	fmt.Print("Hour ")
	for _, c := range courtList {
		fmt.Printf("| %s ", c)
	}
	fmt.Println()
	for _, h := range hours {
		fmt.Printf("%4d ", h)
		for _, c := range courtList {
			fmt.Printf("| %s ", status[h][c])
		}
		fmt.Println()
	}
}

func statusMark(status string) string {
	switch status {
	case "confirmed":
		return "x"
	case "selected":
		return "*"
	default:
		return "."
	}
}

func (o *Output) printConfirmedBooking(b ConfirmedBooking) {
	fmt.Printf("Booking confirmed for %s\n", b.Date)
	for _, s := range b.Confirmed {
		fmt.Printf("  - %d:00 court %s\n", s.Hour, s.Court)
	}

	courts := make([]string, 0, len(b.CourtFees))
	for c := range b.CourtFees {
		courts = append(courts, c)
	}
	sort.Strings(courts)
	for _, c := range courts {
		fmt.Printf("Court %s fee: %d yen\n", c, b.CourtFees[c])
	}
	fmt.Printf("Total fee: %d yen\n", b.TotalFee)
}

func (o *Output) printBookingList(l BookingList) {
	if len(l.Bookings) == 0 {
		fmt.Println("No bookings")
		return
	}

	fmt.Printf("Bookings (%d):\n", len(l.Bookings))
	for _, b := range l.Bookings {
		fmt.Printf("  %s %2d:00 court %s - %s", b.Date, b.Hour, b.Court, b.ResponsiblePerson)
		if b.Purpose != "" {
			fmt.Printf(" (%s)", b.Purpose)
		}
		fmt.Println()
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
