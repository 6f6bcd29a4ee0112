package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateKey is an ISO calendar date (YYYY-MM-DD) identifying one day record
type DateKey string

// ParseDateKey validates a date string and returns it as a key.
// Anything that is not a calendar date in YYYY-MM-DD form returns
// ErrInvalidDate.
func ParseDateKey(s string) (DateKey, error) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateKey(s), nil
}

// Purpose classifies what a day's booking is for
type Purpose string

const (
	PurposeTournament Purpose = "tournament"
	PurposeOther      Purpose = "other"
)

// ParsePurpose maps a stored purpose string to its classification.
// The legacy format stored Japanese labels; anything unrecognised
// decodes to PurposeOther.
func ParsePurpose(s string) Purpose {
	switch s {
	case string(PurposeTournament), "大会":
		return PurposeTournament
	default:
		return PurposeOther
	}
}

// DayRecord is the persisted snapshot of one date's confirmed slots and
// booking metadata. It is created or overwritten wholesale on each
// confirm cycle and deleted when its last confirmed slot is cancelled.
type DayRecord struct {
	Date              DateKey
	Confirmed         map[SlotKey]UserID // confirmed slot -> owning user (empty for legacy records)
	Purpose           Purpose
	PurposeDetail     string
	ResponsiblePerson string
	ResponsibleUserID UserID
	Headcount         int
}

// NewDayRecord creates an empty record for a date
func NewDayRecord(date DateKey) *DayRecord {
	return &DayRecord{
		Date:      date,
		Confirmed: make(map[SlotKey]UserID),
	}
}

// IsEmpty reports whether no confirmed slots remain.
// The repository deletes empty records rather than storing them.
func (r *DayRecord) IsEmpty() bool {
	return len(r.Confirmed) == 0
}

// Clone returns a deep copy. Records are handed between components as
// full copies, never live references.
func (r *DayRecord) Clone() *DayRecord {
	cp := *r
	cp.Confirmed = make(map[SlotKey]UserID, len(r.Confirmed))
	for k, v := range r.Confirmed {
		cp.Confirmed[k] = v
	}
	return &cp
}

// SlotKeys returns the confirmed slot keys sorted by (hour, court)
func (r *DayRecord) SlotKeys() []SlotKey {
	keys := make([]SlotKey, 0, len(r.Confirmed))
	for k := range r.Confirmed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		hi, ci, _ := keys[i].Parse()
		hj, cj, _ := keys[j].Parse()
		if hi != hj {
			return hi < hj
		}
		return ci < cj
	})
	return keys
}

// BookingEntry is one confirmed slot flattened out of a day record,
// used by the global booking listing.
type BookingEntry struct {
	Date              DateKey `json:"date"`
	Hour              int     `json:"hour"`
	Court             Court   `json:"court"`
	Owner             UserID  `json:"ownerId,omitempty"`
	Purpose           Purpose `json:"purpose"`
	PurposeDetail     string  `json:"purposeDetail,omitempty"`
	ResponsiblePerson string  `json:"responsiblePerson"`
	Headcount         int     `json:"numberOfPeople"`
}

// slotOwner is the wire value stored per confirmed slot. Two historical
// variants exist: a bare boolean, and an object carrying the owning
// user's id. Both decode; writes always use the object form.
type slotOwner struct {
	UserID  string
	present bool
}

func (o slotOwner) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UserID string `json:"userId,omitempty"`
	}{UserID: o.UserID})
}

func (o *slotOwner) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte("true")):
		o.present = true
		return nil
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		return nil
	}
	var obj struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.UserID = obj.UserID
	o.present = true
	return nil
}

// headcount decodes from either a JSON number or a numeric string
// (the legacy format stored the raw form input). Unparseable values
// decode to zero rather than failing.
type headcount int

func (h headcount) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(h))
}

func (h *headcount) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*h = headcount(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*h = 0
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		*h = 0
		return nil
	}
	*h = headcount(n)
	return nil
}

// dayRecordWire is the serialized key-value structure for a day record
type dayRecordWire struct {
	ConfirmedReservations map[string]slotOwner `json:"confirmedReservations"`
	Purpose               string               `json:"purpose"`
	PurposeDetail         string               `json:"purposeDetail"`
	ResponsiblePerson     string               `json:"responsiblePerson"`
	ResponsibleUserID     string               `json:"responsibleUserId,omitempty"`
	NumberOfPeople        headcount            `json:"numberOfPeople"`
}

// ToStorageForm serializes the record to its wire form.
// Confirmed slots are always written in the rich per-slot owner form.
func (r *DayRecord) ToStorageForm() ([]byte, error) {
	wire := dayRecordWire{
		ConfirmedReservations: make(map[string]slotOwner, len(r.Confirmed)),
		Purpose:               string(r.Purpose),
		PurposeDetail:         r.PurposeDetail,
		ResponsiblePerson:     r.ResponsiblePerson,
		ResponsibleUserID:     string(r.ResponsibleUserID),
		NumberOfPeople:        headcount(r.Headcount),
	}
	for key, owner := range r.Confirmed {
		wire.ConfirmedReservations[string(key)] = slotOwner{UserID: string(owner), present: true}
	}
	return json.Marshal(wire)
}

// DayRecordFromStorageForm decodes a stored day record.
// Unknown or missing fields decode to safe defaults; slot keys that do
// not parse are dropped. Malformed JSON returns ErrDayCorrupt.
func DayRecordFromStorageForm(date DateKey, data []byte) (*DayRecord, error) {
	var wire dayRecordWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDayCorrupt, err)
	}

	rec := NewDayRecord(date)
	rec.Purpose = ParsePurpose(wire.Purpose)
	rec.PurposeDetail = wire.PurposeDetail
	rec.ResponsiblePerson = wire.ResponsiblePerson
	rec.ResponsibleUserID = UserID(wire.ResponsibleUserID)
	rec.Headcount = int(wire.NumberOfPeople)

	for key, owner := range wire.ConfirmedReservations {
		if !owner.present {
			continue
		}
		slotKey := SlotKey(key)
		if _, _, err := slotKey.Parse(); err != nil {
			continue
		}
		rec.Confirmed[slotKey] = UserID(owner.UserID)
	}
	return rec, nil
}
