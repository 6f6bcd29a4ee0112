package grid

import (
	"fmt"

	"courtbook/internal/model"
)

// FeePerHour is the court fee for one slot-hour, in yen
const FeePerHour = 500

// Grid tracks the booking state of every (hour, court) slot for the
// currently viewed date: 13 hourly slots per court across two courts.
//
// Selection state is transient and local to the viewed date; navigating
// to another date discards it via RestoreConfirmed. A Grid belongs to a
// single request or view flow and is not safe for concurrent use.
type Grid struct {
	status map[model.SlotKey]model.SlotStatus
	owners map[model.SlotKey]model.UserID
}

// New creates a grid with every slot available
func New() *Grid {
	g := &Grid{}
	g.Reset()
	return g
}

// Reset returns every slot to available and clears all selections
func (g *Grid) Reset() {
	g.status = make(map[model.SlotKey]model.SlotStatus, 2*(model.LastHour-model.FirstHour+1))
	g.owners = make(map[model.SlotKey]model.UserID)
	for hour := model.FirstHour; hour <= model.LastHour; hour++ {
		for _, court := range model.Courts() {
			g.status[model.NewSlotKey(hour, court)] = model.SlotAvailable
		}
	}
}

// Status returns the current status of a slot
func (g *Grid) Status(hour int, court model.Court) (model.SlotStatus, error) {
	if !model.ValidSlot(hour, court) {
		return "", fmt.Errorf("%w: hour %d court %q", model.ErrInvalidSlot, hour, court)
	}
	return g.status[model.NewSlotKey(hour, court)], nil
}

// Owner returns the owning user of a confirmed slot, if any
func (g *Grid) Owner(hour int, court model.Court) (model.UserID, bool) {
	owner, ok := g.owners[model.NewSlotKey(hour, court)]
	return owner, ok
}

// Toggle flips a slot between available and selected.
// Confirmed slots are left untouched; releasing one requires an
// explicit cancel through the repository.
func (g *Grid) Toggle(hour int, court model.Court) (model.SlotStatus, error) {
	if !model.ValidSlot(hour, court) {
		return "", fmt.Errorf("%w: hour %d court %q", model.ErrInvalidSlot, hour, court)
	}

	key := model.NewSlotKey(hour, court)
	switch g.status[key] {
	case model.SlotConfirmed:
		// no-op
	case model.SlotSelected:
		g.status[key] = model.SlotAvailable
	default:
		g.status[key] = model.SlotSelected
	}
	return g.status[key], nil
}

// SelectedSlots returns the tentatively selected slots sorted by
// (hour ascending, court ascending)
func (g *Grid) SelectedSlots() []model.Slot {
	return g.slotsWithStatus(model.SlotSelected)
}

// ConfirmedSlots returns the confirmed slots with their owners, sorted
// by (hour ascending, court ascending)
func (g *Grid) ConfirmedSlots() []model.Slot {
	return g.slotsWithStatus(model.SlotConfirmed)
}

func (g *Grid) slotsWithStatus(want model.SlotStatus) []model.Slot {
	var slots []model.Slot
	for key, status := range g.status {
		if status != want {
			continue
		}
		hour, court, err := key.Parse()
		if err != nil {
			continue
		}
		slots = append(slots, model.Slot{
			Hour:   hour,
			Court:  court,
			Status: status,
			Owner:  g.owners[key],
		})
	}
	model.SortSlots(slots)
	return slots
}

// ConfirmSelected promotes every selected slot to confirmed, tagged with
// the acting user, and clears the selection. It returns the newly
// confirmed slots; an empty selection confirms nothing and returns an
// empty set, which callers must reject before building a record.
func (g *Grid) ConfirmSelected(user model.User) []model.Slot {
	var confirmed []model.Slot
	for key, status := range g.status {
		if status != model.SlotSelected {
			continue
		}
		g.status[key] = model.SlotConfirmed
		g.owners[key] = user.ID

		hour, court, err := key.Parse()
		if err != nil {
			continue
		}
		confirmed = append(confirmed, model.Slot{
			Hour:   hour,
			Court:  court,
			Status: model.SlotConfirmed,
			Owner:  user.ID,
		})
	}
	model.SortSlots(confirmed)
	return confirmed
}

// RestoreConfirmed rebuilds the grid from a day record: every slot is
// reset to available, then the record's slots are marked confirmed with
// their stored owners. Used on date navigation.
func (g *Grid) RestoreConfirmed(record *model.DayRecord) {
	g.Reset()
	if record == nil {
		return
	}
	for key, owner := range record.Confirmed {
		if _, _, err := key.Parse(); err != nil {
			continue
		}
		g.status[key] = model.SlotConfirmed
		g.owners[key] = owner
	}
}

// FeeForCourt returns the fee for the currently selected hours on one
// court. Confirmed slots are already-committed bookings and are
// excluded from the live fee preview.
func (g *Grid) FeeForCourt(court model.Court) int {
	hours := 0
	for _, slot := range g.SelectedSlots() {
		if slot.Court == court {
			hours++
		}
	}
	return hours * FeePerHour
}

// TotalFee returns the fee across all courts for the current selection
func (g *Grid) TotalFee() int {
	total := 0
	for _, court := range model.Courts() {
		total += g.FeeForCourt(court)
	}
	return total
}
