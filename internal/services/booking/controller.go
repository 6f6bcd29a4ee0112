package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"courtbook/internal/model"
	"courtbook/internal/services/grid"
	"courtbook/internal/storage"
)

// Details carries the booking metadata entered alongside a confirmation
type Details struct {
	Purpose       model.Purpose
	PurposeDetail string
	Headcount     int
}

// Receipt is the result of a successful confirmation
type Receipt struct {
	Record    *model.DayRecord
	Confirmed []model.Slot
	CourtFees map[model.Court]int
	TotalFee  int
}

// Controller owns all durable reservation records: saving and loading
// day records, the confirm protocol, per-slot cancellation, and the
// global booking listing.
type Controller struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewController creates a booking controller
func NewController(store storage.Storage, logger *slog.Logger) *Controller {
	return &Controller{
		storage: store,
		logger:  logger,
	}
}

// LoadDay returns the record for a date. A date with no record, or one
// whose stored content cannot be parsed, surfaces as ErrDayNotFound;
// parse failures are logged but never fatal.
func (c *Controller) LoadDay(ctx context.Context, date model.DateKey) (*model.DayRecord, error) {
	record, err := c.storage.GetDay(ctx, date)
	if err != nil {
		if errors.Is(err, model.ErrDayCorrupt) {
			c.logger.Warn("discarding unreadable day record",
				slog.String("date", string(date)),
				slog.String("error", err.Error()),
			)
			return nil, model.ErrDayNotFound
		}
		return nil, err
	}
	return record, nil
}

// SaveDay overwrites the record at its date wholesale. There is no merge
// with prior content: last write wins.
func (c *Controller) SaveDay(ctx context.Context, record *model.DayRecord) error {
	return c.storage.SaveDay(ctx, record)
}

// RestoreGrid loads a date's record and rebuilds the grid from it.
// A date with no record restores to all-available.
func (c *Controller) RestoreGrid(ctx context.Context, date model.DateKey, g *grid.Grid) error {
	record, err := c.LoadDay(ctx, date)
	if err != nil {
		if errors.Is(err, model.ErrDayNotFound) {
			g.Reset()
			return nil
		}
		return err
	}
	g.RestoreConfirmed(record)
	return nil
}

// ConfirmBooking commits the requested slots for a date on behalf of the
// acting user and persists the resulting day record wholesale.
//
// The full current grid state is re-saved, not a delta: previously
// confirmed slots are carried into the new record with their original
// owners, while the metadata reflects this confirmation.
func (c *Controller) ConfirmBooking(
	ctx context.Context,
	date model.DateKey,
	slots []model.SlotKey,
	details Details,
	user *model.User,
) (*Receipt, error) {
	if user == nil {
		return nil, model.ErrNotAuthenticated
	}
	if len(slots) == 0 {
		return nil, model.ErrNoSlotsSelected
	}

	g := grid.New()
	if err := c.RestoreGrid(ctx, date, g); err != nil {
		return nil, err
	}

	for _, key := range slots {
		hour, court, err := key.Parse()
		if err != nil {
			return nil, err
		}
		status, err := g.Status(hour, court)
		if err != nil {
			return nil, err
		}
		switch status {
		case model.SlotConfirmed:
			return nil, fmt.Errorf("%w: %s", model.ErrSlotUnavailable, key)
		case model.SlotSelected:
			// duplicate key in the request
			continue
		}
		if _, err := g.Toggle(hour, court); err != nil {
			return nil, err
		}
	}

	// Fee preview covers the selection only, before it is committed
	courtFees := make(map[model.Court]int, len(model.Courts()))
	for _, court := range model.Courts() {
		courtFees[court] = g.FeeForCourt(court)
	}
	totalFee := g.TotalFee()

	confirmed := g.ConfirmSelected(*user)
	if len(confirmed) == 0 {
		return nil, model.ErrNoSlotsSelected
	}

	record := model.NewDayRecord(date)
	for _, slot := range g.ConfirmedSlots() {
		record.Confirmed[slot.Key()] = slot.Owner
	}
	record.Purpose = details.Purpose
	record.PurposeDetail = details.PurposeDetail
	record.ResponsiblePerson = user.Name
	record.ResponsibleUserID = user.ID
	record.Headcount = details.Headcount

	if err := c.storage.SaveDay(ctx, record); err != nil {
		return nil, err
	}

	c.logger.Info("booking confirmed",
		slog.String("date", string(date)),
		slog.Int("slots", len(confirmed)),
		slog.String("user_id", string(user.ID)),
	)

	return &Receipt{
		Record:    record,
		Confirmed: confirmed,
		CourtFees: courtFees,
		TotalFee:  totalFee,
	}, nil
}

// CancelSlot removes one confirmed slot from a date's record. When the
// last slot goes, the date's record is deleted entirely. Cancelling on
// a date with no record, or a slot that is not confirmed, is a no-op.
func (c *Controller) CancelSlot(ctx context.Context, date model.DateKey, hour int, court model.Court) error {
	if !model.ValidSlot(hour, court) {
		return fmt.Errorf("%w: hour %d court %q", model.ErrInvalidSlot, hour, court)
	}

	record, err := c.LoadDay(ctx, date)
	if err != nil {
		if errors.Is(err, model.ErrDayNotFound) {
			return nil
		}
		return err
	}

	key := model.NewSlotKey(hour, court)
	if _, ok := record.Confirmed[key]; !ok {
		return nil
	}
	delete(record.Confirmed, key)

	if record.IsEmpty() {
		if err := c.storage.DeleteDay(ctx, date); err != nil {
			return err
		}
		c.logger.Info("day record removed after last cancellation",
			slog.String("date", string(date)))
		return nil
	}
	return c.storage.SaveDay(ctx, record)
}

// ListAll scans every persisted date and flattens confirmed slots into
// individual booking entries sorted by (date, hour, court). A date whose
// record cannot be read is skipped with a diagnostic; it never aborts
// the scan of other dates.
func (c *Controller) ListAll(ctx context.Context) ([]model.BookingEntry, error) {
	dates, err := c.storage.ListDates(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	var entries []model.BookingEntry
	for _, date := range dates {
		record, err := c.storage.GetDay(ctx, date)
		if err != nil {
			if errors.Is(err, model.ErrDayNotFound) || errors.Is(err, model.ErrDayCorrupt) {
				c.logger.Warn("skipping unreadable day record in listing",
					slog.String("date", string(date)),
					slog.String("error", err.Error()),
				)
				continue
			}
			return nil, err
		}

		for _, key := range record.SlotKeys() {
			hour, court, err := key.Parse()
			if err != nil {
				continue
			}
			entries = append(entries, model.BookingEntry{
				Date:              date,
				Hour:              hour,
				Court:             court,
				Owner:             record.Confirmed[key],
				Purpose:           record.Purpose,
				PurposeDetail:     record.PurposeDetail,
				ResponsiblePerson: record.ResponsiblePerson,
				Headcount:         record.Headcount,
			})
		}
	}
	return entries, nil
}
