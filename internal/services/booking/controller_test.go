package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"courtbook/internal/model"
	"courtbook/internal/services/grid"
	"courtbook/internal/storage"
	"courtbook/internal/storage/memory"
	"courtbook/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	controller *Controller
	ctx        context.Context
	user       *model.User
	details    Details
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.controller = NewController(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
	s.user = &model.User{ID: "demo001", Name: "山田太郎"}
	s.details = Details{
		Purpose:       model.PurposeTournament,
		PurposeDetail: "市民大会",
		Headcount:     8,
	}
}

// ConfirmBooking tests

func (s *ControllerSuite) TestConfirmBookingSucceeds() {
	receipt, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A", "10-B"}, s.details, s.user)
	s.Require().NoError(err)

	s.Len(receipt.Confirmed, 2)
	s.Equal(model.UserID("demo001"), receipt.Confirmed[0].Owner)
	s.Equal("2025-07-01", string(receipt.Record.Date))
	s.Equal("山田太郎", receipt.Record.ResponsiblePerson)
	s.Equal(model.UserID("demo001"), receipt.Record.ResponsibleUserID)
	s.Equal(8, receipt.Record.Headcount)
}

func (s *ControllerSuite) TestConfirmBookingFeeBreakdown() {
	receipt, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A", "10-A", "9-B"}, s.details, s.user)
	s.Require().NoError(err)

	s.Equal(2*grid.FeePerHour, receipt.CourtFees[model.CourtA])
	s.Equal(1*grid.FeePerHour, receipt.CourtFees[model.CourtB])
	s.Equal(3*grid.FeePerHour, receipt.TotalFee)
}

func (s *ControllerSuite) TestConfirmBookingPersistsRecord() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, s.user)
	s.Require().NoError(err)

	record, err := s.controller.LoadDay(s.ctx, "2025-07-01")
	s.Require().NoError(err)
	s.Equal(model.UserID("demo001"), record.Confirmed["9-A"])
	s.Equal(model.PurposeTournament, record.Purpose)
}

func (s *ControllerSuite) TestConfirmBookingRoundTripThroughGrid() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A", "15-B"}, s.details, s.user)
	s.Require().NoError(err)

	g := grid.New()
	s.Require().NoError(s.controller.RestoreGrid(s.ctx, "2025-07-01", g))

	status, _ := g.Status(9, model.CourtA)
	s.Equal(model.SlotConfirmed, status)
	status, _ = g.Status(15, model.CourtB)
	s.Equal(model.SlotConfirmed, status)
	status, _ = g.Status(10, model.CourtA)
	s.Equal(model.SlotAvailable, status)
}

func (s *ControllerSuite) TestConfirmBookingRequiresUser() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, nil)
	s.ErrorIs(err, model.ErrNotAuthenticated)
}

func (s *ControllerSuite) TestConfirmBookingRequiresSlots() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", nil, s.details, s.user)
	s.ErrorIs(err, model.ErrNoSlotsSelected)
}

func (s *ControllerSuite) TestConfirmBookingRejectsInvalidSlot() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"25-A"}, s.details, s.user)
	s.ErrorIs(err, model.ErrInvalidSlot)
}

func (s *ControllerSuite) TestConfirmBookingRejectsAlreadyConfirmedSlot() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, s.user)
	s.Require().NoError(err)

	other := &model.User{ID: "demo002", Name: "佐藤花子"}
	_, err = s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, other)
	s.ErrorIs(err, model.ErrSlotUnavailable)
}

func (s *ControllerSuite) TestConfirmBookingToleratesDuplicateKeys() {
	receipt, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A", "9-A"}, s.details, s.user)
	s.Require().NoError(err)
	s.Len(receipt.Confirmed, 1)
	s.Equal(grid.FeePerHour, receipt.TotalFee)
}

func (s *ControllerSuite) TestConfirmBookingCarriesEarlierOwners() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, s.user)
	s.Require().NoError(err)

	other := &model.User{ID: "demo002", Name: "佐藤花子"}
	_, err = s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"10-A"}, s.details, other)
	s.Require().NoError(err)

	record, err := s.controller.LoadDay(s.ctx, "2025-07-01")
	s.Require().NoError(err)
	s.Equal(model.UserID("demo001"), record.Confirmed["9-A"])
	s.Equal(model.UserID("demo002"), record.Confirmed["10-A"])
	// Metadata reflects the latest confirmation
	s.Equal("佐藤花子", record.ResponsiblePerson)
}

func (s *ControllerSuite) TestConfirmBookingIsolatedPerDate() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, s.user)
	s.Require().NoError(err)

	// The same slot on another date is still free
	_, err = s.controller.ConfirmBooking(s.ctx, "2025-07-02", []model.SlotKey{"9-A"}, s.details, s.user)
	s.NoError(err)
}

// CancelSlot tests

func (s *ControllerSuite) TestCancelSlotRemovesOneSlot() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A", "10-B"}, s.details, s.user)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.CancelSlot(s.ctx, "2025-07-01", 9, model.CourtA))

	record, err := s.controller.LoadDay(s.ctx, "2025-07-01")
	s.Require().NoError(err)
	s.Equal([]model.SlotKey{"10-B"}, record.SlotKeys())
}

func (s *ControllerSuite) TestCancelLastSlotDeletesRecord() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, s.user)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.CancelSlot(s.ctx, "2025-07-01", 9, model.CourtA))

	_, err = s.controller.LoadDay(s.ctx, "2025-07-01")
	s.ErrorIs(err, model.ErrDayNotFound)

	dates, err := s.storage.ListDates(s.ctx)
	s.Require().NoError(err)
	s.Empty(dates)
}

func (s *ControllerSuite) TestCancelSlotOnAbsentDateIsNoop() {
	s.NoError(s.controller.CancelSlot(s.ctx, "2025-07-01", 9, model.CourtA))
}

func (s *ControllerSuite) TestCancelUnbookedSlotIsNoop() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, s.user)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.CancelSlot(s.ctx, "2025-07-01", 10, model.CourtB))

	record, err := s.controller.LoadDay(s.ctx, "2025-07-01")
	s.Require().NoError(err)
	s.Equal([]model.SlotKey{"9-A"}, record.SlotKeys())
}

func (s *ControllerSuite) TestCancelSlotRejectsInvalidSlot() {
	err := s.controller.CancelSlot(s.ctx, "2025-07-01", 25, model.CourtA)
	s.ErrorIs(err, model.ErrInvalidSlot)
}

func (s *ControllerSuite) TestCancelThenRebook() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, s.user)
	s.Require().NoError(err)

	s.Require().NoError(s.controller.CancelSlot(s.ctx, "2025-07-01", 9, model.CourtA))

	other := &model.User{ID: "demo002", Name: "佐藤花子"}
	_, err = s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, other)
	s.Require().NoError(err)

	record, err := s.controller.LoadDay(s.ctx, "2025-07-01")
	s.Require().NoError(err)
	s.Equal(model.UserID("demo002"), record.Confirmed["9-A"])
}

// RestoreGrid tests

func (s *ControllerSuite) TestRestoreGridAbsentDateResets() {
	g := grid.New()
	_, _ = g.Toggle(9, model.CourtA)

	s.Require().NoError(s.controller.RestoreGrid(s.ctx, "2025-07-01", g))

	s.Empty(g.SelectedSlots())
	s.Empty(g.ConfirmedSlots())
}

// ListAll tests

func (s *ControllerSuite) TestListAllEmptyStorage() {
	entries, err := s.controller.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ControllerSuite) TestListAllFlattensAndOrders() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-02", []model.SlotKey{"9-A"}, s.details, s.user)
	s.Require().NoError(err)
	_, err = s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"10-B", "9-B"}, s.details, s.user)
	s.Require().NoError(err)

	entries, err := s.controller.ListAll(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(entries, 3)
	s.Equal(model.DateKey("2025-07-01"), entries[0].Date)
	s.Equal(9, entries[0].Hour)
	s.Equal(model.CourtB, entries[0].Court)
	s.Equal(model.DateKey("2025-07-01"), entries[1].Date)
	s.Equal(10, entries[1].Hour)
	s.Equal(model.DateKey("2025-07-02"), entries[2].Date)
	s.Equal(model.UserID("demo001"), entries[2].Owner)
	s.Equal("山田太郎", entries[2].ResponsiblePerson)
}

func (s *ControllerSuite) TestListAllSkipsCorruptDates() {
	_, err := s.controller.ConfirmBooking(s.ctx, "2025-07-01", []model.SlotKey{"9-A"}, s.details, s.user)
	s.Require().NoError(err)

	corrupting := &corruptDayStorage{Storage: s.storage, date: "2025-07-02"}
	controller := NewController(corrupting, testutil.NopLogger())

	entries, err := controller.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(entries, 1)
	s.Equal(model.DateKey("2025-07-01"), entries[0].Date)
}

// LoadDay tests

func (s *ControllerSuite) TestLoadDayCorruptRecordReadsAsAbsent() {
	corrupting := &corruptDayStorage{Storage: s.storage, date: "2025-07-01"}
	controller := NewController(corrupting, testutil.NopLogger())

	_, err := controller.LoadDay(s.ctx, "2025-07-01")
	s.ErrorIs(err, model.ErrDayNotFound)
}

// corruptDayStorage reports one date as unreadable while passing the rest
// through to the wrapped backend.
type corruptDayStorage struct {
	storage.Storage
	date model.DateKey
}

func (c *corruptDayStorage) GetDay(ctx context.Context, date model.DateKey) (*model.DayRecord, error) {
	if date == c.date {
		return nil, model.ErrDayCorrupt
	}
	return c.Storage.GetDay(ctx, date)
}

func (c *corruptDayStorage) ListDates(ctx context.Context) ([]model.DateKey, error) {
	dates, err := c.Storage.ListDates(ctx)
	if err != nil {
		return nil, err
	}
	return append(dates, c.date), nil
}
