package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ReservationSuite struct {
	suite.Suite
}

func TestReservationSuite(t *testing.T) {
	suite.Run(t, new(ReservationSuite))
}

// ParseDateKey tests

func (s *ReservationSuite) TestParseDateKeySucceeds() {
	date, err := ParseDateKey("2025-07-01")
	s.Require().NoError(err)
	s.Equal(DateKey("2025-07-01"), date)
}

func (s *ReservationSuite) TestParseDateKeyRejectsMalformedDates() {
	for _, in := range []string{"", "2025/07/01", "20250701", "2025-13-01", "2025-02-30", "next tuesday"} {
		_, err := ParseDateKey(in)
		s.ErrorIs(err, ErrInvalidDate, "input %q", in)
	}
}

// ParsePurpose tests

func (s *ReservationSuite) TestParsePurposeAcceptsLegacyLabels() {
	s.Equal(PurposeTournament, ParsePurpose("大会"))
	s.Equal(PurposeOther, ParsePurpose("大会以外"))
}

func (s *ReservationSuite) TestParsePurposeDefaultsToOther() {
	s.Equal(PurposeTournament, ParsePurpose("tournament"))
	s.Equal(PurposeOther, ParsePurpose("other"))
	s.Equal(PurposeOther, ParsePurpose(""))
	s.Equal(PurposeOther, ParsePurpose("practice"))
}

// DayRecord tests

func (s *ReservationSuite) TestNewDayRecordIsEmpty() {
	rec := NewDayRecord("2025-07-01")
	s.True(rec.IsEmpty())
	s.Empty(rec.SlotKeys())
}

func (s *ReservationSuite) TestCloneIsDeep() {
	rec := NewDayRecord("2025-07-01")
	rec.Confirmed["9-A"] = "user1"

	cp := rec.Clone()
	cp.Confirmed["10-B"] = "user2"

	s.Len(rec.Confirmed, 1)
	s.Len(cp.Confirmed, 2)
}

func (s *ReservationSuite) TestSlotKeysSorted() {
	rec := NewDayRecord("2025-07-01")
	rec.Confirmed["10-B"] = "u"
	rec.Confirmed["9-B"] = "u"
	rec.Confirmed["10-A"] = "u"
	rec.Confirmed["9-A"] = "u"

	s.Equal([]SlotKey{"9-A", "9-B", "10-A", "10-B"}, rec.SlotKeys())
}

// Storage form tests

func (s *ReservationSuite) TestStorageFormRoundTrip() {
	rec := NewDayRecord("2025-07-01")
	rec.Confirmed["9-A"] = "demo001"
	rec.Confirmed["10-B"] = "demo001"
	rec.Purpose = PurposeTournament
	rec.PurposeDetail = "市民大会"
	rec.ResponsiblePerson = "山田太郎"
	rec.ResponsibleUserID = "demo001"
	rec.Headcount = 8

	data, err := rec.ToStorageForm()
	s.Require().NoError(err)

	decoded, err := DayRecordFromStorageForm("2025-07-01", data)
	s.Require().NoError(err)
	s.Equal(rec, decoded)
}

func (s *ReservationSuite) TestDecodeLegacyBooleanSlots() {
	data := []byte(`{
		"confirmedReservations": {"9-A": true, "10-B": false, "11-A": null},
		"purpose": "大会",
		"purposeDetail": "練習試合",
		"responsiblePerson": "佐藤花子",
		"numberOfPeople": "12"
	}`)

	rec, err := DayRecordFromStorageForm("2025-07-01", data)
	s.Require().NoError(err)

	s.Equal([]SlotKey{"9-A"}, rec.SlotKeys())
	s.Equal(UserID(""), rec.Confirmed["9-A"])
	s.Equal(PurposeTournament, rec.Purpose)
	s.Equal("佐藤花子", rec.ResponsiblePerson)
	s.Equal(12, rec.Headcount)
}

func (s *ReservationSuite) TestDecodeOwnerObjectSlots() {
	data := []byte(`{
		"confirmedReservations": {"9-A": {"userId": "demo002"}},
		"purpose": "大会以外",
		"numberOfPeople": 4
	}`)

	rec, err := DayRecordFromStorageForm("2025-07-01", data)
	s.Require().NoError(err)

	s.Equal(UserID("demo002"), rec.Confirmed["9-A"])
	s.Equal(PurposeOther, rec.Purpose)
	s.Equal(4, rec.Headcount)
}

func (s *ReservationSuite) TestDecodeDropsInvalidSlotKeys() {
	data := []byte(`{"confirmedReservations": {"9-A": true, "25-A": true, "bogus": true}}`)

	rec, err := DayRecordFromStorageForm("2025-07-01", data)
	s.Require().NoError(err)
	s.Equal([]SlotKey{"9-A"}, rec.SlotKeys())
}

func (s *ReservationSuite) TestDecodeMissingFieldsDefaultSafely() {
	rec, err := DayRecordFromStorageForm("2025-07-01", []byte(`{}`))
	s.Require().NoError(err)

	s.True(rec.IsEmpty())
	s.Equal(PurposeOther, rec.Purpose)
	s.Zero(rec.Headcount)
}

func (s *ReservationSuite) TestDecodeUnparseableHeadcountIsZero() {
	data := []byte(`{"numberOfPeople": "about ten"}`)

	rec, err := DayRecordFromStorageForm("2025-07-01", data)
	s.Require().NoError(err)
	s.Zero(rec.Headcount)
}

func (s *ReservationSuite) TestDecodeMalformedJSONIsCorrupt() {
	_, err := DayRecordFromStorageForm("2025-07-01", []byte(`{not json`))
	s.ErrorIs(err, ErrDayCorrupt)
}
