package workhour

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/viniciusmecosta/spe-api/internal/adjustment"
	"github.com/viniciusmecosta/spe-api/internal/timerecord"
)

var today = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

// monday is a regular working day well before today.
var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func punchAt(recordType string, day time.Time, hour, minute int) timerecord.TimeRecord {
	return timerecord.TimeRecord{
		RecordType:     recordType,
		RecordDatetime: time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()),
	}
}

func floatptr(f float64) *float64 { return &f }

func TestDailyBalance_NormalScheduledDay(t *testing.T) {
	result := DailyBalance(DayInput{
		Date: monday,
		Punches: []timerecord.TimeRecord{
			punchAt(timerecord.TypeEntry, monday, 8, 0),
			punchAt(timerecord.TypeExit, monday, 16, 0),
		},
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
	}, today)

	assert.Equal(t, int64(28800), result.WorkedSeconds)
	assert.Equal(t, int64(28800), result.ExpectedSeconds)
	assert.Equal(t, int64(0), result.BalanceSeconds)
	assert.Equal(t, StatusNormal, result.Status)
	assert.False(t, result.Absence)
	assert.Equal(t, []string{"08:00"}, result.Entries)
	assert.Equal(t, []string{"16:00"}, result.Exits)
}

func TestDailyBalance_UnpairedEntryStillListed(t *testing.T) {
	result := DailyBalance(DayInput{
		Date: monday,
		Punches: []timerecord.TimeRecord{
			punchAt(timerecord.TypeEntry, monday, 8, 0),
		},
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
	}, today)

	assert.Equal(t, []string{"08:00"}, result.Entries)
	assert.Empty(t, result.Exits)
	assert.Equal(t, int64(0), result.WorkedSeconds, "an open entry contributes no worked time")
}

func TestDailyBalance_OrphanExitStillListed(t *testing.T) {
	result := DailyBalance(DayInput{
		Date: monday,
		Punches: []timerecord.TimeRecord{
			punchAt(timerecord.TypeExit, monday, 12, 0),
			punchAt(timerecord.TypeEntry, monday, 13, 0),
			punchAt(timerecord.TypeExit, monday, 17, 0),
		},
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
	}, today)

	assert.Equal(t, []string{"13:00"}, result.Entries)
	assert.Equal(t, []string{"12:00", "17:00"}, result.Exits)
	assert.Equal(t, int64(4*3600), result.WorkedSeconds)
}

func TestDailyBalance_WaiverTopsUpShortfall(t *testing.T) {
	result := DailyBalance(DayInput{
		Date: monday,
		Punches: []timerecord.TimeRecord{
			punchAt(timerecord.TypeEntry, monday, 8, 0),
			punchAt(timerecord.TypeExit, monday, 14, 0),
		},
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
		Adjustments: []adjustment.AdjustmentRequest{
			{AdjustmentType: adjustment.TypeWaiver, TargetDate: monday},
		},
	}, today)

	assert.Equal(t, int64(8*3600), result.WorkedSeconds, "credit must top worked up to expected")
	assert.Equal(t, int64(0), result.MissingSeconds)
	assert.False(t, result.Absence)
	assert.Equal(t, "Abonado (2h00)", result.Status)
}

func TestDailyBalance_ExplicitAmountNeverReducesWorked(t *testing.T) {
	result := DailyBalance(DayInput{
		Date: monday,
		Punches: []timerecord.TimeRecord{
			punchAt(timerecord.TypeEntry, monday, 8, 0),
			punchAt(timerecord.TypeExit, monday, 16, 0),
		},
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
		Adjustments: []adjustment.AdjustmentRequest{
			{AdjustmentType: adjustment.TypeWaiver, TargetDate: monday, AmountHours: floatptr(2)},
		},
	}, today)

	assert.Equal(t, int64(10*3600), result.WorkedSeconds, "explicit grant adds on top of worked time")
	assert.Equal(t, int64(2*3600), result.ExtraSeconds)
}

func TestDailyBalance_CertificateWinsOverWaiver(t *testing.T) {
	result := DailyBalance(DayInput{
		Date:             monday,
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
		Adjustments: []adjustment.AdjustmentRequest{
			{AdjustmentType: adjustment.TypeWaiver, TargetDate: monday, AmountHours: floatptr(4)},
			{AdjustmentType: adjustment.TypeCertificate, TargetDate: monday},
		},
	}, today)

	assert.Contains(t, result.Status, StatusCertificate)
	assert.Equal(t, int64(8*3600), result.WorkedSeconds, "certificate supplies the credit, not the waiver amount")
}

func TestDailyBalance_CorruptIntervalExcluded(t *testing.T) {
	farExit := punchAt(timerecord.TypeExit, monday.AddDate(0, 0, 2), 9, 0)
	result := DailyBalance(DayInput{
		Date: monday,
		Punches: []timerecord.TimeRecord{
			punchAt(timerecord.TypeEntry, monday, 8, 0),
			farExit,
		},
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
	}, today)

	assert.Equal(t, int64(0), result.WorkedSeconds, "an interval beyond 24h must not poison the total")
}

func TestDailyBalance_NoScheduleMeansZeroBalance(t *testing.T) {
	result := DailyBalance(DayInput{
		Date: monday,
		Punches: []timerecord.TimeRecord{
			punchAt(timerecord.TypeEntry, monday, 8, 0),
			punchAt(timerecord.TypeExit, monday, 12, 0),
		},
		HasSchedule: false,
	}, today)

	assert.Equal(t, int64(4*3600), result.WorkedSeconds)
	assert.Equal(t, int64(0), result.ExpectedSeconds)
	assert.Equal(t, int64(0), result.BalanceSeconds)
	assert.False(t, result.Absence)
}

func TestDailyBalance_HolidayAndFuture(t *testing.T) {
	holiday := DailyBalance(DayInput{
		Date:             monday,
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
		IsHoliday:        true,
	}, today)
	assert.Equal(t, int64(0), holiday.ExpectedSeconds)
	assert.Equal(t, StatusHoliday, holiday.Status)
	assert.False(t, holiday.Absence)

	future := DailyBalance(DayInput{
		Date:             today.AddDate(0, 0, 3),
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
	}, today)
	assert.Equal(t, int64(0), future.ExpectedSeconds)
	assert.Equal(t, "", future.Status)
	assert.False(t, future.Absence)
}

func TestDailyBalance_AbsenceAndWeekend(t *testing.T) {
	absence := DailyBalance(DayInput{
		Date:             monday,
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
	}, today)
	assert.Equal(t, StatusAbsence, absence.Status)
	assert.True(t, absence.Absence)
	assert.Equal(t, int64(8*3600), absence.MissingSeconds)

	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	weekend := DailyBalance(DayInput{
		Date:        saturday,
		HasSchedule: true,
	}, today)
	assert.Equal(t, StatusWeekend, weekend.Status)
	assert.False(t, weekend.Absence)
}

func TestDailyBalance_PairingConservation(t *testing.T) {
	result := DailyBalance(DayInput{
		Date: monday,
		Punches: []timerecord.TimeRecord{
			punchAt(timerecord.TypeEntry, monday, 8, 0),
			punchAt(timerecord.TypeExit, monday, 12, 0),
			punchAt(timerecord.TypeEntry, monday, 13, 0),
			punchAt(timerecord.TypeExit, monday, 17, 30),
		},
		ScheduledSeconds: 8 * 3600,
		HasSchedule:      true,
	}, today)

	assert.Equal(t, int64(4*3600+4*3600+1800), result.WorkedSeconds)
	assert.Equal(t, int64(1800), result.ExtraSeconds)
}
