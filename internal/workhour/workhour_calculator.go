package workhour

import (
	"sort"
	"time"

	"github.com/viniciusmecosta/spe-api/internal/adjustment"
	"github.com/viniciusmecosta/spe-api/internal/anomaly"
	"github.com/viniciusmecosta/spe-api/internal/timerecord"
)

// Portuguese status labels are a compatibility contract with the web
// client and exported reports.
const (
	StatusNormal      = "Normal"
	StatusAbsence     = "Falta"
	StatusHoliday     = "Feriado"
	StatusWeekend     = "Fim de Semana"
	StatusWaived      = "Abonado"
	StatusCertificate = "Atestado"
)

// Intervals longer than this are treated as corrupt (a lost EXIT paired
// with a much later one) and excluded from the worked total.
const maxIntervalSeconds = 24 * 60 * 60

// DayInput is everything the per-day balance needs, pre-fetched by the
// service so the computation itself stays pure.
type DayInput struct {
	Date             time.Time
	Punches          []timerecord.TimeRecord
	ScheduledSeconds int64
	HasSchedule      bool
	IsHoliday        bool
	Adjustments      []adjustment.AdjustmentRequest
}

type DayResult struct {
	Date            string   `json:"date"`
	Weekday         string   `json:"weekday"`
	WorkedSeconds   int64    `json:"worked_seconds"`
	ExpectedSeconds int64    `json:"expected_seconds"`
	BalanceSeconds  int64    `json:"balance_seconds"`
	ExtraSeconds    int64    `json:"extra_seconds"`
	MissingSeconds  int64    `json:"missing_seconds"`
	Status          string   `json:"status"`
	Absence         bool     `json:"absence"`
	Entries         []string `json:"entries"`
	Exits           []string `json:"exits"`
}

func isWeekend(date time.Time) bool {
	return date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
}

// excusedAdjustment picks the adjustment that governs an excused day.
// When both a CERTIFICATE and a WAIVER cover the same date, the
// CERTIFICATE wins for both the label and the credit amount.
func excusedAdjustment(adjustments []adjustment.AdjustmentRequest) *adjustment.AdjustmentRequest {
	var waiver *adjustment.AdjustmentRequest
	for i := range adjustments {
		switch adjustments[i].AdjustmentType {
		case adjustment.TypeCertificate:
			return &adjustments[i]
		case adjustment.TypeWaiver:
			if waiver == nil {
				waiver = &adjustments[i]
			}
		}
	}
	return waiver
}

// DailyBalance reconciles one user-day. today is the current date in the
// system timezone; strictly later dates get zero expectation and a blank
// status.
func DailyBalance(in DayInput, today time.Time) DayResult {
	date := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, in.Date.Location())
	todayFloor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	future := date.After(todayFloor)

	excused := excusedAdjustment(in.Adjustments)

	expected := in.ScheduledSeconds
	if !in.HasSchedule || in.IsHoliday || future {
		expected = 0
	}

	// Every punch is listed, paired or not: a day with a lone open ENTRY
	// still shows that entry. Only the worked total needs pairing.
	sorted := make([]timerecord.TimeRecord, len(in.Punches))
	copy(sorted, in.Punches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RecordDatetime.Before(sorted[j].RecordDatetime)
	})
	var entries, exits []string
	for _, p := range sorted {
		switch p.RecordType {
		case timerecord.TypeEntry:
			entries = append(entries, p.RecordDatetime.Format("15:04"))
		case timerecord.TypeExit:
			exits = append(exits, p.RecordDatetime.Format("15:04"))
		}
	}

	var worked int64
	for _, interval := range timerecord.PairIntervals(in.Punches) {
		seconds := int64(interval.Duration().Seconds())
		if seconds > maxIntervalSeconds {
			continue
		}
		worked += seconds
	}

	var credit int64
	if excused != nil {
		if excused.AmountHours != nil && *excused.AmountHours > 0 {
			credit = int64(*excused.AmountHours * 3600)
		} else if shortfall := expected - worked; shortfall > 0 {
			credit = shortfall
		}
		worked += credit
	}

	var balance int64
	if in.HasSchedule {
		balance = worked - expected
	}
	extra, missing := balance, -balance
	if extra < 0 {
		extra = 0
	}
	if missing < 0 {
		missing = 0
	}

	absence := balance < 0 &&
		!in.IsHoliday &&
		!isWeekend(date) &&
		excused == nil &&
		in.ScheduledSeconds > 0 &&
		!future

	return DayResult{
		Date:            date.Format("2006-01-02"),
		Weekday:         date.Weekday().String(),
		WorkedSeconds:   worked,
		ExpectedSeconds: expected,
		BalanceSeconds:  balance,
		ExtraSeconds:    extra,
		MissingSeconds:  missing,
		Status:          dayStatus(in, excused, credit, worked, expected, future),
		Absence:         absence,
		Entries:         entries,
		Exits:           exits,
	}
}

func dayStatus(in DayInput, excused *adjustment.AdjustmentRequest, credit, worked, expected int64, future bool) string {
	switch {
	case future:
		return ""
	case excused != nil:
		label := StatusWaived
		if excused.AdjustmentType == adjustment.TypeCertificate {
			label = StatusCertificate
		}
		if credit > 0 {
			return label + " (" + anomaly.FormatHhMM(time.Duration(credit)*time.Second) + ")"
		}
		return label
	case in.IsHoliday:
		return StatusHoliday
	case isWeekend(in.Date):
		return StatusWeekend
	case worked == 0 && expected > 0:
		return StatusAbsence
	default:
		return StatusNormal
	}
}
