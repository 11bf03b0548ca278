package anomaly

import (
	"fmt"
	"sort"
	"time"

	"github.com/viniciusmecosta/spe-api/internal/timerecord"
)

const (
	TypeMissingEntry   = "MISSING_ENTRY"
	TypeMissingExit    = "MISSING_EXIT"
	TypeDoubleEntry    = "DOUBLE_ENTRY"
	TypeDoubleExit     = "DOUBLE_EXIT"
	TypeLongInterval   = "LONG_INTERVAL"
	TypeExcessiveHours = "EXCESSIVE_HOURS"
)

const (
	longIntervalThreshold   = 7 * time.Hour
	excessiveHoursThreshold = 8*time.Hour + 30*time.Minute
)

// Anomaly is descriptive only; detection never mutates records.
type Anomaly struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// FormatHhMM renders a duration as "7h30" for device and report display.
func FormatHhMM(d time.Duration) string {
	total := int(d.Minutes())
	return fmt.Sprintf("%dh%02d", total/60, total%60)
}

// CheckDay inspects one user's punches for a single day and reports every
// inconsistency found. Punches may arrive in any order; the walk is over
// the chronologically sorted sequence.
func CheckDay(punches []timerecord.TimeRecord) []Anomaly {
	if len(punches) == 0 {
		return nil
	}

	sorted := make([]timerecord.TimeRecord, len(punches))
	copy(sorted, punches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RecordDatetime.Before(sorted[j].RecordDatetime)
	})

	var anomalies []Anomaly

	if sorted[0].RecordType == timerecord.TypeExit {
		anomalies = append(anomalies, Anomaly{
			Type:        TypeMissingEntry,
			Description: "day starts with an EXIT record",
		})
	}

	for i := 1; i < len(sorted); i++ {
		if sorted[i].RecordType != sorted[i-1].RecordType {
			continue
		}
		if sorted[i].RecordType == timerecord.TypeEntry {
			anomalies = append(anomalies, Anomaly{
				Type:        TypeDoubleEntry,
				Description: fmt.Sprintf("two consecutive ENTRY records at %s", sorted[i].RecordDatetime.Format("15:04")),
			})
		} else {
			anomalies = append(anomalies, Anomaly{
				Type:        TypeDoubleExit,
				Description: fmt.Sprintf("two consecutive EXIT records at %s", sorted[i].RecordDatetime.Format("15:04")),
			})
		}
	}

	var totalWorked time.Duration
	for _, interval := range timerecord.PairIntervals(sorted) {
		d := interval.Duration()
		totalWorked += d
		if d > longIntervalThreshold {
			anomalies = append(anomalies, Anomaly{
				Type:        TypeLongInterval,
				Description: fmt.Sprintf("interval of %s without an exit", FormatHhMM(d)),
			})
		}
	}

	if sorted[len(sorted)-1].RecordType == timerecord.TypeEntry {
		anomalies = append(anomalies, Anomaly{
			Type:        TypeMissingExit,
			Description: "day ends with an open ENTRY record",
		})
	}

	if totalWorked > excessiveHoursThreshold {
		anomalies = append(anomalies, Anomaly{
			Type:        TypeExcessiveHours,
			Description: fmt.Sprintf("worked %s in a single day", FormatHhMM(totalWorked)),
		})
	}

	return anomalies
}

// EmployeeVisible filters the set down to what the employee self-view
// shows: only missing and double punch kinds.
func EmployeeVisible(anomalies []Anomaly) []Anomaly {
	var visible []Anomaly
	for _, a := range anomalies {
		switch a.Type {
		case TypeLongInterval, TypeExcessiveHours:
		default:
			visible = append(visible, a)
		}
	}
	return visible
}
