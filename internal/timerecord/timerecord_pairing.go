package timerecord

import (
	"sort"
	"time"
)

// Interval is one closed ENTRY→EXIT span within a day.
type Interval struct {
	Entry time.Time
	Exit  time.Time
}

func (i Interval) Duration() time.Duration {
	return i.Exit.Sub(i.Entry)
}

// PairIntervals walks punches in chronological order and pairs each EXIT
// with the most recent open ENTRY. A second ENTRY before an EXIT replaces
// the open one; an EXIT without an open ENTRY is skipped. Both the anomaly
// walk and the balance calculator run on these pairs so they can never
// disagree about what counts as worked time.
func PairIntervals(records []TimeRecord) []Interval {
	sorted := make([]TimeRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RecordDatetime.Before(sorted[j].RecordDatetime)
	})

	var intervals []Interval
	var open *time.Time
	for _, r := range sorted {
		switch r.RecordType {
		case TypeEntry:
			t := r.RecordDatetime
			open = &t
		case TypeExit:
			if open != nil {
				intervals = append(intervals, Interval{Entry: *open, Exit: r.RecordDatetime})
				open = nil
			}
		}
	}
	return intervals
}
