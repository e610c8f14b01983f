package reconcile

import (
	"math"
	"sort"
	"time"

	"github.com/sekolahku/presensi-api/internal/models"
	"github.com/sekolahku/presensi-api/internal/period"
)

// Statistics are the per-status counts and derived rates for a set of
// occurrences.
type Statistics struct {
	Total      int `json:"total"`
	Hadir      int `json:"hadir"`
	Telat      int `json:"telat"`
	TidakHadir int `json:"tidak_hadir"`
	Izin       int `json:"izin"`
	Diganti    int `json:"diganti"`
	Pending    int `json:"pending"`

	AttendanceRate float64 `json:"attendance_rate"`
	OnTimeRate     float64 `json:"on_time_rate"`
}

// Aggregate counts statuses and computes rates rounded to one decimal.
// Rates are 0.0 for an empty input, never NaN.
func Aggregate(occs []Occurrence) Statistics {
	var s Statistics
	s.Total = len(occs)
	for _, occ := range occs {
		switch occ.Status {
		case models.StatusHadir:
			s.Hadir++
		case models.StatusTelat:
			s.Telat++
		case models.StatusTidakHadir:
			s.TidakHadir++
		case models.StatusIzin:
			s.Izin++
		case models.StatusDiganti:
			s.Diganti++
		default:
			s.Pending++
		}
	}
	if s.Total > 0 {
		s.AttendanceRate = round1(float64(s.Hadir+s.Telat) / float64(s.Total) * 100)
		s.OnTimeRate = round1(float64(s.Hadir) / float64(s.Total) * 100)
	}
	return s
}

// ClassStatistics pairs a class with its aggregated statistics.
type ClassStatistics struct {
	ClassID    string     `json:"class_id"`
	ClassName  string     `json:"class_name"`
	Statistics Statistics `json:"statistics"`
}

// ByClass groups occurrences per class and aggregates each group, sorted by
// attendance rate descending with class name as tiebreaker.
func ByClass(occs []Occurrence) []ClassStatistics {
	groups := make(map[string][]Occurrence)
	names := make(map[string]string)
	for _, occ := range occs {
		groups[occ.ClassID] = append(groups[occ.ClassID], occ)
		names[occ.ClassID] = occ.ClassName
	}

	out := make([]ClassStatistics, 0, len(groups))
	for classID, group := range groups {
		out = append(out, ClassStatistics{
			ClassID:    classID,
			ClassName:  names[classID],
			Statistics: Aggregate(group),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Statistics.AttendanceRate != out[j].Statistics.AttendanceRate {
			return out[i].Statistics.AttendanceRate > out[j].Statistics.AttendanceRate
		}
		return out[i].ClassName < out[j].ClassName
	})
	return out
}

// TeacherLateness summarizes one teacher's late arrivals.
type TeacherLateness struct {
	TeacherID        string  `json:"teacher_id"`
	TeacherName      string  `json:"teacher_name"`
	TeacherNIP       *string `json:"teacher_nip,omitempty"`
	LateCount        int     `json:"late_count"`
	TotalLateMinutes int     `json:"total_late_minutes"`
}

// TopLate ranks teachers by number of late occurrences, breaking ties on
// accumulated late minutes and then name, returning at most limit entries.
func TopLate(occs []Occurrence, limit int) []TeacherLateness {
	byTeacher := make(map[string]*TeacherLateness)
	for _, occ := range occs {
		if occ.Status != models.StatusTelat {
			continue
		}
		entry, ok := byTeacher[occ.TeacherID]
		if !ok {
			entry = &TeacherLateness{
				TeacherID:   occ.TeacherID,
				TeacherName: occ.TeacherName,
				TeacherNIP:  occ.TeacherNIP,
			}
			byTeacher[occ.TeacherID] = entry
		}
		entry.LateCount++
		if occ.LateMinutes != nil {
			entry.TotalLateMinutes += *occ.LateMinutes
		}
	}

	out := make([]TeacherLateness, 0, len(byTeacher))
	for _, entry := range byTeacher {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LateCount != out[j].LateCount {
			return out[i].LateCount > out[j].LateCount
		}
		if out[i].TotalLateMinutes != out[j].TotalLateMinutes {
			return out[i].TotalLateMinutes > out[j].TotalLateMinutes
		}
		return out[i].TeacherName < out[j].TeacherName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DayStatistics are one calendar day's aggregated statistics.
type DayStatistics struct {
	Date         string     `json:"date"`
	Weekday      string     `json:"weekday"`
	WeekdayShort string     `json:"weekday_short"`
	Statistics   Statistics `json:"statistics"`
}

// DailyBreakdown aggregates occurrences per day across the inclusive
// [from, to] range, emitting an entry for every day even when empty.
func DailyBreakdown(occs []Occurrence, from, to time.Time) []DayStatistics {
	byDay := make(map[string][]Occurrence)
	for _, occ := range occs {
		key := occ.Date.Format(period.DateLayout)
		byDay[key] = append(byDay[key], occ)
	}

	var out []DayStatistics
	for _, date := range period.DatesBetween(from, to) {
		key := date.Format(period.DateLayout)
		weekday := models.WeekdayOf(date)
		out = append(out, DayStatistics{
			Date:         key,
			Weekday:      weekday.String(),
			WeekdayShort: weekday.Short(),
			Statistics:   Aggregate(byDay[key]),
		})
	}
	return out
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
