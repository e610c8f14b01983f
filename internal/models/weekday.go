package models

import "time"

// Weekday is the canonical day-of-week enumeration used for every day
// comparison in the system. Raw locale day names are never compared directly.
type Weekday string

const (
	Senin  Weekday = "Senin"
	Selasa Weekday = "Selasa"
	Rabu   Weekday = "Rabu"
	Kamis  Weekday = "Kamis"
	Jumat  Weekday = "Jumat"
	Sabtu  Weekday = "Sabtu"
	Minggu Weekday = "Minggu"
)

// AllWeekdays lists the days Monday-first.
var AllWeekdays = []Weekday{Senin, Selasa, Rabu, Kamis, Jumat, Sabtu, Minggu}

var weekdayFromGo = map[time.Weekday]Weekday{
	time.Monday:    Senin,
	time.Tuesday:   Selasa,
	time.Wednesday: Rabu,
	time.Thursday:  Kamis,
	time.Friday:    Jumat,
	time.Saturday:  Sabtu,
	time.Sunday:    Minggu,
}

var weekdayShort = map[Weekday]string{
	Senin:  "Sen",
	Selasa: "Sel",
	Rabu:   "Rab",
	Kamis:  "Kam",
	Jumat:  "Jum",
	Sabtu:  "Sab",
	Minggu: "Min",
}

// WeekdayOf maps a calendar date onto the canonical enumeration.
func WeekdayOf(t time.Time) Weekday {
	return weekdayFromGo[t.Weekday()]
}

// Valid reports whether the value is one of the seven canonical days.
func (w Weekday) Valid() bool {
	for _, day := range AllWeekdays {
		if w == day {
			return true
		}
	}
	return false
}

// Short returns the abbreviated display name used in chart labels.
func (w Weekday) Short() string {
	return weekdayShort[w]
}

// String returns the full display name.
func (w Weekday) String() string {
	return string(w)
}
