// Package period holds the calendar and time-of-day arithmetic shared by the
// attendance reconciliation views: week boundaries, clock parsing and the
// "is this period running right now" predicates.
package period

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

var (
	clockPattern    = regexp.MustCompile(`^(\d{2}):(\d{2})(?::(\d{2}))?$`)
	datetimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ](\d{2}):(\d{2})`)
)

// DateOnly truncates a timestamp to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekBounds returns the Monday and Sunday of the reference date's week
// shifted by offset whole weeks. Offset 0 is the current week, -1 the
// previous one.
func WeekBounds(ref time.Time, offset int) (time.Time, time.Time) {
	d := DateOnly(ref)
	// Go weekday: Sunday=0. Monday-first distance back to Monday.
	back := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -back+offset*7)
	end := start.AddDate(0, 0, 6)
	return start, end
}

// WeekLabel renders the human label for a week offset.
func WeekLabel(offset int, start, end time.Time) string {
	switch offset {
	case 0:
		return "Minggu Ini"
	case -1:
		return "Minggu Lalu"
	default:
		return fmt.Sprintf("%s - %s", start.Format("02 Jan"), end.Format("02 Jan 2006"))
	}
}

// ClockMinutes parses a clock value into minutes since midnight. It accepts
// "HH:MM", "HH:MM:SS" and full datetime strings, since upstream rows store
// times inconsistently.
func ClockMinutes(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty clock value")
	}

	m := clockPattern.FindStringSubmatch(raw)
	if m == nil {
		m = datetimePattern.FindStringSubmatch(raw)
	}
	if m == nil {
		return 0, fmt.Errorf("unrecognized clock value %q", raw)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", raw)
	}
	return hours*60 + minutes, nil
}

// NormalizeClock reduces any accepted clock value to "HH:MM". It returns the
// empty string for values it cannot parse.
func NormalizeClock(raw string) string {
	total, err := ClockMinutes(raw)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// IsCurrentPeriod reports whether now's time of day falls inside the
// inclusive [start, end] clock window.
func IsCurrentPeriod(now time.Time, start, end string) bool {
	startMin, err := ClockMinutes(start)
	if err != nil {
		return false
	}
	endMin, err := ClockMinutes(end)
	if err != nil {
		return false
	}
	nowMin := now.Hour()*60 + now.Minute()
	return nowMin >= startMin && nowMin <= endMin
}

// LateMinutes computes how many minutes past the scheduled start the arrival
// was, clamped at zero for early arrivals.
func LateMinutes(scheduledStart, actualArrival string) (int, error) {
	startMin, err := ClockMinutes(scheduledStart)
	if err != nil {
		return 0, err
	}
	arrivalMin, err := ClockMinutes(actualArrival)
	if err != nil {
		return 0, err
	}
	late := arrivalMin - startMin
	if late < 0 {
		late = 0
	}
	return late, nil
}

// MinutesSinceStart returns how many minutes of the period have elapsed at
// now. Negative values mean the period has not started yet.
func MinutesSinceStart(now time.Time, start string) (int, error) {
	startMin, err := ClockMinutes(start)
	if err != nil {
		return 0, err
	}
	nowMin := now.Hour()*60 + now.Minute()
	return nowMin - startMin, nil
}

// DatesBetween yields every calendar date of the inclusive [from, to] range.
func DatesBetween(from, to time.Time) []time.Time {
	from, to = DateOnly(from), DateOnly(to)
	if to.Before(from) {
		return nil
	}
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
