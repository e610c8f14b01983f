package reconcile

// Trend is the week-over-week movement of one metric. Value is the raw
// delta, Percentage the relative change, and IsPositive whether the
// movement is desirable for that metric.
type Trend struct {
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	IsPositive bool    `json:"is_positive"`
}

// Trends collects the four tracked metrics.
type Trends struct {
	Hadir          Trend `json:"hadir"`
	Telat          Trend `json:"telat"`
	TidakHadir     Trend `json:"tidak_hadir"`
	AttendanceRate Trend `json:"attendance_rate"`
}

// Compare derives the trends between the current and previous week's
// statistics. More hadir and a higher attendance rate are positive; more
// telat or tidak_hadir are negative. A zero delta counts as positive.
func Compare(current, previous Statistics) Trends {
	return Trends{
		Hadir:          trend(float64(current.Hadir), float64(previous.Hadir), false),
		Telat:          trend(float64(current.Telat), float64(previous.Telat), true),
		TidakHadir:     trend(float64(current.TidakHadir), float64(previous.TidakHadir), true),
		AttendanceRate: trend(current.AttendanceRate, previous.AttendanceRate, false),
	}
}

// trend applies one uniform percentage rule to every metric: a zero previous
// value yields 100% when the current value is nonzero, 0% otherwise.
func trend(current, previous float64, lowerIsBetter bool) Trend {
	delta := current - previous

	var pct float64
	switch {
	case previous == 0 && current > 0:
		pct = 100
	case previous == 0:
		pct = 0
	default:
		pct = round1(delta / previous * 100)
	}

	positive := delta >= 0
	if lowerIsBetter {
		positive = delta <= 0
	}

	return Trend{
		Value:      round1(delta),
		Percentage: pct,
		IsPositive: positive,
	}
}
