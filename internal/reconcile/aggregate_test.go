package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/presensi-api/internal/models"
)

func occWith(status models.AttendanceStatus) Occurrence {
	return Occurrence{Status: status}
}

func repeat(status models.AttendanceStatus, n int) []Occurrence {
	out := make([]Occurrence, n)
	for i := range out {
		out[i] = occWith(status)
	}
	return out
}

func TestAggregateRates(t *testing.T) {
	var occs []Occurrence
	occs = append(occs, repeat(models.StatusHadir, 8)...)
	occs = append(occs, repeat(models.StatusTelat, 2)...)
	occs = append(occs, repeat(models.StatusTidakHadir, 1)...)
	occs = append(occs, repeat(models.StatusIzin, 1)...)

	s := Aggregate(occs)

	assert.Equal(t, 12, s.Total)
	assert.Equal(t, 8, s.Hadir)
	assert.Equal(t, 2, s.Telat)
	assert.Equal(t, 1, s.TidakHadir)
	assert.Equal(t, 1, s.Izin)
	assert.Equal(t, 83.3, s.AttendanceRate)
	assert.Equal(t, 66.7, s.OnTimeRate)
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.AttendanceRate)
	assert.Equal(t, 0.0, s.OnTimeRate)
}

func TestAggregateCountsPendingAndSubstituted(t *testing.T) {
	occs := []Occurrence{
		occWith(models.StatusPending),
		occWith(models.StatusDiganti),
		occWith(models.StatusHadir),
	}

	s := Aggregate(occs)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.Diganti)
	assert.Equal(t, 33.3, s.AttendanceRate)
}

func TestByClassSortsByRate(t *testing.T) {
	occs := []Occurrence{
		{ClassID: "c-1", ClassName: "X-A", Status: models.StatusHadir},
		{ClassID: "c-1", ClassName: "X-A", Status: models.StatusTidakHadir},
		{ClassID: "c-2", ClassName: "X-B", Status: models.StatusHadir},
	}

	classes := ByClass(occs)

	require.Len(t, classes, 2)
	assert.Equal(t, "X-B", classes[0].ClassName)
	assert.Equal(t, 100.0, classes[0].Statistics.AttendanceRate)
	assert.Equal(t, "X-A", classes[1].ClassName)
	assert.Equal(t, 50.0, classes[1].Statistics.AttendanceRate)
}

func TestTopLate(t *testing.T) {
	five, twelve, three := 5, 12, 3
	occs := []Occurrence{
		{TeacherID: "t-1", TeacherName: "Budi", Status: models.StatusTelat, LateMinutes: &five},
		{TeacherID: "t-1", TeacherName: "Budi", Status: models.StatusTelat, LateMinutes: &twelve},
		{TeacherID: "t-2", TeacherName: "Siti", Status: models.StatusTelat, LateMinutes: &three},
		{TeacherID: "t-3", TeacherName: "Andi", Status: models.StatusHadir},
	}

	top := TopLate(occs, 5)

	require.Len(t, top, 2)
	assert.Equal(t, "t-1", top[0].TeacherID)
	assert.Equal(t, 2, top[0].LateCount)
	assert.Equal(t, 17, top[0].TotalLateMinutes)
	assert.Equal(t, "t-2", top[1].TeacherID)
}

func TestTopLateLimit(t *testing.T) {
	var occs []Occurrence
	for _, id := range []string{"t-1", "t-2", "t-3"} {
		occs = append(occs, Occurrence{TeacherID: id, TeacherName: id, Status: models.StatusTelat})
	}

	assert.Len(t, TopLate(occs, 2), 2)
	assert.Len(t, TopLate(occs, 0), 3)
}

func TestDailyBreakdownEmitsEveryDay(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

	occs := []Occurrence{
		{Date: from, Status: models.StatusHadir},
		{Date: from, Status: models.StatusTelat},
		{Date: from.AddDate(0, 0, 2), Status: models.StatusHadir},
	}

	days := DailyBreakdown(occs, from, to)

	require.Len(t, days, 7)
	assert.Equal(t, "2025-03-10", days[0].Date)
	assert.Equal(t, "Senin", days[0].Weekday)
	assert.Equal(t, "Sen", days[0].WeekdayShort)
	assert.Equal(t, 2, days[0].Statistics.Total)
	assert.Equal(t, 0, days[1].Statistics.Total)
	assert.Equal(t, 1, days[2].Statistics.Total)
	assert.Equal(t, "Minggu", days[6].Weekday)
}
