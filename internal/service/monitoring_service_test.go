package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sekolahku/presensi-api/internal/models"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
)

func monitoringFixture() (*stubSlotRepo, *stubAttendanceRepo, *stubLeaveRepo, *stubTeacherRepo) {
	slots := &stubSlotRepo{slots: []models.ScheduleSlot{
		{ID: "s-1", ClassID: "c-1", ClassName: "X-A", SubjectName: "Matematika", TeacherID: "t-1", TeacherName: "Budi", Weekday: models.Rabu, StartTime: "07:00", EndTime: "07:45"},
		{ID: "s-2", ClassID: "c-1", ClassName: "X-A", SubjectName: "Fisika", TeacherID: "t-2", TeacherName: "Siti", Weekday: models.Rabu, StartTime: "08:00", EndTime: "08:45"},
		{ID: "s-3", ClassID: "c-2", ClassName: "X-B", SubjectName: "Kimia", TeacherID: "t-3", TeacherName: "Andi", Weekday: models.Rabu, StartTime: "08:00", EndTime: "08:45"},
	}}
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	attendance := &stubAttendanceRepo{records: []models.AttendanceRecord{
		{ID: "r-1", ScheduleSlotID: "s-1", Date: day, ReportedTeacherID: "t-1", Status: models.StatusHadir},
		{ID: "r-2", ScheduleSlotID: "s-3", Date: day, ReportedTeacherID: "t-3", Status: models.StatusTidakHadir},
	}}
	leaves := &stubLeaveRepo{}
	teachers := &stubTeacherRepo{teachers: overviewFixtureTeachers()}
	return slots, attendance, leaves, teachers
}

func TestMonitoringServiceClassManagement(t *testing.T) {
	slots, attendance, leaves, teachers := monitoringFixture()
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	cacheRepo := &stubCacheRepo{}
	svc := NewMonitoringService(MonitoringServiceParams{
		Slots:      slots,
		Attendance: attendance,
		Leaves:     leaves,
		Teachers:   teachers,
		Cache:      NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true),
		Logger:     zap.NewNop(),
	})
	// 08:20: the 08:00 periods are running and past the alert threshold.
	svc.now = func() time.Time { return time.Date(2025, 3, 12, 8, 20, 0, 0, time.UTC) }

	view, cached, err := svc.ClassManagement(context.Background(), day, "", nil)
	require.NoError(t, err)
	assert.False(t, cached)

	assert.Equal(t, "2025-03-12", view.Date)
	assert.Equal(t, "Rabu", view.Weekday)
	require.Len(t, view.Periods, 3)
	assert.Equal(t, 3, view.Summary.Total)
	assert.Equal(t, 1, view.Summary.Hadir)
	assert.Equal(t, 1, view.Summary.TidakHadir)
	assert.Equal(t, 1, view.Summary.Pending)

	// s-2 has no report 20 minutes into its period.
	var alerted int
	for _, occ := range view.Periods {
		if occ.NoTeacherAlert {
			alerted++
			assert.Equal(t, "s-2", occ.ScheduleSlotID)
			assert.True(t, occ.IsCurrentPeriod)
		}
	}
	assert.Equal(t, 1, alerted)

	// Periods are numbered per class by start time.
	for _, occ := range view.Periods {
		switch occ.ScheduleSlotID {
		case "s-1":
			assert.Equal(t, 1, occ.PeriodNumber)
		case "s-2":
			assert.Equal(t, 2, occ.PeriodNumber)
		case "s-3":
			assert.Equal(t, 1, occ.PeriodNumber)
		}
	}

	// Needs attention: the unreported s-2 (X-A) and the absent s-3 (X-B).
	require.Len(t, view.NeedsAttention, 2)
	assert.Equal(t, "X-A", view.NeedsAttention[0].ClassName)
	assert.Equal(t, "X-B", view.NeedsAttention[1].ClassName)

	_, cached, err = svc.ClassManagement(context.Background(), day, "", nil)
	require.NoError(t, err)
	assert.True(t, cached)
}

func TestMonitoringServiceClassFilter(t *testing.T) {
	slots, attendance, leaves, teachers := monitoringFixture()
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	svc := NewMonitoringService(MonitoringServiceParams{
		Slots:      slots,
		Attendance: attendance,
		Leaves:     leaves,
		Teachers:   teachers,
	})
	svc.now = func() time.Time { return time.Date(2025, 3, 12, 6, 0, 0, 0, time.UTC) }

	view, _, err := svc.ClassManagement(context.Background(), day, "c-2", nil)
	require.NoError(t, err)
	require.Len(t, view.Periods, 1)
	assert.Equal(t, "s-3", view.Periods[0].ScheduleSlotID)
}

func TestMonitoringServiceStatusFilter(t *testing.T) {
	slots, attendance, leaves, teachers := monitoringFixture()
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	svc := NewMonitoringService(MonitoringServiceParams{
		Slots:      slots,
		Attendance: attendance,
		Leaves:     leaves,
		Teachers:   teachers,
	})
	svc.now = func() time.Time { return time.Date(2025, 3, 12, 6, 0, 0, 0, time.UTC) }

	status := models.StatusTidakHadir
	view, _, err := svc.ClassManagement(context.Background(), day, "", &status)
	require.NoError(t, err)
	require.Len(t, view.Periods, 1)
	assert.Equal(t, models.StatusTidakHadir, view.Periods[0].Status)
	assert.Equal(t, "red", view.Periods[0].StatusColor)

	// The summary keeps counting the whole day regardless of the filter.
	assert.Equal(t, 3, view.Summary.Total)
	assert.Equal(t, 1, view.Summary.Hadir)
	assert.Equal(t, 1, view.Summary.TidakHadir)
	assert.Equal(t, 1, view.Summary.Pending)
}

func TestMonitoringServiceNeedsAttentionOrdersByUrgency(t *testing.T) {
	slots, attendance, leaves, teachers := monitoringFixture()
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	// X-A: Budi late, Siti absent. Absence must outrank the late arrival.
	arrival := "07:10"
	attendance.records = []models.AttendanceRecord{
		{ID: "r-1", ScheduleSlotID: "s-1", Date: day, ReportedTeacherID: "t-1", Status: models.StatusTelat, ArrivalTime: &arrival},
		{ID: "r-2", ScheduleSlotID: "s-2", Date: day, ReportedTeacherID: "t-2", Status: models.StatusTidakHadir},
		{ID: "r-3", ScheduleSlotID: "s-3", Date: day, ReportedTeacherID: "t-3", Status: models.StatusHadir},
	}

	svc := NewMonitoringService(MonitoringServiceParams{
		Slots:      slots,
		Attendance: attendance,
		Leaves:     leaves,
		Teachers:   teachers,
	})
	svc.now = func() time.Time { return time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC) }

	view, _, err := svc.ClassManagement(context.Background(), day, "", nil)
	require.NoError(t, err)

	require.Len(t, view.NeedsAttention, 1)
	group := view.NeedsAttention[0]
	assert.Equal(t, "X-A", group.ClassName)
	require.Len(t, group.Periods, 2)
	assert.Equal(t, models.StatusTidakHadir, group.Periods[0].Status)
	assert.Equal(t, models.StatusTelat, group.Periods[1].Status)
}

func TestMonitoringServiceRejectsUnknownStatus(t *testing.T) {
	slots, attendance, leaves, teachers := monitoringFixture()
	svc := NewMonitoringService(MonitoringServiceParams{
		Slots:      slots,
		Attendance: attendance,
		Leaves:     leaves,
		Teachers:   teachers,
	})

	status := models.AttendanceStatus("bolos")
	_, _, err := svc.ClassManagement(context.Background(), time.Now(), "", &status)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
