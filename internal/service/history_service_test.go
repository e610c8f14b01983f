package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sekolahku/presensi-api/internal/dto"
	"github.com/sekolahku/presensi-api/internal/models"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
)

func TestHistoryServiceList(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	arrival := "07:12"
	attendance := &stubAttendanceRepo{records: []models.AttendanceRecord{
		{ID: "r-1", ScheduleSlotID: "s-1", Date: monday, ReportedTeacherID: "t-1", Status: models.StatusTelat, ArrivalTime: &arrival},
	}}

	svc := NewHistoryService(HistoryServiceParams{
		Attendance: attendance,
		Slots:      &stubSlotRepo{slots: overviewFixtureSlots()},
		Teachers:   &stubTeacherRepo{teachers: overviewFixtureTeachers()},
		Logger:     zap.NewNop(),
	})
	svc.now = func() time.Time { return time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC) }

	resp, err := svc.List(context.Background(), dto.HistoryRequest{Page: 1, PageSize: 20})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, models.StatusTelat, item.Status)
	assert.Equal(t, "X-A", item.ClassName)
	require.NotNil(t, item.LateMinutes)
	assert.Equal(t, 12, *item.LateMinutes)

	assert.Equal(t, 1, resp.Pagination.CurrentPage)
	assert.Equal(t, 20, resp.Pagination.PerPage)
	assert.Equal(t, 1, resp.Pagination.TotalCount)
	assert.Equal(t, 1, resp.Pagination.LastPage)
}

func TestHistoryServiceSkipsOrphanRows(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	attendance := &stubAttendanceRepo{records: []models.AttendanceRecord{
		{ID: "r-1", ScheduleSlotID: "gone", Date: monday, ReportedTeacherID: "t-1", Status: models.StatusHadir},
	}}

	svc := NewHistoryService(HistoryServiceParams{
		Attendance: attendance,
		Slots:      &stubSlotRepo{slots: overviewFixtureSlots()},
		Teachers:   &stubTeacherRepo{teachers: overviewFixtureTeachers()},
	})

	resp, err := svc.List(context.Background(), dto.HistoryRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 1, resp.Pagination.TotalCount)
}

func TestHistoryServiceValidation(t *testing.T) {
	svc := NewHistoryService(HistoryServiceParams{
		Attendance: &stubAttendanceRepo{},
		Slots:      &stubSlotRepo{},
		Teachers:   &stubTeacherRepo{},
	})

	tests := []struct {
		name string
		req  dto.HistoryRequest
	}{
		{"unknown status", dto.HistoryRequest{Status: "bolos"}},
		{"bad date_from", dto.HistoryRequest{DateFrom: "10/03/2025"}},
		{"bad date_to", dto.HistoryRequest{DateTo: "soon"}},
		{"inverted range", dto.HistoryRequest{DateFrom: "2025-03-16", DateTo: "2025-03-10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		})
	}
}
