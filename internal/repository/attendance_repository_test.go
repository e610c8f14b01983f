package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekolahku/presensi-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func attendanceRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "schedule_slot_id", "date", "reported_teacher_id", "original_teacher_id",
		"status", "arrival_time", "note", "created_by", "created_at", "updated_at",
	})
}

func TestAttendanceRepositoryListRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	rows := attendanceRows().
		AddRow("rec-1", "slot-1", from, "t-1", nil, "hadir", nil, nil, nil, now, now).
		AddRow("rec-2", "slot-2", from.AddDate(0, 0, 1), "t-2", nil, "telat", "07:12", nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.date >= $1 AND a.date <= $2")).
		WithArgs(from, to).
		WillReturnRows(rows)

	records, err := repo.ListRange(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.StatusHadir, records[0].Status)
	require.NotNil(t, records[1].ArrivalTime)
	assert.Equal(t, "07:12", *records[1].ArrivalTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	status := models.StatusTelat
	now := time.Now().UTC()

	rows := attendanceRows().
		AddRow("rec-1", "slot-1", now, "t-1", nil, "telat", "07:12", nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("s.teacher_id = $1 AND a.status = $2")).
		WithArgs("t-1", "telat").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("t-1", "telat").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	records, total, err := repo.List(context.Background(), models.AttendanceFilter{
		TeacherID: "t-1",
		Status:    &status,
		Page:      1,
		PageSize:  20,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryFindAllBySlotAndDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	rows := attendanceRows().
		AddRow("rec-1", "slot-1", date, "t-1", nil, "hadir", nil, nil, nil, now, now).
		AddRow("rec-2", "slot-1", date, "t-1", nil, "telat", nil, nil, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.schedule_slot_id = $1 AND a.date = $2")).
		WithArgs("slot-1", date).
		WillReturnRows(rows)

	records, err := repo.FindAllBySlotAndDate(context.Background(), "slot-1", date)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryAssignSubstitute(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	rows := attendanceRows().
		AddRow("rec-1", "slot-1", date, "t-5", "t-1", "diganti", "10:05", DefaultSubstituteNote, nil, now, now)

	// A fresh takeover stamps the arrival time and falls back to the
	// default note when the caller passes none.
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (schedule_slot_id, date) DO UPDATE SET")).
		WithArgs(sqlmock.AnyArg(), "slot-1", date, "t-5", "t-1", "diganti", sqlmock.AnyArg(), DefaultSubstituteNote, nil, sqlmock.AnyArg()).
		WillReturnRows(rows)

	record, err := repo.AssignSubstitute(context.Background(), SubstituteAssignment{
		ScheduleSlotID:      "slot-1",
		Date:                date,
		SubstituteTeacherID: "t-5",
		OriginalTeacherID:   "t-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDiganti, record.Status)
	require.NotNil(t, record.OriginalTeacherID)
	assert.Equal(t, "t-1", *record.OriginalTeacherID)
	assert.Equal(t, "t-5", record.ReportedTeacherID)
	require.NotNil(t, record.ArrivalTime)
	require.NotNil(t, record.Note)
	assert.Equal(t, DefaultSubstituteNote, *record.Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryAssignSubstituteKeepsCallerNote(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	note := "Pak Budi diklat"

	rows := attendanceRows().
		AddRow("rec-1", "slot-1", date, "t-5", "t-1", "diganti", "10:05", note, nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (schedule_slot_id, date) DO UPDATE SET")).
		WithArgs(sqlmock.AnyArg(), "slot-1", date, "t-5", "t-1", "diganti", sqlmock.AnyArg(), note, nil, sqlmock.AnyArg()).
		WillReturnRows(rows)

	record, err := repo.AssignSubstitute(context.Background(), SubstituteAssignment{
		ScheduleSlotID:      "slot-1",
		Date:                date,
		SubstituteTeacherID: "t-5",
		OriginalTeacherID:   "t-1",
		Note:                &note,
	})
	require.NoError(t, err)
	require.NotNil(t, record.Note)
	assert.Equal(t, note, *record.Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}
