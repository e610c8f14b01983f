package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sekolahku/presensi-api/internal/models"
)

const attendanceColumns = `a.id, a.schedule_slot_id, a.date, a.reported_teacher_id, a.original_teacher_id, a.status, a.arrival_time, a.note, a.created_by, a.created_at, a.updated_at`

// SubstituteAssignment carries the inputs of a substitute upsert.
type SubstituteAssignment struct {
	ScheduleSlotID      string
	Date                time.Time
	SubstituteTeacherID string
	OriginalTeacherID   string
	Note                *string
	CreatedBy           *string
}

// AttendanceRepository provides persistence for attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListRange returns every record whose date falls inside the inclusive
// [from, to] range.
func (r *AttendanceRepository) ListRange(ctx context.Context, from, to time.Time) ([]models.AttendanceRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM attendance_records a WHERE a.date >= $1 AND a.date <= $2 ORDER BY a.date ASC, a.schedule_slot_id ASC", attendanceColumns)
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, from, to); err != nil {
		return nil, fmt.Errorf("list attendance range: %w", err)
	}
	return records, nil
}

// List returns records matching the filter with pagination. Teacher and
// class filters go through the schedule slot so substituted rows still match
// their original assignment.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, int, error) {
	base := "FROM attendance_records a JOIN schedule_slots s ON s.id = a.schedule_slot_id WHERE 1=1"
	var conditions []string
	var args []interface{}

	if len(filter.ScheduleSlotIDs) > 0 {
		placeholders := make([]string, len(filter.ScheduleSlotIDs))
		for i, id := range filter.ScheduleSlotIDs {
			placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
			args = append(args, id)
		}
		conditions = append(conditions, fmt.Sprintf("a.schedule_slot_id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("s.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("s.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, string(*filter.Status))
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY a.date DESC, s.start_time ASC LIMIT %d OFFSET %d", attendanceColumns, base, size, offset)
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance records: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance records: %w", err)
	}

	return records, total, nil
}

// FindAllBySlotAndDate returns every record stored for one (slot, date)
// pair. Callers treat more than one row as a data fault.
func (r *AttendanceRepository) FindAllBySlotAndDate(ctx context.Context, slotID string, date time.Time) ([]models.AttendanceRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM attendance_records a WHERE a.schedule_slot_id = $1 AND a.date = $2", attendanceColumns)
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, slotID, date); err != nil {
		return nil, fmt.Errorf("find attendance for slot %s: %w", slotID, err)
	}
	return records, nil
}

// DefaultSubstituteNote annotates takeovers recorded without an explicit note.
const DefaultSubstituteNote = "Guru diganti oleh kurikulum"

// AssignSubstitute upserts the substitute takeover for one (slot, date)
// pair. A fresh row records the original teacher and stamps the takeover
// time as the arrival; reassigning an already substituted row keeps the
// first original teacher and only moves the reported one, so repeating the
// call is safe.
func (r *AttendanceRepository) AssignSubstitute(ctx context.Context, in SubstituteAssignment) (*models.AttendanceRecord, error) {
	now := time.Now().UTC()
	note := in.Note
	if note == nil {
		def := DefaultSubstituteNote
		note = &def
	}
	const query = `INSERT INTO attendance_records (id, schedule_slot_id, date, reported_teacher_id, original_teacher_id, status, arrival_time, note, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
ON CONFLICT (schedule_slot_id, date) DO UPDATE SET
	reported_teacher_id = EXCLUDED.reported_teacher_id,
	original_teacher_id = COALESCE(attendance_records.original_teacher_id, EXCLUDED.original_teacher_id),
	status = EXCLUDED.status,
	arrival_time = EXCLUDED.arrival_time,
	note = EXCLUDED.note,
	updated_at = EXCLUDED.updated_at
RETURNING id, schedule_slot_id, date, reported_teacher_id, original_teacher_id, status, arrival_time, note, created_by, created_at, updated_at`

	var record models.AttendanceRecord
	err := r.db.GetContext(ctx, &record, query,
		uuid.NewString(),
		in.ScheduleSlotID,
		in.Date,
		in.SubstituteTeacherID,
		in.OriginalTeacherID,
		string(models.StatusDiganti),
		now.Format("15:04"),
		*note,
		in.CreatedBy,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("assign substitute for slot %s: %w", in.ScheduleSlotID, err)
	}
	return &record, nil
}
