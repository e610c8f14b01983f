package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sekolahku/presensi-api/internal/models"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
)

const scheduleSlotColumns = `s.id, s.class_id, c.name AS class_name, s.subject_id, sub.name AS subject_name, s.teacher_id, t.name AS teacher_name, s.weekday, s.start_time, s.end_time, s.created_at, s.updated_at`

const scheduleSlotJoins = `FROM schedule_slots s
JOIN classes c ON c.id = s.class_id
JOIN subjects sub ON sub.id = s.subject_id
JOIN teachers t ON t.id = s.teacher_id`

// ScheduleSlotRepository reads the recurring weekly timetable. Slots are
// owned by the scheduling subsystem; this repository never writes them.
type ScheduleSlotRepository struct {
	db *sqlx.DB
}

// NewScheduleSlotRepository creates a new schedule slot repository.
func NewScheduleSlotRepository(db *sqlx.DB) *ScheduleSlotRepository {
	return &ScheduleSlotRepository{db: db}
}

// List returns slots matching the filter, ordered by weekday and start time.
func (r *ScheduleSlotRepository) List(ctx context.Context, filter models.ScheduleSlotFilter) ([]models.ScheduleSlot, error) {
	var conditions []string
	var args []interface{}

	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("s.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("s.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.Weekday != "" {
		conditions = append(conditions, fmt.Sprintf("s.weekday = $%d", len(args)+1))
		args = append(args, string(filter.Weekday))
	}
	if filter.StartTime != "" {
		conditions = append(conditions, fmt.Sprintf("s.start_time = $%d", len(args)+1))
		args = append(args, filter.StartTime)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf("SELECT %s %s%s ORDER BY s.weekday ASC, s.start_time ASC, c.name ASC", scheduleSlotColumns, scheduleSlotJoins, where)
	var slots []models.ScheduleSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule slots: %w", err)
	}
	return slots, nil
}

// FindByID loads one slot by id.
func (r *ScheduleSlotRepository) FindByID(ctx context.Context, id string) (*models.ScheduleSlot, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE s.id = $1", scheduleSlotColumns, scheduleSlotJoins)
	var slot models.ScheduleSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("find schedule slot %s: %w", id, err)
	}
	return &slot, nil
}

// ListByWeekday returns every slot scheduled on the given day.
func (r *ScheduleSlotRepository) ListByWeekday(ctx context.Context, weekday models.Weekday) ([]models.ScheduleSlot, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE s.weekday = $1 ORDER BY s.start_time ASC, c.name ASC", scheduleSlotColumns, scheduleSlotJoins)
	var slots []models.ScheduleSlot
	if err := r.db.SelectContext(ctx, &slots, query, string(weekday)); err != nil {
		return nil, fmt.Errorf("list schedule slots for %s: %w", weekday, err)
	}
	return slots, nil
}

// ListBusyTeacherIDs returns the teachers already assigned to any slot on the
// given weekday and start time. Used to validate substitute availability.
func (r *ScheduleSlotRepository) ListBusyTeacherIDs(ctx context.Context, weekday models.Weekday, startTime string) ([]string, error) {
	const query = `SELECT DISTINCT teacher_id FROM schedule_slots WHERE weekday = $1 AND start_time = $2`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, string(weekday), startTime); err != nil {
		return nil, fmt.Errorf("list busy teachers: %w", err)
	}
	return ids, nil
}
