package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sekolahku/presensi-api/internal/dto"
	"github.com/sekolahku/presensi-api/internal/models"
	"github.com/sekolahku/presensi-api/internal/period"
	"github.com/sekolahku/presensi-api/internal/repository"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
)

type slotFinder interface {
	FindByID(ctx context.Context, id string) (*models.ScheduleSlot, error)
	ListBusyTeacherIDs(ctx context.Context, weekday models.Weekday, startTime string) ([]string, error)
}

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	ListAll(ctx context.Context) ([]models.Teacher, error)
}

type attendanceUpserter interface {
	FindAllBySlotAndDate(ctx context.Context, slotID string, date time.Time) ([]models.AttendanceRecord, error)
	AssignSubstitute(ctx context.Context, in repository.SubstituteAssignment) (*models.AttendanceRecord, error)
}

// SubstitutionService assigns substitute teachers to periods and lists who
// is free to take one over.
type SubstitutionService struct {
	slots      slotFinder
	teachers   teacherFinder
	attendance attendanceUpserter
	leaves     approvedLeaveLister
	cache      *CacheService
	logger     *zap.Logger
	now        func() time.Time
}

// SubstitutionServiceParams groups constructor dependencies.
type SubstitutionServiceParams struct {
	Slots      slotFinder
	Teachers   teacherFinder
	Attendance attendanceUpserter
	Leaves     approvedLeaveLister
	Cache      *CacheService
	Logger     *zap.Logger
}

// NewSubstitutionService constructs a SubstitutionService.
func NewSubstitutionService(params SubstitutionServiceParams) *SubstitutionService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubstitutionService{
		slots:      params.Slots,
		teachers:   params.Teachers,
		attendance: params.Attendance,
		leaves:     params.Leaves,
		cache:      params.Cache,
		logger:     logger,
		now:        time.Now,
	}
}

// Assign records a substitute takeover for one (slot, date) pair. The write
// is an upsert: repeating the call moves the reported teacher but keeps the
// first original teacher, so the operation is safe to retry.
func (s *SubstitutionService) Assign(ctx context.Context, req dto.AssignSubstituteRequest) (*dto.AssignSubstituteResponse, error) {
	date, err := time.Parse(period.DateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", req.Date))
	}
	date = period.DateOnly(date)

	slot, err := s.slots.FindByID(ctx, req.ScheduleSlotID)
	if err != nil {
		return nil, err
	}
	if models.WeekdayOf(date) != slot.Weekday {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slot is scheduled on %s, not on %s", slot.Weekday, req.Date))
	}

	substitute, err := s.teachers.FindByID(ctx, req.SubstituteTeacherID)
	if err != nil {
		return nil, err
	}
	if substitute.ID == slot.TeacherID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "substitute cannot be the slot's own teacher")
	}

	if err := s.checkAvailability(ctx, slot, date, substitute.ID); err != nil {
		return nil, err
	}

	existing, err := s.attendance.FindAllBySlotAndDate(ctx, slot.ID, date)
	if err != nil {
		return nil, err
	}
	if len(existing) > 1 {
		s.logger.Error("duplicate attendance rows",
			zap.String("schedule_slot_id", slot.ID),
			zap.String("date", date.Format(period.DateLayout)),
			zap.Int("rows", len(existing)))
		return nil, appErrors.Clone(appErrors.ErrConsistency, "multiple attendance rows stored for one period")
	}

	originalTeacherID := slot.TeacherID
	if len(existing) == 1 && existing[0].OriginalTeacherID != nil {
		originalTeacherID = *existing[0].OriginalTeacherID
	}

	record, err := s.attendance.AssignSubstitute(ctx, repository.SubstituteAssignment{
		ScheduleSlotID:      slot.ID,
		Date:                date,
		SubstituteTeacherID: substitute.ID,
		OriginalTeacherID:   originalTeacherID,
		Note:                req.Note,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)

	response := &dto.AssignSubstituteResponse{Record: *record}
	name := substitute.Name
	response.SubstituteTeacherName = &name
	if original, err := s.teachers.FindByID(ctx, originalTeacherID); err == nil {
		response.OriginalTeacherName = &original.Name
	}
	return response, nil
}

// AvailableSubstitutes lists teachers free to cover a slot on a date:
// everyone not teaching at the same weekday and start time and not on
// approved leave that day, minus the slot's own teacher.
func (s *SubstitutionService) AvailableSubstitutes(ctx context.Context, slotID string, date time.Time) (*dto.AvailableSubstitutesResponse, error) {
	date = period.DateOnly(date)
	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	busyIDs, err := s.slots.ListBusyTeacherIDs(ctx, slot.Weekday, slot.StartTime)
	if err != nil {
		return nil, err
	}
	busy := make(map[string]struct{}, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = struct{}{}
	}

	leaves, err := s.leaves.ListApprovedOverlapping(ctx, date, date)
	if err != nil {
		return nil, err
	}
	onLeave := make(map[string]struct{}, len(leaves))
	for i := range leaves {
		if leaves[i].Covers(date) {
			onLeave[leaves[i].TeacherID] = struct{}{}
		}
	}

	roster, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]dto.AvailableTeacher, 0, len(roster))
	for _, teacher := range roster {
		if teacher.ID == slot.TeacherID {
			continue
		}
		if _, taken := busy[teacher.ID]; taken {
			continue
		}
		if _, absent := onLeave[teacher.ID]; absent {
			continue
		}
		available = append(available, dto.AvailableTeacher{ID: teacher.ID, Name: teacher.Name, NIP: teacher.NIP})
	}

	return &dto.AvailableSubstitutesResponse{
		ScheduleSlotID: slot.ID,
		Date:           date.Format(period.DateLayout),
		Teachers:       available,
	}, nil
}

func (s *SubstitutionService) checkAvailability(ctx context.Context, slot *models.ScheduleSlot, date time.Time, substituteID string) error {
	busyIDs, err := s.slots.ListBusyTeacherIDs(ctx, slot.Weekday, slot.StartTime)
	if err != nil {
		return err
	}
	for _, id := range busyIDs {
		if id == substituteID {
			return appErrors.Clone(appErrors.ErrConflict, "substitute already teaches another class at that time")
		}
	}

	leaves, err := s.leaves.ListApprovedOverlapping(ctx, date, date)
	if err != nil {
		return err
	}
	for i := range leaves {
		if leaves[i].TeacherID == substituteID && leaves[i].Covers(date) {
			return appErrors.Clone(appErrors.ErrConflict, "substitute is on leave that day")
		}
	}
	return nil
}

func (s *SubstitutionService) invalidateCaches(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, pattern := range []string{"overview:*", "monitoring:*"} {
		if err := s.cache.Invalidate(ctx, pattern); err != nil {
			s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
