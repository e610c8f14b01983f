package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sekolahku/presensi-api/internal/dto"
	"github.com/sekolahku/presensi-api/internal/models"
	"github.com/sekolahku/presensi-api/internal/period"
	"github.com/sekolahku/presensi-api/internal/reconcile"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
)

type attendancePageLister interface {
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, int, error)
}

// HistoryService pages through past attendance observations resolved to
// their display form.
type HistoryService struct {
	attendance attendancePageLister
	slots      scheduleSlotLister
	teachers   teacherLister
	logger     *zap.Logger
	now        func() time.Time
}

// HistoryServiceParams groups constructor dependencies.
type HistoryServiceParams struct {
	Attendance attendancePageLister
	Slots      scheduleSlotLister
	Teachers   teacherLister
	Logger     *zap.Logger
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(params HistoryServiceParams) *HistoryService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{
		attendance: params.Attendance,
		slots:      params.Slots,
		teachers:   params.Teachers,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns a page of resolved attendance history.
func (s *HistoryService) List(ctx context.Context, req dto.HistoryRequest) (*dto.HistoryResponse, error) {
	filter, err := s.buildFilter(req)
	if err != nil {
		return nil, err
	}

	records, total, err := s.attendance.List(ctx, *filter)
	if err != nil {
		return nil, err
	}

	slots, err := s.slots.List(ctx, models.ScheduleSlotFilter{ClassID: req.ClassID, TeacherID: req.TeacherID})
	if err != nil {
		return nil, err
	}
	slotsByID := make(map[string]models.ScheduleSlot, len(slots))
	for _, slot := range slots {
		slotsByID[slot.ID] = slot
	}

	teachers, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	resolver := reconcile.NewResolver(models.NewTeacherDirectory(teachers), s.now())
	numbers := reconcile.NumberPeriods(slots)

	items := make([]reconcile.Occurrence, 0, len(records))
	for i := range records {
		rec := &records[i]
		slot, ok := slotsByID[rec.ScheduleSlotID]
		if !ok {
			s.logger.Warn("attendance row without schedule slot", zap.String("schedule_slot_id", rec.ScheduleSlotID))
			continue
		}
		occ := resolver.Resolve(reconcile.Input{Slot: slot, Date: rec.Date, Record: rec})
		occ.PeriodNumber = numbers[slot.ID]
		items = append(items, occ)
	}

	size := filter.PageSize
	lastPage := (total + size - 1) / size
	if lastPage < 1 {
		lastPage = 1
	}

	return &dto.HistoryResponse{
		Items: items,
		Pagination: models.Pagination{
			CurrentPage: filter.Page,
			PerPage:     size,
			TotalCount:  total,
			LastPage:    lastPage,
		},
	}, nil
}

func (s *HistoryService) buildFilter(req dto.HistoryRequest) (*models.AttendanceFilter, error) {
	filter := models.AttendanceFilter{
		TeacherID: req.TeacherID,
		ClassID:   req.ClassID,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	if req.Status != "" {
		status := models.AttendanceStatus(req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", req.Status))
		}
		filter.Status = &status
	}
	if req.DateFrom != "" {
		from, err := time.Parse(period.DateLayout, req.DateFrom)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date_from %q", req.DateFrom))
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse(period.DateLayout, req.DateTo)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date_to %q", req.DateTo))
		}
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date_to precedes date_from")
	}
	return &filter, nil
}
