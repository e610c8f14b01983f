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

type scheduleSlotLister interface {
	List(ctx context.Context, filter models.ScheduleSlotFilter) ([]models.ScheduleSlot, error)
}

type attendanceRangeLister interface {
	ListRange(ctx context.Context, from, to time.Time) ([]models.AttendanceRecord, error)
}

type approvedLeaveLister interface {
	ListApprovedOverlapping(ctx context.Context, from, to time.Time) ([]models.LeaveGrant, error)
}

type teacherLister interface {
	ListAll(ctx context.Context) ([]models.Teacher, error)
}

// TopLateLimit caps the weekly late-arrival leaderboard.
const TopLateLimit = 5

// OverviewServiceConfig tunes overview behaviour.
type OverviewServiceConfig struct {
	CacheTTL time.Duration
}

// OverviewService composes the principal's weekly attendance report.
type OverviewService struct {
	slots      scheduleSlotLister
	attendance attendanceRangeLister
	leaves     approvedLeaveLister
	teachers   teacherLister
	cache      *CacheService
	logger     *zap.Logger
	now        func() time.Time
	cfg        OverviewServiceConfig
}

// OverviewServiceParams groups constructor dependencies.
type OverviewServiceParams struct {
	Slots      scheduleSlotLister
	Attendance attendanceRangeLister
	Leaves     approvedLeaveLister
	Teachers   teacherLister
	Cache      *CacheService
	Logger     *zap.Logger
	Config     OverviewServiceConfig
}

// NewOverviewService constructs an OverviewService with sane defaults.
func NewOverviewService(params OverviewServiceParams) *OverviewService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverviewService{
		slots:      params.Slots,
		attendance: params.Attendance,
		leaves:     params.Leaves,
		teachers:   params.Teachers,
		cache:      params.Cache,
		logger:     logger,
		now:        time.Now,
		cfg:        cfg,
	}
}

// WeeklyOverview builds the report for the week at the given offset from the
// current week (0 is this week, -1 last week). It reports cache utilisation.
func (s *OverviewService) WeeklyOverview(ctx context.Context, weekOffset int) (*dto.WeeklyOverviewResponse, bool, error) {
	if weekOffset > 0 {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "week offset cannot be in the future")
	}

	start, end := period.WeekBounds(s.now(), weekOffset)
	cacheKey := fmt.Sprintf("overview:week:%s", start.Format(period.DateLayout))
	if s.cache != nil {
		var cached dto.WeeklyOverviewResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &cached, true, nil
		}
	}

	report, err := s.compose(ctx, weekOffset, start, end)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, report, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("overview cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return report, false, nil
}

func (s *OverviewService) compose(ctx context.Context, weekOffset int, start, end time.Time) (*dto.WeeklyOverviewResponse, error) {
	prevStart, prevEnd := period.WeekBounds(s.now(), weekOffset-1)

	slots, err := s.slots.List(ctx, models.ScheduleSlotFilter{})
	if err != nil {
		return nil, err
	}
	teachers, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	directory := models.NewTeacherDirectory(teachers)
	resolver := reconcile.NewResolver(directory, s.now())

	thisWeek, err := s.resolveWeek(ctx, resolver, slots, start, end)
	if err != nil {
		return nil, err
	}
	lastWeek, err := s.resolveWeek(ctx, resolver, slots, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	currentStats := reconcile.Aggregate(thisWeek)
	previousStats := reconcile.Aggregate(lastWeek)

	onLeave, err := s.teachersOnLeave(ctx, directory, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.WeeklyOverviewResponse{
		Week: dto.WeekInfo{
			StartDate: start.Format(period.DateLayout),
			EndDate:   end.Format(period.DateLayout),
			Label:     period.WeekLabel(weekOffset, start, end),
			Offset:    weekOffset,
		},
		ThisWeek:             currentStats,
		LastWeek:             previousStats,
		Trends:               reconcile.Compare(currentStats, previousStats),
		DailyBreakdown:       reconcile.DailyBreakdown(thisWeek, start, end),
		ClassAttendanceRates: reconcile.ByClass(thisWeek),
		TopLateTeachers:      reconcile.TopLate(thisWeek, TopLateLimit),
		TeachersOnLeave:      onLeave,
	}, nil
}

func (s *OverviewService) resolveWeek(ctx context.Context, resolver *reconcile.Resolver, slots []models.ScheduleSlot, from, to time.Time) ([]reconcile.Occurrence, error) {
	records, err := s.attendance.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaves.ListApprovedOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return resolver.MergeReported(slots, from, to, records, leaves), nil
}

func (s *OverviewService) teachersOnLeave(ctx context.Context, directory models.TeacherDirectory, from, to time.Time) ([]dto.TeacherOnLeave, error) {
	leaves, err := s.leaves.ListApprovedOverlapping(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TeacherOnLeave, 0, len(leaves))
	for i := range leaves {
		lv := &leaves[i]
		entry := dto.TeacherOnLeave{
			TeacherID: lv.TeacherID,
			Reason:    lv.ReasonText(),
			StartDate: lv.StartDate.Format(period.DateLayout),
			EndDate:   lv.EndDate.Format(period.DateLayout),
		}
		if name := directory.Name(lv.TeacherID); name != nil {
			entry.TeacherName = *name
		}
		if lv.SubstituteTeacherID != nil {
			entry.SubstituteTeacherID = lv.SubstituteTeacherID
			entry.SubstituteTeacherName = directory.Name(*lv.SubstituteTeacherID)
		}
		out = append(out, entry)
	}
	return out, nil
}
