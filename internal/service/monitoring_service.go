package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sekolahku/presensi-api/internal/dto"
	"github.com/sekolahku/presensi-api/internal/models"
	"github.com/sekolahku/presensi-api/internal/period"
	"github.com/sekolahku/presensi-api/internal/reconcile"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
)

type weekdaySlotLister interface {
	ListByWeekday(ctx context.Context, weekday models.Weekday) ([]models.ScheduleSlot, error)
}

// MonitoringServiceConfig tunes the live monitoring view.
type MonitoringServiceConfig struct {
	CacheTTL time.Duration
}

// MonitoringService composes the curriculum team's daily class-management
// view: every scheduled period of a day with its resolved status.
type MonitoringService struct {
	slots      weekdaySlotLister
	attendance attendanceRangeLister
	leaves     approvedLeaveLister
	teachers   teacherLister
	cache      *CacheService
	logger     *zap.Logger
	now        func() time.Time
	cfg        MonitoringServiceConfig
}

// MonitoringServiceParams groups constructor dependencies.
type MonitoringServiceParams struct {
	Slots      weekdaySlotLister
	Attendance attendanceRangeLister
	Leaves     approvedLeaveLister
	Teachers   teacherLister
	Cache      *CacheService
	Logger     *zap.Logger
	Config     MonitoringServiceConfig
}

// NewMonitoringService constructs a MonitoringService.
func NewMonitoringService(params MonitoringServiceParams) *MonitoringService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		// Short TTL: the view changes as reports come in.
		cfg.CacheTTL = 10 * time.Second
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonitoringService{
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

// ClassManagement resolves every period of the given date, optionally
// narrowed to one class or one status. It reports cache utilisation.
func (s *MonitoringService) ClassManagement(ctx context.Context, date time.Time, classID string, status *models.AttendanceStatus) (*dto.ClassManagementResponse, bool, error) {
	if status != nil && !status.Valid() {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", *status))
	}

	date = period.DateOnly(date)
	statusKey := ""
	if status != nil {
		statusKey = string(*status)
	}
	cacheKey := fmt.Sprintf("monitoring:day:%s:%s:%s", date.Format(period.DateLayout), classID, statusKey)
	if s.cache != nil {
		var cached dto.ClassManagementResponse
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &cached, true, nil
		}
	}

	view, err := s.compose(ctx, date, classID, status)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, view, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("monitoring cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return view, false, nil
}

func (s *MonitoringService) compose(ctx context.Context, date time.Time, classID string, status *models.AttendanceStatus) (*dto.ClassManagementResponse, error) {
	weekday := models.WeekdayOf(date)
	slots, err := s.slots.ListByWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}
	records, err := s.attendance.ListRange(ctx, date, date)
	if err != nil {
		return nil, err
	}
	leaves, err := s.leaves.ListApprovedOverlapping(ctx, date, date)
	if err != nil {
		return nil, err
	}
	teachers, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resolver := reconcile.NewResolver(models.NewTeacherDirectory(teachers), s.now())
	all := resolver.ExpandDay(slots, date, records, leaves)

	periods := make([]reconcile.Occurrence, 0, len(all))
	for _, occ := range all {
		if classID != "" && occ.ClassID != classID {
			continue
		}
		if status != nil && occ.Status != *status {
			continue
		}
		periods = append(periods, occ)
	}

	// Status counts always cover the whole day; filters narrow only the
	// listed periods.
	return &dto.ClassManagementResponse{
		Date:           date.Format(period.DateLayout),
		Weekday:        weekday.String(),
		Summary:        reconcile.Aggregate(all),
		Periods:        periods,
		NeedsAttention: groupNeedsAttention(periods),
	}, nil
}

// attentionRank orders periods within a class by how urgent they are.
// Absences and unreported slots past the alert threshold come first, then
// leaves, then late arrivals.
func attentionRank(occ reconcile.Occurrence) int {
	switch {
	case occ.NoTeacherAlert || occ.Status == models.StatusTidakHadir:
		return 0
	case occ.Status == models.StatusIzin:
		return 1
	case occ.Status == models.StatusTelat:
		return 2
	}
	return -1
}

// groupNeedsAttention collects the periods a coordinator should act on,
// grouped per class and ordered by urgency.
func groupNeedsAttention(periods []reconcile.Occurrence) []dto.ClassAttentionGroup {
	groups := make(map[string]*dto.ClassAttentionGroup)
	for _, occ := range periods {
		if attentionRank(occ) < 0 {
			continue
		}
		group, ok := groups[occ.ClassID]
		if !ok {
			group = &dto.ClassAttentionGroup{ClassID: occ.ClassID, ClassName: occ.ClassName}
			groups[occ.ClassID] = group
		}
		group.Periods = append(group.Periods, occ)
	}

	out := make([]dto.ClassAttentionGroup, 0, len(groups))
	for _, group := range groups {
		sort.SliceStable(group.Periods, func(i, j int) bool {
			return attentionRank(group.Periods[i]) < attentionRank(group.Periods[j])
		})
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClassName < out[j].ClassName })
	return out
}
