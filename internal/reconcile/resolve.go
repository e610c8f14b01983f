// Package reconcile derives the effective attendance state of scheduled
// teaching periods by combining schedule slots, reported attendance rows and
// approved leave grants. All functions here are pure; persistence and caching
// live in the service layer.
package reconcile

import (
	"time"

	"github.com/sekolahku/presensi-api/internal/models"
	"github.com/sekolahku/presensi-api/internal/period"
)

// Source names which table produced an occurrence's status.
type Source string

const (
	SourceAttendance Source = "attendance_table"
	SourceLeave      Source = "leaves_table"
	SourceNone       Source = "none"
)

// DefaultAlertThresholdMinutes is how long after a period's start an
// unreported slot is flagged for attention.
const DefaultAlertThresholdMinutes = 15

// Occurrence is one teaching period on a concrete date, resolved to its
// effective status together with the display fields the views need.
type Occurrence struct {
	ScheduleSlotID string    `json:"schedule_slot_id"`
	Date           time.Time `json:"date"`

	ClassID     string  `json:"class_id"`
	ClassName   string  `json:"class_name"`
	SubjectName string  `json:"subject_name"`
	TeacherID   string  `json:"teacher_id"`
	TeacherName string  `json:"teacher_name"`
	TeacherNIP  *string `json:"teacher_nip,omitempty"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`

	// PeriodNumber is the 1-based position of this period within its
	// class's timetable for the day, ordered by start time.
	PeriodNumber int `json:"period_number,omitempty"`

	Status      models.AttendanceStatus `json:"status"`
	StatusColor string                  `json:"status_color"`
	Source      Source                  `json:"source"`

	ArrivalTime           *string `json:"arrival_time,omitempty"`
	LateMinutes           *int    `json:"late_minutes,omitempty"`
	Note                  *string `json:"note,omitempty"`
	LeaveReason           *string `json:"leave_reason,omitempty"`
	OriginalTeacherID     *string `json:"original_teacher_id,omitempty"`
	SubstituteTeacherID   *string `json:"substitute_teacher_id,omitempty"`
	SubstituteTeacherName *string `json:"substitute_teacher_name,omitempty"`

	IsCurrentPeriod bool `json:"is_current_period"`
	NoTeacherAlert  bool `json:"no_teacher_alert"`
}

// Input bundles everything known about one (slot, date) pair before
// resolution. Record and Leave are nil when no row matches.
type Input struct {
	Slot   models.ScheduleSlot
	Date   time.Time
	Record *models.AttendanceRecord
	Leave  *models.LeaveGrant
}

// Resolver turns Inputs into Occurrences. The zero value is not usable;
// construct with NewResolver.
type Resolver struct {
	teachers       models.TeacherDirectory
	now            time.Time
	alertThreshold int
}

// NewResolver builds a resolver evaluating against the given wall-clock time.
func NewResolver(teachers models.TeacherDirectory, now time.Time) *Resolver {
	return &Resolver{
		teachers:       teachers,
		now:            now,
		alertThreshold: DefaultAlertThresholdMinutes,
	}
}

// rule is one entry of the ordered resolution table. The first rule whose
// matches returns true applies; later rules are not consulted.
type rule struct {
	name    string
	matches func(r *Resolver, in Input) bool
	apply   func(r *Resolver, in Input, occ *Occurrence)
}

// Resolution order: a stored attendance row always wins, an approved leave
// covering the date comes next, then the no-teacher alert for a period that
// started without any report, and finally plain pending.
var rules = []rule{
	{
		name:    "attendance_record",
		matches: func(_ *Resolver, in Input) bool { return in.Record != nil },
		apply:   applyAttendanceRecord,
	},
	{
		name:    "approved_leave",
		matches: func(_ *Resolver, in Input) bool { return in.Leave != nil && in.Leave.Status == models.LeaveApproved },
		apply:   applyLeave,
	},
	{
		name:    "no_teacher_alert",
		matches: matchesNoTeacherAlert,
		apply: func(_ *Resolver, _ Input, occ *Occurrence) {
			occ.Status = models.StatusPending
			occ.Source = SourceNone
			occ.NoTeacherAlert = true
		},
	},
	{
		name:    "pending",
		matches: func(_ *Resolver, _ Input) bool { return true },
		apply: func(_ *Resolver, _ Input, occ *Occurrence) {
			occ.Status = models.StatusPending
			occ.Source = SourceNone
		},
	},
}

// Resolve produces the occurrence for one (slot, date) pair.
func (r *Resolver) Resolve(in Input) Occurrence {
	occ := Occurrence{
		ScheduleSlotID: in.Slot.ID,
		Date:           period.DateOnly(in.Date),
		ClassID:        in.Slot.ClassID,
		ClassName:      in.Slot.ClassName,
		SubjectName:    in.Slot.SubjectName,
		TeacherID:      in.Slot.TeacherID,
		TeacherName:    in.Slot.TeacherName,
		StartTime:      period.NormalizeClock(in.Slot.StartTime),
		EndTime:        period.NormalizeClock(in.Slot.EndTime),
	}
	if t, ok := r.teachers[in.Slot.TeacherID]; ok {
		occ.TeacherNIP = t.NIP
	}
	if r.sameDay(in.Date) {
		occ.IsCurrentPeriod = period.IsCurrentPeriod(r.now, in.Slot.StartTime, in.Slot.EndTime)
	}

	for _, rl := range rules {
		if rl.matches(r, in) {
			rl.apply(r, in, &occ)
			break
		}
	}

	occ.StatusColor = occ.Status.Color()
	return occ
}

func (r *Resolver) sameDay(date time.Time) bool {
	return period.DateOnly(r.now).Equal(period.DateOnly(date))
}

func applyAttendanceRecord(r *Resolver, in Input, occ *Occurrence) {
	rec := in.Record
	occ.Status = rec.Status
	occ.Source = SourceAttendance
	occ.ArrivalTime = rec.ArrivalTime
	occ.Note = rec.Note

	if rec.Status == models.StatusTelat && rec.ArrivalTime != nil {
		if late, err := period.LateMinutes(in.Slot.StartTime, *rec.ArrivalTime); err == nil {
			occ.LateMinutes = &late
		}
	}

	if rec.IsSubstituted() {
		occ.OriginalTeacherID = rec.OriginalTeacherID
		sub := rec.ReportedTeacherID
		occ.SubstituteTeacherID = &sub
		occ.SubstituteTeacherName = r.teachers.Name(sub)
	}
}

func applyLeave(r *Resolver, in Input, occ *Occurrence) {
	occ.Status = models.StatusIzin
	occ.Source = SourceLeave
	reason := in.Leave.ReasonText()
	occ.LeaveReason = &reason

	if in.Leave.SubstituteTeacherID != nil {
		occ.SubstituteTeacherID = in.Leave.SubstituteTeacherID
		occ.SubstituteTeacherName = r.teachers.Name(*in.Leave.SubstituteTeacherID)
	}
}

// The alert covers only the running period: once a period has ended, an
// unreported slot is plain pending.
func matchesNoTeacherAlert(r *Resolver, in Input) bool {
	if !r.sameDay(in.Date) {
		return false
	}
	if !period.IsCurrentPeriod(r.now, in.Slot.StartTime, in.Slot.EndTime) {
		return false
	}
	elapsed, err := period.MinutesSinceStart(r.now, in.Slot.StartTime)
	if err != nil {
		return false
	}
	return elapsed >= r.alertThreshold
}
