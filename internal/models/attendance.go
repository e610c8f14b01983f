package models

import "time"

// AttendanceStatus represents the status of one teacher-attendance observation.
type AttendanceStatus string

const (
	StatusPending    AttendanceStatus = "pending"
	StatusHadir      AttendanceStatus = "hadir"
	StatusTelat      AttendanceStatus = "telat"
	StatusTidakHadir AttendanceStatus = "tidak_hadir"
	StatusIzin       AttendanceStatus = "izin"
	StatusDiganti    AttendanceStatus = "diganti"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusHadir, StatusTelat, StatusTidakHadir, StatusIzin, StatusDiganti:
		return true
	default:
		return false
	}
}

var statusColors = map[AttendanceStatus]string{
	StatusPending:    "gray",
	StatusHadir:      "green",
	StatusTelat:      "yellow",
	StatusTidakHadir: "red",
	StatusIzin:       "purple",
	StatusDiganti:    "blue",
}

// Color returns the display color the client apps use for the status badge.
func (s AttendanceStatus) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "gray"
}

// AttendanceRecord is an observation for one (scheduleSlotID, date) pair.
// At most one record exists per pair; reports and substitute assignments
// update the existing row, they never duplicate it.
type AttendanceRecord struct {
	ID                string           `db:"id" json:"id"`
	ScheduleSlotID    string           `db:"schedule_slot_id" json:"schedule_slot_id"`
	Date              time.Time        `db:"date" json:"date"`
	ReportedTeacherID string           `db:"reported_teacher_id" json:"reported_teacher_id"`
	OriginalTeacherID *string          `db:"original_teacher_id" json:"original_teacher_id,omitempty"`
	Status            AttendanceStatus `db:"status" json:"status"`
	ArrivalTime       *string          `db:"arrival_time" json:"arrival_time,omitempty"`
	Note              *string          `db:"note" json:"note,omitempty"`
	CreatedBy         *string          `db:"created_by" json:"created_by,omitempty"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updated_at"`
}

// IsSubstituted reports whether the row records a substitute takeover. The
// status is authoritative: older rows may miss original_teacher_id, and a
// non-diganti row can still carry one from an undone takeover.
func (r *AttendanceRecord) IsSubstituted() bool {
	return r.Status == StatusDiganti
}

// AttendanceFilter scopes attendance listing queries.
type AttendanceFilter struct {
	ScheduleSlotIDs []string
	TeacherID       string
	ClassID         string
	Status          *AttendanceStatus
	DateFrom        *time.Time
	DateTo          *time.Time
	Page            int
	PageSize        int
}
