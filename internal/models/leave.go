package models

import "time"

// LeaveStatus is the approval state of a leave grant.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveReason is the closed reason code set carried by leave grants.
type LeaveReason string

const (
	ReasonSakit          LeaveReason = "sakit"
	ReasonCutiTahunan    LeaveReason = "cuti_tahunan"
	ReasonUrusanKeluarga LeaveReason = "urusan_keluarga"
	ReasonAcaraResmi     LeaveReason = "acara_resmi"
	ReasonLainnya        LeaveReason = "lainnya"
)

var leaveReasonText = map[LeaveReason]string{
	ReasonSakit:          "Sakit",
	ReasonCutiTahunan:    "Cuti Tahunan",
	ReasonUrusanKeluarga: "Urusan Keluarga",
	ReasonAcaraResmi:     "Acara Resmi",
	ReasonLainnya:        "Lainnya",
}

// LeaveGrant is an approved absence covering a date range for one teacher.
// Only approved grants participate in reconciliation.
type LeaveGrant struct {
	ID                  string      `db:"id" json:"id"`
	TeacherID           string      `db:"teacher_id" json:"teacher_id"`
	StartDate           time.Time   `db:"start_date" json:"start_date"`
	EndDate             time.Time   `db:"end_date" json:"end_date"`
	Reason              LeaveReason `db:"reason" json:"reason"`
	CustomReason        *string     `db:"custom_reason" json:"custom_reason,omitempty"`
	SubstituteTeacherID *string     `db:"substitute_teacher_id" json:"substitute_teacher_id,omitempty"`
	Status              LeaveStatus `db:"status" json:"status"`
	Notes               *string     `db:"notes" json:"notes,omitempty"`
	CreatedAt           time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at" json:"updated_at"`
}

// Covers reports whether the grant's inclusive date range contains the date.
func (l *LeaveGrant) Covers(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(l.StartDate.Truncate(24*time.Hour)) && !d.After(l.EndDate.Truncate(24*time.Hour))
}

// Overlaps reports whether the grant's range intersects [from, to], inclusive.
func (l *LeaveGrant) Overlaps(from, to time.Time) bool {
	return !l.StartDate.After(to) && !l.EndDate.Before(from)
}

// ReasonText returns the localized display text for the leave reason. A
// custom reason takes over for the "lainnya" code when present.
func (l *LeaveGrant) ReasonText() string {
	if l.Reason == ReasonLainnya && l.CustomReason != nil && *l.CustomReason != "" {
		return *l.CustomReason
	}
	if text, ok := leaveReasonText[l.Reason]; ok {
		return text
	}
	return string(l.Reason)
}
