package dto

import (
	"github.com/sekolahku/presensi-api/internal/reconcile"
)

// ClassManagementResponse is the curriculum team's live view of one day.
// Periods lists every scheduled slot of the day; NeedsAttention repeats the
// rows that require action, grouped by class.
type ClassManagementResponse struct {
	Date           string                 `json:"date"`
	Weekday        string                 `json:"weekday"`
	Summary        reconcile.Statistics   `json:"summary"`
	Periods        []reconcile.Occurrence `json:"periods"`
	NeedsAttention []ClassAttentionGroup  `json:"needs_attention"`
}

// ClassAttentionGroup collects a class's unresolved periods.
type ClassAttentionGroup struct {
	ClassID   string                 `json:"class_id"`
	ClassName string                 `json:"class_name"`
	Periods   []reconcile.Occurrence `json:"periods"`
}

// AvailableSubstitutesResponse lists teachers free to take over a slot.
type AvailableSubstitutesResponse struct {
	ScheduleSlotID string             `json:"schedule_slot_id"`
	Date           string             `json:"date"`
	Teachers       []AvailableTeacher `json:"teachers"`
}

// AvailableTeacher is one candidate substitute.
type AvailableTeacher struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	NIP  *string `json:"nip,omitempty"`
}
