package dto

import (
	"github.com/sekolahku/presensi-api/internal/models"
)

// AssignSubstituteRequest assigns a substitute teacher to one period.
type AssignSubstituteRequest struct {
	ScheduleSlotID      string  `json:"schedule_slot_id" binding:"required"`
	Date                string  `json:"date" binding:"required"`
	SubstituteTeacherID string  `json:"substitute_teacher_id" binding:"required"`
	Note                *string `json:"note,omitempty"`
}

// AssignSubstituteResponse echoes the stored takeover.
type AssignSubstituteResponse struct {
	Record                models.AttendanceRecord `json:"record"`
	OriginalTeacherName   *string                 `json:"original_teacher_name,omitempty"`
	SubstituteTeacherName *string                 `json:"substitute_teacher_name,omitempty"`
}
