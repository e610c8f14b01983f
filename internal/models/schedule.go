package models

import "time"

// ScheduleSlot is a recurring weekly teaching assignment. Slots are owned by
// the scheduling subsystem and treated as immutable within a term.
type ScheduleSlot struct {
	ID          string    `db:"id" json:"id"`
	ClassID     string    `db:"class_id" json:"class_id"`
	ClassName   string    `db:"class_name" json:"class_name"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	Weekday     Weekday   `db:"weekday" json:"weekday"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleSlotFilter scopes slot listing queries.
type ScheduleSlotFilter struct {
	ClassID   string
	TeacherID string
	Weekday   Weekday
	StartTime string
}
