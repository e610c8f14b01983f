// Package dto defines the request and response payloads of the HTTP API.
package dto

import (
	"github.com/sekolahku/presensi-api/internal/reconcile"
)

// WeekInfo identifies the week an overview covers.
type WeekInfo struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
	Offset    int    `json:"offset"`
}

// TeacherOnLeave is one roster entry of the teachers absent during the week.
type TeacherOnLeave struct {
	TeacherID             string  `json:"teacher_id"`
	TeacherName           string  `json:"teacher_name"`
	Reason                string  `json:"reason"`
	StartDate             string  `json:"start_date"`
	EndDate               string  `json:"end_date"`
	SubstituteTeacherID   *string `json:"substitute_teacher_id,omitempty"`
	SubstituteTeacherName *string `json:"substitute_teacher_name,omitempty"`
}

// WeeklyOverviewResponse is the principal's weekly attendance report.
type WeeklyOverviewResponse struct {
	Week                 WeekInfo                    `json:"week"`
	ThisWeek             reconcile.Statistics        `json:"this_week"`
	LastWeek             reconcile.Statistics        `json:"last_week"`
	Trends               reconcile.Trends            `json:"trends"`
	DailyBreakdown       []reconcile.DayStatistics   `json:"daily_breakdown"`
	ClassAttendanceRates []reconcile.ClassStatistics `json:"class_attendance_rates"`
	TopLateTeachers      []reconcile.TeacherLateness `json:"top_late_teachers"`
	TeachersOnLeave      []TeacherOnLeave            `json:"teachers_on_leave"`
}
