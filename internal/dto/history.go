package dto

import (
	"github.com/sekolahku/presensi-api/internal/models"
	"github.com/sekolahku/presensi-api/internal/reconcile"
)

// HistoryRequest filters the attendance history listing.
type HistoryRequest struct {
	TeacherID string `form:"teacher_id"`
	ClassID   string `form:"class_id"`
	Status    string `form:"status"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	Page      int    `form:"page,default=1"`
	PageSize  int    `form:"page_size,default=20"`
}

// HistoryResponse pages through resolved past observations.
type HistoryResponse struct {
	Items      []reconcile.Occurrence `json:"items"`
	Pagination models.Pagination      `json:"pagination"`
}
