package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sekolahku/presensi-api/internal/dto"
	"github.com/sekolahku/presensi-api/internal/middleware"
	"github.com/sekolahku/presensi-api/internal/models"
	"github.com/sekolahku/presensi-api/internal/period"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
	"github.com/sekolahku/presensi-api/pkg/response"
)

type monitoringService interface {
	ClassManagement(ctx context.Context, date time.Time, classID string, status *models.AttendanceStatus) (*dto.ClassManagementResponse, bool, error)
}

// MonitoringHandler wires the daily class-management view to HTTP endpoints.
type MonitoringHandler struct {
	service monitoringService
}

// NewMonitoringHandler constructs the handler.
func NewMonitoringHandler(service monitoringService) *MonitoringHandler {
	return &MonitoringHandler{service: service}
}

// ClassManagement godoc
// @Summary Daily class management monitoring
// @Tags Monitoring
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Param classId query string false "Narrow to one class"
// @Param status query string false "Narrow to one attendance status"
// @Success 200 {object} response.Envelope
// @Router /monitoring/classes [get]
func (h *MonitoringHandler) ClassManagement(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	date := time.Now().UTC()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := time.Parse(period.DateLayout, raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	classID := strings.TrimSpace(c.Query("classId"))

	var status *models.AttendanceStatus
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		parsed := models.AttendanceStatus(raw)
		status = &parsed
	}

	start := time.Now()
	view, cacheHit, err := h.service.ClassManagement(c.Request.Context(), date, classID, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, view, nil, meta)
}
