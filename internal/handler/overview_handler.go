package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sekolahku/presensi-api/internal/dto"
	"github.com/sekolahku/presensi-api/internal/middleware"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
	"github.com/sekolahku/presensi-api/pkg/response"
)

type overviewService interface {
	WeeklyOverview(ctx context.Context, weekOffset int) (*dto.WeeklyOverviewResponse, bool, error)
}

// OverviewHandler wires the weekly overview service to HTTP endpoints.
type OverviewHandler struct {
	service overviewService
}

// NewOverviewHandler constructs the handler.
func NewOverviewHandler(service overviewService) *OverviewHandler {
	return &OverviewHandler{service: service}
}

// Weekly godoc
// @Summary Weekly teacher attendance overview
// @Tags Overview
// @Produce json
// @Param week query int false "Week offset (0 current week, -1 previous)"
// @Success 200 {object} response.Envelope
// @Router /overview/weekly [get]
func (h *OverviewHandler) Weekly(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	weekOffset := 0
	if raw := strings.TrimSpace(c.Query("week")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "week must be an integer offset"))
			return
		}
		weekOffset = parsed
	}

	start := time.Now()
	report, cacheHit, err := h.service.WeeklyOverview(c.Request.Context(), weekOffset)
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
	response.JSON(c, http.StatusOK, report, nil, meta)
}
