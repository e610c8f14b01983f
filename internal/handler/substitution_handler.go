package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sekolahku/presensi-api/internal/dto"
	"github.com/sekolahku/presensi-api/internal/middleware"
	"github.com/sekolahku/presensi-api/internal/period"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
	"github.com/sekolahku/presensi-api/pkg/response"
)

type substitutionService interface {
	Assign(ctx context.Context, req dto.AssignSubstituteRequest) (*dto.AssignSubstituteResponse, error)
	AvailableSubstitutes(ctx context.Context, slotID string, date time.Time) (*dto.AvailableSubstitutesResponse, error)
}

// SubstitutionHandler wires substitute assignment to HTTP endpoints.
type SubstitutionHandler struct {
	service substitutionService
}

// NewSubstitutionHandler constructs the handler.
func NewSubstitutionHandler(service substitutionService) *SubstitutionHandler {
	return &SubstitutionHandler{service: service}
}

// Assign godoc
// @Summary Assign a substitute teacher to a period
// @Tags Substitution
// @Accept json
// @Produce json
// @Param payload body dto.AssignSubstituteRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /substitutions [post]
func (h *SubstitutionHandler) Assign(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var req dto.AssignSubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	result, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}

// Available godoc
// @Summary List teachers available to substitute a period
// @Tags Substitution
// @Produce json
// @Param slotId path string true "Schedule slot ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /substitutions/{slotId}/available [get]
func (h *SubstitutionHandler) Available(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	slotID := strings.TrimSpace(c.Param("slotId"))
	if slotID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "slotId is required"))
		return
	}

	raw := strings.TrimSpace(c.Query("date"))
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date is required"))
		return
	}
	date, err := time.Parse(period.DateLayout, raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD"))
		return
	}

	result, err := h.service.AvailableSubstitutes(c.Request.Context(), slotID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, middleware.ExtractMeta(c))
}
