package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahku/presensi-api/internal/dto"
	"github.com/sekolahku/presensi-api/internal/middleware"
	appErrors "github.com/sekolahku/presensi-api/pkg/errors"
	"github.com/sekolahku/presensi-api/pkg/response"
)

type historyService interface {
	List(ctx context.Context, req dto.HistoryRequest) (*dto.HistoryResponse, error)
}

// HistoryHandler wires the attendance history listing to HTTP endpoints.
type HistoryHandler struct {
	service historyService
}

// NewHistoryHandler constructs the handler.
func NewHistoryHandler(service historyService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// List godoc
// @Summary Paginated attendance history
// @Tags History
// @Produce json
// @Param teacher_id query string false "Filter by teacher"
// @Param class_id query string false "Filter by class"
// @Param status query string false "Filter by attendance status"
// @Param date_from query string false "Range start (YYYY-MM-DD)"
// @Param date_to query string false "Range end (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var req dto.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result.Items, &result.Pagination, middleware.ExtractMeta(c))
}
