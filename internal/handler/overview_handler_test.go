package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sekolahku/presensi-api/internal/dto"
)

type fakeOverviewSrv struct {
	resp       *dto.WeeklyOverviewResponse
	err        error
	hit        bool
	lastOffset int
}

func (f *fakeOverviewSrv) WeeklyOverview(_ context.Context, weekOffset int) (*dto.WeeklyOverviewResponse, bool, error) {
	f.lastOffset = weekOffset
	return f.resp, f.hit, f.err
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func TestOverviewHandlerWeeklyDefaultsToCurrentWeek(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeOverviewSrv{
		resp: &dto.WeeklyOverviewResponse{Week: dto.WeekInfo{Label: "Minggu Ini"}},
		hit:  true,
	}
	h := NewOverviewHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/overview/weekly", nil)

	h.Weekly(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, service.lastOffset)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestOverviewHandlerWeeklyParsesOffset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeOverviewSrv{resp: &dto.WeeklyOverviewResponse{}}
	h := NewOverviewHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/overview/weekly?week=-1", nil)

	h.Weekly(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, service.lastOffset)
}

func TestOverviewHandlerWeeklyRejectsNonNumericOffset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewOverviewHandler(&fakeOverviewSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/overview/weekly?week=lastweek", nil)

	h.Weekly(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
