package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-news-sentiment/internal/api/dto"
	"golang-news-sentiment/internal/api/service"
	"golang-news-sentiment/internal/entity"
	"golang-news-sentiment/pkg/common"
	"golang-news-sentiment/pkg/logger"
)

type stubAnalysisService struct {
	response *dto.AnalyzeResponse
	err      error
}

func (s *stubAnalysisService) AnalyzeTopic(ctx context.Context, topic string, limit int) (*dto.AnalyzeResponse, error) {
	return s.response, s.err
}

func (s *stubAnalysisService) ScoreDocuments(ctx context.Context, topic string, docs []entity.Document) (*dto.AnalyzeResponse, error) {
	return s.response, s.err
}

func (s *stubAnalysisService) ModelInfo() dto.ModelInfo {
	return dto.ModelInfo{
		AvailableModels:     []string{"pattern", "vader"},
		ConfidenceThreshold: 0.6,
		EnsembleEnabled:     true,
	}
}

type stubInsightsService struct {
	stats  dto.SummaryStats
	trends dto.TrendResponse
}

func (s *stubInsightsService) History(ctx context.Context, maxAgeDays int) ([]dto.HistoryItem, error) {
	return []dto.HistoryItem{}, nil
}

func (s *stubInsightsService) SummaryStats(ctx context.Context, topic string, maxAgeDays int) (dto.SummaryStats, error) {
	return s.stats, nil
}

func (s *stubInsightsService) Trends(ctx context.Context, topic string, maxAgeDays int) (dto.TrendResponse, error) {
	return s.trends, nil
}

func (s *stubInsightsService) TopTopics(ctx context.Context, maxAgeDays, limit int) ([]dto.TopTopic, error) {
	return []dto.TopTopic{}, nil
}

func (s *stubInsightsService) Export(ctx context.Context, topic string, maxAgeDays int, format string) ([]byte, error) {
	if format == common.ExportFormatCSV {
		return []byte("id,keywords\n"), nil
	}
	return []byte("[]"), nil
}

func newTestHandler(t *testing.T, analysis service.AnalysisService, insights service.InsightsService) (*echo.Echo, *AnalysisHandler) {
	t.Helper()

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	e := echo.New()
	handler := NewAnalysisHandler(analysis, insights, log)
	handler.RegisterRoutes(e.Group("/api/v1"))
	return e, handler
}

func TestAnalyzeRequiresKeywords(t *testing.T) {
	e, _ := newTestHandler(t, &stubAnalysisService{}, &stubInsightsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"limit": 5}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Keywords are required", resp.Error)
}

func TestAnalyzeNoArticlesIsNotFound(t *testing.T) {
	e, _ := newTestHandler(t, &stubAnalysisService{err: service.ErrNoArticles}, &stubInsightsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"keywords": "ghost topic"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyzeSuccess(t *testing.T) {
	analysis := &stubAnalysisService{response: &dto.AnalyzeResponse{
		Success: true,
		Summary: dto.BatchSummary{TotalArticles: 2, Positive: 2},
	}}
	e, _ := newTestHandler(t, analysis, &stubInsightsService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"keywords": "markets"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Summary.TotalArticles)
}

func TestStatsPassesTopicAndWindow(t *testing.T) {
	insights := &stubInsightsService{stats: dto.SummaryStats{TotalArticles: 5, PeriodDays: 30}}
	e, _ := newTestHandler(t, &stubAnalysisService{}, insights)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?keywords=climate&days=30", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SummaryStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.TotalArticles)
	assert.Equal(t, 30, resp.PeriodDays)
}

func TestExportCSVContentType(t *testing.T) {
	e, _ := newTestHandler(t, &stubAnalysisService{}, &stubInsightsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export?format=csv", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
}

func TestModelsEndpoint(t *testing.T) {
	e, _ := newTestHandler(t, &stubAnalysisService{}, &stubInsightsService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ModelInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"pattern", "vader"}, resp.AvailableModels)
	assert.True(t, resp.EnsembleEnabled)
}
