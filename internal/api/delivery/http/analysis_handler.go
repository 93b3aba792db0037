package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"golang-news-sentiment/internal/api/dto"
	"golang-news-sentiment/internal/api/service"
	"golang-news-sentiment/pkg/common"
	"golang-news-sentiment/pkg/logger"
)

// AnalysisHandler handles HTTP requests for scoring and insights.
type AnalysisHandler struct {
	analysis service.AnalysisService
	insights service.InsightsService
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysis service.AnalysisService, insights service.InsightsService, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis, insights: insights, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/analyze", h.Analyze)
	g.GET("/history", h.History)
	g.GET("/stats", h.SummaryStats)
	g.GET("/trends/:keyword", h.Trends)
	g.GET("/topics/top", h.TopTopics)
	g.GET("/export", h.Export)
	g.GET("/models", h.Models)
}

// Analyze fetches, scores, and stores news for the requested keywords.
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if req.Keywords == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Keywords are required"})
	}

	resp, err := h.analysis.AnalyzeTopic(c.Request().Context(), req.Keywords, req.Limit)
	if errors.Is(err, service.ErrNoArticles) {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "No articles found"})
	}
	if err != nil {
		h.logger.Error("analyze request failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

// History returns recent analysis rows.
func (h *AnalysisHandler) History(c echo.Context) error {
	days := queryInt(c, "days", 7)

	items, err := h.insights.History(c.Request().Context(), days)
	if err != nil {
		h.logger.Error("history request failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

// SummaryStats returns the aggregate view for an optional topic filter.
func (h *AnalysisHandler) SummaryStats(c echo.Context) error {
	days := queryInt(c, "days", 7)
	topic := c.QueryParam("keywords")

	stats, err := h.insights.SummaryStats(c.Request().Context(), topic, days)
	if err != nil {
		h.logger.Error("stats request failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

// Trends returns the sentiment time series for one keyword.
func (h *AnalysisHandler) Trends(c echo.Context) error {
	days := queryInt(c, "days", 7)
	keyword := c.Param("keyword")

	trends, err := h.insights.Trends(c.Request().Context(), keyword, days)
	if err != nil {
		h.logger.Error("trends request failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, trends)
}

// TopTopics returns the most-analyzed topics ranking.
func (h *AnalysisHandler) TopTopics(c echo.Context) error {
	days := queryInt(c, "days", 7)
	limit := queryInt(c, "limit", 10)

	topics, err := h.insights.TopTopics(c.Request().Context(), days, limit)
	if err != nil {
		h.logger.Error("top topics request failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, topics)
}

// Export streams the stored rows as JSON or CSV.
func (h *AnalysisHandler) Export(c echo.Context) error {
	days := queryInt(c, "days", 7)
	topic := c.QueryParam("keywords")
	format := c.QueryParam("format")
	if format == "" {
		format = common.ExportFormatJSON
	}

	payload, err := h.insights.Export(c.Request().Context(), topic, days, format)
	if err != nil {
		h.logger.Error("export request failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}

	contentType := echo.MIMEApplicationJSON
	if format == common.ExportFormatCSV {
		contentType = "text/csv"
	}
	return c.Blob(http.StatusOK, contentType, payload)
}

// Models describes the registered classifier ensemble.
func (h *AnalysisHandler) Models(c echo.Context) error {
	return c.JSON(http.StatusOK, h.analysis.ModelInfo())
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
