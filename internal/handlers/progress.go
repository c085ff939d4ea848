package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/billyribeiro-ux/cognition-os/internal/repository"
)

type ProgressHandler struct {
	log *zap.Logger
}

func NewProgressHandler(log *zap.Logger) *ProgressHandler {
	return &ProgressHandler{log: log}
}

// scoreMetricLabels drives the metric dropdown on the progress page.
var scoreMetricLabels = map[string]string{
	"overall_accuracy":  "Overall Accuracy (%)",
	"position_accuracy": "Position Accuracy (%)",
	"symbol_accuracy":   "Symbol Accuracy (%)",
	"n_level":           "N-Back Level",
	"duration_seconds":  "Session Duration (s)",
}

// Metrics lists the chartable training metrics.
func (h *ProgressHandler) Metrics(c *gin.Context) {
	type option struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	options := make([]option, 0, len(scoreMetricLabels))
	for value, label := range scoreMetricLabels {
		options = append(options, option{Value: value, Label: label})
	}
	c.JSON(http.StatusOK, gin.H{"metrics": options})
}

// Chart renders one training metric over time as echarts options JSON.
func (h *ProgressHandler) Chart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	metricKey := c.DefaultQuery("metric", "overall_accuracy")
	label, valid := scoreMetricLabels[metricKey]
	if !valid {
		metricKey = "overall_accuracy"
		label = scoreMetricLabels[metricKey]
	}

	data, err := repository.GetScoreTimeline(c.Request.Context(), user.ID, metricKey)
	if err != nil {
		h.log.Error("Failed to get score timeline",
			zap.Uint("userID", user.ID),
			zap.String("metricKey", metricKey),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}

	chart := generateTimelineChart(data, label)
	c.JSON(http.StatusOK, chart.JSON())
}

// CompletionChart renders the daily completion percentage history.
func (h *ProgressHandler) CompletionChart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	logs, err := repository.GetDailyLogs(c.Request.Context(), user.ID, 0)
	if err != nil {
		h.log.Error("Failed to get daily logs for chart", zap.Uint("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load daily logs"})
		return
	}

	// Logs come back newest first; the chart wants oldest first.
	items := make([]opts.LineData, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		items = append(items, opts.LineData{Value: []interface{}{logs[i].Date, logs[i].CompletionPercent}})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Daily Completion",
			Subtitle: "Percent of required items completed",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	line.AddSeries("Completion %", items).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))

	c.JSON(http.StatusOK, line.JSON())
}

func generateTimelineChart(data []repository.TimelineDataPoint, metricLabel string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Training Over Time",
			Subtitle: metricLabel,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	// Create data points in the format [date, value]
	items := make([]opts.LineData, 0)
	for _, point := range data {
		items = append(items, opts.LineData{Value: []interface{}{point.Date, point.Value}})
	}

	line.AddSeries(metricLabel, items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
