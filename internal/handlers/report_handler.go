package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/stwalsh4118/sdma/internal/errors"
	"github.com/stwalsh4118/sdma/internal/export"
	"github.com/stwalsh4118/sdma/internal/metrics"
	"github.com/stwalsh4118/sdma/internal/report"
	"github.com/stwalsh4118/sdma/internal/services"
)

// Report kinds and formats used as metric labels.
const (
	kindDashboard  = "dashboard"
	kindTehsil     = "tehsil"
	kindMonitoring = "monitoring"
	kindChart      = "chart"
	formatJSON     = "json"
	formatXLSX     = "xlsx"
)

// ReportHandler serves the dashboard, grouped reports and the district chart.
type ReportHandler struct {
	service services.ReportService
}

// NewReportHandler creates a new ReportHandler instance.
func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// ReportQuery holds the query parameters shared by the report endpoints.
// A missing year selects the default reporting year.
type ReportQuery struct {
	Month        string `form:"month"`
	Mode         string `form:"mode"`
	Buckets      string `form:"buckets"`
	Year         int    `form:"year" binding:"gte=0"`
	DisasterType int    `form:"disasterType" binding:"gte=0"`
}

func (h *ReportHandler) bindQuery(c *gin.Context) (ReportQuery, report.Filter, bool) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.BindError(c, err)
		return q, report.Filter{}, false
	}

	month, err := parseMonth(q.Month)
	if err != nil {
		apierrors.BadRequest(c, err.Error(), map[string]interface{}{"month": q.Month})
		return q, report.Filter{}, false
	}

	year := q.Year
	if year == 0 {
		year = h.service.DefaultYear()
	}
	return q, report.Filter{Year: year, Month: month, DisasterTypeID: q.DisasterType}, true
}

func sendWorkbook(c *gin.Context, rep report.Report, kind string) {
	data, err := export.ReportWorkbook(rep)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to build spreadsheet", err)
		return
	}

	metrics.ReportsGeneratedTotal.WithLabelValues(kind, formatXLSX).Inc()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(rep)))
	c.Data(http.StatusOK, export.ContentType, data)
}

// Dashboard handles GET /api/v1/dashboard.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	_, filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	dash, err := h.service.Dashboard(c.Request.Context(), user, filter.Year)
	if err != nil {
		respondServiceError(c, err, "Failed to build dashboard")
		return
	}

	metrics.ReportsGeneratedTotal.WithLabelValues(kindDashboard, formatJSON).Inc()
	c.JSON(http.StatusOK, dash)
}

func (h *ReportHandler) tehsilReport(c *gin.Context) (report.Report, bool) {
	user, ok := currentUser(c)
	if !ok {
		return report.Report{}, false
	}
	_, filter, ok := h.bindQuery(c)
	if !ok {
		return report.Report{}, false
	}
	// The tehsil report always covers every disaster type.
	filter.DisasterTypeID = 0

	rep, err := h.service.TehsilReport(c.Request.Context(), user, filter)
	if err != nil {
		respondServiceError(c, err, "Failed to build tehsil report")
		return report.Report{}, false
	}
	return rep, true
}

// TehsilReport handles GET /api/v1/reports/tehsil.
func (h *ReportHandler) TehsilReport(c *gin.Context) {
	rep, ok := h.tehsilReport(c)
	if !ok {
		return
	}
	metrics.ReportsGeneratedTotal.WithLabelValues(kindTehsil, formatJSON).Inc()
	c.JSON(http.StatusOK, rep)
}

// TehsilExport handles GET /api/v1/reports/tehsil/export.
func (h *ReportHandler) TehsilExport(c *gin.Context) {
	rep, ok := h.tehsilReport(c)
	if !ok {
		return
	}
	sendWorkbook(c, rep, kindTehsil)
}

func (h *ReportHandler) monitoringReport(c *gin.Context) (report.Report, bool) {
	q, filter, ok := h.bindQuery(c)
	if !ok {
		return report.Report{}, false
	}

	mode, err := report.ParseMode(q.Mode)
	if err != nil {
		apierrors.BadRequest(c, err.Error(), map[string]interface{}{"mode": q.Mode})
		return report.Report{}, false
	}

	rep, err := h.service.MonitoringReport(c.Request.Context(), mode, filter)
	if err != nil {
		respondServiceError(c, err, "Failed to build monitoring report")
		return report.Report{}, false
	}
	return rep, true
}

// MonitoringReport handles GET /api/v1/reports/monitoring.
func (h *ReportHandler) MonitoringReport(c *gin.Context) {
	rep, ok := h.monitoringReport(c)
	if !ok {
		return
	}
	metrics.ReportsGeneratedTotal.WithLabelValues(kindMonitoring, formatJSON).Inc()
	c.JSON(http.StatusOK, rep)
}

// MonitoringExport handles GET /api/v1/reports/monitoring/export.
func (h *ReportHandler) MonitoringExport(c *gin.Context) {
	rep, ok := h.monitoringReport(c)
	if !ok {
		return
	}
	sendWorkbook(c, rep, kindMonitoring)
}

// parseBuckets reads a comma separated list of bucket keys. A missing
// parameter selects every bucket; a present but empty one selects none.
func parseBuckets(s string, present bool) (report.BucketSet, error) {
	if !present {
		return report.AllBuckets(), nil
	}

	set := make(report.BucketSet)
	for _, key := range strings.Split(s, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		b, ok := report.ParseBucket(key)
		if !ok {
			return nil, fmt.Errorf("unknown bucket %q", key)
		}
		set[b] = true
	}
	return set, nil
}

// DistrictChart handles GET /api/v1/charts/districts.
func (h *ReportHandler) DistrictChart(c *gin.Context) {
	q, filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	_, present := c.GetQuery("buckets")
	active, err := parseBuckets(q.Buckets, present)
	if err != nil {
		apierrors.BadRequest(c, err.Error(), map[string]interface{}{"buckets": q.Buckets})
		return
	}

	chart, err := h.service.DistrictChart(c.Request.Context(), filter.Year, active)
	if err != nil {
		respondServiceError(c, err, "Failed to build district chart")
		return
	}

	metrics.ReportsGeneratedTotal.WithLabelValues(kindChart, formatJSON).Inc()
	c.JSON(http.StatusOK, chart)
}
