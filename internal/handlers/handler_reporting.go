package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
	"github.com/invoiceai/invoice_archive_app/internal/dto"
	"github.com/invoiceai/invoice_archive_app/internal/middleware"
)

// ReportingHandler serves spend aggregations and the CSV export.
type ReportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(rs portssvc.ReportingSvcFacade) *ReportingHandler {
	return &ReportingHandler{reportingService: rs}
}

// registerReportingRoutes sets up the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := NewReportingHandler(rs)
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/vendors", h.VendorSpend)
		reports.GET("/monthly", h.MonthlySpend)
		reports.GET("/export.csv", h.ExportCSV)
	}
}

// Summary godoc
// @Summary Dashboard spend summary
// @Tags reports
// @Produce json
// @Success 200 {object} dto.SpendSummaryResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *ReportingHandler) Summary(c *gin.Context) {
	summary, err := h.reportingService.Summary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSpendSummaryResponse(summary))
}

// VendorSpend godoc
// @Summary Spend by vendor
// @Tags reports
// @Produce json
// @Param vendor query string false "Exact vendor name"
// @Param year query int false "Year filter"
// @Param month query int false "Month filter (1-12)"
// @Success 200 {array} dto.VendorSpendResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/vendors [get]
func (h *ReportingHandler) VendorSpend(c *gin.Context) {
	var req dto.ReportFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	rows, err := h.reportingService.VendorSpend(c.Request.Context(), portsrepo.ReportingFilter{
		Vendor: req.Vendor,
		Year:   req.Year,
		Month:  req.Month,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVendorSpendResponses(rows))
}

// MonthlySpend godoc
// @Summary Spend by month
// @Tags reports
// @Produce json
// @Param year query int false "Restrict to one year"
// @Success 200 {array} dto.MonthlySpendResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *ReportingHandler) MonthlySpend(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	rows, err := h.reportingService.MonthlySpend(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlySpendResponses(rows))
}

// ExportCSV godoc
// @Summary Download the archive as CSV
// @Description UTF-8 with BOM, one row per record in list order.
// @Tags reports
// @Produce text/csv
// @Success 200 {string} string
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/export.csv [get]
func (h *ReportingHandler) ExportCSV(c *gin.Context) {
	data, fileName, err := h.reportingService.ExportCSV(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("CSV export failed", "error", err)
		respondWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
