package handler

import (
	"errors"
	"net/http"

	"harborsync/internal/service"
	"harborsync/pkg/pagination"
	"harborsync/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InvoiceHandler serves the persisted snapshot read-only. It never
// touches the write path; ingestion happens in its own process.
type InvoiceHandler struct {
	reportService service.ReportService
}

func NewInvoiceHandler(reportService service.ReportService) *InvoiceHandler {
	return &InvoiceHandler{reportService: reportService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.GET("/:id/report", h.GetInvoiceReport)
	}

	router.GET("/api/report", h.GetReport)
	router.GET("/api/runs", h.ListRuns)
}

// ListInvoices returns a paginated list of persisted invoice snapshots,
// newest first.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	params := pagination.Parse(c)

	invoices, total, err := h.reportService.ListInvoices(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"invoices": invoices,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// GetInvoice returns one invoice with its categories (by total cost
// descending) and line items (by line total descending).
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.reportService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Invoice not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// GetInvoiceReport returns the verification summaries for one invoice.
func (h *InvoiceHandler) GetInvoiceReport(c *gin.Context) {
	report, err := h.reportService.BuildInvoiceReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Invoice not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// GetReport returns the verification dump across all invoices.
func (h *InvoiceHandler) GetReport(c *gin.Context) {
	report, err := h.reportService.BuildReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// ListRuns returns the ingestion run history, newest first.
func (h *InvoiceHandler) ListRuns(c *gin.Context) {
	params := pagination.Parse(c)

	runs, total, err := h.reportService.ListRuns(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"runs":  runs,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}
