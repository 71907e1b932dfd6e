package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
	"github.com/invoiceai/invoice_archive_app/internal/dto"
	"github.com/invoiceai/invoice_archive_app/internal/middleware"
)

const defaultRecentLimit = 5

// InvoiceHandler handles invoice archive and review requests.
type InvoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
	cache          portsrepo.InvoiceReadCache
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(is portssvc.InvoiceSvcFacade, cache portsrepo.InvoiceReadCache) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: is, cache: cache}
}

// RegisterInvoiceRoutes sets up the routes for the invoice archive.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, is portssvc.InvoiceSvcFacade, cache portsrepo.InvoiceReadCache) {
	h := NewInvoiceHandler(is, cache)
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/recent", h.RecentInvoices)
		invoices.GET("/next-draft", h.NextDraft)
		invoices.GET("/events", h.StreamEvents)
		invoices.GET("/:id", h.GetInvoice)
		invoices.GET("/:id/review", h.StartReview)
		invoices.PUT("/:id/confirm", h.ConfirmInvoice)
		invoices.POST("/:id/quick-approve", h.QuickApprove)
		invoices.DELETE("/:id", h.DeleteInvoice)
	}
}

// ListInvoices godoc
// @Summary List all invoices
// @Description Returns all invoices ordered by invoice date descending, without PDF payloads.
// @Tags invoices
// @Produce json
// @Success 200 {array} dto.InvoiceResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// RecentInvoices godoc
// @Summary List recently created invoices
// @Tags invoices
// @Produce json
// @Param limit query int false "Maximum rows" default(5)
// @Success 200 {array} dto.InvoiceResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/recent [get]
func (h *InvoiceHandler) RecentInvoices(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRecentLimit)))
	if err != nil || limit <= 0 {
		limit = defaultRecentLimit
	}
	invoices, err := h.invoiceService.RecentInvoices(c.Request.Context(), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// GetInvoice godoc
// @Summary Get one invoice with its PDF payload
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceDetailResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceDetailResponse(inv))
}

// StartReview godoc
// @Summary Get the pre-filled review form for a record
// @Description Placeholder sentinels are blanked so the reviewer sees empty inputs.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.ReviewFormResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/review [get]
func (h *InvoiceHandler) StartReview(c *gin.Context) {
	form, err := h.invoiceService.StartReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// ConfirmInvoice godoc
// @Summary Save the review form and mark the record verified
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body dto.ConfirmInvoiceRequest true "Edited fields"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/confirm [put]
func (h *InvoiceHandler) ConfirmInvoice(c *gin.Context) {
	var req dto.ConfirmInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	inv, err := h.invoiceService.ConfirmInvoice(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// QuickApprove godoc
// @Summary Mark a draft verified without editing
// @Description Rejected for non-drafts and for drafts whose vendor is still unknown.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/quick-approve [post]
func (h *InvoiceHandler) QuickApprove(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	inv, err := h.invoiceService.QuickApprove(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// NextDraft godoc
// @Summary Get the next draft awaiting review
// @Tags invoices
// @Produce json
// @Param after query string false "Draft to skip"
// @Success 200 {object} dto.InvoiceResponse
// @Success 204 "No drafts remain"
// @Security BearerAuth
// @Router /invoices/next-draft [get]
func (h *InvoiceHandler) NextDraft(c *gin.Context) {
	inv, err := h.invoiceService.NextDraft(c.Request.Context(), c.Query("after"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if inv == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// DeleteInvoice godoc
// @Summary Delete a record
// @Description Works on drafts and verified records alike. Returns the next draft when one remains.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.DeleteInvoiceResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	invoiceID := c.Param("id")
	userID, _ := middleware.GetUserIDFromContext(c)

	next, err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	resp := dto.DeleteInvoiceResponse{DeletedID: invoiceID}
	if next != nil {
		nextResp := dto.ToInvoiceResponse(next)
		resp.NextDraft = &nextResp
	}
	c.JSON(http.StatusOK, resp)
}

// StreamEvents godoc
// @Summary Subscribe to archive change notifications
// @Description Server-sent events stream. One "changed" event per snapshot refresh; clients re-fetch the list on each event.
// @Tags invoices
// @Produce text/event-stream
// @Success 200
// @Security BearerAuth
// @Router /invoices/events [get]
func (h *InvoiceHandler) StreamEvents(c *gin.Context) {
	ticks, unsubscribe := h.cache.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Initial event so the client knows the stream is live.
	c.SSEvent("connected", "ok")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case _, ok := <-ticks:
			if !ok {
				return false
			}
			c.SSEvent("changed", "refresh")
			return true
		}
	})
}
