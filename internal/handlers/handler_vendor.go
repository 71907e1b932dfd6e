package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
)

// VendorHandler serves the derived vendor-name index.
type VendorHandler struct {
	vendorService portssvc.VendorSvcFacade
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vs portssvc.VendorSvcFacade) *VendorHandler {
	return &VendorHandler{vendorService: vs}
}

// registerVendorRoutes sets up the vendor index routes.
func registerVendorRoutes(rg *gin.RouterGroup, vs portssvc.VendorSvcFacade) {
	h := NewVendorHandler(vs)
	vendors := rg.Group("/vendors")
	{
		vendors.GET("", h.ListVendors)
		vendors.GET("/suggest", h.Suggest)
	}
}

// ListVendors godoc
// @Summary List distinct vendor names
// @Description Sorted set of vendor names, excluding the unknown-vendor placeholder. Names are compared byte-for-byte.
// @Tags vendors
// @Produce json
// @Param verifiedOnly query bool false "Exclude drafts" default(false)
// @Success 200 {array} string
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendors [get]
func (h *VendorHandler) ListVendors(c *gin.Context) {
	verifiedOnly := c.Query("verifiedOnly") == "true"
	vendors, err := h.vendorService.DistinctVendors(c.Request.Context(), verifiedOnly)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

// Suggest godoc
// @Summary Autocomplete vendor names
// @Description Case-insensitive contains match over the verified vendor set.
// @Tags vendors
// @Produce json
// @Param q query string true "Query string"
// @Success 200 {array} string
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /vendors/suggest [get]
func (h *VendorHandler) Suggest(c *gin.Context) {
	suggestions, err := h.vendorService.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}
