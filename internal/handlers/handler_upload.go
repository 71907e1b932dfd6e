package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/gin-gonic/gin"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
	"github.com/invoiceai/invoice_archive_app/internal/dto"
	"github.com/invoiceai/invoice_archive_app/internal/middleware"
	"github.com/invoiceai/invoice_archive_app/internal/platform/config"
)

// UploadHandler handles PDF batch uploads.
type UploadHandler struct {
	ingestionService portssvc.IngestionSvcFacade
	maxUploadSize    int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(is portssvc.IngestionSvcFacade, maxUploadSize int64) *UploadHandler {
	return &UploadHandler{
		ingestionService: is,
		maxUploadSize:    maxUploadSize,
	}
}

// registerUploadRoutes sets up the upload route.
func registerUploadRoutes(rg *gin.RouterGroup, cfg *config.Config, is portssvc.IngestionSvcFacade) {
	h := NewUploadHandler(is, cfg.MaxUploadSize)

	// 10 batches per minute per IP; each batch already runs sequentially
	// against the AI service.
	rate, _ := limiter.NewRateFromFormatted("10-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	rg.POST("/invoices/upload", middleware.RateLimit(ipLimiter), h.UploadBatch)
}

// UploadBatch godoc
// @Summary Upload a batch of invoice PDFs
// @Description Accepts multipart form files under the "files" field. Files are processed strictly in order; each accepted PDF ends as a completed, partial or error item.
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Invoice PDFs"
// @Success 201 {object} dto.BatchUploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/upload [post]
func (h *UploadHandler) UploadBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid multipart form: " + err.Error()})
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No files provided"})
		return
	}

	files := make([]dto.UploadedFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		if fh.Size > h.maxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: fmt.Sprintf("File %s exceeds the %d byte limit", fh.Filename, h.maxUploadSize),
			})
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file " + fh.Filename})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file " + fh.Filename})
			return
		}

		files = append(files, dto.UploadedFile{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	userID, _ := middleware.GetUserIDFromContext(c)

	items, invoices, err := h.ingestionService.ProcessBatch(c.Request.Context(), userID, files)
	if err != nil {
		logger.Error("Batch upload failed", "error", err)
		respondWithError(c, err)
		return
	}

	logger.Info("Batch upload processed", "files", len(files), "created", len(invoices))
	c.JSON(http.StatusCreated, dto.ToBatchUploadResponse(items, invoices))
}
