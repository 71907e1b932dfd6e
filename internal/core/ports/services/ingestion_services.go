package services

import (
	"context"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/invoiceai/invoice_archive_app/internal/dto"
)

// IngestionSvcFacade runs the batch upload workflow: enqueue accepted files,
// process them strictly sequentially through the extraction gateway, and
// persist the resulting draft records in one batch.
type IngestionSvcFacade interface {
	// ProcessBatch drains one upload batch. Non-PDF files are silently
	// dropped at enqueue time. Every accepted file yields either a draft
	// record (extracted or placeholder) or an error item; a failure on one
	// item never halts the rest of the queue. The returned slices hold the
	// terminal queue items and the created records, in submission order.
	ProcessBatch(ctx context.Context, creatorUserID string, files []dto.UploadedFile) ([]domain.QueueItem, []domain.Invoice, error)
}
