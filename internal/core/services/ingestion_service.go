package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
	"github.com/invoiceai/invoice_archive_app/internal/dto"
	"github.com/invoiceai/invoice_archive_app/internal/extraction"
	"github.com/shopspring/decimal"
)

const pdfContentType = "application/pdf"

// ProgressFunc observes per-item status transitions while a batch is being
// processed.
type ProgressFunc func(item domain.QueueItem)

// IngestionServiceOption is a functional option for configuring the
// ingestion service.
type IngestionServiceOption func(*ingestionService)

// WithProgressFunc registers a per-item progress observer.
func WithProgressFunc(fn ProgressFunc) IngestionServiceOption {
	return func(s *ingestionService) {
		s.progress = fn
	}
}

// ingestionService implements the batch upload workflow. Items are processed
// strictly sequentially: one extraction call in flight at a time, in
// submission order, so load on the AI service stays bounded and progress is
// deterministic.
type ingestionService struct {
	extractor       extraction.Extractor
	invoiceRepo     portsrepo.InvoiceWriter
	cache           portsrepo.InvoiceReadCache
	vendorSvc       portssvc.VendorSvcFacade
	defaultCurrency string
	progress        ProgressFunc
}

var _ portssvc.IngestionSvcFacade = (*ingestionService)(nil)

// NewIngestionService creates the ingestion service.
func NewIngestionService(
	extractor extraction.Extractor,
	invoiceRepo portsrepo.InvoiceWriter,
	cache portsrepo.InvoiceReadCache,
	vendorSvc portssvc.VendorSvcFacade,
	defaultCurrency string,
	options ...IngestionServiceOption,
) portssvc.IngestionSvcFacade {
	svc := &ingestionService{
		extractor:       extractor,
		invoiceRepo:     invoiceRepo,
		cache:           cache,
		vendorSvc:       vendorSvc,
		defaultCurrency: defaultCurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

type queuedFile struct {
	item domain.QueueItem
	data []byte
}

// ProcessBatch drains one upload batch: enqueue, process sequentially,
// persist the created drafts in a single transaction, refresh the cache.
// A failure on one item marks that item only; the rest of the queue still
// runs.
func (s *ingestionService) ProcessBatch(ctx context.Context, creatorUserID string, files []dto.UploadedFile) ([]domain.QueueItem, []domain.Invoice, error) {
	queue := s.enqueue(files)

	// Hints are advisory only; if they cannot be loaded the batch proceeds
	// without them.
	hints, _ := s.vendorSvc.HintRecords(ctx, extraction.MaxHintRecords)

	invoices := make([]domain.Invoice, 0, len(queue))
	for i := range queue {
		s.processItem(ctx, &queue[i], hints, creatorUserID, &invoices)
	}

	items := make([]domain.QueueItem, len(queue))
	for i := range queue {
		items[i] = queue[i].item
	}

	if len(invoices) > 0 {
		if err := s.invoiceRepo.SaveInvoices(ctx, invoices); err != nil {
			return items, nil, fmt.Errorf("failed to persist batch of %d invoices: %w", len(invoices), err)
		}
		if err := s.cache.Refresh(ctx); err != nil {
			return items, invoices, err
		}
	}
	return items, invoices, nil
}

// enqueue accepts only files declared as PDF; anything else is silently
// dropped at the boundary.
func (s *ingestionService) enqueue(files []dto.UploadedFile) []queuedFile {
	queue := make([]queuedFile, 0, len(files))
	for _, f := range files {
		if f.ContentType != pdfContentType {
			continue
		}
		queue = append(queue, queuedFile{
			item: domain.QueueItem{
				ItemID:   uuid.NewString(),
				FileName: f.FileName,
				Status:   domain.QueuePending,
			},
			data: f.Data,
		})
	}
	return queue
}

func (s *ingestionService) processItem(ctx context.Context, q *queuedFile, hints []domain.Invoice, creatorUserID string, invoices *[]domain.Invoice) {
	q.item.Status = domain.QueueProcessing
	s.reportProgress(q.item)

	result, err := s.extractor.Extract(ctx, extraction.Request{
		PDFData:  q.data,
		FileName: q.item.FileName,
		Hints:    hints,
	})

	switch {
	case errors.Is(err, extraction.ErrEmptyResult):
		// The service ran but produced nothing usable: keep the file as a
		// placeholder draft instead of dropping it.
		inv := s.placeholderInvoice(q, creatorUserID)
		*invoices = append(*invoices, inv)
		q.item.Status = domain.QueuePartial
		q.item.InvoiceID = inv.InvoiceID
	case err != nil:
		q.item.Status = domain.QueueError
		q.item.ErrorMessage = err.Error()
	default:
		inv := s.extractedInvoice(q, result, creatorUserID)
		*invoices = append(*invoices, inv)
		q.item.Status = domain.QueueCompleted
		q.item.Result = result
		q.item.InvoiceID = inv.InvoiceID
	}
	s.reportProgress(q.item)
}

func (s *ingestionService) extractedInvoice(q *queuedFile, result *domain.ExtractionResult, creatorUserID string) domain.Invoice {
	currency := result.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}
	now := time.Now()
	return domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: result.InvoiceNumber,
		Vendor:        result.Vendor,
		Date:          result.Date,
		Amount:        result.Amount,
		CurrencyCode:  currency,
		PDFData:       q.data,
		FileName:      q.item.FileName,
		Status:        domain.StatusDraft,
		OwnerUserID:   creatorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
}

func (s *ingestionService) placeholderInvoice(q *queuedFile, creatorUserID string) domain.Invoice {
	now := time.Now()
	return domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: domain.PlaceholderInvoiceNumber,
		Vendor:        domain.UnknownVendor,
		Date:          now,
		Amount:        decimal.Zero,
		CurrencyCode:  s.defaultCurrency,
		PDFData:       q.data,
		FileName:      q.item.FileName,
		Status:        domain.StatusDraft,
		OwnerUserID:   creatorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
}

func (s *ingestionService) reportProgress(item domain.QueueItem) {
	if s.progress != nil {
		s.progress(item)
	}
}
