package services

import (
	"context"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/invoiceai/invoice_archive_app/internal/dto"
)

// InvoiceSvcFacade exposes the invoice archive and the draft/verification
// workflow.
type InvoiceSvcFacade interface {
	// ListInvoices returns all invoices ordered by invoice date descending.
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)

	// RecentInvoices returns the most recently created invoices, newest first.
	RecentInvoices(ctx context.Context, limit int) ([]domain.Invoice, error)

	// GetInvoiceByID retrieves a single invoice including its PDF payload.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// StartReview returns the edit form for a record, with placeholder
	// sentinels blanked.
	StartReview(ctx context.Context, invoiceID string) (*dto.ReviewFormResponse, error)

	// ConfirmInvoice overwrites the editable fields and marks the record
	// verified, whatever its prior status. Returns apperrors.ErrValidation
	// without touching the store when vendor is empty, date is missing or
	// amount is not positive.
	ConfirmInvoice(ctx context.Context, invoiceID string, req dto.ConfirmInvoiceRequest, userID string) (*domain.Invoice, error)

	// QuickApprove marks a draft verified without changing any field. Only
	// available for drafts whose vendor is not the unknown-vendor
	// placeholder.
	QuickApprove(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)

	// NextDraft returns the first draft other than afterID in list order, or
	// nil when no drafts remain.
	NextDraft(ctx context.Context, afterID string) (*domain.Invoice, error)

	// DeleteInvoice removes a record from either status and returns the next
	// remaining draft, if any, so the reviewer can advance.
	DeleteInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error)
}
