package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/invoiceai/invoice_archive_app/internal/apperrors"
	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
	"github.com/invoiceai/invoice_archive_app/internal/dto"
)

// InvoiceService implements the draft/verification workflow. Reads go
// through the cache; writes go to the repository followed by a forced cache
// refresh, so the store remains the single source of truth.
type InvoiceService struct {
	cache       portsrepo.InvoiceReadCache
	invoiceRepo portsrepo.InvoiceWriter
}

var _ portssvc.InvoiceSvcFacade = (*InvoiceService)(nil)

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(cache portsrepo.InvoiceReadCache, invoiceRepo portsrepo.InvoiceWriter) *InvoiceService {
	return &InvoiceService{
		cache:       cache,
		invoiceRepo: invoiceRepo,
	}
}

// ListInvoices returns all invoices in list order (invoice date descending).
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return s.cache.ListInvoices(ctx)
}

// RecentInvoices returns the most recently created invoices, newest first.
func (s *InvoiceService) RecentInvoices(ctx context.Context, limit int) ([]domain.Invoice, error) {
	records, err := s.cache.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// GetInvoiceByID retrieves a single invoice.
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.cache.FindInvoiceByID(ctx, invoiceID)
}

// StartReview returns the edit form for a record, blanking placeholder
// sentinels so the reviewer sees empty inputs instead of the sentinel text.
func (s *InvoiceService) StartReview(ctx context.Context, invoiceID string) (*dto.ReviewFormResponse, error) {
	inv, err := s.cache.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	form := dto.ToReviewFormResponse(inv)
	return &form, nil
}

// ConfirmInvoice overwrites the five editable fields and forces the status
// to verified, whatever it was before. Invalid input is rejected before any
// store call and leaves the stored record untouched.
func (s *InvoiceService) ConfirmInvoice(ctx context.Context, invoiceID string, req dto.ConfirmInvoiceRequest, userID string) (*domain.Invoice, error) {
	if req.Vendor == "" {
		return nil, fmt.Errorf("%w: vendor is required", apperrors.ErrValidation)
	}
	date := req.ParsedDate()
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	inv, err := s.cache.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	updated := *inv
	updated.InvoiceNumber = req.InvoiceNumber
	updated.Vendor = req.Vendor
	updated.Date = date
	updated.Amount = req.Amount
	if req.CurrencyCode != "" {
		updated.CurrencyCode = req.CurrencyCode
	}
	updated.Status = domain.StatusVerified
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to confirm invoice %s: %w", invoiceID, err)
	}
	if err := s.cache.Refresh(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

// QuickApprove marks a draft verified without changing any field. Drafts
// whose vendor is still the unknown-vendor placeholder must go through the
// full review instead.
func (s *InvoiceService) QuickApprove(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	inv, err := s.cache.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.IsDraft() {
		return nil, fmt.Errorf("%w: only draft invoices can be quick-approved", apperrors.ErrValidation)
	}
	if inv.HasUnknownVendor() {
		return nil, fmt.Errorf("%w: vendor is still unknown, full review required", apperrors.ErrValidation)
	}

	updated := *inv
	updated.Status = domain.StatusVerified
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to quick-approve invoice %s: %w", invoiceID, err)
	}
	if err := s.cache.Refresh(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

// NextDraft returns the first remaining draft other than afterID, in list
// order, or nil when no drafts remain.
func (s *InvoiceService) NextDraft(ctx context.Context, afterID string) (*domain.Invoice, error) {
	records, err := s.cache.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].IsDraft() && records[i].InvoiceID != afterID {
			return &records[i], nil
		}
	}
	return nil, nil
}

// DeleteInvoice removes a record from either status and returns the next
// remaining draft, if any, so a reviewer can advance through the backlog.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID string, userID string) (*domain.Invoice, error) {
	if _, err := s.cache.FindInvoiceByID(ctx, invoiceID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if err := s.cache.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.NextDraft(ctx, invoiceID)
}
