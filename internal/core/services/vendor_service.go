package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
	"github.com/invoiceai/invoice_archive_app/internal/extraction"
)

// suggestionDisplayCap bounds the autocomplete suggestion list.
const suggestionDisplayCap = 10

// VendorService derives the vendor-name index from the record list on every
// read. Nothing is stored: the index follows whatever the cache currently
// holds.
type VendorService struct {
	reader portsrepo.InvoiceReader
}

var _ portssvc.VendorSvcFacade = (*VendorService)(nil)

// NewVendorService creates a new VendorService.
func NewVendorService(reader portsrepo.InvoiceReader) *VendorService {
	return &VendorService{reader: reader}
}

// DistinctVendors projects the vendor field across records, excluding the
// unknown-vendor placeholder, deduplicated and sorted lexicographically.
// Names that differ only in case or whitespace stay distinct entries.
func (s *VendorService) DistinctVendors(ctx context.Context, verifiedOnly bool) ([]string, error) {
	records, err := s.reader.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for vendor index: %w", err)
	}

	seen := make(map[string]struct{})
	for _, inv := range records {
		if verifiedOnly && inv.Status != domain.StatusVerified {
			continue
		}
		if inv.Vendor == domain.UnknownVendor {
			continue
		}
		seen[inv.Vendor] = struct{}{}
	}

	vendors := make([]string, 0, len(seen))
	for v := range seen {
		vendors = append(vendors, v)
	}
	sort.Strings(vendors)
	return vendors, nil
}

// Suggest returns verified vendor names containing query, case-insensitively.
func (s *VendorService) Suggest(ctx context.Context, query string) ([]string, error) {
	vendors, err := s.DistinctVendors(ctx, true)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]string, 0, suggestionDisplayCap)
	for _, v := range vendors {
		if needle != "" && !strings.Contains(strings.ToLower(v), needle) {
			continue
		}
		matches = append(matches, v)
		if len(matches) == suggestionDisplayCap {
			break
		}
	}
	return matches, nil
}

// HintRecords returns up to limit verified records, most recently created
// first, for use as extraction pattern hints.
func (s *VendorService) HintRecords(ctx context.Context, limit int) ([]domain.Invoice, error) {
	if limit <= 0 || limit > extraction.MaxHintRecords {
		limit = extraction.MaxHintRecords
	}

	records, err := s.reader.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for extraction hints: %w", err)
	}

	verified := make([]domain.Invoice, 0, len(records))
	for _, inv := range records {
		if inv.Status == domain.StatusVerified {
			verified = append(verified, inv)
		}
	}
	sort.SliceStable(verified, func(i, j int) bool {
		return verified[i].CreatedAt.After(verified[j].CreatedAt)
	})

	if len(verified) > limit {
		verified = verified[:limit]
	}
	return verified, nil
}
