package services

import (
	"context"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
)

// VendorSvcFacade exposes the derived vendor-name index used for
// autocomplete and for biasing the extraction gateway.
type VendorSvcFacade interface {
	// DistinctVendors returns the sorted set of vendor names, excluding the
	// unknown-vendor placeholder. With verifiedOnly, drafts are ignored.
	// Names are compared byte-for-byte: no trimming or case folding.
	DistinctVendors(ctx context.Context, verifiedOnly bool) ([]string, error)

	// Suggest filters the verified distinct set with a case-insensitive
	// "contains" match on query.
	Suggest(ctx context.Context, query string) ([]string, error)

	// HintRecords returns up to limit recently verified records to pass to
	// the extraction gateway as pattern hints.
	HintRecords(ctx context.Context, limit int) ([]domain.Invoice, error)
}
