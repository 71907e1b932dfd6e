package repositories

import (
	"context"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
)

// ReportingFilter narrows reporting aggregations. Zero values mean "no
// filter" for the corresponding dimension.
type ReportingFilter struct {
	Vendor string
	Year   int
	Month  int
}

// ReportingRepository defines the aggregation queries backing the reports
// views. Aggregation happens in SQL so the PDF payloads never leave the
// database for reporting reads.
type ReportingRepository interface {
	// GetVendorSpend returns total spend per vendor, highest total first.
	GetVendorSpend(ctx context.Context, filter ReportingFilter) ([]domain.VendorSpend, error)

	// GetMonthlySpend returns total spend per YYYY-MM month in chronological
	// order, optionally restricted to one year.
	GetMonthlySpend(ctx context.Context, year int) ([]domain.MonthlySpend, error)
}
