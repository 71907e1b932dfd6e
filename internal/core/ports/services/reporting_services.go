package services

import (
	"context"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
)

// ReportingSvcFacade exposes spend aggregations and the CSV export.
type ReportingSvcFacade interface {
	// Summary computes the dashboard headline numbers from the full record
	// list.
	Summary(ctx context.Context) (*domain.SpendSummary, error)

	// VendorSpend returns total spend per vendor, optionally filtered.
	VendorSpend(ctx context.Context, filter portsrepo.ReportingFilter) ([]domain.VendorSpend, error)

	// MonthlySpend returns total spend per month, optionally for one year.
	MonthlySpend(ctx context.Context, year int) ([]domain.MonthlySpend, error)

	// ExportCSV renders the full archive as CSV (UTF-8 with BOM) and returns
	// the file content plus a suggested download name.
	ExportCSV(ctx context.Context) ([]byte, string, error)
}
