package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// csvHeader matches the export format consumed by the spreadsheet templates
// downstream; the column names are part of the contract.
const csvHeader = "ID,Data,Fornitore,Numero,Importo,Valuta"

// utf8BOM makes Excel open the export with the right encoding.
const utf8BOM = "\xEF\xBB\xBF"

// reportingService implements spend aggregation and the CSV export.
type reportingService struct {
	reader        portsrepo.InvoiceReader
	reportingRepo portsrepo.ReportingRepository
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// NewReportingService creates a new reporting service.
func NewReportingService(reader portsrepo.InvoiceReader, reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reader:        reader,
		reportingRepo: reportingRepo,
	}
}

// Summary computes the dashboard headline numbers from the cached record
// list.
func (s *reportingService) Summary(ctx context.Context) (*domain.SpendSummary, error) {
	records, err := s.reader.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for summary: %w", err)
	}

	now := time.Now()
	summary := &domain.SpendSummary{
		TotalSpent:     decimal.Zero,
		TotalThisMonth: decimal.Zero,
		AverageInvoice: decimal.Zero,
		InvoiceCount:   len(records),
	}

	vendors := make(map[string]struct{})
	for _, inv := range records {
		summary.TotalSpent = summary.TotalSpent.Add(inv.Amount)
		if inv.Date.Year() == now.Year() && inv.Date.Month() == now.Month() {
			summary.TotalThisMonth = summary.TotalThisMonth.Add(inv.Amount)
		}
		if inv.Vendor != domain.UnknownVendor {
			vendors[inv.Vendor] = struct{}{}
		}
		if inv.IsDraft() {
			summary.DraftCount++
		}
	}
	summary.DistinctVendors = len(vendors)
	if len(records) > 0 {
		summary.AverageInvoice = summary.TotalSpent.Div(decimal.NewFromInt(int64(len(records)))).Round(2)
	}
	return summary, nil
}

// VendorSpend returns total spend per vendor, highest total first.
func (s *reportingService) VendorSpend(ctx context.Context, filter portsrepo.ReportingFilter) ([]domain.VendorSpend, error) {
	rows, err := s.reportingRepo.GetVendorSpend(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vendor spend: %w", err)
	}
	return rows, nil
}

// MonthlySpend returns total spend per month in chronological order.
func (s *reportingService) MonthlySpend(ctx context.Context, year int) ([]domain.MonthlySpend, error) {
	rows, err := s.reportingRepo.GetMonthlySpend(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly spend: %w", err)
	}
	return rows, nil
}

// ExportCSV renders the full archive in list order. The vendor column is
// always double-quoted, with embedded quotes doubled.
func (s *reportingService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	records, err := s.reader.ListInvoices(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list invoices for CSV export: %w", err)
	}

	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(csvHeader)
	b.WriteByte('\n')
	for _, inv := range records {
		vendor := strings.ReplaceAll(inv.Vendor, `"`, `""`)
		fmt.Fprintf(&b, "%s,%s,\"%s\",%s,%s,%s\n",
			inv.InvoiceID,
			inv.Date.Format("2006-01-02"),
			vendor,
			inv.InvoiceNumber,
			inv.Amount.String(),
			inv.CurrencyCode,
		)
	}

	fileName := fmt.Sprintf("report_fatture_%s.csv", time.Now().Format("2006-01-02"))
	return []byte(b.String()), fileName, nil
}
