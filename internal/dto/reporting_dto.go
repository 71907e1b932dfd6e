package dto

import (
	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportFilterRequest narrows the reports views. All fields optional.
type ReportFilterRequest struct {
	Vendor string `form:"vendor"`
	Year   int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month  int    `form:"month" binding:"omitempty,min=1,max=12"`
}

// SpendSummaryResponse carries the dashboard headline numbers.
type SpendSummaryResponse struct {
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	TotalThisMonth  decimal.Decimal `json:"totalThisMonth"`
	AverageInvoice  decimal.Decimal `json:"averageInvoice"`
	InvoiceCount    int             `json:"invoiceCount"`
	DistinctVendors int             `json:"distinctVendors"`
	DraftCount      int             `json:"draftCount"`
}

// VendorSpendResponse is one row of the spend-by-vendor report.
type VendorSpendResponse struct {
	Vendor       string          `json:"vendor"`
	Total        decimal.Decimal `json:"total"`
	InvoiceCount int             `json:"invoiceCount"`
}

// MonthlySpendResponse is one row of the spend-by-month report.
type MonthlySpendResponse struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// ToSpendSummaryResponse converts the domain summary.
func ToSpendSummaryResponse(s *domain.SpendSummary) SpendSummaryResponse {
	return SpendSummaryResponse{
		TotalSpent:      s.TotalSpent,
		TotalThisMonth:  s.TotalThisMonth,
		AverageInvoice:  s.AverageInvoice,
		InvoiceCount:    s.InvoiceCount,
		DistinctVendors: s.DistinctVendors,
		DraftCount:      s.DraftCount,
	}
}

// ToVendorSpendResponses converts the domain vendor rows.
func ToVendorSpendResponses(rows []domain.VendorSpend) []VendorSpendResponse {
	res := make([]VendorSpendResponse, len(rows))
	for i, r := range rows {
		res[i] = VendorSpendResponse{Vendor: r.Vendor, Total: r.Total, InvoiceCount: r.InvoiceCount}
	}
	return res
}

// ToMonthlySpendResponses converts the domain monthly rows.
func ToMonthlySpendResponses(rows []domain.MonthlySpend) []MonthlySpendResponse {
	res := make([]MonthlySpendResponse, len(rows))
	for i, r := range rows {
		res[i] = MonthlySpendResponse{Month: r.Month, Total: r.Total}
	}
	return res
}
