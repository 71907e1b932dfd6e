package domain

import "github.com/shopspring/decimal"

// VendorSpend is one row of the spend-by-vendor aggregation.
type VendorSpend struct {
	Vendor       string          `json:"vendor"`
	Total        decimal.Decimal `json:"total"`
	InvoiceCount int             `json:"invoiceCount"`
}

// MonthlySpend is one row of the spend-by-month aggregation.
// Month is encoded YYYY-MM so rows sort chronologically as strings.
type MonthlySpend struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// SpendSummary carries the dashboard headline numbers.
type SpendSummary struct {
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	TotalThisMonth  decimal.Decimal `json:"totalThisMonth"`
	AverageInvoice  decimal.Decimal `json:"averageInvoice"`
	InvoiceCount    int             `json:"invoiceCount"`
	DistinctVendors int             `json:"distinctVendors"`
	DraftCount      int             `json:"draftCount"`
}
