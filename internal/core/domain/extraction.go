package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtractionResult holds the structured fields produced by the document AI
// gateway for one PDF. It is transient: it either seeds a new draft Invoice
// or pre-fills a review form, and is never persisted as-is.
type ExtractionResult struct {
	InvoiceNumber string
	Vendor        string
	Date          time.Time
	Amount        decimal.Decimal
	CurrencyCode  string
}
