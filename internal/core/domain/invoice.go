package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus indicates the lifecycle state of a stored invoice.
type InvoiceStatus string

const (
	StatusDraft    InvoiceStatus = "draft"
	StatusVerified InvoiceStatus = "verified"
)

// Placeholder values written into drafts when AI extraction yields no usable
// data. They are only legal while the record is still a draft; confirmation
// replaces them with real values.
const (
	PlaceholderInvoiceNumber = "DA COMPILARE"
	UnknownVendor            = "FORNITORE SCONOSCIUTO"
)

// Invoice represents a single archived vendor invoice together with its
// original PDF payload.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`     // Primary Key (UUID, generated client-side at creation)
	InvoiceNumber string          `json:"invoiceNumber"` // Free text; may hold PlaceholderInvoiceNumber on drafts
	Vendor        string          `json:"vendor"`        // Free text; may hold UnknownVendor on drafts
	Date          time.Time       `json:"date"`          // Invoice date (date precision only)
	Amount        decimal.Decimal `json:"amount"`        // Non-negative; precise decimal type
	CurrencyCode  string          `json:"currencyCode"`  // ISO-like currency code
	PDFData       []byte          `json:"-"`             // Original file content
	FileName      string          `json:"fileName"`      // Display / traceability only
	Status        InvoiceStatus   `json:"status"`
	OwnerUserID   string          `json:"ownerUserID"` // Uploading user
	AuditFields
}

// IsDraft reports whether the invoice still awaits user verification.
func (i Invoice) IsDraft() bool {
	return i.Status == StatusDraft
}

// HasUnknownVendor reports whether the vendor field still holds the
// unknown-vendor placeholder. Such records cannot be quick-approved.
func (i Invoice) HasUnknownVendor() bool {
	return i.Vendor == UnknownVendor
}
