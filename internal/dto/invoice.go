package dto

import (
	"encoding/base64"
	"time"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// ConfirmInvoiceRequest carries the edited fields of a record under review.
// Saving always marks the record verified, whatever its prior status.
type ConfirmInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	Vendor        string          `json:"vendor"`
	Date          string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
}

// ParsedDate returns the request date as a time, zero when absent.
func (r ConfirmInvoiceRequest) ParsedDate() time.Time {
	t, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// InvoiceResponse is the list/detail representation of an invoice, without
// the PDF payload.
type InvoiceResponse struct {
	InvoiceID     string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Vendor        string          `json:"vendor"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currency"`
	FileName      string          `json:"fileName"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// InvoiceDetailResponse adds the base64 PDF payload for the viewer.
type InvoiceDetailResponse struct {
	InvoiceResponse
	PDFData string `json:"pdfData"`
}

// ReviewFormResponse pre-fills the edit form for a record under review.
// Fields still holding a placeholder are blanked so the reviewer sees an
// empty input, not the sentinel text.
type ReviewFormResponse struct {
	InvoiceID     string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Vendor        string          `json:"vendor"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currency"`
	Status        string          `json:"status"`
}

// DeleteInvoiceResponse reports the deletion and, when available, the draft
// the reviewer should move to next.
type DeleteInvoiceResponse struct {
	DeletedID string           `json:"deletedId"`
	NextDraft *InvoiceResponse `json:"nextDraft,omitempty"`
}

// ToInvoiceResponse converts a domain invoice to its API representation.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		Vendor:        inv.Vendor,
		Date:          inv.Date.Format(dateLayout),
		Amount:        inv.Amount,
		CurrencyCode:  inv.CurrencyCode,
		FileName:      inv.FileName,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt,
	}
}

// ToInvoiceDetailResponse converts a domain invoice including the PDF bytes.
func ToInvoiceDetailResponse(inv *domain.Invoice) InvoiceDetailResponse {
	return InvoiceDetailResponse{
		InvoiceResponse: ToInvoiceResponse(inv),
		PDFData:         base64.StdEncoding.EncodeToString(inv.PDFData),
	}
}

// ToListInvoiceResponse converts a slice of domain invoices.
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}

// ToReviewFormResponse builds the edit form for a record, substituting empty
// strings for placeholder sentinels.
func ToReviewFormResponse(inv *domain.Invoice) ReviewFormResponse {
	form := ReviewFormResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		Vendor:        inv.Vendor,
		Date:          inv.Date.Format(dateLayout),
		Amount:        inv.Amount,
		CurrencyCode:  inv.CurrencyCode,
		Status:        string(inv.Status),
	}
	if form.InvoiceNumber == domain.PlaceholderInvoiceNumber {
		form.InvoiceNumber = ""
	}
	if form.Vendor == domain.UnknownVendor {
		form.Vendor = ""
	}
	return form
}
