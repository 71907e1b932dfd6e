package mapping

import (
	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/invoiceai/invoice_archive_app/internal/models"
)

// ToModelInvoice converts a domain invoice to its database row shape.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		Vendor:        d.Vendor,
		Date:          d.Date,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		PDFData:       d.PDFData,
		FileName:      d.FileName,
		Status:        string(d.Status),
		OwnerUserID:   d.OwnerUserID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a database row to the domain invoice.
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		Vendor:        m.Vendor,
		Date:          m.Date,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		PDFData:       m.PDFData,
		FileName:      m.FileName,
		Status:        domain.InvoiceStatus(m.Status),
		OwnerUserID:   m.OwnerUserID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of rows to domain invoices.
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}
