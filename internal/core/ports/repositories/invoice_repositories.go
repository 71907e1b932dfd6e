package repositories

import (
	"context"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// ListInvoices retrieves all invoices ordered by invoice date descending.
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)

	// FindInvoiceByID retrieves a single invoice by its ID.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	// SaveInvoices persists a batch of new invoices in a single transaction.
	SaveInvoices(ctx context.Context, invoices []domain.Invoice) error

	// UpdateInvoice overwrites the editable fields and status of an invoice.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// DeleteInvoice removes an invoice permanently.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}

// InvoiceChangeListener blocks until the store signals that invoice rows
// changed (insert, update or delete by any writer, including other
// application instances). The payload is intentionally opaque: the reaction
// to any change is a full re-fetch.
type InvoiceChangeListener interface {
	WaitForChange(ctx context.Context) error
}

// InvoiceReadCache is an InvoiceReader backed by an in-memory snapshot that
// can be force-refreshed after local writes and subscribed to for change
// ticks.
type InvoiceReadCache interface {
	InvoiceReader

	// Refresh re-fetches the full record list and replaces the snapshot.
	Refresh(ctx context.Context) error

	// Subscribe returns a channel that receives a tick after every snapshot
	// replacement, plus a function to unsubscribe.
	Subscribe() (<-chan struct{}, func())
}
