package pgsql

import (
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	changeListener := newPgxChangeListener(dbPool)

	return portsrepo.RepositoryProvider{
		InvoiceRepo:    invoiceRepo,
		UserRepo:       userRepo,
		ReportingRepo:  reportingRepo,
		ChangeListener: changeListener,
	}
}
