package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/invoiceai/invoice_archive_app/internal/apperrors"
	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	"github.com/invoiceai/invoice_archive_app/internal/models"
	"github.com/invoiceai/invoice_archive_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceColumns = `invoice_id, invoice_number, vendor, invoice_date, amount, currency_code,
		pdf_data, file_name, status, owner_user_id,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

func newPgxInvoiceRepository(db *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository{Pool: db}}
}

func scanInvoiceRow(row pgx.CollectableRow) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.Vendor,
		&m.Date,
		&m.Amount,
		&m.CurrencyCode,
		&m.PDFData,
		&m.FileName,
		&m.Status,
		&m.OwnerUserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// ListInvoices returns all invoices in list order: invoice date descending,
// then creation time descending to keep same-day records stable.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices
		ORDER BY invoice_date DESC, created_at DESC;
	`, invoiceColumns)

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	modelInvoices, err := pgx.CollectRows(rows, scanInvoiceRow)
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoice rows: %w", err)
	}
	return mapping.ToDomainInvoiceSlice(modelInvoices), nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices
		WHERE invoice_id = $1;
	`, invoiceColumns)

	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice %s: %w", invoiceID, err)
	}
	m, err := pgx.CollectOneRow(rows, scanInvoiceRow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}
	d := mapping.ToDomainInvoice(m)
	return &d, nil
}

// SaveInvoices inserts a batch of new invoices in one transaction, so a
// partially stored batch can never be observed.
func (r *PgxInvoiceRepository) SaveInvoices(ctx context.Context, invoices []domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO invoices (invoice_id, invoice_number, vendor, invoice_date, amount, currency_code,
			pdf_data, file_name, status, owner_user_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, inv := range invoices {
		m := mapping.ToModelInvoice(inv)
		_, err := tx.Exec(ctx, query,
			m.InvoiceID,
			m.InvoiceNumber,
			m.Vendor,
			m.Date,
			m.Amount,
			m.CurrencyCode,
			m.PDFData,
			m.FileName,
			m.Status,
			m.OwnerUserID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert invoice %s: %w", m.InvoiceID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoice overwrites the editable fields and status of one record. The
// PDF payload and audit creation columns are immutable after insert.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET invoice_number = $1, vendor = $2, invoice_date = $3, amount = $4, currency_code = $5,
			status = $6, last_updated_at = $7, last_updated_by = $8
		WHERE invoice_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.InvoiceNumber,
		m.Vendor,
		m.Date,
		m.Amount,
		m.CurrencyCode,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.InvoiceID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s not found: %w", m.InvoiceID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s not found: %w", invoiceID, apperrors.ErrNotFound)
	}
	return nil
}
