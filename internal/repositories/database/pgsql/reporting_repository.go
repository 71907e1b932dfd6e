package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository runs spend aggregations in SQL so the PDF payloads
// never cross the wire for reporting reads.
type reportingRepository struct {
	db *pgxpool.Pool
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{db: db}
}

func (r *reportingRepository) GetVendorSpend(ctx context.Context, filter portsrepo.ReportingFilter) ([]domain.VendorSpend, error) {
	conditions := []string{}
	args := []any{}
	if filter.Vendor != "" {
		args = append(args, filter.Vendor)
		conditions = append(conditions, fmt.Sprintf("vendor = $%d", len(args)))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM invoice_date) = $%d", len(args)))
	}
	if filter.Month != 0 {
		args = append(args, filter.Month)
		conditions = append(conditions, fmt.Sprintf("EXTRACT(MONTH FROM invoice_date) = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT vendor, SUM(amount) AS total, COUNT(*) AS invoice_count
		FROM invoices
		%s
		GROUP BY vendor
		ORDER BY total DESC, vendor ASC;
	`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor spend: %w", err)
	}
	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.VendorSpend, error) {
		var v domain.VendorSpend
		err := row.Scan(&v.Vendor, &v.Total, &v.InvoiceCount)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan vendor spend rows: %w", err)
	}
	return result, nil
}

func (r *reportingRepository) GetMonthlySpend(ctx context.Context, year int) ([]domain.MonthlySpend, error) {
	where := ""
	args := []any{}
	if year != 0 {
		args = append(args, year)
		where = "WHERE EXTRACT(YEAR FROM invoice_date) = $1"
	}

	query := fmt.Sprintf(`
		SELECT to_char(invoice_date, 'YYYY-MM') AS month, SUM(amount) AS total
		FROM invoices
		%s
		GROUP BY month
		ORDER BY month ASC;
	`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly spend: %w", err)
	}
	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MonthlySpend, error) {
		var m domain.MonthlySpend
		err := row.Scan(&m.Month, &m.Total)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan monthly spend rows: %w", err)
	}
	return result, nil
}
