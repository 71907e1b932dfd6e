package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the database row shape for the invoices table.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	InvoiceNumber string          `db:"invoice_number"`
	Vendor        string          `db:"vendor"`
	Date          time.Time       `db:"invoice_date"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	PDFData       []byte          `db:"pdf_data"`
	FileName      string          `db:"file_name"`
	Status        string          `db:"status"`
	OwnerUserID   string          `db:"owner_user_id"`
	AuditFields
}

// AuditFields holds standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
