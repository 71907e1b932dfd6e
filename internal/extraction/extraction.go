// Package extraction defines the boundary to the external document-AI
// service that turns raw invoice PDFs into structured fields.
package extraction

import (
	"context"
	"errors"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
)

// ErrEmptyResult is returned when the service ran but produced no usable
// structured data (empty or unparseable response). It deliberately carries no
// diagnostic detail; transport failures are returned as distinct, wrapped
// errors instead.
var ErrEmptyResult = errors.New("extraction returned no usable data")

// MaxHintRecords caps the number of prior verified records passed along as
// few-shot pattern hints.
const MaxHintRecords = 5

// Request carries one document to extract plus optional hint records that
// bias the model toward recognizing recurring vendor layouts and naming.
// Hints are advisory only; the gateway never enforces that output matches
// them.
type Request struct {
	PDFData  []byte
	FileName string
	Hints    []domain.Invoice
}

// Extractor abstracts the document-AI provider. Implementations perform a
// single call per request with no internal retries; failure is reported
// upward.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*domain.ExtractionResult, error)
}
