package dto

import "github.com/invoiceai/invoice_archive_app/internal/core/domain"

// UploadedFile is one file of an upload batch as received at the HTTP
// boundary.
type UploadedFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// BatchItemResponse reports the terminal state of one queued file.
type BatchItemResponse struct {
	ItemID       string `json:"itemID"`
	FileName     string `json:"fileName"`
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	InvoiceID    string `json:"invoiceID,omitempty"`
}

// BatchUploadResponse is the outcome of one upload batch.
type BatchUploadResponse struct {
	Items     []BatchItemResponse `json:"items"`
	Invoices  []InvoiceResponse   `json:"invoices"`
	Completed int                 `json:"completed"`
	Partial   int                 `json:"partial"`
	Errors    int                 `json:"errors"`
}

// ToBatchUploadResponse converts queue items and created records to the API
// representation.
func ToBatchUploadResponse(items []domain.QueueItem, invoices []domain.Invoice) BatchUploadResponse {
	resp := BatchUploadResponse{
		Items:    make([]BatchItemResponse, len(items)),
		Invoices: ToListInvoiceResponse(invoices),
	}
	for i, item := range items {
		resp.Items[i] = BatchItemResponse{
			ItemID:       item.ItemID,
			FileName:     item.FileName,
			Status:       string(item.Status),
			ErrorMessage: item.ErrorMessage,
			InvoiceID:    item.InvoiceID,
		}
		switch item.Status {
		case domain.QueueCompleted:
			resp.Completed++
		case domain.QueuePartial:
			resp.Partial++
		case domain.QueueError:
			resp.Errors++
		}
	}
	return resp
}
