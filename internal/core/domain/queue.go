package domain

// QueueItemStatus tracks one uploaded file through batch processing.
type QueueItemStatus string

const (
	QueuePending    QueueItemStatus = "pending"
	QueueProcessing QueueItemStatus = "processing"
	QueueCompleted  QueueItemStatus = "completed"
	// QueuePartial means extraction returned nothing usable; a placeholder
	// draft was still created so the file is not lost.
	QueuePartial QueueItemStatus = "partial"
	// QueueError means the extraction call itself failed; no record was
	// created for this item.
	QueueError QueueItemStatus = "error"
)

// QueueItem wraps one accepted file for the duration of a single upload
// batch. Items live only until the batch result is handed back.
type QueueItem struct {
	ItemID       string            `json:"itemID"`
	FileName     string            `json:"fileName"`
	Status       QueueItemStatus   `json:"status"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	Result       *ExtractionResult `json:"-"`
	InvoiceID    string            `json:"invoiceID,omitempty"` // Set once a record was created for this item
}
