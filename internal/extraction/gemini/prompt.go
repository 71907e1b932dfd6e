package gemini

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/ledongthuc/pdf"
)

// basePrompt mirrors the instructions the reviewers tuned against real
// Italian invoices; the field names must match the response schema.
const basePrompt = "Analizza questa fattura ed estrai i seguenti dati in formato JSON: " +
	"numero fattura (invoiceNumber), fornitore (vendor), data della fattura in formato " +
	"YYYY-MM-DD (date), importo totale numerico (amount), e valuta (currency). Sii preciso."

// maxTextExcerpt bounds how much extracted PDF text is inlined in the prompt.
const maxTextExcerpt = 4000

// buildPrompt assembles the instruction text: base instructions, optional
// vendor hints from prior verified records, and an optional text-layer
// excerpt pulled from the PDF itself.
func buildPrompt(pdfData []byte, hints []domain.Invoice) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	if len(hints) > 0 {
		b.WriteString("\n\nFatture già verificate in archivio, da usare come riferimento per nomi fornitore e formati ricorrenti:\n")
		for _, h := range hints {
			fmt.Fprintf(&b, "- fornitore: %q, numero: %q, valuta: %s\n", h.Vendor, h.InvoiceNumber, h.CurrencyCode)
		}
	}

	if excerpt := textExcerpt(pdfData); excerpt != "" {
		b.WriteString("\n\nTesto estratto dal PDF (può essere incompleto):\n")
		b.WriteString(excerpt)
	}
	return b.String()
}

// textExcerpt pulls the text layer out of the PDF. Scanned documents have no
// text layer; any failure just means the model works from the raw document
// alone.
func textExcerpt(pdfData []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return ""
	}
	textReader, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return ""
	}
	text := strings.TrimSpace(buf.String())
	if len(text) > maxTextExcerpt {
		text = text[:maxTextExcerpt]
	}
	return text
}
