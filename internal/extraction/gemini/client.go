// Package gemini implements the extraction gateway against the Google
// Gemini generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/invoiceai/invoice_archive_app/internal/extraction"
	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 120 * time.Second

	pdfMimeType = "application/pdf"
	dateLayout  = "2006-01-02"
)

// Client calls the Gemini API once per document, no internal retries.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ extraction.Extractor = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient constructs a new Gemini client.
func NewClient(apiKey, model string, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	c := &Client{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"response_mime_type"`
	ResponseSchema   json.RawMessage `json:"response_schema"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// responseSchema constrains the model output to the five extraction fields.
var responseSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"invoiceNumber": {"type": "STRING"},
		"vendor": {"type": "STRING"},
		"date": {"type": "STRING"},
		"amount": {"type": "NUMBER"},
		"currency": {"type": "STRING"}
	},
	"required": ["invoiceNumber", "vendor", "date", "amount", "currency"]
}`)

// extractionPayload is the JSON shape the model is asked to produce.
type extractionPayload struct {
	InvoiceNumber string      `json:"invoiceNumber"`
	Vendor        string      `json:"vendor"`
	Date          string      `json:"date"`
	Amount        json.Number `json:"amount"`
	Currency      string      `json:"currency"`
}

// Extract sends the PDF inline with the instruction prompt and parses the
// structured response. Transport and API failures are returned wrapped; a
// response that came back but carries nothing usable is
// extraction.ErrEmptyResult.
func (c *Client) Extract(ctx context.Context, req extraction.Request) (*domain.ExtractionResult, error) {
	body := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{
				{InlineData: &inlineData{
					MimeType: pdfMimeType,
					Data:     base64.StdEncoding.EncodeToString(req.PDFData),
				}},
				{Text: buildPrompt(req.PDFData, req.Hints)},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gemini response: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("gemini error %d (%s): %s", parsed.Error.Code, parsed.Error.Status, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	text := candidateText(parsed)
	if text == "" {
		return nil, extraction.ErrEmptyResult
	}
	return parsePayload(text)
}

func candidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}

// parsePayload turns model output into a result. Malformed or incomplete
// output means the call ran but yielded nothing usable, which is the
// partial-success case, not a transport error.
func parsePayload(text string) (*domain.ExtractionResult, error) {
	var p extractionPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, extraction.ErrEmptyResult
	}
	if p.Vendor == "" && p.InvoiceNumber == "" {
		return nil, extraction.ErrEmptyResult
	}

	date, err := time.Parse(dateLayout, p.Date)
	if err != nil {
		return nil, extraction.ErrEmptyResult
	}
	amount, err := decimal.NewFromString(p.Amount.String())
	if err != nil {
		return nil, extraction.ErrEmptyResult
	}

	return &domain.ExtractionResult{
		InvoiceNumber: p.InvoiceNumber,
		Vendor:        p.Vendor,
		Date:          date,
		Amount:        amount,
		CurrencyCode:  strings.ToUpper(strings.TrimSpace(p.Currency)),
	}, nil
}
