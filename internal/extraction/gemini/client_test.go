package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/invoiceai/invoice_archive_app/internal/extraction"
	"github.com/invoiceai/invoice_archive_app/internal/extraction/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *gemini.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := gemini.NewClient("test-key", "gemini-3-flash-preview", gemini.WithBaseURL(server.URL))
	require.NoError(t, err)
	return server, client
}

func candidateResponse(text string) string {
	payload := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{{"text": text}},
			},
		}},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func TestNewClient_RequiresAPIKeyAndModel(t *testing.T) {
	_, err := gemini.NewClient("", "gemini-3-flash-preview")
	assert.Error(t, err)

	_, err = gemini.NewClient("key", "  ")
	assert.Error(t, err)
}

func TestExtract_Success(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]any

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateResponse(`{"invoiceNumber":"2025/042","vendor":"ACME SRL","date":"2025-08-14","amount":1250.5,"currency":"eur"}`)))
	})

	result, err := client.Extract(context.Background(), extraction.Request{
		PDFData:  []byte("%PDF-1.4 fake"),
		FileName: "fattura.pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, "/models/gemini-3-flash-preview:generateContent", gotPath)
	assert.Equal(t, "test-key", gotAPIKey)

	assert.Equal(t, "2025/042", result.InvoiceNumber)
	assert.Equal(t, "ACME SRL", result.Vendor)
	assert.Equal(t, "2025-08-14", result.Date.Format("2006-01-02"))
	assert.Equal(t, "1250.5", result.Amount.String())
	assert.Equal(t, "EUR", result.CurrencyCode)

	// The document goes inline with the instruction text.
	contents := gotBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)
	inline := parts[0].(map[string]any)["inline_data"].(map[string]any)
	assert.Equal(t, "application/pdf", inline["mime_type"])
	assert.NotEmpty(t, inline["data"])
	prompt := parts[1].(map[string]any)["text"].(string)
	assert.Contains(t, prompt, "invoiceNumber")

	config := gotBody["generationConfig"].(map[string]any)
	assert.Equal(t, "application/json", config["response_mime_type"])
}

func TestExtract_EmptyCandidates(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.Extract(context.Background(), extraction.Request{PDFData: []byte("x"), FileName: "a.pdf"})
	assert.ErrorIs(t, err, extraction.ErrEmptyResult)
}

func TestExtract_MalformedPayloadIsPartial(t *testing.T) {
	cases := map[string]string{
		"not json":          "this is not json",
		"missing identity":  `{"invoiceNumber":"","vendor":"","date":"2025-08-14","amount":10,"currency":"EUR"}`,
		"unparseable date":  `{"invoiceNumber":"42","vendor":"ACME SRL","date":"14/08/2025","amount":10,"currency":"EUR"}`,
		"non numeric total": `{"invoiceNumber":"42","vendor":"ACME SRL","date":"2025-08-14","amount":"n/a","currency":"EUR"}`,
	}

	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(candidateResponse(text)))
			})

			_, err := client.Extract(context.Background(), extraction.Request{PDFData: []byte("x"), FileName: "a.pdf"})
			assert.ErrorIs(t, err, extraction.ErrEmptyResult)
		})
	}
}

func TestExtract_APIErrorIsNotPartial(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := client.Extract(context.Background(), extraction.Request{PDFData: []byte("x"), FileName: "a.pdf"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, extraction.ErrEmptyResult)
	assert.Contains(t, err.Error(), "RESOURCE_EXHAUSTED")
}

func TestExtract_TransportErrorIsNotPartial(t *testing.T) {
	server, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Extract(context.Background(), extraction.Request{PDFData: []byte("x"), FileName: "a.pdf"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, extraction.ErrEmptyResult)
	assert.True(t, strings.Contains(err.Error(), "gemini request failed"))
}
