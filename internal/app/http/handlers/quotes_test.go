package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RKATechSolutions/crane-care/internal/app/config"
	pdfgen "github.com/RKATechSolutions/crane-care/internal/domain/quote/pdf/gofpdf"
	"github.com/RKATechSolutions/crane-care/internal/infra/email"
)

func testHandlers(emailURL string) *Handlers {
	cfg := config.Config{GSTRate: decimal.RequireFromString("0.10")}
	h := &Handlers{
		Cfg: cfg,
		Log: zerolog.Nop(),
		PDF: pdfgen.New(zerolog.Nop()),
	}
	if emailURL != "" {
		h.Email = email.New(emailURL, "test-key", "quotes@rka.example", zerolog.Nop())
	}
	return h
}

const quoteBody = `{
	"quote_number": "Q-1042",
	"quote_name": "Gantry crane annual",
	"date": "2026-08-14",
	"validity_days": 30,
	"client_name": "Harbour Logistics Pty Ltd",
	"contact_name": "J. Singh",
	"technician": "M. Okafor",
	"notes": "Access via gate 3.",
	"line_items": [
		{"description": "Inspection labour", "category": "labour", "quantity": 2, "sell_price": 100},
		{"description": "Wire rope", "category": "materials", "quantity": 1, "sell_price": 50}
	]
}`

func TestQuotePDFPreview(t *testing.T) {
	h := testHandlers("")

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/pdf", strings.NewReader(quoteBody))
	rec := httptest.NewRecorder()
	h.QuotePDF(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	disp, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "inline", disp)
	assert.Equal(t, "Q-1042.pdf", params["filename"])
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestQuotePDFDownloadDisposition(t *testing.T) {
	h := testHandlers("")

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/pdf?disposition=attachment", strings.NewReader(quoteBody))
	rec := httptest.NewRecorder()
	h.QuotePDF(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	disp, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disp)
	assert.Equal(t, "Q-1042.pdf", params["filename"])
}

func TestQuotePDFEscapesFilename(t *testing.T) {
	h := testHandlers("")
	body := `{"quote_number":"Q-10\"42","line_items":[]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/pdf", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.QuotePDF(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	disp, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "inline", disp)
	assert.Equal(t, `Q-10"42.pdf`, params["filename"])
}

func TestQuotePDFRejectsBadCategory(t *testing.T) {
	h := testHandlers("")
	body := `{"quote_number":"Q-1","line_items":[{"description":"x","category":"travel","quantity":1,"sell_price":10}]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/pdf", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.QuotePDF(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuotePDFRequiresNumber(t *testing.T) {
	h := testHandlers("")

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/pdf", strings.NewReader(`{"line_items":[]}`))
	rec := httptest.NewRecorder()
	h.QuotePDF(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmailQuote(t *testing.T) {
	var got email.Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"id": "em_1"})
	}))
	defer srv.Close()

	h := testHandlers(srv.URL)
	body := strings.TrimSuffix(quoteBody, "}") + `, "to": ["j.singh@example.com"]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/email", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.EmailQuote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "em_1", resp["id"])

	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "Q-1042.pdf", got.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", got.Attachments[0].Type)
	raw, err := base64.StdEncoding.DecodeString(got.Attachments[0].Content)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))

	// Totals computed server-side: 250 + 25 GST.
	assert.Contains(t, got.HTML, "$275.00")
	assert.Contains(t, got.Subject, "Q-1042")
}

func TestEmailQuoteSendFailureSurfacesOnce(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"message":"boom"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	h := testHandlers(srv.URL)
	body := strings.TrimSuffix(quoteBody, "}") + `, "to": ["j.singh@example.com"]}`

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/email", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.EmailQuote(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 1, calls)
}

func TestEmailQuoteRequiresRecipients(t *testing.T) {
	h := testHandlers("")

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes/email", strings.NewReader(quoteBody))
	rec := httptest.NewRecorder()
	h.EmailQuote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
