package handlers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/RKATechSolutions/crane-care/internal/domain/quote"
	"github.com/RKATechSolutions/crane-care/internal/domain/quote/pdf"
	"github.com/RKATechSolutions/crane-care/internal/infra/email"
)

type QuoteRequest struct {
	QuoteNumber  string `json:"quote_number"`
	QuoteName    string `json:"quote_name"`
	Date         string `json:"date"`
	ValidityDays int    `json:"validity_days"`

	ClientName    string `json:"client_name"`
	ClientAddress string `json:"client_address"`
	ContactName   string `json:"contact_name"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	Technician    string `json:"technician"`

	LineItems []quote.LineItem `json:"line_items"`
	Notes     string           `json:"notes"`
}

type EmailQuoteRequest struct {
	QuoteRequest
	To      []string `json:"to"`
	Subject string   `json:"subject"`
}

// QuotePDF builds the quote document and returns it directly. The same bytes
// serve on-screen preview (inline) and download (attachment) via
// ?disposition=.
func (h *Handlers) QuotePDF(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	q, err := h.buildQuote(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.PDF.Generate(q, h.branding())
	if err != nil {
		h.Log.Error().Err(err).Str("quote", q.Number).Msg("quote pdf failed")
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}

	disposition := "inline"
	if r.URL.Query().Get("disposition") == "attachment" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType(disposition, map[string]string{"filename": q.Number + ".pdf"}))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// EmailQuote builds the same document and hands it to the email-delivery
// collaborator as a base64 attachment. A failed send is reported once and not
// retried; the assembled document is discarded with the request either way.
func (h *Handlers) EmailQuote(w http.ResponseWriter, r *http.Request) {
	var req EmailQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if len(req.To) == 0 {
		http.Error(w, "to is required", http.StatusBadRequest)
		return
	}

	q, err := h.buildQuote(req.QuoteRequest)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out, err := h.PDF.Generate(q, h.branding())
	if err != nil {
		h.Log.Error().Err(err).Str("quote", q.Number).Msg("quote pdf failed")
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("Quote %s from RKA Tech Solutions", q.Number)
	}
	id, err := h.Email.Send(r.Context(), email.Message{
		To:      req.To,
		Subject: subject,
		HTML:    quoteEmailBody(q),
		Attachments: []email.Attachment{
			email.PDFAttachment(q.Number+".pdf", out),
		},
	})
	if err != nil {
		h.Log.Error().Err(err).Str("quote", q.Number).Msg("quote email failed")
		http.Error(w, "email send failed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"id": id, "quote_number": q.Number})
}

func (h *Handlers) buildQuote(req QuoteRequest) (quote.Quote, error) {
	if strings.TrimSpace(req.QuoteNumber) == "" {
		return quote.Quote{}, fmt.Errorf("quote_number is required")
	}
	for i, it := range req.LineItems {
		switch it.Category {
		case quote.CategoryLabour, quote.CategoryMaterials, quote.CategoryExpenses:
		default:
			return quote.Quote{}, fmt.Errorf("line item %d: invalid category %q", i+1, it.Category)
		}
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return quote.Quote{}, fmt.Errorf("invalid date %q", req.Date)
		}
		date = parsed
	}
	validity := req.ValidityDays
	if validity <= 0 {
		validity = 30
	}

	f := quote.Totals(req.LineItems, h.Cfg.GSTRate)
	return quote.Quote{
		Number:        req.QuoteNumber,
		Name:          req.QuoteName,
		Date:          date,
		ValidityDays:  validity,
		ClientName:    req.ClientName,
		ClientAddress: req.ClientAddress,
		ContactName:   req.ContactName,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Technician:    req.Technician,
		Items:         req.LineItems,
		Notes:         req.Notes,
		Subtotal:      f.Subtotal,
		GST:           f.GST,
		Total:         f.Total,
	}, nil
}

func (h *Handlers) branding() pdf.Branding {
	return pdf.DefaultBranding(h.Cfg.BrandHeaderImage, h.Cfg.BrandFooterImage)
}

func quoteEmailBody(q quote.Quote) string {
	name := strings.TrimSpace(q.ContactName)
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>Please find attached quote %s for %s, totalling $%s inc. GST. "+
			"The quote is valid for %d days.</p><p>Regards,<br>%s</p>",
		name, q.Number, q.ClientName, q.Total.StringFixed(2), q.ValidityDays, q.Technician)
}
