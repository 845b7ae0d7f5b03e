package gofpdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RKATechSolutions/crane-care/internal/domain/quote"
	"github.com/RKATechSolutions/crane-care/internal/domain/quote/pdf"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func sampleQuote() quote.Quote {
	items := []quote.LineItem{
		{Description: "Crane inspection, 2 techs", Category: quote.CategoryLabour, Quantity: d("2"), SellPrice: d("100")},
		{Description: "Wire rope 20m", Category: quote.CategoryMaterials, Quantity: d("1"), SellPrice: d("50")},
	}
	f := quote.Totals(items, d("0.10"))
	return quote.Quote{
		Number:       "Q-1042",
		Name:         "Gantry crane annual",
		Date:         time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		ValidityDays: 30,
		ClientName:   "Harbour Logistics Pty Ltd",
		ContactName:  "J. Singh",
		ContactEmail: "j.singh@example.com",
		Technician:   "M. Okafor",
		Items:        items,
		Notes:        "Access via gate 3. Site induction required.",
		Subtotal:     f.Subtotal,
		GST:          f.GST,
		Total:        f.Total,
	}
}

func TestGenerateWithoutBrandImages(t *testing.T) {
	// Both image paths point nowhere: assembly must still complete.
	b := pdf.DefaultBranding("testdata/missing-header.png", "testdata/missing-footer.png")

	out, err := New(zerolog.Nop()).Generate(sampleQuote(), b)

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out[:5]), "%PDF-"))
}

func TestGenerateWithCorruptBrandImages(t *testing.T) {
	// Files exist but hold bytes no image decoder accepts: assembly must
	// still complete without them.
	dir := t.TempDir()
	header := filepath.Join(dir, "header.png")
	footer := filepath.Join(dir, "footer.jpg")
	require.NoError(t, os.WriteFile(header, []byte("this is not a png"), 0o600))
	require.NoError(t, os.WriteFile(footer, []byte("nor is this a jpeg"), 0o600))
	b := pdf.DefaultBranding(header, footer)

	out, err := New(zerolog.Nop()).Generate(sampleQuote(), b)

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out[:5]), "%PDF-"))
}

func TestGenerateEmptyQuote(t *testing.T) {
	b := pdf.DefaultBranding("", "")
	q := quote.Quote{Number: "Q-0", Date: time.Now(), ValidityDays: 14}

	out, err := New(zerolog.Nop()).Generate(q, b)

	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestTermsLinesInterpolateValidity(t *testing.T) {
	b := pdf.DefaultBranding("", "")

	lines := termsLines(b, 30)

	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "valid for 30 days")
	assert.Len(t, lines, len(b.Terms)+1)
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Labour", categoryLabel(quote.CategoryLabour))
	assert.Equal(t, "Materials", categoryLabel(quote.CategoryMaterials))
	assert.Equal(t, "Expenses", categoryLabel(quote.CategoryExpenses))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1234.50", money(d("1234.5")))
	assert.Equal(t, "$0.00", money(decimal.Zero))
}
