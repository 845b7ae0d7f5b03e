package gofpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/RKATechSolutions/crane-care/internal/domain/quote"
	"github.com/RKATechSolutions/crane-care/internal/domain/quote/pdf"
)

type Generator struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Generator { return &Generator{log: log} }

func (g *Generator) Generate(q quote.Quote, b pdf.Branding) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Quote %s", q.Number), true)
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()
	left, top, right, bottom := doc.GetMargins()
	contentW := pageW - left - right

	// Header graphic, full content width, aspect preserved. A failed load is
	// logged and the space is simply not consumed.
	y := top
	if h, ok := g.placeImage(doc, b.HeaderImagePath, left, y, contentW); ok {
		y += h + 4
	}
	doc.SetY(y)

	doc.SetTextColor(b.AccentR, b.AccentG, b.AccentB)
	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, "Quotation")
	doc.Ln(12)
	doc.SetTextColor(0, 0, 0)

	leftRows := [][2]string{
		{"Quote No.", q.Number},
		{"Quote", q.Name},
		{"Date", q.Date.Format("02/01/2006")},
		{"Valid for", fmt.Sprintf("%d days", q.ValidityDays)},
		{"Prepared by", q.Technician},
	}
	rightRows := [][2]string{
		{"Client", q.ClientName},
		{"Address", q.ClientAddress},
		{"Contact", q.ContactName},
		{"Email", q.ContactEmail},
		{"Phone", q.ContactPhone},
	}
	metaTop := doc.GetY()
	colW := contentW / 2
	yLeft := g.metaColumn(doc, left, metaTop, colW, leftRows)
	yRight := g.metaColumn(doc, left+colW, metaTop, colW, rightRows)
	y = yLeft
	if yRight > y {
		y = yRight
	}
	doc.SetY(y + 2)

	doc.SetDrawColor(b.AccentR, b.AccentG, b.AccentB)
	doc.SetLineWidth(0.4)
	doc.Line(left, doc.GetY(), pageW-right, doc.GetY())
	doc.Ln(4)

	groups := quote.ByCategory(q.Items)
	for _, cat := range quote.Categories {
		items := groups[cat]
		if len(items) == 0 {
			continue
		}
		g.itemTable(doc, b, categoryLabel(cat), items, contentW)
	}

	g.totalsBlock(doc, b, q, pageW, right)

	if strings.TrimSpace(q.Notes) != "" {
		doc.Ln(4)
		doc.SetFont("Helvetica", "B", 11)
		doc.Cell(0, 7, "Notes")
		doc.Ln(7)
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(contentW, 5, q.Notes, "", "L", false)
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 7, "Terms & Conditions")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 8)
	for i, line := range termsLines(b, q.ValidityDays) {
		doc.MultiCell(contentW, 4.5, fmt.Sprintf("%d. %s", i+1, line), "", "L", false)
	}

	// Footer graphic anchored to the bottom of the current page.
	if path := b.FooterImagePath; path != "" {
		if info := g.registerImage(doc, path); info != nil {
			h := info.Height() * contentW / info.Width()
			g.drawRegistered(doc, path, left, pageH-bottom-h, contentW)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		g.log.Error().Err(err).Str("quote", q.Number).Msg("quote pdf output failed")
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) metaColumn(doc *gofpdf.Fpdf, x, y, w float64, rows [][2]string) float64 {
	doc.SetXY(x, y)
	for _, row := range rows {
		if strings.TrimSpace(row[1]) == "" {
			continue
		}
		doc.SetX(x)
		doc.SetFont("Helvetica", "B", 9)
		doc.CellFormat(26, 5.5, row[0], "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.CellFormat(w-26, 5.5, row[1], "", 1, "L", false, 0, "")
	}
	return doc.GetY()
}

func (g *Generator) itemTable(doc *gofpdf.Fpdf, b pdf.Branding, label string, items []quote.LineItem, contentW float64) {
	descW := contentW - 90

	doc.SetFont("Helvetica", "B", 11)
	doc.SetTextColor(b.AccentR, b.AccentG, b.AccentB)
	doc.Cell(0, 7, label)
	doc.Ln(7)
	doc.SetTextColor(0, 0, 0)

	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(descW, 6, "Description", "B", 0, "L", false, 0, "")
	doc.CellFormat(20, 6, "Qty", "B", 0, "R", false, 0, "")
	doc.CellFormat(35, 6, "Unit Price", "B", 0, "R", false, 0, "")
	doc.CellFormat(35, 6, "Total", "B", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	for _, it := range items {
		doc.CellFormat(descW, 6, trim(it.Description, 60), "", 0, "L", false, 0, "")
		doc.CellFormat(20, 6, it.Quantity.String(), "", 0, "R", false, 0, "")
		doc.CellFormat(35, 6, money(it.SellPrice), "", 0, "R", false, 0, "")
		doc.CellFormat(35, 6, money(it.LineTotal()), "", 1, "R", false, 0, "")
	}
	doc.Ln(3)
}

func (g *Generator) totalsBlock(doc *gofpdf.Fpdf, b pdf.Branding, q quote.Quote, pageW, right float64) {
	labelW, valueW := 35.0, 35.0
	x := pageW - right - labelW - valueW

	doc.SetX(x)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(labelW, 6, "Subtotal", "", 0, "R", false, 0, "")
	doc.CellFormat(valueW, 6, money(q.Subtotal), "", 1, "R", false, 0, "")

	doc.SetX(x)
	doc.CellFormat(labelW, 6, b.TaxLabel, "", 0, "R", false, 0, "")
	doc.CellFormat(valueW, 6, money(q.GST), "", 1, "R", false, 0, "")

	doc.SetDrawColor(b.AccentR, b.AccentG, b.AccentB)
	doc.Line(x, doc.GetY(), pageW-right, doc.GetY())

	doc.SetX(x)
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(labelW, 7, "Total", "", 0, "R", false, 0, "")
	doc.CellFormat(valueW, 7, money(q.Total), "", 1, "R", false, 0, "")
}

// placeImage draws the image at x/y scaled to width w preserving aspect ratio
// and reports the rendered height. A load failure returns ok=false.
func (g *Generator) placeImage(doc *gofpdf.Fpdf, path string, x, y, w float64) (float64, bool) {
	info := g.registerImage(doc, path)
	if info == nil {
		return 0, false
	}
	h := info.Height() * w / info.Width()
	g.drawRegistered(doc, path, x, y, w)
	return h, true
}

func (g *Generator) registerImage(doc *gofpdf.Fpdf, path string) *gofpdf.ImageInfoType {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		g.log.Warn().Err(err).Str("path", path).Msg("brand image load failed, rendering without it")
		return nil
	}
	imgType := imageType(path)
	if imgType == "" {
		g.log.Warn().Str("path", path).Msg("brand image type not recognised, rendering without it")
		return nil
	}
	opts := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
	info := doc.RegisterImageOptionsReader(path, opts, bytes.NewReader(data))
	if doc.Err() {
		// Undecodable bytes would otherwise stick as the document error and
		// fail Output for the whole quote.
		g.log.Warn().Err(doc.Error()).Str("path", path).Msg("brand image decode failed, rendering without it")
		doc.ClearError()
		return nil
	}
	return info
}

func (g *Generator) drawRegistered(doc *gofpdf.Fpdf, name string, x, y, w float64) {
	opts := gofpdf.ImageOptions{ImageType: imageType(name), ReadDpi: true}
	doc.ImageOptions(name, x, y, w, 0, false, opts, 0, "")
}

func termsLines(b pdf.Branding, validityDays int) []string {
	lines := make([]string, 0, len(b.Terms)+1)
	if b.ValidityTerm != "" {
		lines = append(lines, fmt.Sprintf(b.ValidityTerm, validityDays))
	}
	return append(lines, b.Terms...)
}

func categoryLabel(c quote.Category) string {
	switch c {
	case quote.CategoryLabour:
		return "Labour"
	case quote.CategoryMaterials:
		return "Materials"
	case quote.CategoryExpenses:
		return "Expenses"
	}
	return string(c)
}

func imageType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "PNG"
	case ".jpg", ".jpeg":
		return "JPG"
	case ".gif":
		return "GIF"
	}
	return ""
}

func money(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
