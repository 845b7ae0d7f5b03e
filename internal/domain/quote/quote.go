package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryLabour    Category = "labour"
	CategoryMaterials Category = "materials"
	CategoryExpenses  Category = "expenses"
)

// Categories is the fixed rendering order for quote tables.
var Categories = []Category{CategoryLabour, CategoryMaterials, CategoryExpenses}

type LineItem struct {
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Quantity    decimal.Decimal `json:"quantity"`
	SellPrice   decimal.Decimal `json:"sell_price"`
}

// LineTotal is quantity × unit price rounded to 2 decimal places.
func (it LineItem) LineTotal() decimal.Decimal {
	return it.Quantity.Mul(it.SellPrice).Round(2)
}

type Quote struct {
	Number       string
	Name         string
	Date         time.Time
	ValidityDays int

	ClientName    string
	ClientAddress string
	ContactName   string
	ContactEmail  string
	ContactPhone  string
	Technician    string

	Items []LineItem
	Notes string

	Subtotal decimal.Decimal
	GST      decimal.Decimal
	Total    decimal.Decimal
}

type Financials struct {
	Subtotal decimal.Decimal
	GST      decimal.Decimal
	Total    decimal.Decimal
}

// Totals derives the financial block from the line items. Each line total is
// rounded to 2dp before summation so the subtotal matches what the tables show.
func Totals(items []LineItem, gstRate decimal.Decimal) Financials {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	subtotal = subtotal.Round(2)
	gst := subtotal.Mul(gstRate).Round(2)
	return Financials{
		Subtotal: subtotal,
		GST:      gst,
		Total:    subtotal.Add(gst).Round(2),
	}
}

// ByCategory partitions items preserving their input order within a category.
func ByCategory(items []LineItem) map[Category][]LineItem {
	out := make(map[Category][]LineItem, len(Categories))
	for _, it := range items {
		out[it.Category] = append(out[it.Category], it)
	}
	return out
}
