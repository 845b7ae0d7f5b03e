package asset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// Bulk imports arrive from whatever spreadsheet the client keeps, so each
// target field resolves through a priority-ordered list of source header
// aliases. First alias present in the file wins.
var fieldAliases = map[string][]string{
	"name":           {"name", "asset name", "asset", "description", "crane"},
	"serial":         {"serial", "serial number", "serial no", "serial_no", "sn"},
	"make":           {"make", "manufacturer", "brand"},
	"model":          {"model", "model no", "model number"},
	"location":       {"location", "site", "address"},
	"client_name":    {"client", "client name", "customer", "company"},
	"last_inspected": {"last inspected", "last inspection", "last inspection date", "inspected"},
}

var importDateFormats = []string{"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006"}

type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Assets []Asset          `json:"-"`
	Errors []ImportRowError `json:"errors,omitempty"`
}

// ImportCSV parses a bulk asset upload. Rows that cannot be mapped are
// reported individually; the rest import.
func ImportCSV(r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("read header: %w", err)
	}
	cols := headerIndex(header)
	if _, ok := lookupColumn(cols, "name"); !ok {
		return ImportResult{}, fmt.Errorf("no recognisable asset name column")
	}

	var res ImportResult
	for rowNum := 2; ; rowNum++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, ImportRowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		a := Asset{
			Name:       fieldValue(cols, record, "name"),
			Serial:     fieldValue(cols, record, "serial"),
			Make:       fieldValue(cols, record, "make"),
			Model:      fieldValue(cols, record, "model"),
			Location:   fieldValue(cols, record, "location"),
			ClientName: fieldValue(cols, record, "client_name"),
		}
		if a.Name == "" {
			res.Errors = append(res.Errors, ImportRowError{Row: rowNum, Reason: "missing asset name"})
			continue
		}
		if raw := fieldValue(cols, record, "last_inspected"); raw != "" {
			ts, err := parseImportDate(raw)
			if err != nil {
				res.Errors = append(res.Errors, ImportRowError{Row: rowNum, Reason: fmt.Sprintf("bad date %q", raw)})
				continue
			}
			a.LastInspected = &ts
		}
		res.Assets = append(res.Assets, a)
	}
	return res, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[normaliseHeader(h)] = i
	}
	return cols
}

// lookupColumn is the single place alias resolution happens: it walks the
// alias list for a target field in priority order.
func lookupColumn(cols map[string]int, field string) (int, bool) {
	for _, alias := range fieldAliases[field] {
		if i, ok := cols[alias]; ok {
			return i, true
		}
	}
	return 0, false
}

func fieldValue(cols map[string]int, record []string, field string) string {
	i, ok := lookupColumn(cols, field)
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func normaliseHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

func parseImportDate(raw string) (time.Time, error) {
	for _, layout := range importDateFormats {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date format")
}
