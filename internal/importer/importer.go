// Package importer loads price-list CSV exports into the price table, so
// drink prices can be maintained outside the binary.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceWriter receives imported prices.
type PriceWriter interface {
	SetPrice(drinkID string, price decimal.Decimal)
}

// CSVImporter reads rows of (idDrink, price) with a header line.
type CSVImporter struct {
	reader *csv.Reader
	prices PriceWriter
}

func NewCSVImporter(r io.Reader, prices PriceWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing columns
	return &CSVImporter{
		reader: csvr,
		prices: prices,
	}
}

// Run parses the CSV and records every valid price. It returns the number
// of imported rows and fails on the first malformed one.
func (i *CSVImporter) Run() (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	idIdx, priceIdx := -1, -1
	for n, h := range headers {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "iddrink", "id":
			idIdx = n
		case "price":
			priceIdx = n
		}
	}
	if idIdx < 0 || priceIdx < 0 {
		return 0, fmt.Errorf("missing idDrink/price columns in header %v", headers)
	}

	imported := 0
	for {
		row, err := i.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		if idIdx >= len(row) || priceIdx >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[idIdx])
		rawPrice := strings.TrimSpace(row[priceIdx])
		if id == "" || rawPrice == "" {
			continue
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return imported, fmt.Errorf("parse price for %s: %w", id, err)
		}
		if price.IsNegative() {
			return imported, fmt.Errorf("negative price for %s", id)
		}
		i.prices.SetPrice(id, price)
		imported++
	}
	return imported, nil
}
