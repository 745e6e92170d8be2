package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

type recorder struct {
	prices map[string]decimal.Decimal
}

func (r *recorder) SetPrice(id string, p decimal.Decimal) {
	if r.prices == nil {
		r.prices = make(map[string]decimal.Decimal)
	}
	r.prices[id] = p
}

func TestRunImportsRows(t *testing.T) {
	csv := "idDrink,price\n11007,9.49\n17105,6.50\n"
	rec := &recorder{}

	n, err := NewCSVImporter(strings.NewReader(csv), rec).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d rows", n)
	}
	if !rec.prices["11007"].Equal(decimal.RequireFromString("9.49")) {
		t.Fatalf("unexpected price: %s", rec.prices["11007"])
	}
}

func TestRunSkipsBlankRows(t *testing.T) {
	csv := "idDrink,price\n11007,9.49\n,\n17105,\n"
	rec := &recorder{}

	n, err := NewCSVImporter(strings.NewReader(csv), rec).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 1 {
		t.Fatalf("imported %d rows", n)
	}
}

func TestRunRejectsMissingColumns(t *testing.T) {
	if _, err := NewCSVImporter(strings.NewReader("name,cost\nx,1\n"), &recorder{}).Run(); err == nil {
		t.Fatalf("expected header error")
	}
}

func TestRunRejectsBadPrice(t *testing.T) {
	if _, err := NewCSVImporter(strings.NewReader("idDrink,price\n1,abc\n"), &recorder{}).Run(); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := NewCSVImporter(strings.NewReader("idDrink,price\n1,-2\n"), &recorder{}).Run(); err == nil {
		t.Fatalf("expected negative price error")
	}
}
