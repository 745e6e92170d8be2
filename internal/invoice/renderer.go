// Package invoice renders a purchase invoice PDF for a finalized cart.
package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cocktailhaven/internal/domain"
	"cocktailhaven/internal/service/checkout"
)

// Renderer writes invoice PDFs into a directory.
type Renderer struct {
	outDir string
	logger *zap.Logger
}

// New creates the output directory if needed.
func New(outDir string, logger *zap.Logger) (*Renderer, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	return &Renderer{outDir: outDir, logger: logger}, nil
}

// Render writes the invoice and returns the path of the PDF file. The cart
// must be the pre-clear snapshot of the purchase.
func (r *Renderer) Render(ctx context.Context, cart domain.Cart, customerName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "Purchase Invoice")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "Customer: "+customerName)
	pdf.Ln(8)
	pdf.Cell(0, 8, "Date: "+time.Now().Format("2006-01-02"))
	pdf.Ln(12)

	r.lineTable(pdf, cart)

	subtotal := checkout.Subtotal(cart)
	tax := checkout.Tax(subtotal)
	total := subtotal.Add(tax)

	pdf.Ln(6)
	pdf.Cell(0, 8, "Subtotal: $"+money(subtotal))
	pdf.Ln(6)
	pdf.Cell(0, 8, "VAT (12%): $"+money(tax))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: $"+money(total))

	path := filepath.Join(r.outDir, fmt.Sprintf("invoice-%d.pdf", time.Now().UnixNano()))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}
	r.logger.Info("invoice rendered",
		zap.String("path", path),
		zap.Int("lines", cart.Len()),
	)
	return path, nil
}

func (r *Renderer) lineTable(pdf *fpdf.Fpdf, cart domain.Cart) {
	const (
		colProduct = 100.0
		colQty     = 30.0
		colPrice   = 40.0
		rowH       = 8.0
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colProduct, rowH, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, rowH, "Quantity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colPrice, rowH, "Price", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range cart.Lines {
		pdf.CellFormat(colProduct, rowH, line.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, rowH, fmt.Sprintf("%d", line.Qty()), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, rowH, money(line.Price), "1", 1, "R", false, 0, "")
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
