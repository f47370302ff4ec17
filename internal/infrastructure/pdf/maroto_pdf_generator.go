// Package pdf genera la representación imprimible de la factura mensual de un cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio   │  MONTHLY BILL + mes + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Fecha | Producto | Importe                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: N° de entregas / TOTAL                            │
//	│  FOOTER: ID de factura                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/internal/domain/entity"
)

var _ appbilling.BillPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.BillPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	businessName string
	printer      *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los importes se agrupan según la convención india (en-IN).
func NewMarotoPDFGenerator(businessName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		businessName: businessName,
		printer:      message.NewPrinter(language.MustParse("en-IN")),
	}
}

// GenerateBillPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBillPDF(
	_ context.Context,
	bill *entity.Bill,
	txns []*entity.Transaction,
	currencySymbol string,
) ([]byte, error) {
	if bill == nil {
		return nil, fmt.Errorf("pdf: factura nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Monthly Bill "+bill.BillingMonth, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)
	money := g.moneyFormatter(currencySymbol)

	m.AddRows(g.headerRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(txns, money)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(bill, money))
	m.AddRows(row.New(6))
	m.AddRows(footerRow(bill))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(bill *entity.Bill) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.businessName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Dairy delivery ledger", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("MONTHLY BILL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(bill.BillingMonth, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Issued: "+bill.CreatedAt.Format("02 Jan 2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func customerRow(bill *entity.Bill) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(bill.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Phone: "+nonEmpty(bill.CustomerPhone, "-"), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Date", 3, align.Left),
		h("Item", 5, align.Left),
		h("Amount", 3, align.Right),
	)
}

func tableRows(txns []*entity.Transaction, money func(decimal.Decimal) string) []core.Row {
	result := make([]core.Row, 0, len(txns))
	for i, t := range txns {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(t.Date.Format("02 Jan 2006"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(t.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(money(t.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(bill *entity.Bill, money func(decimal.Decimal) string) core.Row {
	label := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Color: colorPrimary})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Deliveries:", 9),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 2, Top: 7, Color: colorPrimary}),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d", bill.TransactionCount), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(money(bill.TotalAmount), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Right: 1, Top: 7}),
		),
	)
}

func footerRow(bill *entity.Bill) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Bill ID: %s", bill.ID), props.Text{Size: 7, Color: colorGray, Top: 1}),
		text.New("Generated "+time.Now().UTC().Format(time.RFC1123), props.Text{Size: 6.5, Color: colorGray, Top: 5}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// moneyFormatter antepone el símbolo de moneda al importe con separadores de miles del locale.
// Las fuentes core del PDF solo cubren Latin-1, así que "₹" se escribe como "Rs. ".
func (g *MarotoPDFGenerator) moneyFormatter(symbol string) func(decimal.Decimal) string {
	symbol = latin1Symbol(symbol)
	return func(d decimal.Decimal) string {
		return symbol + g.printer.Sprintf("%.2f", d.InexactFloat64())
	}
}

func latin1Symbol(symbol string) string {
	if symbol == "₹" {
		return "Rs. "
	}
	for _, r := range symbol {
		if r > 0xFF {
			return ""
		}
	}
	return symbol
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
