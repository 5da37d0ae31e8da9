// Package pdf implementa la generación del ticket de venta en PDF con
// formato de impresora térmica de 80 mm.
//
// Layout del ticket:
//
//	┌──────────────────────────────┐
//	│  NOMBRE DEL NEGOCIO          │
//	│  Dirección de la sucursal    │
//	│  ──────────────────────────  │
//	│  Folio: V20260830000123      │
//	│  Fecha: 30/08/2026 14:05     │
//	│  ──────────────────────────  │
//	│  Cant  Producto       Total  │
//	│  ──────────────────────────  │
//	│  Subtotal / Desc / IVA       │
//	│  TOTAL                       │
//	│  Pagos por método            │
//	│  ──────────────────────────  │
//	│  Leyenda de agradecimiento   │
//	└──────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/restoqly/restopos-api/internal/application/sales"
	"github.com/restoqly/restopos-api/internal/domain/entity"
)

var _ sales.ReceiptGenerator = (*ReceiptGenerator)(nil)

// Ancho de impresora térmica estándar. El alto se estima por el número de
// líneas; maroto pagina solo si se queda corto.
const ticketWidthMM = 80

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// Etiquetas legibles para los métodos de pago del ticket.
var paymentLabels = map[string]string{
	entity.PaymentMethodCash:     "Efectivo",
	entity.PaymentMethodCard:     "Tarjeta",
	entity.PaymentMethodTransfer: "Transferencia",
	entity.PaymentMethodOther:    "Otro",
}

// ReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	businessName string
	address      string
}

// NewReceiptGenerator construye el generador con los datos del negocio que
// encabezan cada ticket.
func NewReceiptGenerator(businessName, address string) *ReceiptGenerator {
	return &ReceiptGenerator{businessName: businessName, address: address}
}

// Generate genera el PDF del ticket y devuelve sus bytes. productNames mapea
// ProductID a nombre de catálogo; un producto ausente se imprime por su ID.
func (g *ReceiptGenerator) Generate(sale *entity.Sale, productNames map[string]string) ([]byte, error) {
	height := ticketHeight(sale)
	cfg := config.NewBuilder().
		WithDimensions(ticketWidthMM, height).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		WithTitle("Ticket "+sale.Number, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRows(g.businessName, g.address)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(folioRows(sale)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(sale.Items, productNames) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalsRows(sale)...)
	m.AddRows(paymentRows(sale.Payments)...)

	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(sale)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRows(name, address string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(strings.ToUpper(name), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1,
			}),
		)),
	}
	if address != "" {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(address, props.Text{Size: 7, Align: align.Center, Color: colorGray}),
		)))
	}
	return rows
}

func folioRows(sale *entity.Sale) []core.Row {
	rows := []core.Row{
		row.New(4).Add(col.New(12).Add(
			text.New("Folio: "+sale.Number, props.Text{Style: fontstyle.Bold, Size: 8}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 7}),
		)),
	}
	if sale.Status == entity.SaleStatusCancelled {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("** VENTA ANULADA **", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
			}),
		)))
	}
	return rows
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Top: 1,
		}))
	}
	return row.New(5).Add(
		h("Cant", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Total", 4, align.Right),
	)
}

func itemRows(items []entity.SaleItem, productNames map[string]string) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := productNames[it.ProductID]
		if name == "" {
			name = it.ProductID
		}
		result = append(result, row.New(4).Add(
			col.New(2).Add(text.New(
				trimZeros(it.Quantity), props.Text{Size: 7, Align: align.Left},
			)),
			col.New(6).Add(text.New(
				name, props.Text{Size: 7, Align: align.Left},
			)),
			col.New(4).Add(text.New(
				formatMoney(it.Total), props.Text{Size: 7, Align: align.Right},
			)),
		))
		// Línea secundaria con precio unitario y descuento si aplica.
		detail := fmt.Sprintf("  %s x %s", trimZeros(it.Quantity), formatMoney(it.UnitPrice))
		if it.DiscountPct.IsPositive() {
			detail += fmt.Sprintf("  (-%s%%)", trimZeros(it.DiscountPct))
		}
		result = append(result, row.New(3).Add(col.New(12).Add(
			text.New(detail, props.Text{Size: 6, Color: colorGray}),
		)))
	}
	return result
}

func totalsRows(sale *entity.Sale) []core.Row {
	r := func(label string, amount decimal.Decimal, bold bool) core.Row {
		style := fontstyle.Normal
		size := 7.0
		if bold {
			style = fontstyle.Bold
			size = 9
		}
		return row.New(4).Add(
			col.New(7).Add(text.New(label, props.Text{
				Style: style, Size: size, Align: align.Right, Right: 2,
			})),
			col.New(5).Add(text.New(formatMoney(amount), props.Text{
				Style: style, Size: size, Align: align.Right,
			})),
		)
	}
	rows := []core.Row{r("Subtotal:", sale.Subtotal, false)}
	if sale.DiscountAmount.IsPositive() {
		rows = append(rows, r("Descuento:", sale.DiscountAmount.Neg(), false))
	}
	rows = append(rows,
		r("IVA:", sale.TaxAmount, false),
		r("TOTAL:", sale.TotalAmount, true),
	)
	return rows
}

func paymentRows(payments []entity.SalePayment) []core.Row {
	rows := make([]core.Row, 0, len(payments))
	for _, p := range payments {
		label := paymentLabels[p.Method]
		if label == "" {
			label = p.Method
		}
		if p.CardLast4 != "" {
			label += " *" + p.CardLast4
		}
		rows = append(rows, row.New(4).Add(
			col.New(7).Add(text.New(label+":", props.Text{
				Size: 7, Align: align.Right, Right: 2, Color: colorGray,
			})),
			col.New(5).Add(text.New(formatMoney(p.Amount), props.Text{
				Size: 7, Align: align.Right, Color: colorGray,
			})),
		))
	}
	return rows
}

func footerRows(sale *entity.Sale) []core.Row {
	leyenda := "¡Gracias por su compra!"
	if sale.Status == entity.SaleStatusCancelled {
		leyenda = "Ticket sin valor: venta anulada."
	}
	return []core.Row{
		row.New(5).Add(col.New(12).Add(
			text.New(leyenda, props.Text{Size: 7, Align: align.Center, Top: 1}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New("Conserve este ticket para cualquier aclaración.", props.Text{
				Size: 6, Align: align.Center, Color: colorGray,
			}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// ticketHeight estima el alto del papel en mm según el contenido.
func ticketHeight(sale *entity.Sale) float64 {
	base := 60.0
	return base + float64(len(sale.Items))*8 + float64(len(sale.Payments))*5
}

// formatMoney formatea un decimal como moneda con separador de miles.
// Ej: 1234.5 → "$1,234.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	n := len(intPart)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, intPart[i])
		}
		intPart = string(buf)
	}
	out := "$" + intPart + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// trimZeros imprime un decimal sin ceros sobrantes: 2.000 → "2", 1.50 → "1.5".
func trimZeros(d decimal.Decimal) string {
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
