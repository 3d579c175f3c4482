// Package pdf implementa los documentos descargables de Megastore con Maroto v2:
// el comprobante de compra y el reporte de ventas del panel.
//
// Layout del comprobante (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Megastore            │  Compra N° + Fecha + Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ENVÍO: Nombre / Dirección / Método                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Variante | P.Unit | Subtotal      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Envío / TOTAL                                     │
//	│  FOOTER: QR con la referencia de la compra                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/megastore-web/internal/domain/entity"
	"github.com/jhoicas/megastore-web/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var periodTitles = map[string]string{
	"daily":   "Diario",
	"weekly":  "Semanal",
	"monthly": "Mensual",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.DocumentGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	storeName string
	now       func() time.Time
}

// NewMarotoPDFGenerator construye el generador. storeName encabeza los documentos.
func NewMarotoPDFGenerator(storeName string) *MarotoPDFGenerator {
	if storeName == "" {
		storeName = "Megastore"
	}
	return &MarotoPDFGenerator{storeName: storeName, now: time.Now}
}

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.storeName, true).
		Build()
	return maroto.New(cfg)
}

// SaleReceipt genera el comprobante de una compra.
func (g *MarotoPDFGenerator) SaleReceipt(_ context.Context, sale *entity.Sale) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("pdf: venta vacía")
	}
	m := g.newDocument(fmt.Sprintf("Compra N° %d", sale.ID))

	m.AddRows(g.receiptHeaderRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(shippingRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de detalles
	m.AddRows(tableHeaderRow(
		header{"Cant.", 1, align.Center},
		header{"Producto", 4, align.Left},
		header{"Variante", 2, align.Left},
		header{"Precio Unit.", 2, align.Right},
		header{"Subtotal", 3, align.Right},
	))
	for _, r := range detailRows(sale.SaleDetails) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(
		[2]string{"Envío:", money.Format(sale.ShippingCost)},
		[2]string{"TOTAL:", money.Format(sale.TotalAmount)},
	))

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.receiptFooterRow(sale))

	return generate(m)
}

// SalesReport genera el reporte de ventas del período con las estadísticas de clientes.
func (g *MarotoPDFGenerator) SalesReport(_ context.Context, period string, report *entity.SalesReport, stats *entity.CustomerStatistics) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	m := g.newDocument("Reporte de ventas")

	m.AddRows(g.reportHeaderRow(period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	avg := decimal.Zero
	if report.TotalOrders > 0 {
		avg = report.TotalSales.Div(decimal.NewFromInt(int64(report.TotalOrders))).Round(2)
	}
	m.AddRows(totalsRow(
		[2]string{"Ventas totales:", money.Format(report.TotalSales)},
		[2]string{"Órdenes:", money.Int(report.TotalOrders)},
		[2]string{"Ticket promedio:", money.Format(avg)},
	))

	m.AddRows(sectionRow("PRODUCTOS MÁS VENDIDOS"))
	m.AddRows(rankingRows("Producto", "Unidades", report.TopProducts)...)

	if stats != nil {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionRow("CLIENTES"))
		m.AddRows(totalsRow([2]string{"Valor promedio de orden:", money.Format(stats.AverageOrderValue)}))
		m.AddRows(sectionRow("PRODUCTOS FAVORITOS"))
		m.AddRows(rankingRows("Producto", "Compras", stats.FavoriteProducts)...)
		m.AddRows(sectionRow("FRECUENCIA DE COMPRA"))
		m.AddRows(rankingRows("Cliente", "Compras", stats.PurchaseFrequency)...)
	}

	return generate(m)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// receiptHeaderRow: tienda (izq) y N° de compra + fecha + estado (der).
func (g *MarotoPDFGenerator) receiptHeaderRow(sale *entity.Sale) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de compra", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("COMPRA N° %d", sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+nonEmpty(sale.SaleDate.Display(), "—"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+sale.StatusLabel(), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// shippingRow: destinatario y dirección de envío.
func shippingRow(sale *entity.Sale) core.Row {
	address := nonEmpty(joinNonEmpty(sale.Address, sale.City, sale.State, sale.PostalCode, sale.Country), "—")
	return row.New(18).Add(
		col.New(12).Add(
			text.New("DATOS DE ENVÍO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(sale.FullName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Envío: %s   |   Pago: %s",
				address,
				nonEmpty(sale.ShippingMethod, "—"),
				nonEmpty(sale.PaymentMethod, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

type header struct {
	label string
	size  int
	align align.Type
}

// tableHeaderRow: cabecera de tabla con fondo azul.
func tableHeaderRow(cols ...header) core.Row {
	r := row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	for _, h := range cols {
		r.Add(col.New(h.size).Add(text.New(h.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: h.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return r
}

// detailRows: una fila por línea de la venta.
func detailRows(details []entity.SaleDetail) []core.Row {
	result := make([]core.Row, 0, len(details))
	for _, d := range details {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprint(d.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				nonEmpty(d.Variant.ProductName(), "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				d.Variant.Label(),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money.Format(d.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money.Format(d.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque etiqueta/valor alineado a la derecha; el último par va resaltado.
func totalsRow(pairs ...[2]string) core.Row {
	labels := col.New(3)
	values := col.New(3)
	for i, p := range pairs {
		top := float64(i) * 6
		style := props.Text{Size: 9, Align: align.Right, Top: top}
		if i == len(pairs)-1 {
			style.Style = fontstyle.Bold
			style.Size = 10
			style.Color = colorPrimary
		}
		l, v := style, style
		l.Right = 2
		v.Right = 1
		labels.Add(text.New(p[0], l))
		values.Add(text.New(p[1], v))
	}
	return row.New(float64(len(pairs))*6+4).Add(
		col.New(3), // espacio izquierdo
		labels,
		values,
		col.New(3), // espacio derecho
	)
}

// receiptFooterRow: QR con la referencia de la compra + leyenda.
func (g *MarotoPDFGenerator) receiptFooterRow(sale *entity.Sale) core.Row {
	ref := fmt.Sprintf("%s-VENTA-%d", g.storeName, sale.ID)
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Referencia: "+ref, props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("¡Gracias por tu compra!", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 16, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// reportHeaderRow: título del reporte, período y fecha de emisión.
func (g *MarotoPDFGenerator) reportHeaderRow(period string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de ventas "+nonEmpty(periodTitles[period], period), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Emitido: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3,
		}),
	))
}

// rankingRows: tabla nombre/cantidad ordenada de mayor a menor.
func rankingRows(nameLabel, countLabel string, m map[string]int) []core.Row {
	rows := []core.Row{tableHeaderRow(
		header{nameLabel, 9, align.Left},
		header{countLabel, 3, align.Right},
	)}
	if len(m) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin datos", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
	}
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if m[names[i]] != m[names[j]] {
			return m[names[i]] > m[names[j]]
		}
		return names[i] < names[j]
	})
	for _, n := range names {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New(n, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(money.Int(m[n]), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
