// Package pdf genera el reporte de inventario descargable con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  RESUMEN: productos / unidades / críticos / valor total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Stock | Mín. | Precio | Valor │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CRÍTICOS: lista de productos con stock <= mínimo            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/inventario-tracker/internal/application/analytics"
	"github.com/jhoicas/inventario-tracker/internal/application/dto"
	"github.com/jhoicas/inventario-tracker/internal/domain/entity"
)

var _ analytics.InventoryPDFGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// MarotoReportGenerator implementa analytics.InventoryPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador con formato numérico en español.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(
	_ context.Context,
	summary *dto.ReportSummaryDTO,
	products []*entity.Product,
) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.productRows(products)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(g.criticalRows(summary)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReportGenerator) headerRow(summary *dto.ReportSummaryDTO) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+summary.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoReportGenerator) summaryRow(summary *dto.ReportSummaryDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		cell("Productos", g.integer(summary.TotalProducts)),
		cell("Unidades en stock", g.integer(summary.TotalUnits)),
		cell("Stock crítico", g.integer(summary.CriticalCount)),
		cell("Valor total", g.money(summary.TotalValue)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Precio", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

func (g *MarotoReportGenerator) productRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		style := props.Text{Size: 8, Top: 1}
		if p.IsCritical() {
			style.Color = colorCritical
		}
		cell := func(s string, size int, a align.Type) core.Col {
			st := style
			st.Align = a
			st.Left, st.Right = 1, 1
			return col.New(size).Add(text.New(s, st))
		}
		rows = append(rows, row.New(7).Add(
			cell(p.Name, 4, align.Left),
			cell(nonEmpty(p.Category, "-"), 2, align.Left),
			cell(g.integer(p.Stock), 1, align.Right),
			cell(g.integer(p.MinStock), 1, align.Right),
			cell(g.money(p.Price), 2, align.Right),
			cell(g.money(p.Value()), 2, align.Right),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("No hay productos registrados.", props.Text{Size: 8, Color: colorGray, Top: 2, Align: align.Center}),
		)))
	}
	return rows
}

func (g *MarotoReportGenerator) criticalRows(summary *dto.ReportSummaryDTO) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("PRODUCTOS CON STOCK CRÍTICO", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorCritical, Top: 1,
			}),
		)),
	}
	if len(summary.CriticalProducts) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Ningún producto por debajo de su stock mínimo.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	for _, p := range summary.CriticalProducts {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s / mínimo %s", p.Name, g.integer(p.Stock), g.integer(p.MinStock)), props.Text{
				Size: 8, Top: 0.5, Left: 2,
			}),
		)))
	}
	return rows
}

// integer formatea con separador de miles del locale.
func (g *MarotoReportGenerator) integer(n int) string {
	return g.printer.Sprintf("%d", n)
}

// money formatea con dos decimales y separador de miles, ej: "$12.345,50".
func (g *MarotoReportGenerator) money(d decimal.Decimal) string {
	return "$" + g.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
