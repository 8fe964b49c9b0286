// Package pdf genera la representación gráfica de las facturas de consumo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Servicio + Plan     │  N° Factura + Período         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONSUMIDOR: Nombre + contacto + dirección                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tramo | Unidades | Tarifa | Subtotal                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Consumo / Cargo fijo / TOTAL A PAGAR               │
//	│  FOOTER: Estado + vencimiento                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/utility-backoffice-api/internal/application/billing"
	"github.com/jhoicas/utility-backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var utilityLabels = map[string]string{
	entity.UtilityElectricity: "Energía eléctrica",
	entity.UtilityWater:       "Acueducto",
	entity.UtilityGas:         "Gas natural",
}

var _ appbilling.BillPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.BillPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	issuer string
}

// NewMarotoPDFGenerator construye el generador; issuer aparece como autor y en el encabezado.
func NewMarotoPDFGenerator(issuer string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer}
}

// GenerateBillPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBillPDF(_ context.Context, doc appbilling.BillDocument) ([]byte, error) {
	if doc.Bill == nil || doc.Consumer == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de servicio", true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.issuer, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(consumerRow(doc.Consumer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(slabRows(doc.Bill.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Bill))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc.Bill))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(issuer string, doc appbilling.BillDocument) core.Row {
	b := doc.Bill
	plan := "-"
	if doc.Plan != nil {
		plan = doc.Plan.PlanCode
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(issuer, "Empresa de servicios"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Plan: %s", nonEmpty(utilityLabels[b.UtilityType], b.UtilityType), plan), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.ToUpper(shortRef(b.ID)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Período: "+periodLabel(b.Month, b.Year), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func consumerRow(c *entity.Consumer) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("CONSUMIDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.FullName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Email: %s   |   Móvil: %s   |   Dirección: %s",
				nonEmpty(c.Email, "-"),
				nonEmpty(c.MobileNumber, "-"),
				nonEmpty(c.Address, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tramo", 4, align.Left),
		h("Unidades", 2, align.Center),
		h("Tarifa", 3, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func slabRows(lines []entity.BillLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(rangeLabel(l), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Units), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New("$"+money(l.RatePerUnit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New("$"+money(l.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(b *entity.Bill) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(22).Add(
		col.New(3),
		col.New(3).Add(
			label(fmt.Sprintf("Consumo (%d u):", b.UnitsConsumed), 0),
			label("Cargo fijo:", 6),
			text.New("TOTAL A PAGAR:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
		),
		col.New(3).Add(
			value("$"+money(b.EnergyCharge), 0),
			value("$"+money(b.FixedCharge), 6),
			text.New("$"+money(b.Amount), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12}),
		),
		col.New(3),
	)
}

func footerRow(b *entity.Bill) core.Row {
	status := "PENDIENTE DE PAGO"
	if b.IsPaid() && b.PaidAt != nil {
		status = "PAGADA el " + b.PaidAt.Format("02/01/2006")
	}
	return row.New(12).Add(col.New(12).Add(
		text.New(status, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 1}),
		text.New(fmt.Sprintf("Generada el %s   |   Vence el %s",
			b.GeneratedAt.Format("02/01/2006"), b.DueDate.Format("02/01/2006")),
			props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 6}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func periodLabel(month, year int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%02d/%d", month, year)
	}
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

func rangeLabel(l entity.BillLine) string {
	if l.MaxUnits == nil {
		return fmt.Sprintf("Desde %d u", l.MinUnits)
	}
	return fmt.Sprintf("%d – %d u", l.MinUnits, *l.MaxUnits)
}

func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// money formatea con separador de miles y dos decimales: 1234567.5 → "1.234.567,50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatThousands(intPart) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
