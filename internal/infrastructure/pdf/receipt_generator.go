// Package pdf genera el comprobante de tratamiento en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Clínica + contacto  │  N° Comprobante + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PACIENTE: Nombre + teléfono / residencia                    │
//	│  DIAGNÓSTICO                                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Concepto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Pagado / Saldo pendiente                   │
//	│  PAGOS: Fecha | Método | Monto                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del tratamiento + leyenda              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appbilling "github.com/jhoicas/Clinica-api/internal/application/billing"
	"github.com/jhoicas/Clinica-api/internal/domain/entity"
)

var _ appbilling.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 105, Blue: 92}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var paymentStatusLabel = map[string]string{
	entity.PaymentStatusPending: "PENDIENTE",
	entity.PaymentStatusPartial: "PAGO PARCIAL",
	entity.PaymentStatusPaid:    "PAGADO",
}

var methodLabel = map[string]string{
	entity.PaymentMethodCash:      "Efectivo",
	entity.PaymentMethodCard:      "Tarjeta",
	entity.PaymentMethodMobile:    "Pago móvil",
	entity.PaymentMethodInsurance: "Seguro",
	entity.PaymentMethodOther:     "Otro",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, data appbilling.ReceiptData) ([]byte, error) {
	if data.Clinic == nil || data.Patient == nil || data.Treatment == nil {
		return nil, fmt.Errorf("pdf: datos incompletos para el comprobante")
	}
	cur := nonEmpty(data.Currency, "K")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de tratamiento", true).
		WithAuthor(data.Clinic.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Clinic, data.Treatment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(patientRow(data.Patient))
	m.AddRows(diagnosisRow(data.Treatment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(lineRows(data.Treatment, cur)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data.Treatment, cur))

	if len(data.Payments) > 0 {
		m.AddRows(paymentRows(data.Payments, cur)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data.Treatment))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: clínica y contacto (izq), número de comprobante y fecha (der).
func headerRow(clinic *entity.Clinic, t *entity.Treatment) core.Row {
	number := "N° " + strings.ToUpper(shortID(t.ID))
	return row.New(18).Add(
		col.New(7).Add(
			text.New(clinic.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s   |   %s",
				nonEmpty(clinic.Address, "-"),
				nonEmpty(clinic.ContactPhone, "-"),
				nonEmpty(clinic.ContactEmail, "-"),
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE TRATAMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+t.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func patientRow(p *entity.Patient) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PACIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Residencia: %s",
				nonEmpty(p.Phone, "-"),
				nonEmpty(p.Residence, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func diagnosisRow(t *entity.Treatment) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DIAGNÓSTICO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(t.Diagnosis, props.Text{Size: 9, Top: 6}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de conceptos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Concepto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// lineRows: medicamentos (con dosis) y después servicios.
func lineRows(t *entity.Treatment, cur string) []core.Row {
	rows := make([]core.Row, 0, len(t.Medications)+len(t.Services))
	for _, med := range t.Medications {
		concept := med.Name
		if med.Dosage != "" {
			concept += " (" + med.Dosage + ")"
		}
		rows = append(rows, detailRow(fmt.Sprintf("%d", med.Quantity), concept,
			money(cur, med.UnitCost), money(cur, med.TotalCost)))
	}
	for _, svc := range t.Services {
		rows = append(rows, detailRow("1", svc.Name, money(cur, svc.Cost), money(cur, svc.Cost)))
	}
	return rows
}

func detailRow(qty, concept, unit, subtotal string) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(concept, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(subtotal, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(t *entity.Treatment, cur string) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	status := nonEmpty(paymentStatusLabel[t.PaymentStatus], strings.ToUpper(t.PaymentStatus))

	return row.New(26).Add(
		col.New(3).Add(text.New(status, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 6,
		})),
		col.New(3),
		col.New(3).Add(
			label("Total:", 0),
			label("Pagado:", 6),
			label("SALDO PENDIENTE:", 12),
		),
		col.New(3).Add(
			value(money(cur, t.TotalCost), 0),
			value(money(cur, t.AmountPaid), 6),
			text.New(money(cur, t.Outstanding()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12,
			}),
		),
	)
}

// paymentRows: historial de abonos del tratamiento.
func paymentRows(payments []*entity.Payment, cur string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAGOS REGISTRADOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, p := range payments {
		rows = append(rows, row.New(5).Add(
			col.New(3).Add(text.New(p.PaymentDate.Format("02/01/2006"), props.Text{Size: 8, Top: 0.5})),
			col.New(5).Add(text.New(nonEmpty(methodLabel[p.Method], p.Method), props.Text{Size: 8, Top: 0.5})),
			col.New(4).Add(text.New(money(cur, p.Amount), props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5})),
		))
	}
	return rows
}

// footerRow: QR con el ID del tratamiento y leyenda.
func footerRow(t *entity.Treatment) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr("treatment:"+t.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Referencia: "+t.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Conserve este comprobante como soporte de su tratamiento y pagos.", props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// money formatea con separador de miles y dos decimales: "K 1,250.50".
func money(cur string, d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := cur + " " + formatThousands(intPart) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatThousands inserta comas de miles en un string numérico sin decimales.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
