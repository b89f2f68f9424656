// Package pdf genera el recibo de pago de una suscripción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Gimnasio             │  N° Recibo + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOCIO: Nombre + Email / Tel                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Plan | Vigencia | Método | Valor                     │
//	│  TOTALES: Precio / Descuento / TOTAL PAGADO                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la suscripción                      │
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

	"github.com/jhoicas/gymflow-api/internal/application/membership"
	"github.com/jhoicas/gymflow-api/internal/domain/entity"
)

var _ membership.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoReceiptGenerator implementa membership.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(
	_ context.Context,
	sub *entity.Subscription,
	user *entity.User,
	gymName string,
) ([]byte, error) {
	gymName = nonEmpty(strings.TrimSpace(gymName), "GymFlow")
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de suscripción", true).
		WithAuthor(gymName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sub, gymName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(memberRow(user))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(planRow(sub))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sub))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(sub))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sub *entity.Subscription, gymName string) core.Row {
	fecha := sub.StartDate.Format("02/01/2006")
	if sub.StartDate.IsZero() {
		fecha = sub.CreatedAt.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(gymName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(receiptNumber(sub.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func memberRow(user *entity.User) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SOCIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(user.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				nonEmpty(user.Email, "—"),
				nonEmpty(user.Phone, "—"),
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
		h("Plan", 4, align.Left),
		h("Vigencia", 4, align.Center),
		h("Método", 2, align.Center),
		h("Valor", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func planRow(sub *entity.Subscription) core.Row {
	vigencia := fmt.Sprintf("%d días", sub.DurationDays)
	if !sub.StartDate.IsZero() {
		vigencia = fmt.Sprintf("%s al %s", sub.StartDate.Format("02/01/2006"), sub.EndDate.Format("02/01/2006"))
	}
	return row.New(7).Add(
		col.New(4).Add(text.New(sub.PlanName, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(4).Add(text.New(vigencia, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(paymentLabel(sub.PaymentMethod), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(money(sub.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func totalsRow(sub *entity.Subscription) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	discountLabel := "Descuento:"
	if sub.CouponCode != "" {
		discountLabel = fmt.Sprintf("Descuento (%s):", sub.CouponCode)
	}

	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Precio:"),
			label(discountLabel),
			text.New("TOTAL PAGADO:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10,
			}),
		),
		col.New(3).Add(
			value(money(sub.Price)),
			text.New("-"+money(sub.Discount), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(money(sub.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10,
			}),
		),
	)
}

func footerRow(sub *entity.Subscription) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(sub.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Referencia: "+sub.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("El acceso por huella se habilita con la suscripción activa.", props.Text{
				Size: 8, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func receiptNumber(id string) string {
	short := strings.ReplaceAll(id, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return "N° " + strings.ToUpper(short)
}

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentCash:
		return "Efectivo"
	case entity.PaymentOnline:
		return "En línea"
	}
	return method
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea sin decimales con puntos de miles: 25000 → "$25.000".
func money(d decimal.Decimal) string {
	return "$" + formatThousands(d.Abs().StringFixed(0))
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
