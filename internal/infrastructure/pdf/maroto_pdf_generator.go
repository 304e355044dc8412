// Package pdf genera el registro de publicaciones en PDF para la descarga
// del administrador.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TÍTULO: Registro de publicaciones — PAÍS [mes]             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Creada | Estado | Autor | Aprobada | Texto | Acks   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: fecha de generación + total de filas                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/amber-studios/workspace-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.UpdatesPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// UpdatesRegister genera el registro y devuelve sus bytes.
func (g *MarotoPDFGenerator) UpdatesRegister(title string, updates []entity.Update) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(updates) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(updates)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow(title string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Creada", 2, align.Left),
		h("Estado", 1, align.Center),
		h("Autor", 2, align.Left),
		h("Aprobada", 2, align.Left),
		h("Texto", 4, align.Left),
		h("Acks", 1, align.Center),
	)
}

// tableRows: una fila por publicación, del registro ya ordenado.
func tableRows(updates []entity.Update) []core.Row {
	result := make([]core.Row, 0, len(updates))
	for _, u := range updates {
		approved := u.ApprovedAt
		if u.ApprovedBy != nil {
			approved = shortTimestamp(u.ApprovedAt) + " (" + u.ApprovedBy.LoginID + ")"
		}
		result = append(result, row.New(8).Add(
			col.New(2).Add(text.New(
				shortTimestamp(u.CreatedAt),
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				u.Status,
				props.Text{Size: 7.5, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				u.CreatedBy.LoginID,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				approved,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				truncate(u.Text, 90),
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				strconv.Itoa(len(u.Ack)),
				props.Text{Size: 7.5, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

func footerRow(total int) core.Row {
	generated := time.Now().UTC().Format("02/01/2006 15:04 UTC")
	return row.New(8).Add(
		col.New(6).Add(text.New(
			"Generado: "+generated,
			props.Text{Size: 7, Color: colorGray, Top: 2},
		)),
		col.New(6).Add(text.New(
			fmt.Sprintf("Total: %d publicaciones", total),
			props.Text{Size: 7, Color: colorGray, Align: align.Right, Top: 2},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// shortTimestamp recorta una marca ISO a "YYYY-MM-DD HH:MM".
func shortTimestamp(iso string) string {
	if len(iso) < 16 {
		return iso
	}
	return iso[:10] + " " + iso[11:16]
}

// truncate corta s a max runas añadiendo elipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
