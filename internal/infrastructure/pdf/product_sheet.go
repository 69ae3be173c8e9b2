// Package pdf implementa la ficha técnica de producto en PDF (Maroto v2).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del producto  │  SKU                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Categoría / Precio / Descripción                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Atributo | Valor | Unidad                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"

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

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.ProductSheetGenerator = (*ProductSheetGenerator)(nil)

// ProductSheetGenerator implementa usecase.ProductSheetGenerator usando Maroto v2.
type ProductSheetGenerator struct{}

// NewProductSheetGenerator construye el generador.
func NewProductSheetGenerator() *ProductSheetGenerator { return &ProductSheetGenerator{} }

// Generate genera la ficha técnica y devuelve sus bytes.
func (g *ProductSheetGenerator) Generate(product *dto.ProductDetailResponse, schema []*entity.AttributeDefinition) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha técnica "+product.SKU, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(product))

	if len(product.Attributes) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(tableHeaderRow())
		for _, r := range attributeRows(product, schema) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del producto (izq) y SKU (der).
func headerRow(product *dto.ProductDetailResponse) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("FICHA TÉCNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+product.SKU, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// infoRow: precio y descripción.
func infoRow(product *dto.ProductDetailResponse) core.Row {
	precio := "—"
	if product.Price != nil {
		precio = product.Price.StringFixed(2)
		if product.Currency != "" {
			precio = precio + " " + product.Currency
		}
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Precio: "+precio, props.Text{Size: 9, Top: 1}),
			text.New(nonEmpty(product.Description, "—"), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de atributos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Atributo", 5, align.Left),
		h("Valor", 5, align.Left),
		h("Unidad", 2, align.Right),
	)
}

// attributeRows: una fila por atributo resuelto, en orden alfabético. La
// unidad sale de la definición (solo tiene sentido para valores numéricos).
func attributeRows(product *dto.ProductDetailResponse, schema []*entity.AttributeDefinition) []core.Row {
	units := make(map[string]string, len(schema))
	for _, def := range schema {
		units[def.Name] = def.Unit
	}
	names := make([]string, 0, len(product.Attributes))
	for name := range product.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]core.Row, 0, len(names))
	for _, name := range names {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(name, props.Text{Size: 8, Top: 1})),
			col.New(5).Add(text.New(formatValue(product.Attributes[name]), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(units[name], ""), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			})),
		))
	}
	return result
}

func formatValue(v any) string {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.String()
	case bool:
		if val {
			return "sí"
		}
		return "no"
	case string:
		return val
	}
	return fmt.Sprint(v)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
