// Package feed exporta el catálogo completo como feed XML tipo merchant:
// un <product> por producto con sus campos planos y un bloque <attributes>
// con el mapa resuelto contra el esquema vigente.
package feed

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

var _ usecase.FeedBuilder = (*XMLFeedBuilder)(nil)

// XMLFeedBuilder implementa usecase.FeedBuilder con etree.
type XMLFeedBuilder struct{}

// NewXMLFeedBuilder construye el builder.
func NewXMLFeedBuilder() *XMLFeedBuilder { return &XMLFeedBuilder{} }

// Build serializa los productos como documento XML indentado.
func (b *XMLFeedBuilder) Build(items []usecase.FeedItem) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("catalog")

	for _, item := range items {
		p := item.Product
		el := root.CreateElement("product")
		el.CreateAttr("id", p.ID)
		el.CreateElement("sku").SetText(p.SKU)
		el.CreateElement("name").SetText(p.Name)
		if item.CategoryName != "" {
			el.CreateElement("category").SetText(item.CategoryName)
		}
		if p.Description != "" {
			el.CreateElement("description").SetText(p.Description)
		}
		if p.Price != nil {
			price := el.CreateElement("price")
			price.SetText(p.Price.StringFixed(2))
			if p.Currency != "" {
				price.CreateAttr("currency", p.Currency)
			}
		}
		if len(item.Attributes) > 0 {
			attrs := el.CreateElement("attributes")
			names := make([]string, 0, len(item.Attributes))
			for name := range item.Attributes {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				a := attrs.CreateElement("attribute")
				a.CreateAttr("name", name)
				a.SetText(valueText(item.Attributes[name]))
			}
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("feed: serializar XML: %w", err)
	}
	return out, nil
}

func valueText(v any) string {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return val
	}
	return fmt.Sprint(v)
}
