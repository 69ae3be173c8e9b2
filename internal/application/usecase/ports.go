package usecase

import (
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ProductSheetGenerator genera la ficha técnica PDF de un producto con su
// mapa de atributos resuelto.
type ProductSheetGenerator interface {
	Generate(product *dto.ProductDetailResponse, schema []*entity.AttributeDefinition) ([]byte, error)
}

// FeedItem producto listo para el feed: con categoría y atributos resueltos.
type FeedItem struct {
	Product      *entity.Product
	CategoryName string
	Attributes   map[string]any
}

// FeedBuilder serializa el catálogo completo como feed XML.
type FeedBuilder interface {
	Build(items []FeedItem) ([]byte, error)
}
