package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. CategoryID nil crea el
// producto sin categoría (esquema efectivo vacío).
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	SKU         string           `json:"sku" validate:"required,min=1,max=100"`
	CategoryID  *string          `json:"category_id"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Currency    string           `json:"currency"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
// La categoría se cambia por el endpoint dedicado, no por aquí.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU         *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency"`
}

// SetCategoryRequest cambio de categoría. category_id null desvincula el
// producto. Cambiar de categoría descarta el mapa de atributos almacenado.
type SetCategoryRequest struct {
	CategoryID *string `json:"category_id"`
}

// SetAttributesRequest lote de valores crudos por nombre de atributo.
type SetAttributesRequest struct {
	Attributes map[string]any `json:"attributes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	SKU         string           `json:"sku"`
	CategoryID  *string          `json:"category_id"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Currency    string           `json:"currency,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductDetailResponse producto con su mapa de atributos resuelto contra el
// esquema vigente de su categoría (huérfanos ocultos).
type ProductDetailResponse struct {
	ProductResponse
	Attributes map[string]any `json:"attributes"`
}

// ProductListResponse lista paginada de productos (creación descendente).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
