package dto

import "time"

// CreateAttributeRequest entrada para declarar un atributo sobre una categoría.
// Options es obligatorio (no vacío, sin repetidos) solo cuando data_type es enum.
type CreateAttributeRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=100"`
	DataType   string   `json:"data_type" validate:"required"`
	IsRequired bool     `json:"is_required"`
	IsUnique   bool     `json:"is_unique"`
	Unit       string   `json:"unit"`
	Options    []string `json:"options"`
}

// UpdateAttributeRequest entrada para actualizar una definición (campos opcionales).
type UpdateAttributeRequest struct {
	Name       *string   `json:"name" validate:"omitempty,min=1,max=100"`
	DataType   *string   `json:"data_type"`
	IsRequired *bool     `json:"is_required"`
	IsUnique   *bool     `json:"is_unique"`
	Unit       *string   `json:"unit"`
	Options    *[]string `json:"options"`
}

// AttributeResponse salida de una definición de atributo.
type AttributeResponse struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	DataType   string    `json:"data_type"`
	IsRequired bool      `json:"is_required"`
	IsUnique   bool      `json:"is_unique"`
	Unit       string    `json:"unit,omitempty"`
	Options    []string  `json:"options,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AttributeListResponse definiciones de una categoría ordenadas por nombre.
type AttributeListResponse struct {
	CategoryID string              `json:"category_id"`
	Items      []AttributeResponse `json:"items"`
}
