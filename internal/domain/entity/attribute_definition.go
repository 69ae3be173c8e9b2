package entity

import "time"

// AttributeType tipo de dato de un atributo.
type AttributeType string

const (
	TypeString  AttributeType = "string"
	TypeNumber  AttributeType = "number"
	TypeBoolean AttributeType = "boolean"
	TypeEnum    AttributeType = "enum"
	TypeDate    AttributeType = "date"
)

// ValidAttributeType indica si s corresponde a un tipo soportado.
func ValidAttributeType(s string) bool {
	switch AttributeType(s) {
	case TypeString, TypeNumber, TypeBoolean, TypeEnum, TypeDate:
		return true
	}
	return false
}

// AttributeDefinition declara un atributo tipado sobre una categoría.
// Options aplica solo a enum: secuencia ordenada, no vacía y sin repetidos.
type AttributeDefinition struct {
	ID         string
	CategoryID string
	Name       string // único dentro de la categoría
	DataType   AttributeType
	IsRequired bool
	IsUnique   bool
	Unit       string
	Options    []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasOption indica si v es una de las opciones del enum (comparación exacta,
// sensible a mayúsculas).
func (d *AttributeDefinition) HasOption(v string) bool {
	for _, o := range d.Options {
		if o == v {
			return true
		}
	}
	return false
}
