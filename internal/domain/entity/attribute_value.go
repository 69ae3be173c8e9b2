package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AttributeValue valor tipado de un atributo para un producto. Se almacena por
// (ProductID, DefinitionID) con una columna por tipo: solo el campo del tipo
// correspondiente es no-nil. El nombre del atributo se resuelve en lectura
// contra la definición vigente, de modo que renombrar una definición conserva
// sus valores y borrarla los deja huérfanos (invisibles en lectura).
type AttributeValue struct {
	ProductID    string
	DefinitionID string
	DataType     AttributeType
	StringVal    *string
	NumberVal    *decimal.Decimal
	BoolVal      *bool
	DateVal      *string // fecha ISO YYYY-MM-DD
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetTyped limpia las columnas y escribe el valor ya convertido en la columna
// de su tipo. typed debe venir del validador (string, decimal.Decimal, bool o
// fecha ISO en texto).
func (v *AttributeValue) SetTyped(typed any) {
	v.StringVal, v.NumberVal, v.BoolVal, v.DateVal = nil, nil, nil, nil
	switch val := typed.(type) {
	case decimal.Decimal:
		v.NumberVal = &val
	case bool:
		v.BoolVal = &val
	case string:
		if v.DataType == TypeDate {
			v.DateVal = &val
		} else {
			v.StringVal = &val
		}
	}
}

// Value devuelve el valor semántico según el tipo, o nil si la columna del
// tipo está vacía (valor guardado bajo un tipo anterior de la definición).
func (v *AttributeValue) Value() any {
	switch v.DataType {
	case TypeNumber:
		if v.NumberVal != nil {
			return *v.NumberVal
		}
	case TypeBoolean:
		if v.BoolVal != nil {
			return *v.BoolVal
		}
	case TypeDate:
		if v.DateVal != nil {
			return *v.DateVal
		}
	default: // string y enum comparten columna de texto
		if v.StringVal != nil {
			return *v.StringVal
		}
	}
	return nil
}
