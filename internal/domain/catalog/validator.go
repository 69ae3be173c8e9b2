// Package catalog contiene la lógica pura del esquema de atributos por
// categoría: validación de lotes de valores contra el esquema vigente y
// resolución de valores almacenados a su nombre actual.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// TypedValue valor ya validado y convertido a su tipo semántico, junto con la
// definición que lo tipó. Value es string, decimal.Decimal, bool o fecha ISO
// según Definition.DataType.
type TypedValue struct {
	Definition *entity.AttributeDefinition
	Value      any
}

// UniqueSet valores canónicos ya usados por otros productos, por nombre de
// atributo. Solo se consultan los atributos con IsUnique.
type UniqueSet map[string]map[string]struct{}

// Has indica si el valor canónico ya está tomado para el atributo name.
func (u UniqueSet) Has(name, canonical string) bool {
	set, ok := u[name]
	if !ok {
		return false
	}
	_, taken := set[canonical]
	return taken
}

// Add registra un valor canónico como tomado.
func (u UniqueSet) Add(name, canonical string) {
	set, ok := u[name]
	if !ok {
		set = make(map[string]struct{})
		u[name] = set
	}
	set[canonical] = struct{}{}
}

// Validate valida un lote de valores crudos contra el esquema de la categoría.
// Es todo-o-nada: el primer atributo que falla aborta el lote completo y nada
// debe persistirse.
//
//  1. Toda clave de submitted debe tener definición en schema.
//  2. Los atributos IsRequired deben quedar con valor tras la operación: en
//     reemplazo total deben venir en submitted; en actualización parcial basta
//     con que ya estén en current.
//  3. Cada valor presente se convierte a su tipo (number finito, boolean con
//     tokens true/false/1/0, enum dentro de options, date ISO, string a texto).
//  4. Los atributos IsUnique no pueden repetir un valor ya usado por otro
//     producto de la misma categoría (siblings).
//
// Devuelve el mapa tipado: exactamente submitted en reemplazo total, o
// submitted fusionado sobre current en actualización parcial.
func Validate(
	schema []*entity.AttributeDefinition,
	submitted map[string]any,
	current map[string]TypedValue,
	siblings UniqueSet,
	fullReplace bool,
) (map[string]TypedValue, error) {
	byName := make(map[string]*entity.AttributeDefinition, len(schema))
	for _, def := range schema {
		byName[def.Name] = def
	}

	// 1. Claves desconocidas. Se recorren ordenadas para que el primer fallo
	// reportado sea determinista.
	keys := make([]string, 0, len(submitted))
	for k := range submitted {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := byName[k]; !ok {
			return nil, domain.NewValidationError(k, domain.ReasonUnknownAttribute,
				fmt.Sprintf("atributo desconocido para esta categoría: %s", k))
		}
	}

	// 2. Requeridos, en el orden del esquema.
	for _, def := range schema {
		if !def.IsRequired {
			continue
		}
		if _, ok := submitted[def.Name]; ok {
			continue
		}
		if !fullReplace {
			if _, set := current[def.Name]; set {
				continue
			}
		}
		return nil, domain.NewValidationError(def.Name, domain.ReasonMissingRequired,
			fmt.Sprintf("el atributo requerido %s no tiene valor", def.Name))
	}

	// 3 y 4. Conversión de tipo y unicidad, en el orden del esquema.
	result := make(map[string]TypedValue, len(submitted))
	if !fullReplace {
		for name, tv := range current {
			result[name] = tv
		}
	}
	for _, def := range schema {
		raw, ok := submitted[def.Name]
		if !ok {
			continue
		}
		typed, err := Coerce(def, raw)
		if err != nil {
			return nil, err
		}
		if def.IsUnique {
			canonical := Canonical(typed)
			if siblings.Has(def.Name, canonical) {
				return nil, domain.NewValidationError(def.Name, domain.ReasonDuplicateUnique,
					fmt.Sprintf("el valor %q de %s ya está usado por otro producto de la categoría", canonical, def.Name))
			}
		}
		result[def.Name] = TypedValue{Definition: def, Value: typed}
	}
	return result, nil
}

// Coerce convierte un valor crudo (texto o valor JSON) al tipo semántico de la
// definición. Devuelve *domain.ValidationError con motivo BAD_TYPE o
// NOT_IN_ENUM cuando el valor no conforma.
func Coerce(def *entity.AttributeDefinition, raw any) (any, error) {
	switch def.DataType {
	case entity.TypeString:
		return coerceString(def, raw)
	case entity.TypeNumber:
		return coerceNumber(def, raw)
	case entity.TypeBoolean:
		return coerceBoolean(def, raw)
	case entity.TypeEnum:
		return coerceEnum(def, raw)
	case entity.TypeDate:
		return coerceDate(def, raw)
	}
	return nil, badType(def, raw, "tipo de dato no soportado")
}

func coerceString(def *entity.AttributeDefinition, raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case float64:
		return decimal.NewFromFloat(v).String(), nil
	case int:
		return fmt.Sprintf("%d", v), nil
	case decimal.Decimal:
		return v.String(), nil
	case nil:
		return nil, badType(def, raw, "string no puede ser null")
	}
	return nil, badType(def, raw, "no es coercible a texto")
}

func coerceNumber(def *entity.AttributeDefinition, raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, badType(def, raw, "no es un número finito")
		}
		return d, nil
	}
	return nil, badType(def, raw, "no es un número finito")
}

// coerceBoolean acepta únicamente el conjunto fijo de tokens true/false y 1/0.
func coerceBoolean(def *entity.AttributeDefinition, raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
	case float64:
		if v == 1 {
			return true, nil
		}
		if v == 0 {
			return false, nil
		}
	}
	return nil, badType(def, raw, "booleano inválido (se acepta true/false o 1/0)")
}

func coerceEnum(def *entity.AttributeDefinition, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, badType(def, raw, "enum requiere un valor de texto")
	}
	if !def.HasOption(s) {
		return nil, domain.NewValidationError(def.Name, domain.ReasonNotInEnum,
			fmt.Sprintf("el valor %q de %s no está entre las opciones %v", s, def.Name, def.Options))
	}
	return s, nil
}

func coerceDate(def *entity.AttributeDefinition, raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, badType(def, raw, "date requiere texto YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return nil, badType(def, raw, "date debe ser una fecha YYYY-MM-DD válida")
	}
	return s, nil
}

func badType(def *entity.AttributeDefinition, raw any, detail string) *domain.ValidationError {
	return domain.NewValidationError(def.Name, domain.ReasonBadType,
		fmt.Sprintf("valor inválido para %s (%s): %v (%s)", def.Name, def.DataType, raw, detail))
}

// Canonical representación canónica en texto de un valor tipado, usada para
// comparar unicidad entre productos (3, "3" y 3.0 canonicalizan igual).
func Canonical(typed any) string {
	switch v := typed.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case decimal.Decimal:
		return v.String()
	}
	return fmt.Sprint(typed)
}
