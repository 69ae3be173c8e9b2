package catalog

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// Resolve normaliza en lectura los valores almacenados de un producto contra
// el esquema vigente: los resuelve a su nombre actual y oculta los huérfanos
// (definición borrada) y los valores guardados bajo un tipo anterior de la
// definición. El borrado de una definición es O(1); la limpieza física de sus
// valores no es necesaria para la corrección de lectura.
func Resolve(schema []*entity.AttributeDefinition, values []*entity.AttributeValue) map[string]TypedValue {
	byID := make(map[string]*entity.AttributeDefinition, len(schema))
	for _, def := range schema {
		byID[def.ID] = def
	}
	resolved := make(map[string]TypedValue, len(values))
	for _, v := range values {
		def, ok := byID[v.DefinitionID]
		if !ok || def.DataType != v.DataType {
			continue
		}
		val := v.Value()
		if val == nil {
			continue
		}
		resolved[def.Name] = TypedValue{Definition: def, Value: val}
	}
	return resolved
}

// UniqueValues arma el conjunto de valores canónicos ya usados por los
// productos hermanos, solo para las definiciones con IsUnique.
func UniqueValues(schema []*entity.AttributeDefinition, siblingValues []*entity.AttributeValue) UniqueSet {
	byID := make(map[string]*entity.AttributeDefinition, len(schema))
	for _, def := range schema {
		if def.IsUnique {
			byID[def.ID] = def
		}
	}
	set := make(UniqueSet)
	for _, v := range siblingValues {
		def, ok := byID[v.DefinitionID]
		if !ok || def.DataType != v.DataType {
			continue
		}
		val := v.Value()
		if val == nil {
			continue
		}
		set.Add(def.Name, Canonical(val))
	}
	return set
}

// NewAttributeValue materializa un TypedValue como fila EAV del producto.
func NewAttributeValue(productID string, tv TypedValue) *entity.AttributeValue {
	av := &entity.AttributeValue{
		ProductID:    productID,
		DefinitionID: tv.Definition.ID,
		DataType:     tv.Definition.DataType,
	}
	av.SetTyped(tv.Value)
	return av
}
