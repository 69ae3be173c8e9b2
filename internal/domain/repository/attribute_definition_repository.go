package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// AttributeDefinitionRepository puerto de persistencia para las definiciones
// de atributos de una categoría (DIP).
type AttributeDefinitionRepository interface {
	Create(def *entity.AttributeDefinition) error
	// GetByID busca la definición dentro de la categoría; (nil, nil) si no existe.
	GetByID(categoryID, id string) (*entity.AttributeDefinition, error)
	GetByName(categoryID, name string) (*entity.AttributeDefinition, error)
	// ListByCategory devuelve las definiciones ordenadas por nombre.
	ListByCategory(categoryID string) ([]*entity.AttributeDefinition, error)
	CountByCategory(categoryID string) (int, error)
	Update(def *entity.AttributeDefinition) error
	Delete(categoryID, id string) error
	DeleteByCategory(categoryID string) error
}
