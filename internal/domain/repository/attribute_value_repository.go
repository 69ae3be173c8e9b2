package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// AttributeValueRepository puerto de persistencia para los valores de
// atributos (tabla EAV por producto y definición).
type AttributeValueRepository interface {
	ListByProduct(productID string) ([]*entity.AttributeValue, error)
	// ListByCategoryExcept devuelve los valores de todos los productos de la
	// categoría salvo el excluido (chequeo de unicidad entre hermanos).
	ListByCategoryExcept(categoryID, excludeProductID string) ([]*entity.AttributeValue, error)
	Upsert(value *entity.AttributeValue) error
	DeleteByProduct(productID string) error
	// DeleteByCategoryProducts descarta los mapas de atributos de todos los
	// productos de la categoría (efecto destructivo del borrado en cascada).
	DeleteByCategoryProducts(categoryID string) error
}
