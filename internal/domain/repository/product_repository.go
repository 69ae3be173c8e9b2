package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// List devuelve productos ordenados por fecha de creación descendente.
	List(limit, offset int) ([]*entity.Product, error)
	CountByCategory(categoryID string) (int, error)
	Update(product *entity.Product) error
	// ClearCategory pone category_id en NULL para todos los productos de la
	// categoría (usado por el borrado en cascada; los productos no se borran).
	ClearCategory(categoryID string) error
	Delete(id string) error
}
