package repository

import "github.com/jhoicas/catalogo-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los Get devuelven (nil, nil) cuando el registro no existe.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	List() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
	// Lock toma el bloqueo de escritura de la categoría dentro de la
	// transacción en curso (SELECT ... FOR UPDATE en PostgreSQL). Serializa
	// las escrituras de atributos y los cambios de esquema por categoría.
	Lock(id string) error
}
