package catalog

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la lectura del esquema, el
// chequeo de unicidad y la escritura de valores sean una unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		defRepo repository.AttributeDefinitionRepository,
		productRepo repository.ProductRepository,
		valueRepo repository.AttributeValueRepository,
	) error) error
}
