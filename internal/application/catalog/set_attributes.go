// Package catalog (capa de aplicación) orquesta la escritura de atributos de
// producto: carga el esquema de la categoría, valida el lote y persiste el
// mapa resultante, todo dentro de una transacción con la categoría bloqueada.
package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	domaincatalog "github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Mode modo de escritura del lote de atributos.
type Mode string

const (
	// ModeFull reemplazo total: el lote debe satisfacer todos los requeridos
	// y los valores no enviados se descartan.
	ModeFull Mode = "full"
	// ModePartial fusión parcial: los valores ya almacenados se conservan.
	ModePartial Mode = "partial"
)

// ParseMode interpreta el flag de modo; vacío equivale a full.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeFull):
		return ModeFull, nil
	case string(ModePartial):
		return ModePartial, nil
	}
	return "", domain.ErrInvalidInput
}

// SetAttributesUseCase escribe el mapa de atributos de un producto de forma
// transaccional, con bloqueo de la fila de la categoría (SELECT FOR UPDATE)
// para serializar las escrituras por categoría frente a cambios de esquema y
// chequeos de unicidad concurrentes.
type SetAttributesUseCase struct {
	txRunner TxRunner
}

// NewSetAttributesUseCase construye el caso de uso.
func NewSetAttributesUseCase(txRunner TxRunner) *SetAttributesUseCase {
	return &SetAttributesUseCase{txRunner: txRunner}
}

// SetAttributes valida y persiste el lote. Si algo falla no se persiste nada
// y el mapa previo del producto queda intacto.
func (uc *SetAttributesUseCase) SetAttributes(ctx context.Context, productID string, submitted map[string]any, mode Mode) (*dto.ProductDetailResponse, error) {
	var out *dto.ProductDetailResponse
	err := uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		defRepo repository.AttributeDefinitionRepository,
		productRepo repository.ProductRepository,
		valueRepo repository.AttributeValueRepository,
	) error {
		product, err := productRepo.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		// Sin categoría el esquema efectivo es vacío: solo se acepta un lote vacío.
		if product.CategoryID == nil {
			if len(submitted) > 0 {
				return domain.NewValidationError("", domain.ReasonNoCategory,
					"el producto no tiene categoría: no admite atributos")
			}
			out = detailResponse(product, map[string]domaincatalog.TypedValue{})
			return nil
		}
		categoryID := *product.CategoryID

		if err := categoryRepo.Lock(categoryID); err != nil {
			return err
		}

		schema, err := defRepo.ListByCategory(categoryID)
		if err != nil {
			return err
		}
		stored, err := valueRepo.ListByProduct(productID)
		if err != nil {
			return err
		}
		current := domaincatalog.Resolve(schema, stored)

		siblingValues, err := valueRepo.ListByCategoryExcept(categoryID, productID)
		if err != nil {
			return err
		}
		siblings := domaincatalog.UniqueValues(schema, siblingValues)

		typed, err := domaincatalog.Validate(schema, submitted, current, siblings, mode == ModeFull)
		if err != nil {
			return err
		}

		if mode == ModeFull {
			if err := valueRepo.DeleteByProduct(productID); err != nil {
				return err
			}
		}
		now := time.Now()
		for _, tv := range typed {
			av := domaincatalog.NewAttributeValue(productID, tv)
			av.CreatedAt = now
			av.UpdatedAt = now
			if err := valueRepo.Upsert(av); err != nil {
				return err
			}
		}

		// El producto se persiste en la misma transacción que su mapa.
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}
		out = detailResponse(product, typed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func detailResponse(p *entity.Product, typed map[string]domaincatalog.TypedValue) *dto.ProductDetailResponse {
	attrs := make(map[string]any, len(typed))
	for name, tv := range typed {
		attrs[name] = tv.Value
	}
	return &dto.ProductDetailResponse{
		ProductResponse: dto.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			SKU:         p.SKU,
			CategoryID:  p.CategoryID,
			Description: p.Description,
			Price:       p.Price,
			Currency:    p.Currency,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		},
		Attributes: attrs,
	}
}
