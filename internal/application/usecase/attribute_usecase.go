package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// AttributeUseCase CRUD de definiciones de atributos por categoría. Las
// mutaciones pasan por el TxRunner con la categoría bloqueada, para que un
// cambio de esquema no se cruce con una escritura de atributos en vuelo.
type AttributeUseCase struct {
	categoryRepo repository.CategoryRepository
	defRepo      repository.AttributeDefinitionRepository
	txRunner     appcatalog.TxRunner
}

// NewAttributeUseCase construye el caso de uso.
func NewAttributeUseCase(
	categoryRepo repository.CategoryRepository,
	defRepo repository.AttributeDefinitionRepository,
	txRunner appcatalog.TxRunner,
) *AttributeUseCase {
	return &AttributeUseCase{categoryRepo: categoryRepo, defRepo: defRepo, txRunner: txRunner}
}

// Create declara un atributo sobre la categoría. Falla con ErrNotFound si la
// categoría no existe, ErrDuplicate si el nombre choca dentro de la categoría
// y ErrInvalidInput si el tipo no es válido o las opciones del enum no
// conforman (vacías o repetidas).
func (uc *AttributeUseCase) Create(ctx context.Context, categoryID string, in dto.CreateAttributeRequest) (*dto.AttributeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidAttributeType(in.DataType) {
		return nil, domain.ErrInvalidInput
	}
	dataType := entity.AttributeType(in.DataType)
	options, err := normalizeOptions(dataType, in.Options)
	if err != nil {
		return nil, err
	}

	var out *dto.AttributeResponse
	err = uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		defRepo repository.AttributeDefinitionRepository,
		_ repository.ProductRepository,
		_ repository.AttributeValueRepository,
	) error {
		category, err := categoryRepo.GetByID(categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		if err := categoryRepo.Lock(categoryID); err != nil {
			return err
		}
		existing, err := defRepo.GetByName(categoryID, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		now := time.Now()
		def := &entity.AttributeDefinition{
			ID:         uuid.New().String(),
			CategoryID: categoryID,
			Name:       name,
			DataType:   dataType,
			IsRequired: in.IsRequired,
			IsUnique:   in.IsUnique,
			Unit:       in.Unit,
			Options:    options,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := defRepo.Create(def); err != nil {
			return err
		}
		out = toAttributeResponse(def)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve las definiciones de la categoría ordenadas por nombre.
func (uc *AttributeUseCase) List(categoryID string) (*dto.AttributeListResponse, error) {
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	defs, err := uc.defRepo.ListByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AttributeResponse, 0, len(defs))
	for _, d := range defs {
		items = append(items, *toAttributeResponse(d))
	}
	return &dto.AttributeListResponse{CategoryID: categoryID, Items: items}, nil
}

// Update modifica una definición. Un rename se trata como rename-in-place:
// como el almacenamiento indexa por id de definición, los valores existentes
// se conservan bajo el nombre nuevo. Cambiar el data_type deja los valores
// del tipo anterior huérfanos (ocultos en lectura).
func (uc *AttributeUseCase) Update(ctx context.Context, categoryID, attrID string, in dto.UpdateAttributeRequest) (*dto.AttributeResponse, error) {
	var out *dto.AttributeResponse
	err := uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		defRepo repository.AttributeDefinitionRepository,
		_ repository.ProductRepository,
		_ repository.AttributeValueRepository,
	) error {
		if err := lockCategory(categoryRepo, categoryID); err != nil {
			return err
		}
		def, err := defRepo.GetByID(categoryID, attrID)
		if err != nil {
			return err
		}
		if def == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidInput
			}
			if name != def.Name {
				other, err := defRepo.GetByName(categoryID, name)
				if err != nil {
					return err
				}
				if other != nil {
					return domain.ErrDuplicate
				}
				def.Name = name
			}
		}
		if in.DataType != nil {
			if !entity.ValidAttributeType(*in.DataType) {
				return domain.ErrInvalidInput
			}
			def.DataType = entity.AttributeType(*in.DataType)
		}
		if in.IsRequired != nil {
			def.IsRequired = *in.IsRequired
		}
		if in.IsUnique != nil {
			def.IsUnique = *in.IsUnique
		}
		if in.Unit != nil {
			def.Unit = *in.Unit
		}
		if in.Options != nil {
			options, err := normalizeOptions(def.DataType, *in.Options)
			if err != nil {
				return err
			}
			def.Options = options
		}
		// El tipo vigente pudo cambiar arriba: un enum debe quedar con opciones.
		if def.DataType == entity.TypeEnum && len(def.Options) == 0 {
			return domain.ErrInvalidInput
		}
		if def.DataType != entity.TypeEnum {
			def.Options = nil
		}
		def.UpdatedAt = time.Now()
		if err := defRepo.Update(def); err != nil {
			return err
		}
		out = toAttributeResponse(def)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina la definición. Los valores existentes bajo ella quedan
// huérfanos y se ocultan en la siguiente lectura (no se purgan físicamente:
// el borrado es O(1)).
func (uc *AttributeUseCase) Delete(ctx context.Context, categoryID, attrID string) error {
	return uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		defRepo repository.AttributeDefinitionRepository,
		_ repository.ProductRepository,
		_ repository.AttributeValueRepository,
	) error {
		if err := lockCategory(categoryRepo, categoryID); err != nil {
			return err
		}
		def, err := defRepo.GetByID(categoryID, attrID)
		if err != nil {
			return err
		}
		if def == nil {
			return domain.ErrNotFound
		}
		return defRepo.Delete(categoryID, attrID)
	})
}

func lockCategory(categoryRepo repository.CategoryRepository, categoryID string) error {
	category, err := categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return categoryRepo.Lock(categoryID)
}

// normalizeOptions valida las opciones según el tipo: un enum exige lista no
// vacía y sin repetidos; el resto de tipos no lleva opciones.
func normalizeOptions(dataType entity.AttributeType, options []string) ([]string, error) {
	if dataType != entity.TypeEnum {
		return nil, nil
	}
	if len(options) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if o == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, dup := seen[o]; dup {
			return nil, domain.ErrInvalidInput
		}
		seen[o] = struct{}{}
	}
	return options, nil
}

func toAttributeResponse(d *entity.AttributeDefinition) *dto.AttributeResponse {
	return &dto.AttributeResponse{
		ID:         d.ID,
		CategoryID: d.CategoryID,
		Name:       d.Name,
		DataType:   string(d.DataType),
		IsRequired: d.IsRequired,
		IsUnique:   d.IsUnique,
		Unit:       d.Unit,
		Options:    d.Options,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
