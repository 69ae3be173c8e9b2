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

// CategoryUseCase casos de uso CRUD para categorías. El borrado pasa por el
// TxRunner porque toca definiciones, productos y valores en una sola unidad.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	txRunner appcatalog.TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, txRunner appcatalog.TxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, txRunner: txRunner}
}

// Create crea una categoría. El nombre es obligatorio y único global.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil || category == nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List() (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

// Update actualiza nombre y/o descripción. Un rename no puede chocar con otra
// categoría existente.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if name != category.Name {
			other, err := uc.repo.GetByName(name)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
			category.Name = name
		}
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete borra la categoría. Sin cascade falla con conflicto mientras existan
// definiciones o productos que la referencien. Con cascade borra las
// definiciones y la categoría, desvincula los productos (category_id a NULL)
// y descarta sus mapas de atributos; los productos nunca se borran.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string, cascade bool) error {
	return uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		defRepo repository.AttributeDefinitionRepository,
		productRepo repository.ProductRepository,
		valueRepo repository.AttributeValueRepository,
	) error {
		category, err := categoryRepo.GetByID(id)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		if err := categoryRepo.Lock(id); err != nil {
			return err
		}
		defs, err := defRepo.CountByCategory(id)
		if err != nil {
			return err
		}
		products, err := productRepo.CountByCategory(id)
		if err != nil {
			return err
		}
		if !cascade && (defs > 0 || products > 0) {
			return domain.ErrConflict
		}
		if cascade {
			if err := valueRepo.DeleteByCategoryProducts(id); err != nil {
				return err
			}
			if err := defRepo.DeleteByCategory(id); err != nil {
				return err
			}
			if err := productRepo.ClearCategory(id); err != nil {
				return err
			}
		}
		return categoryRepo.Delete(id)
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
