package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	appcatalog "github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	domaincatalog "github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Los atributos se escriben
// por el caso de uso transaccional de catalog; aquí solo se leen resueltos.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	defRepo      repository.AttributeDefinitionRepository
	valueRepo    repository.AttributeValueRepository
	txRunner     appcatalog.TxRunner
	sheets       ProductSheetGenerator
	feeds        FeedBuilder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	defRepo repository.AttributeDefinitionRepository,
	valueRepo repository.AttributeValueRepository,
	txRunner appcatalog.TxRunner,
	sheets ProductSheetGenerator,
	feeds FeedBuilder,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		defRepo:      defRepo,
		valueRepo:    valueRepo,
		txRunner:     txRunner,
		sheets:       sheets,
		feeds:        feeds,
	}
}

// Create crea un producto. SKU único global; la categoría, si viene, debe
// existir; el precio no puede ser negativo y la moneda debe ser ISO 4217.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if err := validateCurrency(in.Currency); err != nil {
		return nil, err
	}
	existing, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		SKU:         sku,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID devuelve el detalle del producto con su mapa de atributos resuelto
// contra el esquema vigente (huérfanos ocultos); (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, err
	}
	resolved, err := uc.resolvedAttributes(product)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductDetailResponse{ProductResponse: *toProductResponse(product), Attributes: resolved}
	return out, nil
}

// List lista productos con paginación, creación descendente.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza los campos planos del producto. La categoría tiene su
// propio endpoint porque cambiarla descarta el mapa de atributos.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku == "" {
			return nil, domain.ErrInvalidInput
		}
		if sku != product.SKU {
			other, err := uc.productRepo.GetBySKU(sku)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
			product.SKU = sku
		}
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if err := validatePrice(in.Price); err != nil {
			return nil, err
		}
		product.Price = in.Price
	}
	if in.Currency != nil {
		if err := validateCurrency(*in.Currency); err != nil {
			return nil, err
		}
		product.Currency = *in.Currency
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// SetCategory cambia la categoría del producto. Si cambia de verdad, el mapa
// de atributos almacenado se descarta (no tiene sentido bajo otro esquema);
// si la categoría es la misma no se toca nada.
func (uc *ProductUseCase) SetCategory(ctx context.Context, productID string, categoryID *string) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(
		categoryRepo repository.CategoryRepository,
		_ repository.AttributeDefinitionRepository,
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
		if sameCategory(product.CategoryID, categoryID) {
			out = toProductResponse(product)
			return nil
		}
		if categoryID != nil {
			category, err := categoryRepo.GetByID(*categoryID)
			if err != nil {
				return err
			}
			if category == nil {
				return domain.ErrNotFound
			}
			if err := categoryRepo.Lock(*categoryID); err != nil {
				return err
			}
		}
		if err := valueRepo.DeleteByProduct(productID); err != nil {
			return err
		}
		product.CategoryID = categoryID
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(product); err != nil {
			return err
		}
		out = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina el producto y su mapa de atributos.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.valueRepo.DeleteByProduct(id); err != nil {
		return err
	}
	return uc.productRepo.Delete(id)
}

// RenderSheet genera la ficha técnica PDF del producto.
func (uc *ProductUseCase) RenderSheet(id string) ([]byte, error) {
	detail, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	var schema []*entity.AttributeDefinition
	if detail.CategoryID != nil {
		schema, err = uc.defRepo.ListByCategory(*detail.CategoryID)
		if err != nil {
			return nil, err
		}
	}
	return uc.sheets.Generate(detail, schema)
}

// ExportFeed serializa el catálogo completo como feed XML.
func (uc *ProductUseCase) ExportFeed() ([]byte, error) {
	// Sin límite práctico: el feed es una exportación completa.
	products, err := uc.productRepo.List(1_000_000, 0)
	if err != nil {
		return nil, err
	}
	items := make([]FeedItem, 0, len(products))
	for _, p := range products {
		item := FeedItem{Product: p}
		if p.CategoryID != nil {
			category, err := uc.categoryRepo.GetByID(*p.CategoryID)
			if err != nil {
				return nil, err
			}
			if category != nil {
				item.CategoryName = category.Name
			}
		}
		resolved, err := uc.resolvedAttributes(p)
		if err != nil {
			return nil, err
		}
		item.Attributes = resolved
		items = append(items, item)
	}
	return uc.feeds.Build(items)
}

func (uc *ProductUseCase) resolvedAttributes(product *entity.Product) (map[string]any, error) {
	if product.CategoryID == nil {
		return map[string]any{}, nil
	}
	schema, err := uc.defRepo.ListByCategory(*product.CategoryID)
	if err != nil {
		return nil, err
	}
	values, err := uc.valueRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, err
	}
	resolved := domaincatalog.Resolve(schema, values)
	attrs := make(map[string]any, len(resolved))
	for name, tv := range resolved {
		attrs[name] = tv.Value
	}
	return attrs, nil
}

func validatePrice(price *decimal.Decimal) error {
	if price != nil && price.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

// validateCurrency acepta vacío o un código ISO 4217 válido (x/text/currency).
func validateCurrency(code string) error {
	if code == "" {
		return nil
	}
	if _, err := currency.ParseISO(code); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

func sameCategory(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
