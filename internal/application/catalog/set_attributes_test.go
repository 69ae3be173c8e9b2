package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: categoría "Laptops" con esquema mixto y un producto vinculado.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store      *memory.Store
	binder     *appcatalog.SetAttributesUseCase
	categories *usecase.CategoryUseCase
	attributes *usecase.AttributeUseCase
	products   *usecase.ProductUseCase
	categoryID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	f := &fixture{
		store:      store,
		binder:     appcatalog.NewSetAttributesUseCase(tx),
		categories: usecase.NewCategoryUseCase(store.Categories(), tx),
		attributes: usecase.NewAttributeUseCase(store.Categories(), store.Definitions(), tx),
		products: usecase.NewProductUseCase(
			store.Products(), store.Categories(), store.Definitions(), store.Values(), tx, nil, nil,
		),
	}

	cat, err := f.categories.Create(dto.CreateCategoryRequest{Name: "Laptops"})
	require.NoError(t, err)
	f.categoryID = cat.ID

	for _, in := range []dto.CreateAttributeRequest{
		{Name: "color", DataType: "enum", IsRequired: true, Options: []string{"negro", "plata"}},
		{Name: "ram_gb", DataType: "number", IsRequired: true, Unit: "GB"},
		{Name: "serial", DataType: "string", IsUnique: true},
		{Name: "tactil", DataType: "boolean"},
		{Name: "lanzamiento", DataType: "date"},
	} {
		_, err := f.attributes.Create(context.Background(), f.categoryID, in)
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) newProduct(t *testing.T, name, sku string) string {
	t.Helper()
	p, err := f.products.Create(dto.CreateProductRequest{
		Name: name, SKU: sku, CategoryID: &f.categoryID,
	})
	require.NoError(t, err)
	return p.ID
}

func TestSetAttributes_FullCoercionaYPersiste(t *testing.T) {
	f := newFixture(t)
	id := f.newProduct(t, "XPS 13", "LAP-001")

	out, err := f.binder.SetAttributes(context.Background(), id, map[string]any{
		"color":       "negro",
		"ram_gb":      "16", // string numérico, debe coercionar
		"serial":      "SN-001",
		"tactil":      "1",
		"lanzamiento": "2024-03-15",
	}, appcatalog.ModeFull)
	require.NoError(t, err)

	assert.Equal(t, "negro", out.Attributes["color"])
	ram, ok := out.Attributes["ram_gb"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, ram.Equal(decimal.NewFromInt(16)))
	assert.Equal(t, true, out.Attributes["tactil"])
	assert.Equal(t, "2024-03-15", out.Attributes["lanzamiento"])

	// Releer por el caso de uso de productos: mismo mapa resuelto.
	detail, err := f.products.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "negro", detail.Attributes["color"])
	assert.Len(t, detail.Attributes, 5)
}

func TestSetAttributes_FullReemplazaTodoElMapa(t *testing.T) {
	f := newFixture(t)
	id := f.newProduct(t, "XPS 13", "LAP-001")
	ctx := context.Background()

	_, err := f.binder.SetAttributes(ctx, id, map[string]any{
		"color": "negro", "ram_gb": 16, "serial": "SN-001",
	}, appcatalog.ModeFull)
	require.NoError(t, err)

	// Nuevo full sin serial: el valor previo de serial se descarta.
	out, err := f.binder.SetAttributes(ctx, id, map[string]any{
		"color": "plata", "ram_gb": 32,
	}, appcatalog.ModeFull)
	require.NoError(t, err)
	assert.NotContains(t, out.Attributes, "serial")

	detail, err := f.products.GetByID(id)
	require.NoError(t, err)
	assert.NotContains(t, detail.Attributes, "serial")
	assert.Equal(t, "plata", detail.Attributes["color"])
}

func TestSetAttributes_PartialFusionaSobreLoAlmacenado(t *testing.T) {
	f := newFixture(t)
	id := f.newProduct(t, "XPS 13", "LAP-001")
	ctx := context.Background()

	_, err := f.binder.SetAttributes(ctx, id, map[string]any{
		"color": "negro", "ram_gb": 16,
	}, appcatalog.ModeFull)
	require.NoError(t, err)

	// Partial que solo toca ram_gb: color persiste y el requerido no falla.
	out, err := f.binder.SetAttributes(ctx, id, map[string]any{
		"ram_gb": 32,
	}, appcatalog.ModePartial)
	require.NoError(t, err)
	assert.Equal(t, "negro", out.Attributes["color"])
	ram := out.Attributes["ram_gb"].(decimal.Decimal)
	assert.True(t, ram.Equal(decimal.NewFromInt(32)))
}

func TestSetAttributes_FalloNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	id := f.newProduct(t, "XPS 13", "LAP-001")
	ctx := context.Background()

	_, err := f.binder.SetAttributes(ctx, id, map[string]any{
		"color": "negro", "ram_gb": 16,
	}, appcatalog.ModeFull)
	require.NoError(t, err)

	// Lote con una clave inválida: todo o nada, el mapa previo queda intacto.
	_, err = f.binder.SetAttributes(ctx, id, map[string]any{
		"color": "rojo", "ram_gb": 32, // rojo no está en las opciones
	}, appcatalog.ModeFull)
	require.Error(t, err)
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "color", verr.Attribute)
	assert.Equal(t, domain.ReasonNotInEnum, verr.Reason)

	detail, err := f.products.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "negro", detail.Attributes["color"])
	ram := detail.Attributes["ram_gb"].(decimal.Decimal)
	assert.True(t, ram.Equal(decimal.NewFromInt(16)))
}

func TestSetAttributes_UnicoChocaConOtroProducto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.newProduct(t, "XPS 13", "LAP-001")
	second := f.newProduct(t, "XPS 15", "LAP-002")

	_, err := f.binder.SetAttributes(ctx, first, map[string]any{
		"color": "negro", "ram_gb": 16, "serial": "SN-UNICO",
	}, appcatalog.ModeFull)
	require.NoError(t, err)

	_, err = f.binder.SetAttributes(ctx, second, map[string]any{
		"color": "plata", "ram_gb": 32, "serial": "SN-UNICO",
	}, appcatalog.ModeFull)
	require.Error(t, err)
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "serial", verr.Attribute)
	assert.Equal(t, domain.ReasonDuplicateUnique, verr.Reason)
}

func TestSetAttributes_ProductoSinCategoria(t *testing.T) {
	f := newFixture(t)
	p, err := f.products.Create(dto.CreateProductRequest{Name: "Suelto", SKU: "GEN-001"})
	require.NoError(t, err)
	ctx := context.Background()

	// Lote vacío es aceptable: el esquema efectivo es vacío.
	out, err := f.binder.SetAttributes(ctx, p.ID, map[string]any{}, appcatalog.ModeFull)
	require.NoError(t, err)
	assert.Empty(t, out.Attributes)

	// Cualquier clave falla con NO_CATEGORY.
	_, err = f.binder.SetAttributes(ctx, p.ID, map[string]any{"color": "negro"}, appcatalog.ModeFull)
	require.Error(t, err)
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonNoCategory, verr.Reason)
}

func TestSetAttributes_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.binder.SetAttributes(context.Background(), "no-existe", map[string]any{}, appcatalog.ModeFull)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetAttributes_BorrarDefinicionOcultaElValor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newProduct(t, "XPS 13", "LAP-001")

	_, err := f.binder.SetAttributes(ctx, id, map[string]any{
		"color": "negro", "ram_gb": 16, "tactil": true,
	}, appcatalog.ModeFull)
	require.NoError(t, err)

	// Localizar y borrar la definición "tactil".
	defs, err := f.attributes.List(f.categoryID)
	require.NoError(t, err)
	var tactilID string
	for _, d := range defs.Items {
		if d.Name == "tactil" {
			tactilID = d.ID
		}
	}
	require.NotEmpty(t, tactilID)
	require.NoError(t, f.attributes.Delete(ctx, f.categoryID, tactilID))

	detail, err := f.products.GetByID(id)
	require.NoError(t, err)
	assert.NotContains(t, detail.Attributes, "tactil")
	assert.Equal(t, "negro", detail.Attributes["color"])
}

func TestSetAttributes_RenombrarDefinicionConservaElValor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newProduct(t, "XPS 13", "LAP-001")

	_, err := f.binder.SetAttributes(ctx, id, map[string]any{
		"color": "negro", "ram_gb": 16,
	}, appcatalog.ModeFull)
	require.NoError(t, err)

	defs, err := f.attributes.List(f.categoryID)
	require.NoError(t, err)
	var ramID string
	for _, d := range defs.Items {
		if d.Name == "ram_gb" {
			ramID = d.ID
		}
	}
	newName := "memoria_gb"
	_, err = f.attributes.Update(ctx, f.categoryID, ramID, dto.UpdateAttributeRequest{Name: &newName})
	require.NoError(t, err)

	detail, err := f.products.GetByID(id)
	require.NoError(t, err)
	assert.NotContains(t, detail.Attributes, "ram_gb")
	ram, ok := detail.Attributes["memoria_gb"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, ram.Equal(decimal.NewFromInt(16)))
}

func TestParseMode(t *testing.T) {
	m, err := appcatalog.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, appcatalog.ModeFull, m)

	m, err = appcatalog.ParseMode("partial")
	require.NoError(t, err)
	assert.Equal(t, appcatalog.ModePartial, m)

	_, err = appcatalog.ParseMode("merge")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
