package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/memory"
)

func newAttributeUC(t *testing.T) (*usecase.AttributeUseCase, string) {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	categories := usecase.NewCategoryUseCase(store.Categories(), tx)
	cat, err := categories.Create(dto.CreateCategoryRequest{Name: "Laptops"})
	require.NoError(t, err)
	return usecase.NewAttributeUseCase(store.Categories(), store.Definitions(), tx), cat.ID
}

func TestAttributeCreate(t *testing.T) {
	uc, catID := newAttributeUC(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, catID, dto.CreateAttributeRequest{
		Name: "peso", DataType: "number", IsRequired: true, Unit: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, "peso", out.Name)
	assert.Equal(t, "number", out.DataType)
	assert.Equal(t, "kg", out.Unit)

	// El nombre es único dentro de la categoría.
	_, err = uc.Create(ctx, catID, dto.CreateAttributeRequest{Name: "peso", DataType: "string"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Tipo desconocido.
	_, err = uc.Create(ctx, catID, dto.CreateAttributeRequest{Name: "x", DataType: "float"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Categoría inexistente.
	_, err = uc.Create(ctx, "no-existe", dto.CreateAttributeRequest{Name: "x", DataType: "string"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttributeCreateMismoNombreEnOtraCategoria(t *testing.T) {
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	categories := usecase.NewCategoryUseCase(store.Categories(), tx)
	uc := usecase.NewAttributeUseCase(store.Categories(), store.Definitions(), tx)
	ctx := context.Background()

	a, err := categories.Create(dto.CreateCategoryRequest{Name: "Laptops"})
	require.NoError(t, err)
	b, err := categories.Create(dto.CreateCategoryRequest{Name: "Monitores"})
	require.NoError(t, err)

	// "color" puede existir en las dos categorías a la vez.
	_, err = uc.Create(ctx, a.ID, dto.CreateAttributeRequest{Name: "color", DataType: "string"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, b.ID, dto.CreateAttributeRequest{Name: "color", DataType: "string"})
	require.NoError(t, err)
}

func TestAttributeEnumExigeOpciones(t *testing.T) {
	uc, catID := newAttributeUC(t)
	ctx := context.Background()

	// Enum sin opciones, con opciones vacías o repetidas: inválido.
	for _, options := range [][]string{nil, {}, {"a", ""}, {"a", "a"}} {
		_, err := uc.Create(ctx, catID, dto.CreateAttributeRequest{
			Name: "color", DataType: "enum", Options: options,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	out, err := uc.Create(ctx, catID, dto.CreateAttributeRequest{
		Name: "color", DataType: "enum", Options: []string{"negro", "plata"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"negro", "plata"}, out.Options)

	// Un tipo no-enum descarta las opciones que vengan en la petición.
	out, err = uc.Create(ctx, catID, dto.CreateAttributeRequest{
		Name: "serial", DataType: "string", Options: []string{"ignorado"},
	})
	require.NoError(t, err)
	assert.Empty(t, out.Options)
}

func TestAttributeUpdate(t *testing.T) {
	uc, catID := newAttributeUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, catID, dto.CreateAttributeRequest{
		Name: "color", DataType: "enum", Options: []string{"negro"},
	})
	require.NoError(t, err)
	other, err := uc.Create(ctx, catID, dto.CreateAttributeRequest{Name: "peso", DataType: "number"})
	require.NoError(t, err)

	// Rename a un nombre tomado dentro de la categoría.
	taken := "peso"
	_, err = uc.Update(ctx, catID, created.ID, dto.UpdateAttributeRequest{Name: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Quitar las opciones de un enum lo deja inválido.
	empty := []string{}
	_, err = uc.Update(ctx, catID, created.ID, dto.UpdateAttributeRequest{Options: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cambiar a un tipo no-enum limpia las opciones.
	str := "string"
	out, err := uc.Update(ctx, catID, created.ID, dto.UpdateAttributeRequest{DataType: &str})
	require.NoError(t, err)
	assert.Equal(t, "string", out.DataType)
	assert.Empty(t, out.Options)

	// Cambiar a enum sin aportar opciones también es inválido.
	enum := "enum"
	_, err = uc.Update(ctx, catID, other.ID, dto.UpdateAttributeRequest{DataType: &enum})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAttributeListOrdenadaPorNombre(t *testing.T) {
	uc, catID := newAttributeUC(t)
	ctx := context.Background()

	for _, name := range []string{"peso", "color", "serial"} {
		_, err := uc.Create(ctx, catID, dto.CreateAttributeRequest{Name: name, DataType: "string"})
		require.NoError(t, err)
	}
	out, err := uc.List(catID)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "color", out.Items[0].Name)
	assert.Equal(t, "peso", out.Items[1].Name)
	assert.Equal(t, "serial", out.Items[2].Name)
}

func TestAttributeDelete(t *testing.T) {
	uc, catID := newAttributeUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, catID, dto.CreateAttributeRequest{Name: "color", DataType: "string"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, catID, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, catID, created.ID), domain.ErrNotFound)

	// El id debe pertenecer a la categoría indicada.
	assert.ErrorIs(t, uc.Delete(ctx, "no-existe", created.ID), domain.ErrNotFound)
}
