package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Esquema de prueba: una categoría "Electrónica" con un atributo por cada tipo
// y las combinaciones requerido/único que ejercitan todas las reglas:
//
//	color   enum[red, blue]        requerido
//	weight  number  (unit=kg)      requerido
//	serial  string                 único
//	wifi    boolean
//	launch  date
// ──────────────────────────────────────────────────────────────────────────────

func testSchema() []*entity.AttributeDefinition {
	return []*entity.AttributeDefinition{
		{ID: "d-color", CategoryID: "c1", Name: "color", DataType: entity.TypeEnum, IsRequired: true, Options: []string{"red", "blue"}},
		{ID: "d-weight", CategoryID: "c1", Name: "weight", DataType: entity.TypeNumber, IsRequired: true, Unit: "kg"},
		{ID: "d-serial", CategoryID: "c1", Name: "serial", DataType: entity.TypeString, IsUnique: true},
		{ID: "d-wifi", CategoryID: "c1", Name: "wifi", DataType: entity.TypeBoolean},
		{ID: "d-launch", CategoryID: "c1", Name: "launch", DataType: entity.TypeDate},
	}
}

func fullSubmission() map[string]any {
	return map[string]any{
		"color":  "red",
		"weight": "3",
		"serial": "X1",
		"wifi":   "true",
		"launch": "2024-06-30",
	}
}

func TestValidate_ReemplazoTotalCompleto(t *testing.T) {
	typed, err := catalog.Validate(testSchema(), fullSubmission(), nil, catalog.UniqueSet{}, true)
	require.NoError(t, err)
	require.Len(t, typed, 5)

	// Los valores vuelven convertidos a su tipo semántico, no como texto crudo.
	assert.Equal(t, "red", typed["color"].Value)
	assert.True(t, decimal.NewFromInt(3).Equal(typed["weight"].Value.(decimal.Decimal)),
		"el número debe volver como decimal, no como el string crudo")
	assert.Equal(t, true, typed["wifi"].Value)
	assert.Equal(t, "2024-06-30", typed["launch"].Value)
}

func TestValidate_ClaveDesconocidaRechazaLote(t *testing.T) {
	submitted := fullSubmission()
	submitted["voltage"] = "220"

	_, err := catalog.Validate(testSchema(), submitted, nil, catalog.UniqueSet{}, true)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok, "debe ser un ValidationError estructurado")
	assert.Equal(t, domain.ReasonUnknownAttribute, ve.Reason)
	assert.Equal(t, "voltage", ve.Attribute)
}

func TestValidate_RequeridoAusenteEnReemplazoTotal(t *testing.T) {
	submitted := fullSubmission()
	delete(submitted, "weight")

	_, err := catalog.Validate(testSchema(), submitted, nil, catalog.UniqueSet{}, true)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonMissingRequired, ve.Reason)
	assert.Equal(t, "weight", ve.Attribute)
}

// TestValidate_ParcialNoTocaRequeridoYaFijado un parcial que no menciona un
// requerido ya almacenado no debe fallar: el valor previo lo satisface.
func TestValidate_ParcialNoTocaRequeridoYaFijado(t *testing.T) {
	schema := testSchema()
	current := map[string]catalog.TypedValue{
		"color":  {Definition: schema[0], Value: "blue"},
		"weight": {Definition: schema[1], Value: decimal.NewFromInt(2)},
	}

	typed, err := catalog.Validate(schema, map[string]any{"wifi": "1"}, current, catalog.UniqueSet{}, false)
	require.NoError(t, err)

	// El resultado fusiona lo enviado sobre lo almacenado.
	assert.Equal(t, true, typed["wifi"].Value)
	assert.Equal(t, "blue", typed["color"].Value)
	assert.Len(t, typed, 3)
}

func TestValidate_ParcialRequeridoNuncaFijado(t *testing.T) {
	// Sin valor previo de weight, un parcial que no lo trae deja el producto
	// sin un requerido: se rechaza el lote completo.
	_, err := catalog.Validate(testSchema(), map[string]any{"color": "red"}, nil, catalog.UniqueSet{}, false)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonMissingRequired, ve.Reason)
	assert.Equal(t, "weight", ve.Attribute)
}

func TestValidate_EnumFueraDeOpciones(t *testing.T) {
	submitted := fullSubmission()
	submitted["color"] = "green"

	_, err := catalog.Validate(testSchema(), submitted, nil, catalog.UniqueSet{}, true)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonNotInEnum, ve.Reason)
	assert.Equal(t, "color", ve.Attribute)
}

// TestValidate_EnumSensibleAMayusculas la pertenencia al enum es comparación
// exacta: "Red" no es "red".
func TestValidate_EnumSensibleAMayusculas(t *testing.T) {
	submitted := fullSubmission()
	submitted["color"] = "Red"

	_, err := catalog.Validate(testSchema(), submitted, nil, catalog.UniqueSet{}, true)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonNotInEnum, ve.Reason)
}

func TestValidate_NumeroNoNumerico(t *testing.T) {
	submitted := fullSubmission()
	submitted["weight"] = "pesado"

	_, err := catalog.Validate(testSchema(), submitted, nil, catalog.UniqueSet{}, true)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonBadType, ve.Reason)
	assert.Equal(t, "weight", ve.Attribute)
}

func TestValidate_BooleanoTokensValidos(t *testing.T) {
	schema := testSchema()
	for raw, want := range map[string]bool{"true": true, "1": true, "false": false, "0": false} {
		submitted := fullSubmission()
		submitted["wifi"] = raw
		typed, err := catalog.Validate(schema, submitted, nil, catalog.UniqueSet{}, true)
		require.NoError(t, err, "token %q debe ser aceptado", raw)
		assert.Equal(t, want, typed["wifi"].Value)
	}
}

func TestValidate_BooleanoTokenInvalido(t *testing.T) {
	submitted := fullSubmission()
	submitted["wifi"] = "si"

	_, err := catalog.Validate(testSchema(), submitted, nil, catalog.UniqueSet{}, true)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonBadType, ve.Reason)
	assert.Equal(t, "wifi", ve.Attribute)
}

func TestValidate_FechaInvalida(t *testing.T) {
	for _, raw := range []string{"30-06-2024", "2024-13-01", "2024-06-31", "ayer"} {
		submitted := fullSubmission()
		submitted["launch"] = raw
		_, err := catalog.Validate(testSchema(), submitted, nil, catalog.UniqueSet{}, true)
		ve, ok := domain.AsValidation(err)
		require.True(t, ok, "fecha %q debe rechazarse", raw)
		assert.Equal(t, domain.ReasonBadType, ve.Reason)
	}
}

func TestValidate_UnicoYaUsadoPorHermano(t *testing.T) {
	siblings := catalog.UniqueSet{}
	siblings.Add("serial", "X1")

	_, err := catalog.Validate(testSchema(), fullSubmission(), nil, siblings, true)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonDuplicateUnique, ve.Reason)
	assert.Equal(t, "serial", ve.Attribute)
}

func TestValidate_UnicoLibreEnOtraCategoria(t *testing.T) {
	// El conjunto de hermanos se arma por categoría: si nadie de la categoría
	// usa el serial, el valor pasa aunque exista en otra categoría.
	typed, err := catalog.Validate(testSchema(), fullSubmission(), nil, catalog.UniqueSet{}, true)
	require.NoError(t, err)
	assert.Equal(t, "X1", typed["serial"].Value)
}

// TestValidate_TodoONada un lote con una clave válida y otra inválida no debe
// aplicar parcialmente: devuelve solo el error.
func TestValidate_TodoONada(t *testing.T) {
	submitted := fullSubmission()
	submitted["weight"] = "no-numérico"

	typed, err := catalog.Validate(testSchema(), submitted, nil, catalog.UniqueSet{}, true)
	assert.Nil(t, typed)
	assert.Error(t, err)
}

func TestValidate_EsquemaVacioSoloAceptaLoteVacio(t *testing.T) {
	typed, err := catalog.Validate(nil, map[string]any{}, nil, catalog.UniqueSet{}, true)
	require.NoError(t, err)
	assert.Empty(t, typed)

	_, err = catalog.Validate(nil, map[string]any{"color": "red"}, nil, catalog.UniqueSet{}, true)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, domain.ReasonUnknownAttribute, ve.Reason)
}

func TestCanonical_NumerosEquivalentes(t *testing.T) {
	// "3", 3 y 3.0 deben canonicalizar igual para el chequeo de unicidad.
	d1, _ := decimal.NewFromString("3")
	d2, _ := decimal.NewFromString("3.0")
	assert.Equal(t, catalog.Canonical(d1), catalog.Canonical(d2))
}

func TestResolve_OcultaHuerfanosYTiposCambiados(t *testing.T) {
	schema := testSchema()
	serial := "X1"
	peso := decimal.NewFromInt(3)
	values := []*entity.AttributeValue{
		{ProductID: "p1", DefinitionID: "d-serial", DataType: entity.TypeString, StringVal: &serial},
		{ProductID: "p1", DefinitionID: "d-borrado", DataType: entity.TypeString, StringVal: &serial},
		// Guardado cuando weight era string: el tipo vigente es number, se oculta.
		{ProductID: "p1", DefinitionID: "d-weight", DataType: entity.TypeString, StringVal: &serial},
		{ProductID: "p1", DefinitionID: "d-weight", DataType: entity.TypeNumber, NumberVal: &peso},
	}

	resolved := catalog.Resolve(schema, values)
	assert.Contains(t, resolved, "serial")
	assert.Contains(t, resolved, "weight")
	assert.Len(t, resolved, 2, "el valor huérfano no debe aparecer")
}

func TestResolve_RenombrarConservaValores(t *testing.T) {
	schema := testSchema()
	serial := "X1"
	values := []*entity.AttributeValue{
		{ProductID: "p1", DefinitionID: "d-serial", DataType: entity.TypeString, StringVal: &serial},
	}

	// El almacenamiento se indexa por id de definición: al renombrar, el valor
	// se resuelve bajo el nombre nuevo.
	schema[2].Name = "numero_serie"
	resolved := catalog.Resolve(schema, values)
	assert.Equal(t, "X1", resolved["numero_serie"].Value)
	assert.NotContains(t, resolved, "serial")
}

func TestNewAttributeValue_MaterializaPorTipo(t *testing.T) {
	schema := testSchema()
	av := catalog.NewAttributeValue("p1", catalog.TypedValue{Definition: schema[1], Value: decimal.NewFromInt(3)})
	require.NotNil(t, av.NumberVal)
	assert.Nil(t, av.StringVal)
	assert.Equal(t, "d-weight", av.DefinitionID)

	av = catalog.NewAttributeValue("p1", catalog.TypedValue{Definition: schema[4], Value: "2024-06-30"})
	require.NotNil(t, av.DateVal)
	assert.Nil(t, av.StringVal, "una fecha va en su propia columna, no en la de texto")
}
