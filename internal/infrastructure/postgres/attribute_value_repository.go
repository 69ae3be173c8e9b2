package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.AttributeValueRepository = (*AttributeValueRepo)(nil)

// AttributeValueRepo puerto AttributeValueRepository sobre PostgreSQL. Tabla
// EAV product_attribute_values con PK (product_id, definition_id) y una
// columna por tipo; number es NUMERIC (codec decimal del pool).
type AttributeValueRepo struct {
	q Querier
}

// NewAttributeValueRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttributeValueRepository(q Querier) *AttributeValueRepo {
	return &AttributeValueRepo{q: q}
}

const valueColumns = `product_id, definition_id, data_type, string_value, number_value, bool_value, date_value, created_at, updated_at`

// ListByProduct devuelve los valores almacenados del producto, incluidos los
// huérfanos (la normalización de lectura los filtra en el dominio).
func (r *AttributeValueRepo) ListByProduct(productID string) ([]*entity.AttributeValue, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+valueColumns+` FROM product_attribute_values WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("list attribute values: %w", err)
	}
	return scanValues(rows)
}

// ListByCategoryExcept devuelve los valores de todos los productos de la
// categoría salvo el excluido (chequeo de unicidad entre hermanos).
func (r *AttributeValueRepo) ListByCategoryExcept(categoryID, excludeProductID string) ([]*entity.AttributeValue, error) {
	query := `
		SELECT v.product_id, v.definition_id, v.data_type, v.string_value, v.number_value,
		       v.bool_value, v.date_value, v.created_at, v.updated_at
		FROM product_attribute_values v
		JOIN products p ON p.id = v.product_id
		WHERE p.category_id = $1 AND v.product_id <> $2`
	rows, err := r.q.Query(context.Background(), query, categoryID, excludeProductID)
	if err != nil {
		return nil, fmt.Errorf("list sibling attribute values: %w", err)
	}
	return scanValues(rows)
}

func scanValues(rows pgx.Rows) ([]*entity.AttributeValue, error) {
	defer rows.Close()
	var list []*entity.AttributeValue
	for rows.Next() {
		var v entity.AttributeValue
		var dataType string
		if err := rows.Scan(&v.ProductID, &v.DefinitionID, &dataType, &v.StringVal, &v.NumberVal,
			&v.BoolVal, &v.DateVal, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attribute value: %w", err)
		}
		v.DataType = entity.AttributeType(dataType)
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Upsert inserta o reemplaza el valor del producto para la definición.
func (r *AttributeValueRepo) Upsert(value *entity.AttributeValue) error {
	query := `
		INSERT INTO product_attribute_values (` + valueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id, definition_id) DO UPDATE
		SET data_type = EXCLUDED.data_type,
		    string_value = EXCLUDED.string_value,
		    number_value = EXCLUDED.number_value,
		    bool_value = EXCLUDED.bool_value,
		    date_value = EXCLUDED.date_value,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		value.ProductID, value.DefinitionID, string(value.DataType),
		value.StringVal, value.NumberVal, value.BoolVal, value.DateVal,
		value.CreatedAt, value.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert attribute value: %w", err)
	}
	return nil
}

// DeleteByProduct descarta el mapa completo del producto.
func (r *AttributeValueRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_attribute_values WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete attribute values: %w", err)
	}
	return nil
}

// DeleteByCategoryProducts descarta los mapas de todos los productos de la
// categoría (efecto destructivo del borrado en cascada).
func (r *AttributeValueRepo) DeleteByCategoryProducts(categoryID string) error {
	query := `
		DELETE FROM product_attribute_values v
		USING products p
		WHERE v.product_id = p.id AND p.category_id = $1`
	_, err := r.q.Exec(context.Background(), query, categoryID)
	if err != nil {
		return fmt.Errorf("delete attribute values by category: %w", err)
	}
	return nil
}
