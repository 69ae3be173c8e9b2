package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.AttributeDefinitionRepository = (*AttributeDefinitionRepo)(nil)

// AttributeDefinitionRepo puerto AttributeDefinitionRepository sobre
// PostgreSQL. Options se guarda como text[]; la unicidad de nombre por
// categoría la respalda el constraint UNIQUE (category_id, name).
type AttributeDefinitionRepo struct {
	q Querier
}

// NewAttributeDefinitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttributeDefinitionRepository(q Querier) *AttributeDefinitionRepo {
	return &AttributeDefinitionRepo{q: q}
}

const attrColumns = `id, category_id, name, data_type, is_required, is_unique, unit, options, created_at, updated_at`

// Create persiste una nueva definición.
func (r *AttributeDefinitionRepo) Create(def *entity.AttributeDefinition) error {
	query := `
		INSERT INTO attribute_definitions (` + attrColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		def.ID, def.CategoryID, def.Name, string(def.DataType), def.IsRequired, def.IsUnique,
		def.Unit, def.Options, def.CreatedAt, def.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert attribute definition: %w", err)
	}
	return nil
}

// GetByID obtiene la definición dentro de la categoría.
func (r *AttributeDefinitionRepo) GetByID(categoryID, id string) (*entity.AttributeDefinition, error) {
	return r.getBy(`SELECT `+attrColumns+` FROM attribute_definitions WHERE category_id = $1 AND id = $2`, categoryID, id)
}

// GetByName obtiene la definición por nombre dentro de la categoría.
func (r *AttributeDefinitionRepo) GetByName(categoryID, name string) (*entity.AttributeDefinition, error) {
	return r.getBy(`SELECT `+attrColumns+` FROM attribute_definitions WHERE category_id = $1 AND name = $2`, categoryID, name)
}

func (r *AttributeDefinitionRepo) getBy(query string, args ...any) (*entity.AttributeDefinition, error) {
	var d entity.AttributeDefinition
	var dataType string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&d.ID, &d.CategoryID, &d.Name, &dataType, &d.IsRequired, &d.IsUnique,
		&d.Unit, &d.Options, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attribute definition: %w", err)
	}
	d.DataType = entity.AttributeType(dataType)
	return &d, nil
}

// ListByCategory devuelve las definiciones de la categoría ordenadas por nombre.
func (r *AttributeDefinitionRepo) ListByCategory(categoryID string) ([]*entity.AttributeDefinition, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+attrColumns+` FROM attribute_definitions WHERE category_id = $1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list attribute definitions: %w", err)
	}
	defer rows.Close()
	var list []*entity.AttributeDefinition
	for rows.Next() {
		var d entity.AttributeDefinition
		var dataType string
		if err := rows.Scan(&d.ID, &d.CategoryID, &d.Name, &dataType, &d.IsRequired, &d.IsUnique,
			&d.Unit, &d.Options, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attribute definition: %w", err)
		}
		d.DataType = entity.AttributeType(dataType)
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CountByCategory cuenta las definiciones de la categoría.
func (r *AttributeDefinitionRepo) CountByCategory(categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM attribute_definitions WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count attribute definitions: %w", err)
	}
	return n, nil
}

// Update actualiza una definición existente.
func (r *AttributeDefinitionRepo) Update(def *entity.AttributeDefinition) error {
	query := `
		UPDATE attribute_definitions
		SET name = $3, data_type = $4, is_required = $5, is_unique = $6, unit = $7, options = $8, updated_at = $9
		WHERE category_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		def.CategoryID, def.ID, def.Name, string(def.DataType), def.IsRequired, def.IsUnique,
		def.Unit, def.Options, def.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update attribute definition: %w", err)
	}
	return nil
}

// Delete elimina la definición. Los valores que la referencian quedan
// huérfanos y se ocultan en lectura (no se purgan aquí: borrado O(1)).
func (r *AttributeDefinitionRepo) Delete(categoryID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM attribute_definitions WHERE category_id = $1 AND id = $2`, categoryID, id)
	if err != nil {
		return fmt.Errorf("delete attribute definition: %w", err)
	}
	return nil
}

// DeleteByCategory elimina todas las definiciones de la categoría (cascada).
func (r *AttributeDefinitionRepo) DeleteByCategory(categoryID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM attribute_definitions WHERE category_id = $1`, categoryID)
	if err != nil {
		return fmt.Errorf("delete attribute definitions by category: %w", err)
	}
	return nil
}
