// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en los tests de los casos de uso: mismo contrato que los
// adaptadores PostgreSQL, sin base de datos.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Store estado compartido del backend en memoria. Los valores se indexan por
// (product_id, definition_id), como la tabla product_attribute_values.
type Store struct {
	mu          sync.Mutex
	categories  map[string]*entity.Category
	definitions map[string]*entity.AttributeDefinition
	products    map[string]*entity.Product
	values      map[valueKey]*entity.AttributeValue
	seq         int // orden de inserción de productos, para List estable
	order       map[string]int
}

type valueKey struct {
	productID    string
	definitionID string
}

// NewStore crea un backend vacío.
func NewStore() *Store {
	return &Store{
		categories:  make(map[string]*entity.Category),
		definitions: make(map[string]*entity.AttributeDefinition),
		products:    make(map[string]*entity.Product),
		values:      make(map[valueKey]*entity.AttributeValue),
		order:       make(map[string]int),
	}
}

// Categories devuelve el repositorio de categorías sobre este store.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{store: s} }

// Definitions devuelve el repositorio de definiciones sobre este store.
func (s *Store) Definitions() repository.AttributeDefinitionRepository { return &definitionRepo{store: s} }

// Products devuelve el repositorio de productos sobre este store.
func (s *Store) Products() repository.ProductRepository { return &productRepo{store: s} }

// Values devuelve el repositorio de valores sobre este store.
func (s *Store) Values() repository.AttributeValueRepository { return &valueRepo{store: s} }

// TxRunner implementación en memoria del runner transaccional: serializa las
// operaciones con el mutex del store, que es el equivalente del bloqueo por
// categoría. Los casos de uso validan antes de mutar, así que no necesita
// rollback real.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner { return &TxRunner{store: store} }

var _ catalog.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn con repos del store bajo el lock global.
func (r *TxRunner) Run(_ context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	defRepo repository.AttributeDefinitionRepository,
	productRepo repository.ProductRepository,
	valueRepo repository.AttributeValueRepository,
) error) error {
	// Los repos de este paquete toman el mismo mutex de forma no reentrante,
	// así que el lock se toma aquí y los repos "tx" operan sin relockear.
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(
		&categoryRepo{store: r.store, inTx: true},
		&definitionRepo{store: r.store, inTx: true},
		&productRepo{store: r.store, inTx: true},
		&valueRepo{store: r.store, inTx: true},
	)
}

// lock toma el mutex salvo dentro de una transacción (ya tomado por Run).
func lock(s *Store, inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ── Categorías ────────────────────────────────────────────────────────────────

type categoryRepo struct {
	store *Store
	inTx  bool
}

func (r *categoryRepo) Create(category *entity.Category) error {
	defer lock(r.store, r.inTx)()
	for _, c := range r.store.categories {
		if c.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *category
	r.store.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) GetByID(id string) (*entity.Category, error) {
	defer lock(r.store, r.inTx)()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *categoryRepo) GetByName(name string) (*entity.Category, error) {
	defer lock(r.store, r.inTx)()
	for _, c := range r.store.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *categoryRepo) List() ([]*entity.Category, error) {
	defer lock(r.store, r.inTx)()
	list := make([]*entity.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		cp := *c
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *categoryRepo) Update(category *entity.Category) error {
	defer lock(r.store, r.inTx)()
	if _, ok := r.store.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.store.categories {
		if c.ID != category.ID && c.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *category
	r.store.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) Delete(id string) error {
	defer lock(r.store, r.inTx)()
	delete(r.store.categories, id)
	return nil
}

// Lock no hace nada: el TxRunner en memoria ya serializa todo el store.
func (r *categoryRepo) Lock(string) error { return nil }

// ── Definiciones ──────────────────────────────────────────────────────────────

type definitionRepo struct {
	store *Store
	inTx  bool
}

func (r *definitionRepo) Create(def *entity.AttributeDefinition) error {
	defer lock(r.store, r.inTx)()
	for _, d := range r.store.definitions {
		if d.CategoryID == def.CategoryID && d.Name == def.Name {
			return domain.ErrDuplicate
		}
	}
	cp := copyDefinition(def)
	r.store.definitions[def.ID] = cp
	return nil
}

func (r *definitionRepo) GetByID(categoryID, id string) (*entity.AttributeDefinition, error) {
	defer lock(r.store, r.inTx)()
	d, ok := r.store.definitions[id]
	if !ok || d.CategoryID != categoryID {
		return nil, nil
	}
	return copyDefinition(d), nil
}

func (r *definitionRepo) GetByName(categoryID, name string) (*entity.AttributeDefinition, error) {
	defer lock(r.store, r.inTx)()
	for _, d := range r.store.definitions {
		if d.CategoryID == categoryID && d.Name == name {
			return copyDefinition(d), nil
		}
	}
	return nil, nil
}

func (r *definitionRepo) ListByCategory(categoryID string) ([]*entity.AttributeDefinition, error) {
	defer lock(r.store, r.inTx)()
	var list []*entity.AttributeDefinition
	for _, d := range r.store.definitions {
		if d.CategoryID == categoryID {
			list = append(list, copyDefinition(d))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *definitionRepo) CountByCategory(categoryID string) (int, error) {
	defer lock(r.store, r.inTx)()
	n := 0
	for _, d := range r.store.definitions {
		if d.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *definitionRepo) Update(def *entity.AttributeDefinition) error {
	defer lock(r.store, r.inTx)()
	if _, ok := r.store.definitions[def.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, d := range r.store.definitions {
		if d.ID != def.ID && d.CategoryID == def.CategoryID && d.Name == def.Name {
			return domain.ErrDuplicate
		}
	}
	r.store.definitions[def.ID] = copyDefinition(def)
	return nil
}

func (r *definitionRepo) Delete(categoryID, id string) error {
	defer lock(r.store, r.inTx)()
	d, ok := r.store.definitions[id]
	if ok && d.CategoryID == categoryID {
		delete(r.store.definitions, id)
	}
	return nil
}

func (r *definitionRepo) DeleteByCategory(categoryID string) error {
	defer lock(r.store, r.inTx)()
	for id, d := range r.store.definitions {
		if d.CategoryID == categoryID {
			delete(r.store.definitions, id)
		}
	}
	return nil
}

func copyDefinition(d *entity.AttributeDefinition) *entity.AttributeDefinition {
	cp := *d
	cp.Options = append([]string(nil), d.Options...)
	return &cp
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productRepo struct {
	store *Store
	inTx  bool
}

func (r *productRepo) Create(product *entity.Product) error {
	defer lock(r.store, r.inTx)()
	for _, p := range r.store.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.store.products[product.ID] = &cp
	r.store.seq++
	r.store.order[product.ID] = r.store.seq
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	defer lock(r.store, r.inTx)()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	defer lock(r.store, r.inTx)()
	for _, p := range r.store.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	defer lock(r.store, r.inTx)()
	list := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		cp := *p
		list = append(list, &cp)
	}
	// Creación descendente, como el adaptador PostgreSQL.
	sort.Slice(list, func(i, j int) bool {
		return r.store.order[list[i].ID] > r.store.order[list[j].ID]
	})
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *productRepo) CountByCategory(categoryID string) (int, error) {
	defer lock(r.store, r.inTx)()
	n := 0
	for _, p := range r.store.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	defer lock(r.store, r.inTx)()
	if _, ok := r.store.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.store.products {
		if p.ID != product.ID && p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *productRepo) ClearCategory(categoryID string) error {
	defer lock(r.store, r.inTx)()
	for _, p := range r.store.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			p.CategoryID = nil
		}
	}
	return nil
}

func (r *productRepo) Delete(id string) error {
	defer lock(r.store, r.inTx)()
	delete(r.store.products, id)
	delete(r.store.order, id)
	for key := range r.store.values {
		if key.productID == id {
			delete(r.store.values, key)
		}
	}
	return nil
}

// ── Valores de atributos ──────────────────────────────────────────────────────

type valueRepo struct {
	store *Store
	inTx  bool
}

func (r *valueRepo) ListByProduct(productID string) ([]*entity.AttributeValue, error) {
	defer lock(r.store, r.inTx)()
	var list []*entity.AttributeValue
	for key, v := range r.store.values {
		if key.productID == productID {
			cp := *v
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *valueRepo) ListByCategoryExcept(categoryID, excludeProductID string) ([]*entity.AttributeValue, error) {
	defer lock(r.store, r.inTx)()
	var list []*entity.AttributeValue
	for key, v := range r.store.values {
		if key.productID == excludeProductID {
			continue
		}
		p, ok := r.store.products[key.productID]
		if !ok || p.CategoryID == nil || *p.CategoryID != categoryID {
			continue
		}
		cp := *v
		list = append(list, &cp)
	}
	return list, nil
}

func (r *valueRepo) Upsert(value *entity.AttributeValue) error {
	defer lock(r.store, r.inTx)()
	cp := *value
	r.store.values[valueKey{value.ProductID, value.DefinitionID}] = &cp
	return nil
}

func (r *valueRepo) DeleteByProduct(productID string) error {
	defer lock(r.store, r.inTx)()
	for key := range r.store.values {
		if key.productID == productID {
			delete(r.store.values, key)
		}
	}
	return nil
}

func (r *valueRepo) DeleteByCategoryProducts(categoryID string) error {
	defer lock(r.store, r.inTx)()
	for key := range r.store.values {
		p, ok := r.store.products[key.productID]
		if ok && p.CategoryID != nil && *p.CategoryID == categoryID {
			delete(r.store.values, key)
		}
	}
	return nil
}
