package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. CategoryID nil significa que no pertenece a
// ninguna categoría y su esquema efectivo de atributos es vacío.
type Product struct {
	ID          string
	Name        string
	SKU         string // único global
	CategoryID  *string
	Description string
	Price       *decimal.Decimal // nil = sin precio; nunca negativo
	Currency    string           // código ISO 4217, opcional
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
