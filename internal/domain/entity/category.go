package entity

import "time"

// Category agrupa productos que comparten un mismo esquema de atributos.
type Category struct {
	ID          string
	Name        string // único global, no vacío
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
