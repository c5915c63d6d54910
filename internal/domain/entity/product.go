package entity

import "time"

// Product representa una referencia de acero del catálogo (perfil, lámina,
// varilla, etc.). El stock y el costo NO viven aquí: se derivan de los lotes
// (StockBatch) por producto; este tipo solo da identidad y alcance de empresa.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	UnitMeasure string // kg, ton, unidad
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
