package repository

import (
	"context"

	"github.com/tu-usuario/acero-erp/internal/domain/entity"
)

// ProductRepository puerto mínimo de catálogo: el motor de valoración solo
// necesita verificar existencia y pertenencia a la empresa del token.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}
