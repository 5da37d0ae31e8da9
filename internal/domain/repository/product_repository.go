package repository

import "github.com/restoqly/restopos-api/internal/domain/entity"

// ProductRepository define el puerto del catálogo de productos. El CRUD del
// catálogo vive fuera del núcleo; aquí solo lo que el motor necesita.
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	GetByIDs(ids []string) (map[string]*entity.Product, error)
}
