package repository

import "github.com/restoqly/restopos-api/internal/domain/entity"

// UserRepository define el puerto del directorio de usuarios.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Create(u *entity.User) error
}
