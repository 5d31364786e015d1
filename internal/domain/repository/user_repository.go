package repository

import (
	"context"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// List devuelve usuarios, opcionalmente filtrados por rol ("" = todos).
	List(ctx context.Context, role string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
