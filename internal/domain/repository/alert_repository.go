package repository

import (
	"context"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// AlertFilter criterios de listado de alertas. Campos vacíos no filtran.
type AlertFilter struct {
	Status    string
	Priority  string
	BloodType string
}

// AlertRepository define el puerto de persistencia para Alert.
type AlertRepository interface {
	Create(ctx context.Context, a *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	Update(ctx context.Context, a *entity.Alert) error
	List(ctx context.Context, f AlertFilter) ([]*entity.Alert, error)
	// ListActive devuelve alertas activas, opcionalmente por tipo de sangre.
	// Es la fuente del camino de respaldo (scan) de la búsqueda por cercanía.
	ListActive(ctx context.Context, bloodType string) ([]*entity.Alert, error)
	Delete(ctx context.Context, id string) error
}
