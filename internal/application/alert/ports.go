package alert

import (
	"context"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// Geocoder traduce una dirección postal a coordenadas. Nunca devuelve error al
// caso de uso: cualquier fallo (sin credencial, red, sin resultados) se refleja
// como (nil, nil) y la operación continúa con ubicación desconocida.
type Geocoder interface {
	Geocode(ctx context.Context, address, city, state, country string) (lat, lon *float64)
}

// NearbySearcher es el camino primario (pushdown) de la búsqueda por cercanía:
// la base calcula la distancia Haversine y filtra por radio. Un error aquí no
// es fatal: el caso de uso degrada al barrido en proceso.
type NearbySearcher interface {
	SearchNearby(ctx context.Context, lat, lon, radiusKm float64, bloodType string) ([]*entity.Alert, error)
}
