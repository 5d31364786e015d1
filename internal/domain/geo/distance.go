// Package geo implementa el motor de distancias: distancia de círculo máximo
// entre dos coordenadas y el ranking de alertas por cercanía. Es la misma
// aritmética (Haversine, radio 6371 km) que ejecuta la consulta pushdown en
// PostgreSQL, de modo que ambos caminos coinciden en pertenencia al radio y
// en orden.
package geo

import (
	"math"
	"sort"

	"github.com/raktsetu/raktsetu-api/internal/domain/entity"
)

// EarthRadiusKm radio medio terrestre usado por la fórmula de Haversine.
// Debe coincidir con la constante de la consulta SQL nativa.
const EarthRadiusKm = 6371.0

// DistanceKm calcula la distancia de círculo máximo en kilómetros entre dos
// puntos. Devuelve nil si falta cualquier coordenada: la ausencia es un estado
// "ubicación desconocida" distinto de cero, porque (0,0) es una coordenada válida.
func DistanceKm(lat1, lon1, lat2, lon2 *float64) *float64 {
	if lat1 == nil || lon1 == nil || lat2 == nil || lon2 == nil {
		return nil
	}

	rlat1 := radians(*lat1)
	rlat2 := radians(*lat2)
	dlat := radians(*lat2 - *lat1)
	dlon := radians(*lon2 - *lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	d := EarthRadiusKm * c
	return &d
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Match es una alerta con su distancia al origen.
type Match struct {
	Alert      *entity.Alert
	DistanceKm float64
}

// Rank filtra y ordena candidatos para la consulta de alertas cercanas:
// descarta las que no están activas, las que no coinciden con bloodType (si se
// indicó), las de ubicación desconocida y las que exceden radiusKm; el resto
// se ordena ascendente por distancia, con desempate por id ascendente para que
// el resultado sea determinista.
func Rank(alerts []*entity.Alert, originLat, originLon, radiusKm float64, bloodType string) []Match {
	matches := make([]Match, 0, len(alerts))
	for _, a := range alerts {
		if a.Status != entity.AlertActive {
			continue
		}
		if bloodType != "" && a.BloodType != bloodType {
			continue
		}
		d := DistanceKm(&originLat, &originLon, a.Latitude, a.Longitude)
		if d == nil || *d > radiusKm {
			continue
		}
		matches = append(matches, Match{Alert: a, DistanceKm: *d})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].Alert.ID < matches[j].Alert.ID
	})
	return matches
}
