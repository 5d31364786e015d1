// Package geocode adapta la API de Geocoding de Google Maps al puerto
// Geocoder de la aplicación.
package geocode

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/raktsetu/raktsetu-api/internal/application/alert"
	"github.com/raktsetu/raktsetu-api/pkg/logger"
)

var _ alert.Geocoder = (*GoogleClient)(nil)

const defaultBaseURL = "https://maps.googleapis.com"

// geocodeResponse respuesta de la API de Geocoding (solo los campos que usamos).
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleClient cliente de geocodificación. Cumple el contrato del puerto:
// nunca propaga errores, cualquier fallo devuelve coordenadas desconocidas.
type GoogleClient struct {
	httpClient *resty.Client
	apiKey     string
	log        *logger.Logger
}

// NewGoogleClient construye el cliente. Con apiKey vacía el cliente es un
// no-op: toda geocodificación devuelve ubicación desconocida.
func NewGoogleClient(apiKey string, timeout time.Duration, log *logger.Logger) *GoogleClient {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &GoogleClient{
		httpClient: client,
		apiKey:     apiKey,
		log:        log,
	}
}

// Geocode traduce una dirección a coordenadas. Devuelve (nil, nil) si falta la
// API key, la petición falla, el status no es OK o no hay resultados.
func (c *GoogleClient) Geocode(ctx context.Context, address, city, state, country string) (*float64, *float64) {
	if c.apiKey == "" {
		c.log.Warn().Msg("geocodificación omitida: sin GOOGLE_MAPS_API_KEY")
		return nil, nil
	}

	parts := make([]string, 0, 4)
	for _, p := range []string{address, city, state, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	fullAddress := strings.Join(parts, ", ")
	if fullAddress == "" {
		return nil, nil
	}

	var out geocodeResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("address", fullAddress).
		SetQueryParam("key", c.apiKey).
		SetResult(&out).
		Get("/maps/api/geocode/json")
	if err != nil {
		c.log.Error().Err(err).Msg("fallo de red en geocodificación")
		return nil, nil
	}
	if resp.IsError() {
		c.log.Error().Int("status_code", resp.StatusCode()).Msg("geocodificación rechazada")
		return nil, nil
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		c.log.Error().Str("status", out.Status).Msg("geocodificación sin resultados")
		return nil, nil
	}

	loc := out.Results[0].Geometry.Location
	return &loc.Lat, &loc.Lng
}
