package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"

	"googlemaps.github.io/maps"

	"cabs/internal/domain"
)

// earthRadiusKm is the mean Earth radius used for all geo math.
const earthRadiusKm = 6371.0

// Geocoder resolves an address to geographic coordinates.
type Geocoder interface {
	GeocodeAddress(ctx context.Context, address *domain.Address) (lat, lon float64, err error)
}

// GoogleGeocoder resolves addresses through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder creates a new GoogleGeocoder.
func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

// GeocodeAddress resolves the address through Google Maps.
func (g *GoogleGeocoder) GeocodeAddress(ctx context.Context, address *domain.Address) (float64, float64, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: address.String(),
	})
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding request failed: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding results for %q", address.String())
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// LocalGeocoder derives deterministic coordinates from the address text.
// Used in development and tests where no Maps API key is configured.
type LocalGeocoder struct{}

// NewLocalGeocoder creates a new LocalGeocoder.
func NewLocalGeocoder() *LocalGeocoder {
	return &LocalGeocoder{}
}

// GeocodeAddress hashes the address into a stable coordinate pair.
func (g *LocalGeocoder) GeocodeAddress(_ context.Context, address *domain.Address) (float64, float64, error) {
	h := fnv.New64a()
	h.Write([]byte(address.String()))
	sum := h.Sum64()

	lat := float64(sum%180000) / 1000.0
	lat -= 90.0
	lon := float64((sum/180000)%360000) / 1000.0
	lon -= 180.0

	return lat, lon, nil
}

// HaversineDistanceKm returns the great-circle distance between two points.
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180.0 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
