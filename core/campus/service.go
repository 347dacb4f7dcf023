package campus

import (
	"context"
)

// boundsPadding widens the bounding box so edge markers are not clipped.
const boundsPadding = 0.005

type (
	Repository interface {
		QueryLocations(ctx context.Context, filter *QueryFilter) ([]Location, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Location, error) {
	return svc.repo.QueryLocations(ctx, filter)
}

// Map returns all locations with the map center and bounds derived from them.
func (svc *Service) Map(ctx context.Context) (Map, error) {
	locations, err := svc.repo.QueryLocations(ctx, nil)
	if err != nil {
		return Map{}, err
	}
	m := Map{Locations: locations}
	if len(locations) == 0 {
		return m, nil
	}

	first := locations[0].Coordinates
	minLat, maxLat := first.Lat, first.Lat
	minLng, maxLng := first.Lng, first.Lng
	var sumLat, sumLng float64
	for _, loc := range locations {
		c := loc.Coordinates
		sumLat += c.Lat
		sumLng += c.Lng
		if c.Lat < minLat {
			minLat = c.Lat
		}
		if c.Lat > maxLat {
			maxLat = c.Lat
		}
		if c.Lng < minLng {
			minLng = c.Lng
		}
		if c.Lng > maxLng {
			maxLng = c.Lng
		}
	}

	n := float64(len(locations))
	m.Center = Coordinates{Lat: sumLat / n, Lng: sumLng / n}
	m.Bounds = Bounds{
		North: maxLat + boundsPadding,
		South: minLat - boundsPadding,
		East:  maxLng + boundsPadding,
		West:  minLng - boundsPadding,
	}
	return m, nil
}
