package inmem

import (
	"context"
	"sync"

	"github.com/acuhub/portal/core/campus"
)

type CampusRepository struct {
	mu        sync.RWMutex
	locations []campus.Location
}

var _ campus.Repository = (*CampusRepository)(nil)

func NewCampusRepository(locations ...campus.Location) *CampusRepository {
	return &CampusRepository{locations: locations}
}

func (repo *CampusRepository) QueryLocations(ctx context.Context, filter *campus.QueryFilter) ([]campus.Location, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	locations := make([]campus.Location, 0, len(repo.locations))
	for _, loc := range repo.locations {
		if filter != nil && filter.Type != "" && loc.Type != filter.Type {
			continue
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
