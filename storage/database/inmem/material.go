package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/material"
)

type MaterialRepository struct {
	mu        sync.RWMutex
	materials map[string]material.Material
}

var _ material.Repository = (*MaterialRepository)(nil)

func NewMaterialRepository() *MaterialRepository {
	return &MaterialRepository{materials: make(map[string]material.Material)}
}

func (repo *MaterialRepository) CreateMaterial(ctx context.Context, mat material.Material) (material.Material, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	mat.ID = uuid.New().String()
	repo.materials[mat.ID] = mat
	return mat, nil
}

func (repo *MaterialRepository) GetMaterial(ctx context.Context, id string) (material.Material, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if mat, ok := repo.materials[id]; ok {
		return mat, nil
	}
	return material.Material{}, material.ErrNotFound
}

func (repo *MaterialRepository) QueryMaterials(ctx context.Context, filter *material.QueryFilter, ordering []core.DBOrdering) ([]material.Material, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	materials := make([]material.Material, 0, len(repo.materials))
	for _, mat := range repo.materials {
		if filter != nil {
			if filter.CourseCode != "" && mat.CourseCode != filter.CourseCode {
				continue
			}
			if filter.Type != "" && mat.Type != filter.Type {
				continue
			}
			if filter.Category != "" && mat.Category != filter.Category {
				continue
			}
			if filter.UploadedBy != "" && mat.UploadedBy != filter.UploadedBy {
				continue
			}
			if filter.PublicOnly && !mat.IsPublic {
				continue
			}
		}
		materials = append(materials, mat)
	}
	sort.Slice(materials, func(i, j int) bool { return materials[i].CreatedAt.After(materials[j].CreatedAt) })
	return materials, nil
}

func (repo *MaterialRepository) IncrementDownloads(ctx context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	mat, ok := repo.materials[id]
	if !ok {
		return material.ErrNotFound
	}
	mat.Downloads++
	repo.materials[id] = mat
	return nil
}

func (repo *MaterialRepository) DeleteMaterial(ctx context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.materials[id]; !ok {
		return material.ErrNotFound
	}
	delete(repo.materials, id)
	return nil
}
