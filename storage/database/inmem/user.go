// Package inmem provides map-backed repositories for tests and local runs.
package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User // keyed by ID
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

func (repo *UserRepository) CheckUniqueness(ctx context.Context, email, matricNumber string, excludedUsers ...user.User) error {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.checkUniqueness(email, matricNumber, excludedUsers...)
}

func (repo *UserRepository) checkUniqueness(email, matricNumber string, excludedUsers ...user.User) error {
	excluded := make(map[string]struct{}, len(excludedUsers))
	for _, usr := range excludedUsers {
		excluded[usr.ID] = struct{}{}
	}
	for _, usr := range repo.users {
		if _, ok := excluded[usr.ID]; ok {
			continue
		}
		if strings.EqualFold(usr.Email, email) {
			return user.ErrEmailExists
		}
		if matricNumber != "" && usr.MatricNumber.Valid && usr.MatricNumber.String == matricNumber {
			return user.ErrMatricExists
		}
	}
	return nil
}

func (repo *UserRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var matric string
	if usr.MatricNumber.Valid {
		matric = usr.MatricNumber.String
	}
	if err := repo.checkUniqueness(usr.Email, matric); err != nil {
		return user.User{}, err
	}

	usr.ID = uuid.New().String()
	repo.users[usr.ID] = usr
	return usr, nil
}

func (repo *UserRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.users[filter.ID]; ok {
			return usr, nil
		}
		return user.User{}, user.ErrNotFound
	}
	for _, usr := range repo.users {
		if filter.Email != "" && strings.EqualFold(usr.Email, filter.Email) {
			return usr, nil
		}
		if filter.MatricNumber != "" && usr.MatricNumber.Valid && usr.MatricNumber.String == filter.MatricNumber {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering) ([]user.User, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	users := make([]user.User, 0, len(repo.users))
	for _, usr := range repo.users {
		if matchesUserFilter(usr, filter) {
			users = append(users, usr)
		}
	}
	// recent first, matching the database default
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (repo *UserRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	repo.users[usr.ID] = usr
	return usr, nil
}

func matchesUserFilter(usr user.User, filter *user.QueryFilter) bool {
	if filter == nil || filter.IsEmpty() {
		return true
	}
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(usr.Name), search) &&
			!strings.Contains(strings.ToLower(usr.Email), search) &&
			!strings.Contains(strings.ToLower(usr.MatricNumber.String), search) {
			return false
		}
	}
	if filter.Role != "" && usr.Role != filter.Role {
		return false
	}
	if filter.Department != "" && usr.Department != filter.Department {
		return false
	}
	if filter.IsActive != nil && usr.IsActive != *filter.IsActive {
		return false
	}
	if !filter.CreatedFrom.IsZero() && usr.CreatedAt.Before(filter.CreatedFrom) {
		return false
	}
	if !filter.CreatedTo.IsZero() && usr.CreatedAt.After(filter.CreatedTo) {
		return false
	}
	return true
}
