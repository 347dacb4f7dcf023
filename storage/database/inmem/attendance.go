package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/attendance"
)

type AttendanceRepository struct {
	mu      sync.RWMutex
	records map[string]attendance.Record
}

var _ attendance.Repository = (*AttendanceRepository)(nil)

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{records: make(map[string]attendance.Record)}
}

func (repo *AttendanceRepository) CreateRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, existing := range repo.records {
		if existing.StudentID == rec.StudentID &&
			existing.CourseCode == rec.CourseCode &&
			existing.Date.Equal(rec.Date) {
			return attendance.Record{}, attendance.ErrAlreadyMarked
		}
	}
	rec.ID = uuid.New().String()
	repo.records[rec.ID] = rec
	return rec, nil
}

func (repo *AttendanceRepository) QueryRecords(ctx context.Context, filter *attendance.QueryFilter, ordering []core.DBOrdering) ([]attendance.Record, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	records := make([]attendance.Record, 0, len(repo.records))
	for _, rec := range repo.records {
		if filter != nil {
			if filter.StudentID != "" && rec.StudentID != filter.StudentID {
				continue
			}
			if filter.CourseCode != "" && rec.CourseCode != filter.CourseCode {
				continue
			}
			if !filter.Date.IsZero() && !rec.Date.Equal(filter.Date) {
				continue
			}
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}
