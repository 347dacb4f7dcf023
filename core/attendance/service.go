package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/biometric"
)

var (
	// errors
	ErrAlreadyMarked       = errors.New("attendance already marked for today")
	ErrFingerprintRejected = errors.New("fingerprint verification failed")
)

type (
	Repository interface {
		// CreateRecord persists the record; a second record for the same
		// (student, course, day) fails with ErrAlreadyMarked regardless of
		// interleaving (unique constraint at the store).
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		// QueryRecords applies AND operation on available QueryFilter fields;
		// QueryFilter.Date matches the whole day. Most recent records first.
		QueryRecords(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Record, error)
	}

	Service struct {
		repo     Repository
		verifier biometric.Verifier
	}
)

func NewService(repo Repository, verifier biometric.Verifier) *Service {
	return &Service{repo: repo, verifier: verifier}
}

// Mark records today's attendance for the student after fingerprint verification.
func (svc *Service) Mark(ctx context.Context, studentID string, ma MarkAttendance) (Record, error) {
	ok, err := svc.verifier.Verify([]byte(ma.FingerprintData))
	if err != nil {
		return Record{}, errors.Wrap(err, "verifying fingerprint")
	}
	if !ok {
		return Record{}, ErrFingerprintRejected
	}

	now := time.Now().UTC()
	location := ma.Location
	if location == "" {
		location = "Unknown"
	}
	rec := Record{
		StudentID:           studentID,
		CourseCode:          ma.CourseCode,
		Date:                now.Truncate(24 * time.Hour),
		Status:              StatusPresent,
		Location:            location,
		FingerprintVerified: true,
		CreatedAt:           now,
	}
	return svc.repo.CreateRecord(ctx, rec)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Record, error) {
	return svc.repo.QueryRecords(ctx, filter, ordering)
}
