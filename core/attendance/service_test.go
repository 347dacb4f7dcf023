package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/biometric"
)

type fakeRepository struct {
	records []Record
}

func (repo *fakeRepository) CreateRecord(ctx context.Context, rec Record) (Record, error) {
	for _, existing := range repo.records {
		if existing.StudentID == rec.StudentID && existing.CourseCode == rec.CourseCode && existing.Date.Equal(rec.Date) {
			return Record{}, ErrAlreadyMarked
		}
	}
	rec.ID = "rec-1"
	repo.records = append(repo.records, rec)
	return rec, nil
}

func (repo *fakeRepository) QueryRecords(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Record, error) {
	return repo.records, nil
}

func TestService_Mark(t *testing.T) {
	ctx := context.Background()
	fingerprint := "a-long-enough-fingerprint-sample"

	tests := []struct {
		name    string
		ma      MarkAttendance
		again   *MarkAttendance // marked after ma, same service
		wantErr error
	}{
		{
			name: "valid fingerprint marks present",
			ma:   MarkAttendance{CourseCode: "CS301", FingerprintData: fingerprint, Location: "LT1"},
		},
		{
			name:    "short fingerprint rejected",
			ma:      MarkAttendance{CourseCode: "CS301", FingerprintData: "tiny"},
			wantErr: ErrFingerprintRejected,
		},
		{
			name:    "second mark same day fails",
			ma:      MarkAttendance{CourseCode: "CS301", FingerprintData: fingerprint},
			again:   &MarkAttendance{CourseCode: "CS301", FingerprintData: fingerprint},
			wantErr: ErrAlreadyMarked,
		},
		{
			name:  "different course same day succeeds",
			ma:    MarkAttendance{CourseCode: "CS301", FingerprintData: fingerprint},
			again: &MarkAttendance{CourseCode: "CS401", FingerprintData: fingerprint},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeRepository{}, biometric.NewSimulatedVerifier())

			rec, err := svc.Mark(ctx, "student-1", tt.ma)
			if tt.again != nil {
				if err != nil {
					t.Fatalf("Mark() unexpected error = %v", err)
				}
				rec, err = svc.Mark(ctx, "student-1", *tt.again)
			}
			if tt.wantErr != nil {
				if errors.Cause(err) != tt.wantErr {
					t.Fatalf("Mark() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Mark() unexpected error = %v", err)
			}

			if rec.StudentID != "student-1" {
				t.Errorf("StudentID = %s, want student-1", rec.StudentID)
			}
			if rec.Status != StatusPresent {
				t.Errorf("Status = %s, want %s", rec.Status, StatusPresent)
			}
			if !rec.FingerprintVerified {
				t.Error("FingerprintVerified = false, want true")
			}
			if wantDate := time.Now().UTC().Truncate(24 * time.Hour); !rec.Date.Equal(wantDate) {
				t.Errorf("Date = %v, want %v", rec.Date, wantDate)
			}
		})
	}
}

func TestService_Mark_defaultLocation(t *testing.T) {
	svc := NewService(&fakeRepository{}, biometric.NewSimulatedVerifier())

	rec, err := svc.Mark(context.Background(), "student-1", MarkAttendance{
		CourseCode:      "CS301",
		FingerprintData: "a-long-enough-fingerprint-sample",
	})
	if err != nil {
		t.Fatalf("Mark() unexpected error = %v", err)
	}
	if rec.Location != "Unknown" {
		t.Errorf("Location = %s, want Unknown", rec.Location)
	}
}
