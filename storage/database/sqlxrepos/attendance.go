package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/acuhub/portal/core"
	"github.com/acuhub/portal/core/attendance"
)

type AttendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*AttendanceRepository)(nil)

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

type attendanceRow struct {
	ID                  string    `db:"id"`
	StudentID           string    `db:"student_id"`
	CourseCode          string    `db:"course_code"`
	Date                time.Time `db:"date"`
	Status              string    `db:"status"`
	Location            string    `db:"location"`
	FingerprintVerified bool      `db:"fingerprint_verified"`
	CreatedAt           time.Time `db:"created_at"`
}

func (row attendanceRow) record() attendance.Record {
	return attendance.Record{
		ID:                  row.ID,
		StudentID:           row.StudentID,
		CourseCode:          row.CourseCode,
		Date:                row.Date.UTC(),
		Status:              row.Status,
		Location:            row.Location,
		FingerprintVerified: row.FingerprintVerified,
		CreatedAt:           row.CreatedAt.UTC(),
	}
}

func (repo *AttendanceRepository) CreateRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	rec.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO attendance (id, student_id, course_code, date, status, location, fingerprint_verified, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.StudentID, rec.CourseCode, rec.Date, rec.Status, rec.Location,
		rec.FingerprintVerified, rec.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := errors.Cause(err).(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return attendance.Record{}, attendance.ErrAlreadyMarked
		}
		return attendance.Record{}, errors.Wrap(err, "inserting attendance record")
	}
	return rec, nil
}

func (repo *AttendanceRepository) QueryRecords(ctx context.Context, filter *attendance.QueryFilter, ordering []core.DBOrdering) ([]attendance.Record, error) {
	query := `SELECT * FROM attendance`
	var args []interface{}

	if filter != nil {
		var where []string
		if filter.StudentID != "" {
			args = append(args, filter.StudentID)
			where = append(where, "student_id::text = "+placeholder(len(args)))
		}
		if filter.CourseCode != "" {
			args = append(args, filter.CourseCode)
			where = append(where, "course_code = "+placeholder(len(args)))
		}
		if !filter.Date.IsZero() {
			args = append(args, filter.Date.UTC().Truncate(24*time.Hour))
			where = append(where, "date = "+placeholder(len(args)))
		}
		if len(where) > 0 {
			query += " WHERE " + strings.Join(where, " AND ")
		}
	}
	query += orderBy(ordering, "date DESC, created_at DESC")

	var rows []attendanceRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance records")
	}
	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	return records, nil
}
