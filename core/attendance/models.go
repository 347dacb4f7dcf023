package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/acuhub/portal/core"
)

const StatusPresent = "present"

type Record struct {
	ID                  string    `json:"id"`
	StudentID           string    `json:"student_id"`
	CourseCode          string    `json:"course_code"`
	Date                time.Time `json:"date"` // day bucket, UTC midnight
	Status              string    `json:"status"`
	Location            string    `json:"location"`
	FingerprintVerified bool      `json:"fingerprint_verified"`
	CreatedAt           time.Time `json:"created_at"` // UTC
}

// MarkAttendance is the payload a student submits to mark attendance.
type MarkAttendance struct {
	CourseCode      string `json:"course_code" validate:"required,alphanum_"`
	FingerprintData string `json:"fingerprint_data" validate:"required"`
	Location        string `json:"location"`
}

func (ma *MarkAttendance) Validate(validate *validator.Validate) error {
	ma.CourseCode = core.CleanString(ma.CourseCode)
	ma.Location = core.CleanString(ma.Location)
	return validate.Struct(ma)
}

type QueryFilter struct {
	StudentID  string    `query:"student_id"`
	CourseCode string    `query:"course_code"`
	Date       time.Time `query:"date"`
}

func (qf *QueryFilter) Clean() {
	qf.CourseCode = core.CleanString(qf.CourseCode)
}
