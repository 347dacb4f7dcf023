package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/acuhub/portal/core/attendance"
	"github.com/acuhub/portal/core/user"
	testutil "github.com/acuhub/portal/tests"
)

func Test_attendanceApi_mark(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, app.usrRepo, "Ada Obi", "ada@acu.edu.ng", "ACU2021001", "secret1", user.RoleStudent, true)
	lecturer := testutil.CreateUser(t, app.usrRepo, "Dr Bello", "bello@acu.edu.ng", "", "secret1", user.RoleLecturer, true)

	mark := func(course, fingerprint string) []byte {
		return marchallObj(t, echo.Map{
			"course_code":      course,
			"fingerprint_data": fingerprint,
			"location":         "LT1",
		})
	}
	studentToken := getToken(t, app, student)

	t.Run("marks once", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", studentToken, mark("CS301", "fingerprint-sample-data"))
		app.server.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("mark failed! code = %v, body = %s", rec.Code, rec.Body.String())
		}
		var rec1 attendance.Record
		if err := json.Unmarshal(rec.Body.Bytes(), &rec1); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		assert.Equal(t, student.ID, rec1.StudentID)
		assert.Equal(t, "CS301", rec1.CourseCode)
		assert.Equal(t, attendance.StatusPresent, rec1.Status)
		assert.True(t, rec1.FingerprintVerified)
	})

	tests := []httpTest{
		{
			name: "same course same day is rejected", token: studentToken,
			body:     mark("CS301", "fingerprint-sample-data"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "attendance already marked for today"}),
		},
		{
			name: "short fingerprint sample is rejected", token: studentToken,
			body:     mark("CS302", "tiny"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "fingerprint verification failed"}),
		},
		{
			name: "course code is required", token: studentToken,
			body:     mark("", "fingerprint-sample-data"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"course_code": "this field is required"}),
		},
		{
			name: "students only", token: getToken(t, app, lecturer),
			body:     mark("CS301", "fingerprint-sample-data"),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name:     "Auth required",
			body:     mark("CS301", "fingerprint-sample-data"),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", tt.token, tt.body)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// a different course on the same day is fine
	t.Run("different course same day", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", studentToken, mark("CS302", "fingerprint-sample-data"))
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("mark failed! code = %v, body = %s", rec.Code, rec.Body.String())
		}
	})
}

func Test_attendanceApi_query(t *testing.T) {
	app := setup(t)

	ada := testutil.CreateUser(t, app.usrRepo, "Ada Obi", "ada@acu.edu.ng", "ACU2021001", "secret1", user.RoleStudent, true)
	chidi := testutil.CreateUser(t, app.usrRepo, "Chidi", "chidi@acu.edu.ng", "ACU2021002", "secret1", user.RoleStudent, true)
	lecturer := testutil.CreateUser(t, app.usrRepo, "Dr Bello", "bello@acu.edu.ng", "", "secret1", user.RoleLecturer, true)

	markFor := func(usr user.User, course string) {
		body := marchallObj(t, echo.Map{"course_code": course, "fingerprint_data": "fingerprint-sample-data"})
		req, rec := newAuthRequest(http.MethodPost, "/v1/attendance", getToken(t, app, usr), body)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("mark failed! code = %v, body = %s", rec.Code, rec.Body.String())
		}
	}
	markFor(ada, "CS301")
	markFor(chidi, "CS301")
	markFor(chidi, "CS401")

	query := func(token, path string) []attendance.Record {
		req, rec := newAuthRequest(http.MethodGet, path, token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("query failed! code = %v, body = %s", rec.Code, rec.Body.String())
		}
		var records []attendance.Record
		if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		return records
	}

	// students only see their own records, whatever they ask for
	records := query(getToken(t, app, ada), "/v1/attendance?student_id="+chidi.ID)
	if assert.Len(t, records, 1) {
		assert.Equal(t, ada.ID, records[0].StudentID)
	}

	// staff see everything
	assert.Len(t, query(getToken(t, app, lecturer), "/v1/attendance"), 3)
	assert.Len(t, query(getToken(t, app, lecturer), "/v1/attendance?course_code=CS301"), 2)
	assert.Len(t, query(getToken(t, app, lecturer), "/v1/attendance?student_id="+chidi.ID), 2)
}
