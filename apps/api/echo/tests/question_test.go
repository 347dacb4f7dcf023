package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/acuhub/portal/core/question"
	"github.com/acuhub/portal/core/user"
	testutil "github.com/acuhub/portal/tests"
)

func Test_questionApi_generate(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, app.usrRepo, "Ada Obi", "ada@acu.edu.ng", "ACU2021001", "secret1", user.RoleStudent, true)
	token := getToken(t, app, student)

	generate := func(body []byte) []question.Question {
		req, rec := newAuthRequest(http.MethodPost, "/v1/questions/generate", token, body)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("generate failed! code = %v, body = %s", rec.Code, rec.Body.String())
		}
		var questions []question.Question
		if err := json.Unmarshal(rec.Body.Bytes(), &questions); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		return questions
	}

	t.Run("default count", func(t *testing.T) {
		questions := generate(marchallObj(t, echo.Map{"course_code": "CS301"}))
		assert.Len(t, questions, 2)
		for _, q := range questions {
			assert.NotEmpty(t, q.ID)
			assert.Equal(t, "CS301", q.CourseCode)
			assert.NotContains(t, q.Text, "{") // all placeholders filled
			assert.Contains(t, []string{"Easy", "Medium", "Hard"}, q.Difficulty)
			assert.GreaterOrEqual(t, q.Confidence, 80)
			assert.LessOrEqual(t, q.Confidence, 95)
			assert.NotEmpty(t, q.BasedOn)
		}
	})

	t.Run("explicit count and difficulty", func(t *testing.T) {
		questions := generate(marchallObj(t, echo.Map{"course_code": "CS401", "count": 5, "difficulty": "hard"}))
		assert.Len(t, questions, 5)
		for _, q := range questions {
			assert.Equal(t, "Hard", q.Difficulty)
		}
	})

	t.Run("count is capped", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/questions/generate", token,
			marchallObj(t, echo.Map{"course_code": "CS301", "count": 50}))
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("course code is required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/questions/generate", token, marchallObj(t, echo.Map{}))
		app.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"course_code": "this field is required"}),
		}, rec)
	})

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/questions/generate", marchallObj(t, echo.Map{"course_code": "CS301"}))
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func Test_questionApi_query(t *testing.T) {
	app := setup(t)

	student := testutil.CreateUser(t, app.usrRepo, "Ada Obi", "ada@acu.edu.ng", "ACU2021001", "secret1", user.RoleStudent, true)
	token := getToken(t, app, student)

	seed := func(course, difficulty string, count int) {
		body := marchallObj(t, echo.Map{"course_code": course, "difficulty": difficulty, "count": count})
		req, rec := newAuthRequest(http.MethodPost, "/v1/questions/generate", token, body)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("generate failed! code = %v, body = %s", rec.Code, rec.Body.String())
		}
	}
	seed("CS301", "easy", 3)
	seed("CS401", "hard", 2)

	query := func(path string) []question.Question {
		req, rec := newAuthRequest(http.MethodGet, path, token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("query failed! code = %v, body = %s", rec.Code, rec.Body.String())
		}
		var questions []question.Question
		if err := json.Unmarshal(rec.Body.Bytes(), &questions); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		return questions
	}

	assert.Len(t, query("/v1/questions"), 5)
	assert.Len(t, query("/v1/questions?course_code=CS301"), 3)
	// difficulty filter is case-insensitive
	hard := query("/v1/questions?difficulty=HARD")
	assert.Len(t, hard, 2)
	for _, q := range hard {
		assert.Equal(t, "Hard", q.Difficulty)
		assert.True(t, strings.EqualFold(q.CourseCode, "CS401"))
	}
}
