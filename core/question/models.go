package question

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/acuhub/portal/core"
)

// Difficulties
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

var difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// canonicalDifficulty maps case-insensitive input to the stored form.
func canonicalDifficulty(s string) string {
	for _, d := range difficulties {
		if strings.EqualFold(s, d) {
			return d
		}
	}
	return ""
}

type Question struct {
	ID          string    `json:"id"`
	CourseCode  string    `json:"course_code"`
	Text        string    `json:"question"`
	Difficulty  string    `json:"difficulty"`
	Confidence  int       `json:"confidence"` // percent, 80-95
	BasedOn     string    `json:"based_on"`
	GeneratedAt time.Time `json:"generated_at"` // UTC
}

// GenerateRequest asks for a batch of practice questions.
type GenerateRequest struct {
	CourseCode string `json:"course_code" validate:"required,alphanum_"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=10"`
	// Difficulty is optional; unknown values fall back to a random pick.
	Difficulty string `json:"difficulty"`
}

func (gr *GenerateRequest) Validate(validate *validator.Validate) error {
	gr.CourseCode = core.CleanString(gr.CourseCode)
	gr.Difficulty = canonicalDifficulty(core.CleanString(gr.Difficulty))
	if gr.Count == 0 {
		gr.Count = 2
	}
	return validate.Struct(gr)
}

type QueryFilter struct {
	CourseCode string `query:"course_code"`
	Difficulty string `query:"difficulty"`
}

func (qf *QueryFilter) Clean() {
	qf.CourseCode = core.CleanString(qf.CourseCode)
	qf.Difficulty = canonicalDifficulty(core.CleanString(qf.Difficulty))
}
