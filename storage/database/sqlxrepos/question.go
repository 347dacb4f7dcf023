package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/acuhub/portal/core/question"
)

type QuestionRepository struct {
	db *sqlx.DB
}

var _ question.Repository = (*QuestionRepository)(nil)

func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

type questionRow struct {
	ID          string    `db:"id"`
	CourseCode  string    `db:"course_code"`
	Question    string    `db:"question"`
	Difficulty  string    `db:"difficulty"`
	Confidence  int       `db:"confidence"`
	BasedOn     string    `db:"based_on"`
	GeneratedAt time.Time `db:"generated_at"`
}

func (row questionRow) question() question.Question {
	return question.Question{
		ID:          row.ID,
		CourseCode:  row.CourseCode,
		Text:        row.Question,
		Difficulty:  row.Difficulty,
		Confidence:  row.Confidence,
		BasedOn:     row.BasedOn,
		GeneratedAt: row.GeneratedAt.UTC(),
	}
}

func (repo *QuestionRepository) CreateQuestion(ctx context.Context, q question.Question) (question.Question, error) {
	q.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO practice_question (id, course_code, question, difficulty, confidence, based_on, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		q.ID, q.CourseCode, q.Text, q.Difficulty, q.Confidence, q.BasedOn, q.GeneratedAt,
	)
	if err != nil {
		return question.Question{}, errors.Wrap(err, "inserting question")
	}
	return q, nil
}

func (repo *QuestionRepository) QueryQuestions(ctx context.Context, filter *question.QueryFilter) ([]question.Question, error) {
	query := `SELECT * FROM practice_question`
	var args []interface{}

	if filter != nil {
		var where []string
		if filter.CourseCode != "" {
			args = append(args, filter.CourseCode)
			where = append(where, "course_code = "+placeholder(len(args)))
		}
		if filter.Difficulty != "" {
			args = append(args, filter.Difficulty)
			where = append(where, "difficulty = "+placeholder(len(args)))
		}
		if len(where) > 0 {
			query += " WHERE " + strings.Join(where, " AND ")
		}
	}
	query += ` ORDER BY generated_at DESC`

	var rows []questionRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying questions")
	}
	questions := make([]question.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, row.question())
	}
	return questions, nil
}
