package question

import (
	"context"

	"github.com/pkg/errors"
)

type (
	Repository interface {
		CreateQuestion(ctx context.Context, q Question) (Question, error)
		// QueryQuestions applies AND operation on available QueryFilter fields,
		// most recently generated first.
		QueryQuestions(ctx context.Context, filter *QueryFilter) ([]Question, error)
	}

	Service struct {
		repo Repository
		gen  Generator
	}
)

func NewService(repo Repository, gen Generator) *Service {
	return &Service{repo: repo, gen: gen}
}

// Generate produces a batch of questions and persists them.
func (svc *Service) Generate(ctx context.Context, req GenerateRequest) ([]Question, error) {
	generated := svc.gen.Generate(req.CourseCode, req.Difficulty, req.Count)

	questions := make([]Question, 0, len(generated))
	for _, q := range generated {
		q, err := svc.repo.CreateQuestion(ctx, q)
		if err != nil {
			return nil, errors.Wrap(err, "persisting question")
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Question, error) {
	return svc.repo.QueryQuestions(ctx, filter)
}
