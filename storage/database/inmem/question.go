package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/acuhub/portal/core/question"
)

type QuestionRepository struct {
	mu        sync.RWMutex
	questions map[string]question.Question
}

var _ question.Repository = (*QuestionRepository)(nil)

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{questions: make(map[string]question.Question)}
}

func (repo *QuestionRepository) CreateQuestion(ctx context.Context, q question.Question) (question.Question, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	q.ID = uuid.New().String()
	repo.questions[q.ID] = q
	return q, nil
}

func (repo *QuestionRepository) QueryQuestions(ctx context.Context, filter *question.QueryFilter) ([]question.Question, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	questions := make([]question.Question, 0, len(repo.questions))
	for _, q := range repo.questions {
		if filter != nil {
			if filter.CourseCode != "" && q.CourseCode != filter.CourseCode {
				continue
			}
			if filter.Difficulty != "" && q.Difficulty != filter.Difficulty {
				continue
			}
		}
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].GeneratedAt.After(questions[j].GeneratedAt)
	})
	return questions, nil
}
