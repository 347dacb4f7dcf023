package question

import (
	"math/rand"
	"strings"
	"time"
)

// Generator produces practice questions for a course.
// Real model-backed generation is out of scope; TemplateGenerator simulates it
// by filling randomized templates and stays swappable behind this interface.
type Generator interface {
	Generate(courseCode, difficulty string, count int) []Question
}

var nowFunc = time.Now // mockable

var questionTemplates = map[string][]string{
	"CS301": {
		"Implement a {difficulty} algorithm to solve the {problem} problem and analyze its time complexity.",
		"Compare and contrast {dataStructure1} and {dataStructure2} with respect to their operations and efficiency.",
		"Explain how {algorithm} works and provide a step-by-step execution trace for the input {input}.",
		"Design an efficient algorithm to {task} and prove its correctness.",
	},
	"CS401": {
		"Discuss the advantages and disadvantages of {methodology1} compared to {methodology2} in software development.",
		"Explain how the {pattern} design pattern can be applied to solve {problem}.",
		"Describe the key components of {process} and how they contribute to software quality.",
		"Analyze the requirements for {system} and design an appropriate architecture.",
	},
	"CS302": {
		"Design a normalized database schema for {system} and explain your design choices.",
		"Write SQL queries to {task} for the given database schema.",
		"Compare {dbType1} and {dbType2} databases in terms of {criteria}.",
		"Explain how {concept} is implemented in modern database systems.",
	},
}

// defaultTemplateCourse is used for courses without a dedicated template set.
const defaultTemplateCourse = "CS301"

var placeholderVocab = map[string][]string{
	"{problem}":        {"sorting", "searching", "optimization", "path finding"},
	"{dataStructure1}": {"binary trees", "AVL trees", "hash tables", "linked lists", "heaps"},
	"{dataStructure2}": {"binary trees", "AVL trees", "hash tables", "linked lists", "heaps"},
	"{algorithm}":      {"quicksort", "merge sort", "Dijkstra's algorithm", "dynamic programming"},
	"{input}":          {"[5, 2, 9, 1, 7, 6, 3]"},
	"{methodology1}":   {"Agile", "Waterfall", "DevOps", "Scrum", "Kanban"},
	"{methodology2}":   {"Agile", "Waterfall", "DevOps", "Scrum", "Kanban"},
	"{pattern}":        {"Singleton", "Factory", "Observer", "Strategy", "MVC"},
	"{process}":        {"testing", "requirements gathering", "design", "implementation"},
	"{system}":         {"e-commerce", "university management", "healthcare", "banking"},
	"{task}":           {"retrieve user data", "calculate statistics", "join related tables"},
	"{dbType1}":        {"relational", "NoSQL", "document-oriented", "graph", "key-value"},
	"{dbType2}":        {"relational", "NoSQL", "document-oriented", "graph", "key-value"},
	"{criteria}":       {"performance", "scalability", "data integrity", "flexibility"},
	"{concept}":        {"indexing", "transactions", "normalization", "sharding"},
}

var basedOnSources = []string{
	"Past exams", "Lecture patterns", "Textbook emphasis", "Assignment trends",
}

type TemplateGenerator struct {
	rnd *rand.Rand
}

var _ Generator = (*TemplateGenerator)(nil)

func NewTemplateGenerator() *TemplateGenerator {
	return NewTemplateGeneratorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewTemplateGeneratorWithSource allows a deterministic source in tests.
func NewTemplateGeneratorWithSource(src rand.Source) *TemplateGenerator {
	return &TemplateGenerator{rnd: rand.New(src)}
}

func (g *TemplateGenerator) Generate(courseCode, difficulty string, count int) []Question {
	templates, ok := questionTemplates[courseCode]
	if !ok {
		templates = questionTemplates[defaultTemplateCourse]
	}

	questions := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		diff := difficulty
		if diff == "" {
			diff = g.pick(difficulties)
		}

		text := templates[g.rnd.Intn(len(templates))]
		text = strings.Replace(text, "{difficulty}", strings.ToLower(diff), 1)
		for placeholder, vocab := range placeholderVocab {
			text = strings.Replace(text, placeholder, g.pick(vocab), 1)
		}

		questions = append(questions, Question{
			CourseCode:  courseCode,
			Text:        text,
			Difficulty:  diff,
			Confidence:  80 + g.rnd.Intn(16), // 80-95%
			BasedOn:     g.pick(basedOnSources),
			GeneratedAt: nowFunc().UTC(),
		})
	}
	return questions
}

func (g *TemplateGenerator) pick(vals []string) string {
	return vals[g.rnd.Intn(len(vals))]
}
