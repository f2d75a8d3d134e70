package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"

	"smart_edu_quiz/internal/app/form"
	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
	"smart_edu_quiz/internal/platform/logger"
)

const questionFields = 6

type QuizService struct {
	quizRepo     repository.QuizRepository
	categoryRepo repository.CategoryRepository
}

func NewQuizService(quizRepo repository.QuizRepository, categoryRepo repository.CategoryRepository) *QuizService {
	return &QuizService{quizRepo: quizRepo, categoryRepo: categoryRepo}
}

// ParseQuestionBlock reads one question per line in the form
// question|option1|option2|option3|option4|correct. Fields are trimmed and
// blank lines ignored. Every other line without exactly six fields, or with an
// option or answer longer than model.MaxAnswerLen, is skipped and reported as
// a warning.
func ParseQuestionBlock(text string) ([]model.Question, []string) {
	questions := []model.Question{}
	var warnings []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != questionFields {
			warnings = append(warnings, fmt.Sprintf("Invalid question format: %s. Skipping.", strings.TrimSpace(line)))
			continue
		}
		tooLong := false
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
			if i > 0 && utf8.RuneCountInString(parts[i]) > model.MaxAnswerLen {
				tooLong = true
			}
		}
		if tooLong {
			warnings = append(warnings, fmt.Sprintf("Invalid question format: %s. Skipping.", strings.TrimSpace(line)))
			continue
		}
		questions = append(questions, model.Question{
			Text:          parts[0],
			Option1:       parts[1],
			Option2:       parts[2],
			Option3:       parts[3],
			Option4:       parts[4],
			CorrectAnswer: parts[5],
		})
	}
	return questions, warnings
}

type CreateQuizResult struct {
	Quiz      *model.Quiz
	Questions int
	Warnings  []string
}

// CreateQuiz stores a quiz with every valid line of the question block. The
// result carries the parse warnings even when err is ErrEmptyQuiz.
func (s *QuizService) CreateQuiz(ctx context.Context, viewer *model.Viewer, f form.QuizForm) (*CreateQuizResult, error) {
	if !viewer.IsTeacher() {
		return nil, fmt.Errorf("only teachers can create quizzes: %w", common.ErrForbidden)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(ctx, f.CategoryID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewValidationError(common.FieldError{Field: "category", Message: "Selected category does not exist."})
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	questions, warnings := ParseQuestionBlock(f.Questions)
	res := &CreateQuizResult{Warnings: warnings}
	for _, w := range warnings {
		logger.Default.Warn(w, viewer.User)
	}
	if len(questions) == 0 {
		return res, common.ErrEmptyQuiz
	}

	quiz := &model.Quiz{
		Title:       f.Title,
		Slug:        slug.Make(f.Title),
		CategoryID:  f.CategoryID,
		CreatedByID: viewer.User.ID,
	}
	if err := s.quizRepo.CreateWithQuestions(ctx, quiz, questions); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	res.Quiz = quiz
	res.Questions = len(questions)
	logger.Default.Info("quiz created", quiz.Title, len(questions), viewer.User)
	return res, nil
}

// ListByCategory returns the category and its quizzes, or ErrNotFound.
func (s *QuizService) ListByCategory(ctx context.Context, categoryID int64) (*model.Category, []model.Quiz, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	quizzes, err := s.quizRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return category, quizzes, nil
}
