package service

import (
	"context"
	"fmt"
	"sort"

	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/domain/repository"
)

const (
	recentAttemptsLimit = 3
	topPerformersLimit  = 3
	focusAreasLimit     = 2
	studentProgressSize = 3
	recentQuizzesLimit  = 3
)

// Dashboard holds exactly one of the role specific views.
type Dashboard struct {
	Student *model.StudentDashboard
	Teacher *model.TeacherDashboard
}

type DashboardService struct {
	userRepo     repository.UserRepository
	quizRepo     repository.QuizRepository
	attemptRepo  repository.AttemptRepository
	categoryRepo repository.CategoryRepository
}

func NewDashboardService(
	userRepo repository.UserRepository,
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	categoryRepo repository.CategoryRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:     userRepo,
		quizRepo:     quizRepo,
		attemptRepo:  attemptRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *DashboardService) ForViewer(ctx context.Context, viewer *model.Viewer) (*Dashboard, error) {
	switch viewer.Profile.Role {
	case model.RoleStudent:
		d, err := s.Student(ctx, viewer.User.ID)
		if err != nil {
			return nil, err
		}
		return &Dashboard{Student: d}, nil
	case model.RoleTeacher:
		d, err := s.Teacher(ctx, viewer.User.ID)
		if err != nil {
			return nil, err
		}
		return &Dashboard{Teacher: d}, nil
	}
	return nil, fmt.Errorf("unknown role %q", viewer.Profile.Role)
}

// Student aggregates raw attempt scores. Rank is one plus the number of
// attempts system-wide scoring strictly above the student's average.
func (s *DashboardService) Student(ctx context.Context, userID int64) (*model.StudentDashboard, error) {
	records, err := s.attemptRepo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}
	totalStudents, err := s.userRepo.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	recent, err := s.attemptRepo.ListRecentByUser(ctx, userID, recentAttemptsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent attempts: %w", err)
	}

	var mine []model.AttemptRecord
	for _, r := range records {
		if r.UserID == userID {
			mine = append(mine, r)
		}
	}

	var avg average
	for _, r := range mine {
		avg.add(r.Score)
	}
	avgScore := avg.value()

	rank := 1
	if avgScore != 0 {
		for _, r := range records {
			if float64(r.Score) > avgScore {
				rank++
			}
		}
	}

	rankProgress := 100.0
	if totalStudents > 0 {
		rankProgress = min(100-float64(rank)/float64(totalStudents)*100, 100)
	}

	subjects := subjectAverages(mine)
	stats := model.StudentStats{
		QuizzesCompleted: len(mine),
		AverageScore:     model.Round2(avgScore),
		QuizProgress:     min(len(mine)*10, 100),
		ClassRank:        rank,
		RankProgress:     model.Round2(rankProgress),
		WeakestSubject:   model.NoSubject,
	}
	if len(subjects) > 0 {
		stats.WeakestSubject = subjects[0].CategoryName
		stats.WeakestScore = subjects[0].AvgScore
	}

	return &model.StudentDashboard{
		Stats:          stats,
		RecentAttempts: recent,
		TopPerformers:  topPerformers(records, topPerformersLimit),
		FocusAreas:     subjects[:min(len(subjects), focusAreasLimit)],
	}, nil
}

func (s *DashboardService) Teacher(ctx context.Context, userID int64) (*model.TeacherDashboard, error) {
	records, err := s.attemptRepo.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}
	totalStudents, err := s.userRepo.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	created, err := s.quizRepo.CountByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count quizzes: %w", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	var avg average
	var scored []model.AttemptRecord
	for _, r := range records {
		avg.add(r.Score)
		if r.Score > 0 {
			scored = append(scored, r)
		}
	}

	stats := model.TeacherStats{
		TotalStudents:  totalStudents,
		AvgClassScore:  model.Round2(avg.value()),
		QuizzesCreated: created,
		WeakestSubject: model.NoSubject,
	}
	if subjects := subjectAverages(scored); len(subjects) > 0 {
		stats.WeakestSubject = subjects[0].CategoryName
	}

	return &model.TeacherDashboard{
		Stats:           stats,
		StudentProgress: studentProgress(records, studentProgressSize),
		RecentQuizzes:   recentQuizzes(records, recentQuizzesLimit),
		Categories:      categories,
	}, nil
}

type average struct {
	sum int
	n   int
}

func (a *average) add(score int) {
	a.sum += score
	a.n++
}

func (a average) value() float64 {
	if a.n == 0 {
		return 0
	}
	return float64(a.sum) / float64(a.n)
}

// subjectAverages groups records by category, lowest average first.
func subjectAverages(records []model.AttemptRecord) []model.SubjectScore {
	acc := map[int64]*average{}
	var out []model.SubjectScore
	for _, r := range records {
		if _, ok := acc[r.CategoryID]; !ok {
			acc[r.CategoryID] = &average{}
			out = append(out, model.SubjectScore{CategoryID: r.CategoryID, CategoryName: r.CategoryName, CategoryIcon: r.CategoryIcon})
		}
		acc[r.CategoryID].add(r.Score)
	}
	for i := range out {
		out[i].AvgScore = model.Round2(acc[out[i].CategoryID].value())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgScore < out[j].AvgScore })
	return out
}

func topPerformers(records []model.AttemptRecord, limit int) []model.PerformerScore {
	acc := map[int64]*average{}
	var out []model.PerformerScore
	for _, r := range records {
		if _, ok := acc[r.UserID]; !ok {
			acc[r.UserID] = &average{}
			out = append(out, model.PerformerScore{UserID: r.UserID, Username: r.Username})
		}
		acc[r.UserID].add(r.Score)
	}
	for i := range out {
		out[i].AvgScore = model.Round2(acc[out[i].UserID].value())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgScore > out[j].AvgScore })
	return out[:min(len(out), limit)]
}

func studentProgress(records []model.AttemptRecord, limit int) []model.StudentQuizScore {
	type groupKey struct {
		userID int64
		title  string
	}
	acc := map[groupKey]*average{}
	var out []model.StudentQuizScore
	for _, r := range records {
		k := groupKey{r.UserID, r.QuizTitle}
		if _, ok := acc[k]; !ok {
			acc[k] = &average{}
			out = append(out, model.StudentQuizScore{UserID: r.UserID, Username: r.Username, QuizTitle: r.QuizTitle})
		}
		acc[k].add(r.Score)
	}
	for i := range out {
		out[i].AvgScore = model.Round2(acc[groupKey{out[i].UserID, out[i].QuizTitle}].value())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgScore > out[j].AvgScore })
	return out[:min(len(out), limit)]
}

// recentQuizzes averages attempts per quiz, most recently created quiz first.
func recentQuizzes(records []model.AttemptRecord, limit int) []model.QuizScore {
	acc := map[int64]*average{}
	created := map[int64]model.AttemptRecord{}
	var out []model.QuizScore
	for _, r := range records {
		if _, ok := acc[r.QuizID]; !ok {
			acc[r.QuizID] = &average{}
			created[r.QuizID] = r
			out = append(out, model.QuizScore{QuizID: r.QuizID, QuizTitle: r.QuizTitle})
		}
		acc[r.QuizID].add(r.Score)
	}
	for i := range out {
		out[i].AvgScore = model.Round2(acc[out[i].QuizID].value())
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := created[out[i].QuizID].QuizCreatedAt, created[out[j].QuizID].QuizCreatedAt
		if a.Equal(b) {
			return out[i].QuizID > out[j].QuizID
		}
		return a.After(b)
	})
	return out[:min(len(out), limit)]
}
