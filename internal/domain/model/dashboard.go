package model

// SubjectScore is the average score of attempts within one category.
type SubjectScore struct {
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	CategoryIcon string  `json:"category_icon"`
	AvgScore     float64 `json:"avg_score"`
}

type PerformerScore struct {
	UserID   int64   `json:"user_id"`
	Username string  `json:"username"`
	AvgScore float64 `json:"avg_score"`
}

type StudentQuizScore struct {
	UserID    int64   `json:"user_id"`
	Username  string  `json:"username"`
	QuizTitle string  `json:"quiz_title"`
	AvgScore  float64 `json:"avg_score"`
}

type QuizScore struct {
	QuizID    int64   `json:"quiz_id"`
	QuizTitle string  `json:"quiz_title"`
	AvgScore  float64 `json:"avg_score"`
}

type StudentStats struct {
	QuizzesCompleted int     `json:"quizzes_completed"`
	AverageScore     float64 `json:"average_score"`
	QuizProgress     int     `json:"quiz_progress"`
	ClassRank        int     `json:"class_rank"`
	RankProgress     float64 `json:"rank_progress"`
	WeakestSubject   string  `json:"weakest_subject"`
	WeakestScore     float64 `json:"weakest_score"`
}

type StudentDashboard struct {
	Stats          StudentStats     `json:"stats"`
	RecentAttempts []AttemptRecord  `json:"recent_attempts"`
	TopPerformers  []PerformerScore `json:"top_performers"`
	FocusAreas     []SubjectScore   `json:"focus_areas"`
}

type TeacherStats struct {
	TotalStudents  int     `json:"total_students"`
	AvgClassScore  float64 `json:"avg_class_score"`
	QuizzesCreated int     `json:"quizzes_created"`
	WeakestSubject string  `json:"weakest_subject"`
}

type TeacherDashboard struct {
	Stats           TeacherStats       `json:"stats"`
	StudentProgress []StudentQuizScore `json:"student_progress"`
	RecentQuizzes   []QuizScore        `json:"recent_quizzes"`
	Categories      []Category         `json:"categories"`
}

// NoSubject is shown when no weakest subject can be computed.
const NoSubject = "N/A"
