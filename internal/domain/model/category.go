package model

const DefaultCategoryIcon = "📚"

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// DefaultCategories are seeded at startup when missing (matched by name).
var DefaultCategories = []Category{
	{Name: "Math", Icon: "➕", Description: "Mathematics quizzes"},
	{Name: "Science", Icon: "🔬", Description: "Science quizzes"},
	{Name: "History", Icon: "📜", Description: "History quizzes"},
	{Name: "English", Icon: "📜", Description: "English quizzes"},
	{Name: "Nepali", Icon: "📜", Description: "Nepali quizzes"},
}
