// Package view renders the HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"smart_edu_quiz/internal/domain/model"
	"smart_edu_quiz/internal/platform/session"
)

//go:embed templates/*.html
var files embed.FS

const (
	PageIndex            = "index.html"
	PageLogin            = "login.html"
	PageRegister         = "register.html"
	PageStudentDashboard = "student_dashboard.html"
	PageTeacherDashboard = "teacher_dashboard.html"
	PageCreateQuiz       = "create_quiz.html"
	PageCreateCategory   = "create_category.html"
	PageQuizList         = "quiz_list.html"
	PageQuizListCategory = "quiz_list_category.html"
	PageQuiz             = "quiz.html"
	PageQuizResults      = "quiz_results.html"
	PageBookmarks        = "bookmarked_questions.html"
	PageError            = "error.html"
)

var pages = []string{
	PageIndex, PageLogin, PageRegister, PageStudentDashboard, PageTeacherDashboard,
	PageCreateQuiz, PageCreateCategory, PageQuizList, PageQuizListCategory,
	PageQuiz, PageQuizResults, PageBookmarks, PageError,
}

// PageData is passed to every page. Data holds the page specific values.
type PageData struct {
	Title    string
	Viewer   *model.Viewer
	Messages []session.Message
	Errors   []string
	Form     interface{}
	Data     interface{}
}

// ErrorData is the Data of PageError.
type ErrorData struct {
	Status  int
	Message string
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"pct": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"bookmarked": func(ids []int64, id int64) bool {
		for _, b := range ids {
			if b == id {
				return true
			}
		}
		return false
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template error never leaves
// a half written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
