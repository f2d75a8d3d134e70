package form

import (
	"strings"

	"smart_edu_quiz/internal/domain/model"
)

type LoginForm struct {
	Username string `form:"username" validate:"required,max=150"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role" validate:"required,role"`
}

func (f *LoginForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	return Check(f)
}

const maxPasswordBytes = 72

type RegisterForm struct {
	Username        string `form:"username" validate:"required,max=150,username"`
	Email           string `form:"email" validate:"required,email,max=254"`
	FullName        string `form:"full_name" validate:"required,notblank,max=150"`
	Password        string `form:"password" validate:"required,min=8,max=72,pwbytes"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `form:"role" validate:"required,role"`
	ClassSection    string `form:"class_section" validate:"max=50"`
	Department      string `form:"department" validate:"max=100"`
}

func (f *RegisterForm) Validate() error {
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.FullName = strings.TrimSpace(f.FullName)
	f.ClassSection = strings.TrimSpace(f.ClassSection)
	f.Department = strings.TrimSpace(f.Department)
	return Check(f)
}

// Profile builds the profile for the chosen role, keeping only the field
// that belongs to it.
func (f *RegisterForm) Profile() *model.Profile {
	p := &model.Profile{Role: model.Role(f.Role)}
	switch p.Role {
	case model.RoleStudent:
		section := f.ClassSection
		p.ClassSection = &section
	case model.RoleTeacher:
		dept := f.Department
		p.Department = &dept
	}
	return p
}

type CategoryForm struct {
	Name        string `form:"name" validate:"required,notblank,max=100"`
	Icon        string `form:"icon" validate:"max=50"`
	Description string `form:"description" validate:"required,notblank"`
}

func (f *CategoryForm) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Icon = strings.TrimSpace(f.Icon)
	f.Description = strings.TrimSpace(f.Description)
	if f.Icon == "" {
		f.Icon = model.DefaultCategoryIcon
	}
	return Check(f)
}

type QuizForm struct {
	Title      string `form:"title" validate:"required,notblank,max=200"`
	CategoryID int64  `form:"category" validate:"required,gt=0"`
	Questions  string `form:"questions" validate:"required,notblank"`
}

func (f *QuizForm) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	return Check(f)
}
