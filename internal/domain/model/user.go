package model

import (
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleTeacher:
		return "Teacher"
	}
	return string(r)
}

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-"` // Not exposed
	CreatedAt      time.Time `json:"created_at"`
}

// Profile is 1:1 with User. ClassSection is only set for students and
// Department only for teachers.
type Profile struct {
	UserID       int64   `json:"user_id"`
	Role         Role    `json:"role"`
	ClassSection *string `json:"class_section,omitempty"`
	Department   *string `json:"department,omitempty"`
}

// Viewer is the authenticated user of a request, resolved once.
type Viewer struct {
	User    User
	Profile Profile
}

func (v *Viewer) IsStudent() bool { return v != nil && v.Profile.Role == RoleStudent }
func (v *Viewer) IsTeacher() bool { return v != nil && v.Profile.Role == RoleTeacher }
