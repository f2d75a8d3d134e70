package form

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart_edu_quiz/internal/common"
	"smart_edu_quiz/internal/domain/model"
)

func validationMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *common.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func validRegisterForm() RegisterForm {
	return RegisterForm{
		Username:        "sita.rai",
		Email:           " Sita@Example.com ",
		FullName:        "Sita Rai",
		Password:        "s3cretpass",
		ConfirmPassword: "s3cretpass",
		Role:            "student",
		ClassSection:    "10A",
	}
}

func TestRegisterFormValid(t *testing.T) {
	f := validRegisterForm()
	require.NoError(t, f.Validate())
	assert.Equal(t, "sita@example.com", f.Email)

	p := f.Profile()
	assert.Equal(t, model.RoleStudent, p.Role)
	require.NotNil(t, p.ClassSection)
	assert.Equal(t, "10A", *p.ClassSection)
	assert.Nil(t, p.Department)
}

func TestRegisterFormRoleField(t *testing.T) {
	f := validRegisterForm()
	f.Role = "teacher"
	f.Department = "  "

	msgs := validationMessages(t, f.Validate())
	assert.Equal(t, "department is required for this role", msgs["department"])
}

func TestRegisterFormErrors(t *testing.T) {
	f := validRegisterForm()
	f.Username = "bad name!"
	f.ConfirmPassword = "different"
	f.Role = "admin"
	f.Email = ""

	msgs := validationMessages(t, f.Validate())
	assert.Contains(t, msgs["username"], "may contain only")
	assert.Equal(t, "passwords do not match", msgs["confirm_password"])
	assert.Equal(t, "role must be student or teacher", msgs["role"])
	assert.Equal(t, "email is required", msgs["email"])
}

func TestRegisterFormPasswordLength(t *testing.T) {
	f := validRegisterForm()
	f.Password = strings.Repeat("a", 73)
	f.ConfirmPassword = f.Password
	msgs := validationMessages(t, f.Validate())
	assert.Contains(t, msgs, "password")

	// 40 runes but 80 bytes.
	f.Password = strings.Repeat("é", 40)
	f.ConfirmPassword = f.Password
	msgs = validationMessages(t, f.Validate())
	assert.Equal(t, "password must be at most 72 bytes", msgs["password"])

	f.Password = strings.Repeat("a", 72)
	f.ConfirmPassword = f.Password
	assert.NoError(t, f.Validate())
}

func TestLoginForm(t *testing.T) {
	f := LoginForm{Username: "  sita ", Password: "x", Role: "teacher"}
	require.NoError(t, f.Validate())
	assert.Equal(t, "sita", f.Username)

	msgs := validationMessages(t, (&LoginForm{}).Validate())
	assert.Equal(t, "username is required", msgs["username"])
	assert.Equal(t, "password is required", msgs["password"])
}

func TestCategoryFormDefaultsIcon(t *testing.T) {
	f := CategoryForm{Name: "Geography", Description: "Maps"}
	require.NoError(t, f.Validate())
	assert.Equal(t, model.DefaultCategoryIcon, f.Icon)

	msgs := validationMessages(t, (&CategoryForm{Name: "   ", Description: "x"}).Validate())
	assert.Contains(t, msgs, "name")
}

func TestQuizForm(t *testing.T) {
	msgs := validationMessages(t, (&QuizForm{Title: "T", Questions: "\n  \n"}).Validate())
	assert.Contains(t, msgs, "category")
	assert.Equal(t, "questions cannot be blank", msgs["questions"])
	assert.True(t, errors.Is((&QuizForm{}).Validate(), common.ErrValidation))
}
