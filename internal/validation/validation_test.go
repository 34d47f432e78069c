package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	UserType string `form:"userType" validate:"oneof=customer labour"`
	Skill    string `form:"profession" validate:"required_if=UserType labour"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, Struct(signup{Name: "A", Email: "a@b.co", Password: "secret", UserType: "customer"}))
	})

	t.Run("reports form field names", func(t *testing.T) {
		errs := Struct(signup{Email: "nope", Password: "123", UserType: "labour"})

		assert.Equal(t, []string{"name is required"}, errs["name"])
		assert.Equal(t, []string{"Invalid email format"}, errs["email"])
		assert.Equal(t, []string{"password must be at least 6 characters"}, errs["password"])
		assert.Equal(t, []string{"profession is required"}, errs["profession"])
		assert.NotContains(t, errs, "userType")
	})

	t.Run("oneof", func(t *testing.T) {
		errs := Struct(signup{Name: "A", Email: "a@b.co", Password: "secret", UserType: "admin"})
		assert.Equal(t, []string{"userType must be one of: customer labour"}, errs["userType"])
	})
}

func TestVar(t *testing.T) {
	assert.True(t, Var("a@b.co", "email"))
	for _, bad := range []string{"a@", "@", "foo bar@@"} {
		assert.False(t, Var(bad, "email"), bad)
	}
	assert.True(t, Var("12", "numeric"))
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	assert.True(t, errs.Empty())

	errs.Add("email", "taken")
	errs.Merge(FieldErrors{"email": {"bad"}, "age": {"must be a number"}})

	assert.False(t, errs.Empty())
	assert.Equal(t, []string{"taken", "bad"}, errs["email"])
	assert.Equal(t, []string{"must be a number"}, errs["age"])
}
