// Package forms holds the POST bodies of the register and login views and
// their validation. Field limits mirror the users table: username and
// password up to 150 characters, role up to 50.
package forms

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterForm struct {
	Username string `validate:"required,max=150"`
	Password string `validate:"required,max=150"`
	Role     string `validate:"required,max=50"`
}

type LoginForm struct {
	Username string `validate:"required,max=150"`
	Password string `validate:"required,max=150"`
}

// ParseRegister trims username and role so whitespace-only input fails the
// required rule instead of slipping past it; passwords are taken as-is.
func ParseRegister(r *http.Request) RegisterForm {
	return RegisterForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		Role:     strings.TrimSpace(r.PostFormValue("role")),
	}
}

func ParseLogin(r *http.Request) LoginForm {
	return LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
}

// Validate returns a human-readable message suitable for a flash, or "".
func (f RegisterForm) Validate() string { return firstMessage(validate.Struct(f)) }

// Validate returns a human-readable message suitable for a flash, or "".
func (f LoginForm) Validate() string { return firstMessage(validate.Struct(f)) }

func firstMessage(err error) string {
	if err == nil {
		return ""
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid form submission!"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters!", fe.Field(), fe.Param())
	default:
		return "Invalid form submission!"
	}
}
