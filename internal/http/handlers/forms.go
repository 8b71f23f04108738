package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// report field errors under the form field name instead of the Go field name
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	}
}

type taskForm struct {
	Title       string `form:"title" binding:"required,max=200"`
	Description string `form:"description"`
	Complete    string `form:"complete"`
}

// input normalizes the submitted values the way the form layer would: surrounding
// whitespace is stripped and any checked checkbox value means complete.
func (f taskForm) input() service.TaskInput {
	return service.TaskInput{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Complete:    isChecked(f.Complete),
	}
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	Username  string `form:"username"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

// fieldErrors turns binding errors into per-field messages for the templates.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form submission."
		return out
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, ok := out[field]; ok {
			continue
		}
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "max":
			out[field] = fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
		default:
			out[field] = "Enter a valid value."
		}
	}
	return out
}
