// Package inputval validates decoded request bodies and turns validator
// failures into short, user-facing messages.
//
// Struct fields use `validate` tags for rules and an optional `label` tag for
// the name shown in messages:
//
//	type statusInput struct {
//		Status string `json:"status" validate:"required,jobstatus" label:"Status"`
//	}
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/opsdash/internal/domain/models"
	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the validation failures of a struct.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// First returns the first message, or "" if there are none.
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, fe := range r.Errors {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})
		_ = v.RegisterValidation("jobstatus", func(fl validator.FieldLevel) bool {
			return IsValidJobStatus(fl.Field().String())
		})
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, ok := models.ParseRole(fl.Field().String())
			return ok
		})
		validate = v
	})
	return validate
}

// Validate checks s against its `validate` tags.
func Validate(s any) *Result {
	res := &Result{}
	err := instance().Struct(s)
	if err == nil {
		return res
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.StructField(),
			Message: message(fe),
		})
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "jobstatus":
		return fmt.Sprintf("%s must be a known job status.", label)
	case "role":
		return fmt.Sprintf("%s must be a known dashboard.", label)
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

// IsValidJobStatus reports whether s names any job status, regardless of
// whether a particular dashboard offers it.
func IsValidJobStatus(s string) bool {
	switch models.JobStatus(s) {
	case models.JobPending, models.JobEnRoute, models.JobInProgress, models.JobOnHold, models.JobComplete:
		return true
	}
	return false
}
