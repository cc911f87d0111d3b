package job

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/boardwalk-hq/boardwalk/pkg/errx"
)

// FilterMaxLen caps sanitized listing filters, in runes.
const FilterMaxLen = 100

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("jobtype", func(fl validator.FieldLevel) bool {
		_, ok := ParseJobType(fl.Field().String())
		return ok
	})

	return v
}

// ValidateCreateJob normalizes the job type spelling and checks the
// request against the creation schema. Violations come back as a single
// ValidationFailed error carrying a field-to-messages map.
func ValidateCreateJob(req *CreateJobRequest) error {
	if t, ok := ParseJobType(req.JobType.String()); ok {
		req.JobType = t
	}
	if err := validate.Struct(req); err != nil {
		return schemaError(err)
	}
	return nil
}

// ValidateUpdateJob checks the patch against the update schema. All
// fields are optional; present fields obey the same bounds as creation.
func ValidateUpdateJob(req *UpdateJobRequest) error {
	if req.JobType != nil {
		if t, ok := ParseJobType(req.JobType.String()); ok {
			req.JobType = &t
		}
	}
	if err := validate.Struct(req); err != nil {
		return schemaError(err)
	}
	return nil
}

func schemaError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errx.Wrap(err, "schema validation failed", errx.TypeValidation)
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return ErrValidationFailed().WithDetail("fields", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "jobtype":
		return fmt.Sprintf("must be one of %v", JobTypes())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// SanitizeFilter strips every rune that is not a letter, digit,
// whitespace, hyphen, period or comma, then truncates the result to
// FilterMaxLen runes. Applied to free-text listing filters before they
// reach the repository.
func SanitizeFilter(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			return r
		case r == '-', r == '.', r == ',':
			return r
		}
		return -1
	}, raw)

	runes := []rune(cleaned)
	if len(runes) > FilterMaxLen {
		runes = runes[:FilterMaxLen]
	}
	return string(runes)
}
