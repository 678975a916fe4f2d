package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lumilearn/quiz-runner/internal/models"
)

// Validator combines struct-tag validation with the question content checks
// used when seeding or importing lesson content.
type Validator struct {
	structValidator  *validator.Validate
	contentValidator *ContentValidator
}

// New creates the centralized validator instance.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:  structValidator,
		contentValidator: NewContentValidator(),
	}
}

// ValidateStruct validates struct tags only.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Content returns the question content validator.
func (v *Validator) Content() *ContentValidator {
	return v.contentValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_kind", validateQuestionKind)
	validate.RegisterValidation("restart_mode", validateRestartMode)

	// Report json field names in error messages, not Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionKind(fl validator.FieldLevel) bool {
	return models.QuestionKind(fl.Field().String()).Valid()
}

func validateRestartMode(fl validator.FieldLevel) bool {
	return models.RestartMode(fl.Field().String()).Valid()
}
