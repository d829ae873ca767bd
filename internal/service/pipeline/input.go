package pipeline

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

// ProcessInput holds the parameters for processing one sentence.
type ProcessInput struct {
	UserID   int64
	Sentence string
}

// Validate checks all fields and collects all errors.
func (i ProcessInput) Validate(maxLength int) error {
	var errs []domain.FieldError

	if i.UserID <= 0 {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "must be a positive integer"})
	}

	sentence := strings.TrimSpace(i.Sentence)
	if sentence == "" {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: "required"})
	}
	if maxLength > 0 && utf8.RuneCountInString(sentence) > maxLength {
		errs = append(errs, domain.FieldError{Field: "sentence", Message: fmt.Sprintf("max %d characters", maxLength)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
