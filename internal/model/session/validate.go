package session

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength is the upper bound on a trimmed session name, in characters.
const MaxNameLength = 300

// Client-facing validation messages.
const (
	MessageBlankName   = "Please provide a valid session name."
	MessageNameTooLong = "Please provide a name no longer than 300 characters."
)

// ErrInvalid is matched by every ValidationError via errors.Is.
var ErrInvalid = errors.New("invalid session")

// Kind classifies a validation failure.
type Kind string

const (
	KindMissingField Kind = "missing-field"
	KindBlankName    Kind = "blank-name"
	KindNameTooLong  Kind = "name-too-long"
)

// ValidationError reports why a candidate was not accepted.
type ValidationError struct {
	Kind  Kind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case KindBlankName:
		return "invalid name"
	case KindNameTooLong:
		return "name too long"
	default:
		return fmt.Sprintf("missing %s", e.Field)
	}
}

// Is makes errors.Is(err, ErrInvalid) hold for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Message returns the text shown next to the form. Missing fields have no
// user-facing message because the form always supplies them.
func (e *ValidationError) Message() string {
	switch e.Kind {
	case KindBlankName:
		return MessageBlankName
	case KindNameTooLong:
		return MessageNameTooLong
	default:
		return ""
	}
}

type rule struct {
	check func(Candidate) *ValidationError
}

// rules is evaluated in order; the first failure wins.
var rules = []rule{
	{check: func(c Candidate) *ValidationError {
		if c.Name == nil {
			return &ValidationError{Kind: KindMissingField, Field: "name"}
		}
		return nil
	}},
	{check: func(c Candidate) *ValidationError {
		if c.Time == nil {
			return &ValidationError{Kind: KindMissingField, Field: "time"}
		}
		return nil
	}},
	{check: func(c Candidate) *ValidationError {
		if c.CreatedAt == nil || c.CreatedAt.IsZero() {
			return &ValidationError{Kind: KindMissingField, Field: "createdAt"}
		}
		return nil
	}},
	{check: func(c Candidate) *ValidationError {
		return ValidateName(*c.Name)
	}},
}

// Validate applies the full rule table to a create candidate.
func Validate(c Candidate) error {
	for _, r := range rules {
		if verr := r.check(c); verr != nil {
			return verr
		}
	}
	return nil
}

// ValidateName applies the name rules alone. The form uses it directly since
// time and createdAt come from the timer rather than user input.
func ValidateName(name string) *ValidationError {
	trimmed := strings.TrimFunc(name, isTrimmable)
	n := utf8.RuneCountInString(trimmed)
	switch {
	case n == 0:
		return &ValidationError{Kind: KindBlankName, Field: "name"}
	case n > MaxNameLength:
		return &ValidationError{Kind: KindNameTooLong, Field: "name"}
	}
	return nil
}

// isTrimmable matches what a browser's String.prototype.trim strips,
// which includes the byte order mark.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
