package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrClientNameRequired    = errors.New("client name is required")
	ErrAddressRequired       = errors.New("address is required")
	ErrPhoneRequired         = errors.New("phone is required")
	ErrInvalidOwner          = errors.New("user id must not be negative")
	ErrInvalidDeliveryPerson = errors.New("delivery person id must be greater than zero")
)

// FieldError ties a validation failure to the JSON field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e FieldError) Unwrap() error { return e.Err }

// ValidationErrors collects every field failure found in one pass.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the individual field errors to errors.Is.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, fe := range v {
		errs = append(errs, fe)
	}
	return errs
}

// Fields renders the failures as field -> message.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		out[fe.Field] = fe.Err.Error()
	}
	return out
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	sort.SliceStable(v, func(i, j int) bool { return v[i].Field < v[j].Field })
	return v
}
