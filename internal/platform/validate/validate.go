// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before a form is submitted to the catalog API.
//
// # Architecture
//
// This package is used in the service layer only. Messages are passed in
// already localized; the validator never decides wording.
//
// Rules short-circuit per field: once a field has failed, later rules for
// that field are skipped, so each field reports at most one message while
// different fields still report together.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/librarium/internal/platform/apperr"
)

// MaxTextLength is the largest accepted text field, in characters.
const MaxTextLength = 255

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs   []apperr.FieldError
	failed map[string]bool
}

// New returns an empty [Validator].
func New() *Validator {
	return &Validator{failed: make(map[string]bool)}
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value, message string) *Validator {
	return v.check(field, strings.TrimSpace(value) == "", message)
}

// MaxLen fails if the trimmed value has more than max characters.
func (v *Validator) MaxLen(field, value string, max int, message string) *Validator {
	return v.check(field, utf8.RuneCountInString(strings.TrimSpace(value)) > max, message)
}

// Text is Required followed by MaxLen([MaxTextLength]).
func (v *Validator) Text(field, value, requiredMessage, tooLongMessage string) *Validator {
	return v.Required(field, value, requiredMessage).
		MaxLen(field, value, MaxTextLength, tooLongMessage)
}

// Selected fails if the id is not a positive number.
func (v *Validator) Selected(field string, id int64, message string) *Validator {
	return v.check(field, id <= 0, message)
}

// NotEmpty fails if n is zero.
func (v *Validator) NotEmpty(field string, n int, message string) *Validator {
	return v.check(field, n == 0, message)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Fields returns the collected failures in rule order.
func (v *Validator) Fields() []apperr.FieldError {
	return v.errs
}

func (v *Validator) check(field string, failed bool, message string) *Validator {
	if v.failed == nil {
		v.failed = make(map[string]bool)
	}
	if !failed || v.failed[field] {
		return v
	}
	v.failed[field] = true
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	return v
}
