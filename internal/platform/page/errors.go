// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"slices"

	"github.com/taibuivan/librarium/internal/platform/apperr"
)

// Binding names the error slots a page declares.
//
// Every field in Fields is rendered with a "{field}-error" element. Banner
// adds the page-wide "error-message" element.
type Binding struct {
	Name   string
	Fields []string
	Banner bool
}

// Errors is the error-display state of one page render.
type Errors struct {
	binding Binding
	fields  map[string]string
	banner  string
	alerts  []string
}

// NewErrors returns an empty error state bound to b.
func NewErrors(b Binding) *Errors {
	return &Errors{binding: b, fields: make(map[string]string)}
}

// Clear empties every slot and drops pending alerts.
func (e *Errors) Clear() {
	clear(e.fields)
	e.banner = ""
	e.alerts = nil
}

// ShowFieldError displays message in the slot for field. Without such a
// slot it goes to the banner, and without a banner it becomes an alert.
func (e *Errors) ShowFieldError(field, message string) {
	switch {
	case slices.Contains(e.binding.Fields, field):
		e.fields[field] = message
	case e.binding.Banner:
		e.banner = message
	default:
		e.alerts = append(e.alerts, message)
	}
}

// ShowError displays a message that belongs to no field.
func (e *Errors) ShowError(message string) {
	e.ShowFieldError("", message)
}

// Apply shows every field error in order.
func (e *Errors) Apply(details []apperr.FieldError) {
	for _, detail := range details {
		e.ShowFieldError(detail.Field, detail.Message)
	}
}

// Field is the message in the slot for field.
func (e *Errors) Field(field string) string {
	if e == nil {
		return ""
	}
	return e.fields[field]
}

// Visible reports whether the slot for field is shown.
func (e *Errors) Visible(field string) bool {
	return e.Field(field) != ""
}

// Banner is the page-wide message, empty when hidden.
func (e *Errors) Banner() string {
	if e == nil {
		return ""
	}
	return e.banner
}

// HasBanner reports whether the bound page declares a banner slot.
func (e *Errors) HasBanner() bool {
	return e != nil && e.binding.Banner
}

// Alerts are messages that found no slot.
func (e *Errors) Alerts() []string {
	if e == nil {
		return nil
	}
	return e.alerts
}

// Any reports whether anything is displayed.
func (e *Errors) Any() bool {
	return e != nil && (len(e.fields) > 0 || e.banner != "" || len(e.alerts) > 0)
}

// Binding returns the descriptor e was created with.
func (e *Errors) Binding() Binding {
	return e.binding
}
