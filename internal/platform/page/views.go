// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import "html/template"

// Line classes of a detail page.
const (
	ClassLine     = "card-text"
	ClassLineMain = "h6 card-text"
	ClassLineFail = "h6 card-text text-danger"
)

// ListBody is the body of a list page.
type ListBody struct {
	HeaderID string
	Heading  string
	AddURL   string
	BackURL  string
	Table    template.HTML
}

// Line is one text line of a detail card.
type Line struct {
	ID    string
	Class string
	Text  string
}

// Section is a titled block of a detail card.
type Section struct {
	ID      string
	Heading string
	Content template.HTML
}

// DetailBody is the body of a detail page.
type DetailBody struct {
	HeaderID  string
	Heading   string
	Lines     []Line
	Sections  []Section
	EditURL   string
	DeleteURL string
	BackURL   string
}

// Fail replaces the card content with message on the primary line.
func (d *DetailBody) Fail(primaryID, message string) {
	d.Lines = []Line{{ID: primaryID, Class: ClassLineFail, Text: message}}
	d.Sections = nil
	d.EditURL = ""
	d.DeleteURL = ""
}

// Field kinds of a form.
const (
	KindText     = "text"
	KindTextarea = "textarea"
	KindSelect   = "select"
)

// Option is one choice of a select field.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field is one input of a form page.
type Field struct {
	Name        string
	Label       string
	Kind        string
	Value       string
	Placeholder string
	Multiple    bool
	Options     []Option
}

// FormBody is the body of a create or edit page.
type FormBody struct {
	Heading     string
	Action      string
	PreviousURL string
	Fields      []Field
}

// ConfirmBody is the body of a delete confirmation page.
type ConfirmBody struct {
	Question    string
	Action      string
	PreviousURL string
	CancelURL   string
}
