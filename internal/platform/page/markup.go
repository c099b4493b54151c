// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package page

import (
	"html/template"
	"strings"
)

// Text escapes value into a markup fragment.
func Text(value any) template.HTML {
	return template.HTML(Escape(value))
}

// Link renders an anchor. Both the target and the text are escaped.
func Link(href string, text any) template.HTML {
	var builder strings.Builder
	builder.WriteString(`<a href="`)
	builder.WriteString(Escape(href))
	builder.WriteString(`">`)
	builder.WriteString(Escape(text))
	builder.WriteString(`</a>`)
	return template.HTML(builder.String())
}

// ActionLink renders an anchor styled as a button.
func ActionLink(href string, text any, class string) template.HTML {
	var builder strings.Builder
	builder.WriteString(`<a href="`)
	builder.WriteString(Escape(href))
	builder.WriteString(`" class="btn btn-sm `)
	builder.WriteString(Escape(class))
	builder.WriteString(`">`)
	builder.WriteString(Escape(text))
	builder.WriteString(`</a>`)
	return template.HTML(builder.String())
}

// Paragraph renders a <p> with an optional class.
func Paragraph(class string, text any) template.HTML {
	var builder strings.Builder
	builder.WriteString(`<p`)
	if class != "" {
		builder.WriteString(` class="`)
		builder.WriteString(Escape(class))
		builder.WriteString(`"`)
	}
	builder.WriteString(`>`)
	builder.WriteString(Escape(text))
	builder.WriteString(`</p>`)
	return template.HTML(builder.String())
}

// List renders already-built fragments as an unstyled list. Each item must
// have been produced by one of this package's helpers.
func List(items []template.HTML) template.HTML {
	var builder strings.Builder
	builder.WriteString(`<ul class="list-unstyled mb-0">`)
	for _, item := range items {
		builder.WriteString(`<li>`)
		builder.WriteString(string(item))
		builder.WriteString(`</li>`)
	}
	builder.WriteString(`</ul>`)
	return template.HTML(builder.String())
}

// Table renders a table whose body carries bodyID. With no rows, the body
// holds a single placeholder row spanning every column with emptyText.
func Table(bodyID string, headers []string, rows [][]template.HTML, emptyText string) template.HTML {
	var builder strings.Builder
	builder.WriteString(`<table class="table table-striped align-middle"><thead><tr>`)
	for _, header := range headers {
		builder.WriteString(`<th scope="col">`)
		builder.WriteString(Escape(header))
		builder.WriteString(`</th>`)
	}
	builder.WriteString(`</tr></thead><tbody id="`)
	builder.WriteString(Escape(bodyID))
	builder.WriteString(`">`)

	if len(rows) == 0 {
		builder.WriteString(`<tr><td colspan="`)
		builder.WriteString(Escape(max(len(headers), 1)))
		builder.WriteString(`" class="text-center text-muted">`)
		builder.WriteString(Escape(emptyText))
		builder.WriteString(`</td></tr>`)
	}
	for _, row := range rows {
		builder.WriteString(`<tr>`)
		for _, cell := range row {
			builder.WriteString(`<td>`)
			builder.WriteString(string(cell))
			builder.WriteString(`</td>`)
		}
		builder.WriteString(`</tr>`)
	}

	builder.WriteString(`</tbody></table>`)
	return template.HTML(builder.String())
}
