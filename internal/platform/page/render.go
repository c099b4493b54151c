// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package page is the presentation toolkit shared by every catalog page.

A page request builds a [View] from API data and hands it to [Renderer]:

  - Escape and the markup helpers turn server values into safe fragments.
  - Errors holds the page's error slots, declared by a [Binding].
  - Submit sends a form to the catalog API and routes failures into Errors.
  - State fixes the mode, target id and previous URL of one request.

Plain strings in a view are escaped by html/template when rendered;
[template.HTML] fragments must come from this package's helpers, which
escape every value they interpolate. Either way a value is escaped once.
*/
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/internal/platform/constants"
	"github.com/taibuivan/librarium/internal/platform/ctxutil"
	"github.com/taibuivan/librarium/internal/platform/i18n"
	requestutil "github.com/taibuivan/librarium/internal/platform/request"
	"github.com/taibuivan/librarium/internal/platform/respond"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	TemplateList    = "list"
	TemplateDetail  = "detail"
	TemplateForm    = "form"
	TemplateConfirm = "confirm"
)

// Flash moves one-shot alerts across a redirect.
type Flash interface {
	Alert(writer http.ResponseWriter, request *http.Request, message string)
	Take(writer http.ResponseWriter, request *http.Request) []string
}

// View is what a handler renders.
type View struct {
	Title  string
	Errors *Errors
	Body   any
}

// document is the root value seen by the layout template.
type document struct {
	Lang   string
	L      *i18n.Localizer
	Title  string
	Alerts []string
	Errors *Errors
	Body   any
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
	flash Flash
}

// NewRenderer parses every page template against the shared layout.
func NewRenderer(flash Flash) (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{TemplateList, TemplateDetail, TemplateForm, TemplateConfirm} {
		tmpl, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("page: parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages, flash: flash}, nil
}

// Render writes the named page with status. Pending flash alerts are taken
// and shown together with alerts raised on view.Errors.
func (r *Renderer) Render(writer http.ResponseWriter, request *http.Request, status int, name string, view View) {
	ctx := request.Context()
	localizer := ctxutil.GetLocalizer(ctx)

	tmpl, ok := r.pages[name]
	if !ok {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "page_template_missing", slog.String("template", name))
		respond.Text(writer, http.StatusInternalServerError, localizer.T("common.internal_error"))
		return
	}

	errs := view.Errors
	if errs == nil {
		errs = NewErrors(Binding{})
	}

	var alerts []string
	if r.flash != nil {
		alerts = r.flash.Take(writer, request)
	}
	alerts = append(alerts, errs.Alerts()...)

	var buffer bytes.Buffer
	err := tmpl.ExecuteTemplate(&buffer, "layout", document{
		Lang:   localizer.Lang(),
		L:      localizer,
		Title:  view.Title,
		Alerts: alerts,
		Errors: errs,
		Body:   view.Body,
	})
	if err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "page_render_failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
		respond.Text(writer, http.StatusInternalServerError, localizer.T("common.internal_error"))
		return
	}

	writer.Header().Set(constants.HeaderContentType, "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}

// Failure renders the error state of a detail-style page for err: the
// not-found message with 404 when the catalog reported the entity missing,
// the generic load error with 502 otherwise.
func (r *Renderer) Failure(writer http.ResponseWriter, request *http.Request, err error, body DetailBody, primaryID, notFoundKey string) {
	ctx := request.Context()
	localizer := ctxutil.GetLocalizer(ctx)

	status, message := http.StatusBadGateway, localizer.T("common.load_error")
	if apperr.IsNotFound(err) {
		status, message = http.StatusNotFound, localizer.T(notFoundKey)
	}

	ctxutil.GetLogger(ctx).WarnContext(ctx, "page_load_failed",
		slog.Int("status", status),
		slog.Any("error", err),
	)

	body.Heading = localizer.T("common.error_header")
	body.Fail(primaryID, message)
	r.Render(writer, request, status, TemplateDetail, View{Title: body.Heading, Body: body})
}

// Confirm renders the confirmation page of a delete. The form posts back to
// the current URL.
func (r *Renderer) Confirm(writer http.ResponseWriter, request *http.Request, question, previousURL string) {
	r.Render(writer, request, http.StatusOK, TemplateConfirm, View{
		Title: ctxutil.GetLocalizer(request.Context()).T("common.confirm_title"),
		Body: ConfirmBody{
			Question:    question,
			Action:      request.URL.RequestURI(),
			PreviousURL: previousURL,
			CancelURL:   requestutil.BackURL(request, previousURL),
		},
	})
}

// Alert queues message for the next rendered page.
func (r *Renderer) Alert(writer http.ResponseWriter, request *http.Request, message string) {
	if r.flash == nil {
		return
	}
	r.flash.Alert(writer, request, message)
}

// Redirect ends a POST with a 303 to target.
func (r *Renderer) Redirect(writer http.ResponseWriter, request *http.Request, target string) {
	respond.Redirect(writer, request, target)
}
