package author

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/librarium/internal/platform/constants"
	"github.com/taibuivan/librarium/internal/platform/ctxutil"
	"github.com/taibuivan/librarium/internal/platform/page"
	requestutil "github.com/taibuivan/librarium/internal/platform/request"
	"github.com/taibuivan/librarium/pkg/convert"
)

type Handler struct {
	service *Service
	pages   *page.Renderer
}

func NewHandler(service *Service, pages *page.Renderer) *Handler {
	return &Handler{service: service, pages: pages}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAuthors)
	router.Get("/new", handler.newAuthor)
	router.Post("/new", handler.createAuthor)
	router.Get("/{id}/details", handler.viewAuthor)
	router.Get("/{id}/edit", handler.editAuthor)
	router.Post("/{id}/edit", handler.updateAuthor)
	router.Get("/{id}/delete", handler.confirmDelete)
	router.Post("/{id}/delete", handler.deleteAuthor)
}

func detailsURL(id int64) string { return fmt.Sprintf("%s/%d/details", listURL, id) }
func editURL(id int64) string    { return fmt.Sprintf("%s/%d/edit", listURL, id) }
func deleteURL(id int64) string  { return fmt.Sprintf("%s/%d/delete", listURL, id) }

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	localizer := ctxutil.GetLocalizer(request.Context())
	errs := page.NewErrors(listBinding)

	rows, err := handler.service.ListAuthors(request.Context())
	if err != nil {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "author_list_failed", slog.Any("error", err))
		errs.ShowError(localizer.T("author.list_error"))
	}

	cells := make([][]template.HTML, 0, len(rows))
	for _, row := range rows {
		books := page.Paragraph("mb-0", localizer.T("author.no_books"))
		if len(row.Books) > 0 {
			links := make([]template.HTML, 0, len(row.Books))
			for _, book := range row.Books {
				links = append(links, page.Link(fmt.Sprintf("/books/%d/details", book.ID), book.Title))
			}
			books = page.List(links)
		}

		cells = append(cells, []template.HTML{
			page.Text(row.Author.ID),
			page.Link(detailsURL(row.Author.ID), row.Author.FullName),
			books,
			page.ActionLink(page.WithQuery(editURL(row.Author.ID), constants.FieldPreviousURL, listURL), localizer.T("common.edit"), "btn-outline-info"),
			page.ActionLink(page.WithQuery(deleteURL(row.Author.ID), constants.FieldScope, constants.ScopeList), localizer.T("common.delete"), "btn-outline-danger"),
		})
	}

	headers := []string{
		localizer.T("common.id"),
		localizer.T("author.col_fullname"),
		localizer.T("author.col_books"),
		localizer.T("common.edit"),
		localizer.T("common.delete"),
	}

	handler.pages.Render(writer, request, http.StatusOK, page.TemplateList, page.View{
		Title:  localizer.T("author.list_title"),
		Errors: errs,
		Body: page.ListBody{
			HeaderID: "authors-header",
			Heading:  localizer.T("author.list_title"),
			AddURL:   listURL + "/new",
			Table:    page.Table("authors-table-body", headers, cells, localizer.T("author.none")),
		},
	})
}

func (handler *Handler) viewAuthor(writer http.ResponseWriter, request *http.Request) {
	localizer := ctxutil.GetLocalizer(request.Context())

	body := page.DetailBody{HeaderID: "author-header"}
	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		body.BackURL = listURL
		handler.pages.Failure(writer, request, err, body, "author-fullname", "author.not_found")
		return
	}

	state := page.NewState(request, authorID, listURL)
	body.BackURL = state.PreviousURL

	details, err := handler.service.GetDetails(request.Context(), authorID)
	if err != nil {
		handler.pages.Failure(writer, request, err, body, "author-fullname", "author.not_found")
		return
	}

	books := page.Paragraph("", localizer.T("author.no_books"))
	if len(details.Books) > 0 {
		links := make([]template.HTML, 0, len(details.Books))
		for _, book := range details.Books {
			links = append(links, page.Link(fmt.Sprintf("/books/%d/details", book.ID), book.Title))
		}
		books = page.List(links)
	}

	body.Heading = localizer.Tf("author.header", convert.FormatID(details.Author.ID))
	body.Lines = []page.Line{
		{ID: "author-fullname", Class: page.ClassLineMain, Text: localizer.Tf("author.fullname_line", details.Author.FullName)},
	}
	body.Sections = []page.Section{
		{ID: "author-books", Heading: localizer.T("author.books_heading"), Content: books},
	}
	body.EditURL = page.WithQuery(editURL(authorID), constants.FieldPreviousURL, request.URL.RequestURI())
	body.DeleteURL = page.WithQuery(deleteURL(authorID), constants.FieldPreviousURL, state.PreviousURL)

	handler.pages.Render(writer, request, http.StatusOK, page.TemplateDetail, page.View{
		Title: body.Heading,
		Body:  body,
	})
}

func (handler *Handler) newAuthor(writer http.ResponseWriter, request *http.Request) {
	state := page.NewState(request, 0, listURL)
	handler.renderForm(writer, request, http.StatusOK, state, Input{}, page.NewErrors(formBinding))
}

func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	handler.saveAuthor(writer, request, page.NewState(request, 0, listURL))
}

func (handler *Handler) editAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		handler.pages.Failure(writer, request, err, page.DetailBody{HeaderID: "author-header", BackURL: listURL}, "author-fullname", "author.not_found")
		return
	}
	state := page.NewState(request, authorID, listURL)

	author, err := handler.service.GetAuthor(request.Context(), authorID)
	if err != nil {
		handler.pages.Failure(writer, request, err, page.DetailBody{HeaderID: "author-header", BackURL: state.PreviousURL}, "author-fullname", "author.not_found")
		return
	}

	handler.renderForm(writer, request, http.StatusOK, state, Input{FullName: author.FullName}, page.NewErrors(formBinding))
}

func (handler *Handler) updateAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		handler.pages.Failure(writer, request, err, page.DetailBody{HeaderID: "author-header", BackURL: listURL}, "author-fullname", "author.not_found")
		return
	}
	handler.saveAuthor(writer, request, page.NewState(request, authorID, listURL))
}

func (handler *Handler) saveAuthor(writer http.ResponseWriter, request *http.Request, state page.State) {
	input := Input{FullName: requestutil.FormValue(request, FieldFullName)}
	errs := page.NewErrors(formBinding)

	if saved := handler.service.SaveAuthor(request.Context(), state, input, errs); saved != nil {
		handler.pages.Redirect(writer, request, state.PreviousURL)
		return
	}
	handler.renderForm(writer, request, http.StatusUnprocessableEntity, state, input, errs)
}

func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, status int, state page.State, input Input, errs *page.Errors) {
	localizer := ctxutil.GetLocalizer(request.Context())

	heading, action := localizer.T("author.form_create"), listURL+"/new"
	if state.Updating() {
		heading, action = localizer.T("author.form_edit"), editURL(state.TargetID)
	}

	handler.pages.Render(writer, request, status, page.TemplateForm, page.View{
		Title:  heading,
		Errors: errs,
		Body: page.FormBody{
			Heading:     heading,
			Action:      action,
			PreviousURL: state.PreviousURL,
			Fields: []page.Field{
				{Name: FieldFullName, Label: localizer.T("author.field_fullname"), Kind: page.KindText, Value: input.FullName},
			},
		},
	})
}

func (handler *Handler) confirmDelete(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.ID(request, "id")
	if err != nil {
		handler.pages.Failure(writer, request, err, page.DetailBody{HeaderID: "author-header", BackURL: listURL}, "author-fullname", "author.not_found")
		return
	}
	state := page.NewState(request, authorID, listURL)
	handler.pages.Confirm(writer, request, ctxutil.GetLocalizer(request.Context()).T("author.confirm_delete"), state.PreviousURL)
}

// deleteAuthor redirects whatever the outcome. A list page reloads itself;
// a detail page returns to where it came from since the author may be gone.
func (handler *Handler) deleteAuthor(writer http.ResponseWriter, request *http.Request) {
	localizer := ctxutil.GetLocalizer(request.Context())
	fromList := request.URL.Query().Get(constants.FieldScope) == constants.ScopeList

	target, failure := page.NewState(request, 0, listURL).PreviousURL, localizer.T("author.delete_failed")
	if fromList {
		target, failure = listURL, localizer.T("author.list_delete_failed")
	}

	authorID, err := requestutil.ID(request, "id")
	if err == nil {
		err = handler.service.DeleteAuthor(request.Context(), authorID)
	}
	if err != nil {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "author_delete_failed", slog.Any("error", err))
		handler.pages.Alert(writer, request, failure)
	}

	handler.pages.Redirect(writer, request, target)
}
