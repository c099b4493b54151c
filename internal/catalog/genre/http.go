package genre

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
	router.Get("/", handler.listGenres)
	router.Get("/new", handler.newGenre)
	router.Post("/new", handler.createGenre)
	router.Get("/{id}/details", handler.viewGenre)
	router.Get("/{id}/edit", handler.editGenre)
	router.Post("/{id}/edit", handler.updateGenre)
	router.Get("/{id}/delete", handler.confirmDelete)
	router.Post("/{id}/delete", handler.deleteGenre)
}

func detailsURL(id int64) string { return fmt.Sprintf("%s/%d/details", listURL, id) }
func editURL(id int64) string    { return fmt.Sprintf("%s/%d/edit", listURL, id) }
func deleteURL(id int64) string  { return fmt.Sprintf("%s/%d/delete", listURL, id) }

// DetailsURL is the card of the genre with id.
func DetailsURL(id int64) string { return detailsURL(id) }

func (handler *Handler) listGenres(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	localizer := ctxutil.GetLocalizer(ctx)
	errs := page.NewErrors(listBinding)

	genres, err := handler.service.ListGenres(ctx)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "genre_list_failed", slog.Any("error", err))
		errs.ShowError(localizer.T("genre.list_error"))
	}

	cells := make([][]template.HTML, 0, len(genres))
	for _, genre := range genres {
		cells = append(cells, []template.HTML{
			page.Text(genre.ID),
			page.Link(detailsURL(genre.ID), genre.Name),
			page.ActionLink(page.WithQuery(editURL(genre.ID), constants.FieldPreviousURL, listURL), localizer.T("common.edit"), "btn-outline-info"),
			page.ActionLink(page.WithQuery(deleteURL(genre.ID), constants.FieldScope, constants.ScopeList), localizer.T("common.delete"), "btn-outline-danger"),
		})
	}

	headers := []string{
		localizer.T("common.id"),
		localizer.T("genre.col_name"),
		localizer.T("common.edit"),
		localizer.T("common.delete"),
	}

	handler.pages.Render(writer, request, http.StatusOK, page.TemplateList, page.View{
		Title:  localizer.T("genre.list_title"),
		Errors: errs,
		Body: page.ListBody{
			HeaderID: "genres-header",
			Heading:  localizer.T("genre.list_title"),
			AddURL:   listURL + "/new",
			Table:    page.Table("genres-table-body", headers, cells, localizer.T("genre.none")),
		},
	})
}

func (handler *Handler) viewGenre(writer http.ResponseWriter, request *http.Request) {
	localizer := ctxutil.GetLocalizer(request.Context())
	body := page.DetailBody{HeaderID: "genre-header", BackURL: listURL}

	genreID, err := requestutil.ID(request, "id")
	if err != nil {
		handler.pages.Failure(writer, request, err, body, "genre-name", "genre.not_found")
		return
	}
	state := page.NewState(request, genreID, listURL)
	body.BackURL = state.PreviousURL

	genre, err := handler.service.GetGenre(request.Context(), genreID)
	if err != nil {
		handler.pages.Failure(writer, request, err, body, "genre-name", "genre.not_found")
		return
	}

	body.Heading = localizer.Tf("genre.header", convert.FormatID(genre.ID))
	body.Lines = []page.Line{
		{ID: "genre-name", Class: page.ClassLineMain, Text: localizer.Tf("genre.name_line", genre.Name)},
	}
	body.EditURL = page.WithQuery(editURL(genreID), constants.FieldPreviousURL, request.URL.RequestURI())
	body.DeleteURL = page.WithQuery(deleteURL(genreID), constants.FieldPreviousURL, state.PreviousURL)

	handler.pages.Render(writer, request, http.StatusOK, page.TemplateDetail, page.View{
		Title: body.Heading,
		Body:  body,
	})
}

func (handler *Handler) newGenre(writer http.ResponseWriter, request *http.Request) {
	state := page.NewState(request, 0, listURL)
	handler.renderForm(writer, request, http.StatusOK, state, Input{}, page.NewErrors(formBinding))
}

func (handler *Handler) createGenre(writer http.ResponseWriter, request *http.Request) {
	handler.saveGenre(writer, request, page.NewState(request, 0, listURL))
}

func (handler *Handler) editGenre(writer http.ResponseWriter, request *http.Request) {
	failed := page.DetailBody{HeaderID: "genre-header", BackURL: listURL}

	genreID, err := requestutil.ID(request, "id")
	if err != nil {
		handler.pages.Failure(writer, request, err, failed, "genre-name", "genre.not_found")
		return
	}
	state := page.NewState(request, genreID, listURL)

	genre, err := handler.service.GetGenre(request.Context(), genreID)
	if err != nil {
		failed.BackURL = state.PreviousURL
		handler.pages.Failure(writer, request, err, failed, "genre-name", "genre.not_found")
		return
	}

	handler.renderForm(writer, request, http.StatusOK, state, Input{Name: genre.Name}, page.NewErrors(formBinding))
}

func (handler *Handler) updateGenre(writer http.ResponseWriter, request *http.Request) {
	genreID, err := requestutil.ID(request, "id")
	if err != nil {
		handler.pages.Failure(writer, request, err, page.DetailBody{HeaderID: "genre-header", BackURL: listURL}, "genre-name", "genre.not_found")
		return
	}
	handler.saveGenre(writer, request, page.NewState(request, genreID, listURL))
}

func (handler *Handler) saveGenre(writer http.ResponseWriter, request *http.Request, state page.State) {
	input := Input{Name: requestutil.FormValue(request, FieldName)}
	errs := page.NewErrors(formBinding)

	if saved := handler.service.SaveGenre(request.Context(), state, input, errs); saved != nil {
		handler.pages.Redirect(writer, request, state.PreviousURL)
		return
	}
	handler.renderForm(writer, request, http.StatusUnprocessableEntity, state, input, errs)
}

func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, status int, state page.State, input Input, errs *page.Errors) {
	localizer := ctxutil.GetLocalizer(request.Context())

	heading, action := localizer.T("genre.form_create"), listURL+"/new"
	if state.Updating() {
		heading, action = localizer.T("genre.form_edit"), editURL(state.TargetID)
	}

	handler.pages.Render(writer, request, status, page.TemplateForm, page.View{
		Title:  heading,
		Errors: errs,
		Body: page.FormBody{
			Heading:     heading,
			Action:      action,
			PreviousURL: state.PreviousURL,
			Fields: []page.Field{
				{Name: FieldName, Label: localizer.T("genre.field_name"), Kind: page.KindText, Value: input.Name},
			},
		},
	})
}

func (handler *Handler) confirmDelete(writer http.ResponseWriter, request *http.Request) {
	state := page.NewState(request, 0, listURL)
	handler.pages.Confirm(writer, request, ctxutil.GetLocalizer(request.Context()).T("genre.confirm_delete"), state.PreviousURL)
}

// deleteGenre always redirects. Started from the list it reloads the list,
// otherwise it returns to the page before the card.
func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	localizer := ctxutil.GetLocalizer(ctx)

	target, failure := page.NewState(request, 0, listURL).PreviousURL, localizer.T("genre.delete_failed")
	if request.URL.Query().Get(constants.FieldScope) == constants.ScopeList {
		target, failure = listURL, localizer.T("genre.list_delete_failed")
	}

	genreID, err := requestutil.ID(request, "id")
	if err == nil {
		err = handler.service.DeleteGenre(ctx, genreID)
	}
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "genre_delete_failed", slog.Any("error", err))
		handler.pages.Alert(writer, request, failure)
	}

	handler.pages.Redirect(writer, request, target)
}
