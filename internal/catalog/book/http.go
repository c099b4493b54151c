package book

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/taibuivan/librarium/internal/catalog/comment"
	"github.com/taibuivan/librarium/internal/catalog/genre"
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
	router.Get("/", handler.listBooks)
	router.Get("/new", handler.newBook)
	router.Post("/new", handler.createBook)
	router.Get("/{id}/details", handler.viewBook)
	router.Get("/{id}/edit", handler.editBook)
	router.Post("/{id}/edit", handler.updateBook)
	router.Get("/{id}/delete", handler.confirmDelete)
	router.Post("/{id}/delete", handler.deleteBook)

	// Rows of the book card
	router.Get("/{id}/details/genres/{genreId}/delete", handler.confirmGenreDelete)
	router.Post("/{id}/details/genres/{genreId}/delete", handler.deleteGenre)
	router.Get("/{id}/details/comments/{commentId}/delete", handler.confirmCommentDelete)
	router.Post("/{id}/details/comments/{commentId}/delete", handler.deleteComment)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	localizer := ctxutil.GetLocalizer(ctx)
	errs := page.NewErrors(listBinding)

	books, err := handler.service.ListBooks(ctx)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "book_list_failed", slog.Any("error", err))
		errs.ShowError(localizer.T("book.list_error"))
	}

	cells := make([][]template.HTML, 0, len(books))
	for _, book := range books {
		var authorLink template.HTML
		if book.Author != nil {
			authorLink = page.Link("/authors/"+convert.FormatID(book.Author.ID)+"/details", book.Author.FullName)
		}

		cells = append(cells, []template.HTML{
			page.Text(book.ID),
			page.Link(detailsURL(book.ID), book.Title),
			authorLink,
			genreLinks(book.Genres, localizer.T("book.no_genres"), "mb-0"),
			page.Link(comment.ListURL(book.ID), localizer.T("book.comments_link")),
			page.ActionLink(page.WithQuery(editURL(book.ID), constants.FieldPreviousURL, listURL), localizer.T("common.edit"), "btn-outline-info"),
			page.ActionLink(page.WithQuery(deleteURL(book.ID), constants.FieldScope, constants.ScopeList), localizer.T("common.delete"), "btn-outline-danger"),
		})
	}

	headers := []string{
		localizer.T("common.id"),
		localizer.T("book.col_title"),
		localizer.T("book.col_author"),
		localizer.T("book.col_genres"),
		localizer.T("book.col_comments"),
		localizer.T("common.edit"),
		localizer.T("common.delete"),
	}

	handler.pages.Render(writer, request, http.StatusOK, page.TemplateList, page.View{
		Title:  localizer.T("book.list_title"),
		Errors: errs,
		Body: page.ListBody{
			HeaderID: "books-header",
			Heading:  localizer.T("book.list_title"),
			AddURL:   listURL + "/new",
			Table:    page.Table("books-table-body", headers, cells, localizer.T("book.none")),
		},
	})
}

func genreLinks(genres []genre.Genre, emptyText, class string) template.HTML {
	if len(genres) == 0 {
		return page.Paragraph(class, emptyText)
	}
	return page.List(lo.Map(genres, func(item genre.Genre, _ int) template.HTML {
		return page.Link(genre.DetailsURL(item.ID), item.Name)
	}))
}

func (handler *Handler) viewBook(writer http.ResponseWriter, request *http.Request) {
	localizer := ctxutil.GetLocalizer(request.Context())
	body := page.DetailBody{HeaderID: "book-header", BackURL: listURL}

	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		handler.pages.Failure(writer, request, err, body, "book-title", "book.not_found")
		return
	}
	state := page.NewState(request, bookID, listURL)
	body.BackURL = state.PreviousURL

	details, err := handler.service.GetDetails(request.Context(), bookID)
	if err != nil {
		handler.pages.Failure(writer, request, err, body, "book-title", "book.not_found")
		return
	}
	book := details.Book

	authorName := ""
	if book.Author != nil {
		authorName = book.Author.FullName
	}

	body.Heading = localizer.Tf("book.header", convert.FormatID(book.ID))
	body.Lines = []page.Line{
		{ID: "book-title", Class: page.ClassLineMain, Text: localizer.Tf("book.title_line", book.Title)},
		{ID: "book-author", Class: page.ClassLine, Text: localizer.Tf("book.author_line", authorName)},
	}
	body.Sections = []page.Section{
		{ID: "book-genres", Heading: localizer.T("book.genres_heading"), Content: handler.genreTable(request, book)},
		{ID: "book-comments", Heading: localizer.T("book.comments_heading"), Content: handler.commentTable(request, book.ID, details.Comments)},
	}
	body.EditURL = page.WithQuery(editURL(bookID), constants.FieldPreviousURL, request.URL.RequestURI())
	body.DeleteURL = page.WithQuery(deleteURL(bookID), constants.FieldPreviousURL, state.PreviousURL)

	handler.pages.Render(writer, request, http.StatusOK, page.TemplateDetail, page.View{
		Title: body.Heading,
		Body:  body,
	})
}

func (handler *Handler) genreTable(request *http.Request, book Book) template.HTML {
	localizer := ctxutil.GetLocalizer(request.Context())
	if len(book.Genres) == 0 {
		return page.Paragraph("", localizer.T("book.no_genres"))
	}

	rows := make([][]template.HTML, 0, len(book.Genres))
	for _, item := range book.Genres {
		rows = append(rows, []template.HTML{
			page.Text(item.ID),
			page.Link(genre.DetailsURL(item.ID), item.Name),
			page.ActionLink(genreDeleteURL(book.ID, item.ID), localizer.T("common.delete"), "btn-outline-danger"),
		})
	}
	headers := []string{localizer.T("common.id"), localizer.T("book.col_genres"), localizer.T("common.delete")}
	return page.Table("book-genres-table-body", headers, rows, localizer.T("book.no_genres"))
}

func (handler *Handler) commentTable(request *http.Request, bookID int64, comments []comment.Comment) template.HTML {
	localizer := ctxutil.GetLocalizer(request.Context())
	if len(comments) == 0 {
		return page.Paragraph("", localizer.T("book.no_comments"))
	}

	rows := make([][]template.HTML, 0, len(comments))
	for _, item := range comments {
		rows = append(rows, []template.HTML{
			page.Text(item.ID),
			page.Link(comment.DetailsURL(bookID, item.ID), item.Text),
			page.ActionLink(commentDeleteURL(bookID, item.ID), localizer.T("common.delete"), "btn-outline-danger"),
		})
	}
	headers := []string{localizer.T("common.id"), localizer.T("comment.col_text"), localizer.T("common.delete")}
	return page.Table("book-comments-table-body", headers, rows, localizer.T("book.no_comments"))
}

func (handler *Handler) newBook(writer http.ResponseWriter, request *http.Request) {
	state := page.NewState(request, 0, listURL)
	handler.renderForm(writer, request, http.StatusOK, state, Input{}, page.NewErrors(formBinding))
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	handler.saveBook(writer, request, page.NewState(request, 0, listURL))
}

func (handler *Handler) editBook(writer http.ResponseWriter, request *http.Request) {
	failed := page.DetailBody{HeaderID: "book-header", BackURL: listURL}

	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		handler.pages.Failure(writer, request, err, failed, "book-title", "book.not_found")
		return
	}
	state := page.NewState(request, bookID, listURL)

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		failed.BackURL = state.PreviousURL
		handler.pages.Failure(writer, request, err, failed, "book-title", "book.not_found")
		return
	}

	input := Input{
		Title:    book.Title,
		GenreIDs: lo.Map(book.Genres, func(item genre.Genre, _ int) int64 { return item.ID }),
	}
	if book.Author != nil {
		input.AuthorID = book.Author.ID
	}
	handler.renderForm(writer, request, http.StatusOK, state, input, page.NewErrors(formBinding))
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		handler.pages.Failure(writer, request, err, page.DetailBody{HeaderID: "book-header", BackURL: listURL}, "book-title", "book.not_found")
		return
	}
	handler.saveBook(writer, request, page.NewState(request, bookID, listURL))
}

func (handler *Handler) saveBook(writer http.ResponseWriter, request *http.Request, state page.State) {
	input := Input{
		Title:    requestutil.FormValue(request, FieldTitle),
		AuthorID: convert.ToInt64(requestutil.FormValue(request, FieldAuthorID)),
		GenreIDs: requestutil.FormIDs(request, FieldGenreIDs),
	}
	errs := page.NewErrors(formBinding)

	if saved := handler.service.SaveBook(request.Context(), state, input, errs); saved != nil {
		handler.pages.Redirect(writer, request, state.PreviousURL)
		return
	}
	handler.renderForm(writer, request, http.StatusUnprocessableEntity, state, input, errs)
}

// renderForm refreshes the author and genre choices on every render, so a
// re-rendered form keeps its selections against current options.
func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, status int, state page.State, input Input, errs *page.Errors) {
	localizer := ctxutil.GetLocalizer(request.Context())
	options := handler.service.LoadOptions(request.Context(), errs)

	heading, action := localizer.T("book.form_create"), listURL+"/new"
	if state.Updating() {
		heading, action = localizer.T("book.form_edit"), editURL(state.TargetID)
	}

	authors := make([]page.Option, 0, len(options.Authors))
	for _, item := range options.Authors {
		authors = append(authors, page.Option{
			Value:    convert.FormatID(item.ID),
			Label:    item.FullName,
			Selected: item.ID == input.AuthorID,
		})
	}
	genres := make([]page.Option, 0, len(options.Genres))
	for _, item := range options.Genres {
		genres = append(genres, page.Option{
			Value:    convert.FormatID(item.ID),
			Label:    item.Name,
			Selected: lo.Contains(input.GenreIDs, item.ID),
		})
	}

	handler.pages.Render(writer, request, status, page.TemplateForm, page.View{
		Title:  heading,
		Errors: errs,
		Body: page.FormBody{
			Heading:     heading,
			Action:      action,
			PreviousURL: state.PreviousURL,
			Fields: []page.Field{
				{Name: FieldTitle, Label: localizer.T("book.field_title"), Kind: page.KindText, Value: input.Title},
				{Name: FieldAuthorID, Label: localizer.T("book.field_author"), Kind: page.KindSelect, Placeholder: localizer.T("book.select_author"), Options: authors},
				{Name: FieldGenreIDs, Label: localizer.T("book.field_genres"), Kind: page.KindSelect, Multiple: true, Options: genres},
			},
		},
	})
}

func (handler *Handler) confirmDelete(writer http.ResponseWriter, request *http.Request) {
	state := page.NewState(request, 0, listURL)
	handler.pages.Confirm(writer, request, ctxutil.GetLocalizer(request.Context()).T("book.confirm_delete"), state.PreviousURL)
}

// deleteBook always redirects to the previous page; a failed delete leaves
// an alert there.
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	localizer := ctxutil.GetLocalizer(ctx)

	target, failure := page.NewState(request, 0, listURL).PreviousURL, localizer.T("book.delete_failed")
	if request.URL.Query().Get(constants.FieldScope) == constants.ScopeList {
		target, failure = listURL, localizer.T("book.list_delete_failed")
	}

	bookID, err := requestutil.ID(request, "id")
	if err == nil {
		err = handler.service.DeleteBook(ctx, bookID)
	}
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "book_delete_failed", slog.Any("error", err))
		handler.pages.Alert(writer, request, failure)
	}

	handler.pages.Redirect(writer, request, target)
}

// cardURL is the book card a nested delete returns to.
func cardURL(request *http.Request) string {
	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		return listURL
	}
	return detailsURL(bookID)
}

func (handler *Handler) confirmGenreDelete(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Confirm(writer, request, ctxutil.GetLocalizer(request.Context()).T("book.confirm_delete_genre"), cardURL(request))
}

func (handler *Handler) deleteGenre(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	genreID, err := requestutil.ID(request, "genreId")
	if err == nil {
		err = handler.service.DeleteGenre(ctx, genreID)
	}
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "book_genre_delete_failed", slog.Any("error", err))
		handler.pages.Alert(writer, request, ctxutil.GetLocalizer(ctx).T("book.genre_delete_failed"))
	}

	handler.pages.Redirect(writer, request, cardURL(request))
}

func (handler *Handler) confirmCommentDelete(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Confirm(writer, request, ctxutil.GetLocalizer(request.Context()).T("book.confirm_delete_comment"), cardURL(request))
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	bookID, err := requestutil.ID(request, "id")
	var commentID int64
	if err == nil {
		commentID, err = requestutil.ID(request, "commentId")
	}
	if err == nil {
		err = handler.service.DeleteComment(ctx, bookID, commentID)
	}
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "book_comment_delete_failed", slog.Any("error", err))
		handler.pages.Alert(writer, request, ctxutil.GetLocalizer(ctx).T("book.comment_delete_failed"))
	}

	handler.pages.Redirect(writer, request, cardURL(request))
}
