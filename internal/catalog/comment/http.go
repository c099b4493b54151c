package comment

import (
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

// Route parameters. The book id shares its name with the book routes the
// comment routes are nested under.
const (
	paramBookID    = "id"
	paramCommentID = "commentId"
)

type Handler struct {
	service *Service
	pages   *page.Renderer
}

func NewHandler(service *Service, pages *page.Renderer) *Handler {
	return &Handler{service: service, pages: pages}
}

// RegisterRoutes mounts the book-scoped comment pages under /books/{id}/comments.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listComments)
	router.Get("/new", handler.newComment)
	router.Post("/new", handler.createComment)
	router.Get("/{commentId}/details", handler.viewComment)
	router.Get("/{commentId}/edit", handler.editComment)
	router.Post("/{commentId}/edit", handler.updateComment)
	router.Get("/{commentId}/delete", handler.confirmDelete)
	router.Post("/{commentId}/delete", handler.deleteComment)
}

// RegisterListRoutes mounts the delete action of the comment list under /comments.
func (handler *Handler) RegisterListRoutes(router chi.Router) {
	router.Get("/{commentId}/delete", handler.confirmListDelete)
	router.Post("/{commentId}/delete", handler.deleteFromList)
}

// ids reads the book id and, when wanted, the comment id of the route.
func ids(request *http.Request, withComment bool) (bookID, commentID int64, err error) {
	if bookID, err = requestutil.ID(request, paramBookID); err != nil {
		return 0, 0, err
	}
	if withComment {
		if commentID, err = requestutil.ID(request, paramCommentID); err != nil {
			return 0, 0, err
		}
	}
	return bookID, commentID, nil
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	localizer := ctxutil.GetLocalizer(ctx)
	errs := page.NewErrors(listBinding)

	status := http.StatusOK
	thread := &Thread{}
	bookID, _, err := ids(request, false)
	if err == nil {
		thread, err = handler.service.ListThread(ctx, bookID)
	} else {
		status = http.StatusNotFound
	}
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "comment_list_failed", slog.Any("error", err))
		errs.ShowError(localizer.T("comment.list_error"))
		thread = &Thread{}
	}

	title := localizer.T("comment.unknown_book")
	if thread.Book != nil {
		title = thread.Book.Title
	}

	cells := make([][]template.HTML, 0, len(thread.Comments))
	for _, comment := range thread.Comments {
		cells = append(cells, []template.HTML{
			page.Text(comment.ID),
			page.Link(DetailsURL(bookID, comment.ID), comment.Text),
			page.ActionLink(page.WithQuery(editURL(bookID, comment.ID), constants.FieldPreviousURL, ListURL(bookID)), localizer.T("common.edit"), "btn-outline-info"),
			page.ActionLink(listDeleteURL(bookID, comment.ID), localizer.T("common.delete"), "btn-outline-danger"),
		})
	}

	headers := []string{
		localizer.T("common.id"),
		localizer.T("comment.col_text"),
		localizer.T("common.edit"),
		localizer.T("common.delete"),
	}

	body := page.ListBody{
		HeaderID: "comments-header",
		Heading:  localizer.Tf("comment.list_title", title),
		Table:    page.Table("comments-table-body", headers, cells, localizer.T("comment.none")),
	}
	if bookID > 0 {
		body.AddURL = ListURL(bookID) + "/new"
		body.BackURL = "/books/" + convert.FormatID(bookID) + "/details"
	}

	handler.pages.Render(writer, request, status, page.TemplateList, page.View{
		Title:  body.Heading,
		Errors: errs,
		Body:   body,
	})
}

func (handler *Handler) viewComment(writer http.ResponseWriter, request *http.Request) {
	localizer := ctxutil.GetLocalizer(request.Context())
	body := page.DetailBody{HeaderID: "comment-header", BackURL: "/books"}

	bookID, commentID, err := ids(request, true)
	if err != nil {
		handler.pages.Failure(writer, request, err, body, "comment-text", "comment.not_found")
		return
	}
	state := page.NewState(request, commentID, ListURL(bookID))
	body.BackURL = state.PreviousURL

	comment, err := handler.service.GetComment(request.Context(), bookID, commentID)
	if err != nil {
		handler.pages.Failure(writer, request, err, body, "comment-text", "comment.not_found")
		return
	}

	bookTitle := comment.BookTitle
	if bookTitle == "" {
		bookTitle = localizer.T("comment.unknown_book")
	}

	body.Heading = localizer.Tf("comment.header", convert.FormatID(comment.ID))
	body.Lines = []page.Line{
		{ID: "comment-text", Class: page.ClassLineMain, Text: localizer.Tf("comment.text_line", comment.Text)},
		{ID: "comment-book", Class: page.ClassLine, Text: localizer.Tf("comment.book_line", bookTitle)},
	}
	body.EditURL = page.WithQuery(editURL(bookID, commentID), constants.FieldPreviousURL, request.URL.RequestURI())
	body.DeleteURL = page.WithQuery(deleteURL(bookID, commentID), constants.FieldPreviousURL, state.PreviousURL)

	handler.pages.Render(writer, request, http.StatusOK, page.TemplateDetail, page.View{
		Title: body.Heading,
		Body:  body,
	})
}

func (handler *Handler) newComment(writer http.ResponseWriter, request *http.Request) {
	bookID, _, err := ids(request, false)
	if err != nil {
		handler.pages.Failure(writer, request, err, page.DetailBody{HeaderID: "comment-header", BackURL: "/books"}, "comment-text", "book.not_found")
		return
	}
	state := page.NewState(request, 0, ListURL(bookID))
	handler.renderForm(writer, request, http.StatusOK, bookID, state, Input{}, page.NewErrors(formBinding))
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	bookID, _, err := ids(request, false)
	if err != nil {
		handler.pages.Failure(writer, request, err, page.DetailBody{HeaderID: "comment-header", BackURL: "/books"}, "comment-text", "book.not_found")
		return
	}
	handler.saveComment(writer, request, bookID, page.NewState(request, 0, ListURL(bookID)))
}

func (handler *Handler) editComment(writer http.ResponseWriter, request *http.Request) {
	failed := page.DetailBody{HeaderID: "comment-header", BackURL: "/books"}

	bookID, commentID, err := ids(request, true)
	if err != nil {
		handler.pages.Failure(writer, request, err, failed, "comment-text", "comment.not_found")
		return
	}
	state := page.NewState(request, commentID, ListURL(bookID))

	comment, err := handler.service.GetComment(request.Context(), bookID, commentID)
	if err != nil {
		failed.BackURL = state.PreviousURL
		handler.pages.Failure(writer, request, err, failed, "comment-text", "comment.not_found")
		return
	}

	handler.renderForm(writer, request, http.StatusOK, bookID, state, Input{Text: comment.Text}, page.NewErrors(formBinding))
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	bookID, commentID, err := ids(request, true)
	if err != nil {
		handler.pages.Failure(writer, request, err, page.DetailBody{HeaderID: "comment-header", BackURL: "/books"}, "comment-text", "comment.not_found")
		return
	}
	handler.saveComment(writer, request, bookID, page.NewState(request, commentID, ListURL(bookID)))
}

func (handler *Handler) saveComment(writer http.ResponseWriter, request *http.Request, bookID int64, state page.State) {
	input := Input{Text: requestutil.FormValue(request, FieldText)}
	errs := page.NewErrors(formBinding)

	if saved := handler.service.SaveComment(request.Context(), bookID, state, input, errs); saved != nil {
		handler.pages.Redirect(writer, request, state.PreviousURL)
		return
	}
	handler.renderForm(writer, request, http.StatusUnprocessableEntity, bookID, state, input, errs)
}

func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, status int, bookID int64, state page.State, input Input, errs *page.Errors) {
	localizer := ctxutil.GetLocalizer(request.Context())

	heading, action := localizer.T("comment.form_create"), ListURL(bookID)+"/new"
	if state.Updating() {
		heading, action = localizer.T("comment.form_edit"), editURL(bookID, state.TargetID)
	}

	handler.pages.Render(writer, request, status, page.TemplateForm, page.View{
		Title:  heading,
		Errors: errs,
		Body: page.FormBody{
			Heading:     heading,
			Action:      action,
			PreviousURL: state.PreviousURL,
			Fields: []page.Field{
				{Name: FieldText, Label: localizer.T("comment.field_text"), Kind: page.KindTextarea, Value: input.Text},
			},
		},
	})
}

func (handler *Handler) confirmDelete(writer http.ResponseWriter, request *http.Request) {
	fallback := "/books"
	if bookID, _, err := ids(request, false); err == nil {
		fallback = ListURL(bookID)
	}
	state := page.NewState(request, 0, fallback)
	handler.pages.Confirm(writer, request, ctxutil.GetLocalizer(request.Context()).T("comment.confirm_delete"), state.PreviousURL)
}

// deleteComment is the delete of the comment card. It returns to the page
// before the card whatever happens to the comment.
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	target := "/books"
	bookID, commentID, err := ids(request, true)
	if err == nil {
		target = page.NewState(request, 0, ListURL(bookID)).PreviousURL
		err = handler.service.DeleteBookComment(ctx, bookID, commentID)
	}
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "comment_delete_failed", slog.Any("error", err))
		handler.pages.Alert(writer, request, ctxutil.GetLocalizer(ctx).T("comment.delete_failed"))
	}

	handler.pages.Redirect(writer, request, target)
}

// listTarget is the comment list a list delete returns to.
func listTarget(request *http.Request) string {
	if bookID := requestutil.QueryID(request, queryBookID); bookID > 0 {
		return ListURL(bookID)
	}
	return "/books"
}

func (handler *Handler) confirmListDelete(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Confirm(writer, request, ctxutil.GetLocalizer(request.Context()).T("comment.confirm_delete"), listTarget(request))
}

// deleteFromList deletes through the flat endpoint and reloads the list.
func (handler *Handler) deleteFromList(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	commentID, err := requestutil.ID(request, paramCommentID)
	if err == nil {
		err = handler.service.DeleteComment(ctx, commentID)
	}
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "comment_delete_failed", slog.Any("error", err))
		handler.pages.Alert(writer, request, ctxutil.GetLocalizer(ctx).T("comment.list_delete_failed"))
	}

	handler.pages.Redirect(writer, request, listTarget(request))
}
