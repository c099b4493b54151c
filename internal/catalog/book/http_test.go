package book_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/librarium/internal/catalog/author"
	"github.com/taibuivan/librarium/internal/catalog/book"
	"github.com/taibuivan/librarium/internal/catalog/comment"
	"github.com/taibuivan/librarium/internal/catalog/genre"
	"github.com/taibuivan/librarium/internal/platform/apiclient"
	"github.com/taibuivan/librarium/internal/platform/flash"
	"github.com/taibuivan/librarium/internal/platform/i18n"
	"github.com/taibuivan/librarium/internal/platform/middleware"
	"github.com/taibuivan/librarium/internal/platform/page"
)

var dubliners = book.Book{
	ID:     1,
	Title:  "Dubliners",
	Author: &author.Author{ID: 7, FullName: "James Joyce"},
	Genres: []genre.Genre{{ID: 2, Name: "Short stories"}, {ID: 3, Name: "Modernism"}},
}

type apiRecorder struct {
	mu     sync.Mutex
	calls  []string
	bodies map[string]map[string]any
}

func newSite(t *testing.T, api *http.ServeMux) (http.Handler, *apiRecorder) {
	t.Helper()

	recorder := &apiRecorder{bodies: make(map[string]map[string]any)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := r.Method + " " + r.URL.Path
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		recorder.mu.Lock()
		recorder.calls = append(recorder.calls, call)
		if body != nil {
			recorder.bodies[call] = body
		}
		recorder.mu.Unlock()

		api.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	bundle, err := i18n.Default("ru")
	require.NoError(t, err)

	renderer, err := page.NewRenderer(flash.NewMessenger(flash.NewMemoryStore(time.Minute), time.Minute, false))
	require.NoError(t, err)

	client := apiclient.New(server.URL, server.Client())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	comments := comment.NewService(comment.NewAPIRepository(client), logger)
	genres := genre.NewService(genre.NewAPIRepository(client), logger)
	service := book.NewService(book.NewAPIRepository(client), comments, genres, logger)

	router := chi.NewRouter()
	router.Use(middleware.Locale(bundle))
	router.Route("/books", book.NewHandler(service, renderer).RegisterRoutes)
	return router, recorder
}

func (r *apiRecorder) snapshot() ([]string, map[string]map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...), r.bodies
}

func reply(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

func send(site http.Handler, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	request := httptest.NewRequest(method, target, body)
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	request.Header.Set("Accept-Language", "en")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	site.ServeHTTP(recorder, request)
	return recorder
}

/*
TestListBooks renders authors, genres and the comments link of every book.
*/
func TestListBooks(t *testing.T) {
	api := http.NewServeMux()
	api.Handle("GET /api/v1/books", reply(http.StatusOK, []book.Book{dubliners, {ID: 4, Title: "Untitled"}}))
	site, _ := newSite(t, api)

	recorder := send(site, http.MethodGet, "/books", nil)
	html := recorder.Body.String()

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, html, `<a href="/books/1/details">Dubliners</a>`)
	assert.Contains(t, html, `<a href="/authors/7/details">James Joyce</a>`)
	assert.Contains(t, html, `<li><a href="/genres/2/details">Short stories</a></li><li><a href="/genres/3/details">Modernism</a></li>`)
	assert.Contains(t, html, `<p class="mb-0">No genres</p>`)
	assert.Contains(t, html, `<a href="/books/4/comments">Comment list</a>`)
}

/*
TestViewBook joins the book with its comments.
*/
func TestViewBook(t *testing.T) {
	t.Run("card", func(t *testing.T) {
		api := http.NewServeMux()
		api.Handle("GET /api/v1/books/1", reply(http.StatusOK, dubliners))
		api.Handle("GET /api/v1/books/1/comments", reply(http.StatusOK, []comment.Comment{}))
		site, _ := newSite(t, api)

		html := send(site, http.MethodGet, "/books/1/details", nil).Body.String()
		assert.Contains(t, html, `<p id="book-title" class="h6 card-text">Title: Dubliners</p>`)
		assert.Contains(t, html, `<p id="book-author" class="card-text">Author: James Joyce</p>`)
		assert.Contains(t, html, `<tbody id="book-genres-table-body">`)
		assert.Contains(t, html, `href="/books/1/details/genres/3/delete"`)
		assert.Contains(t, html, `<div id="book-comments"><p>No comments</p></div>`)
	})

	t.Run("comments_unavailable", func(t *testing.T) {
		api := http.NewServeMux()
		api.Handle("GET /api/v1/books/1", reply(http.StatusOK, dubliners))
		api.Handle("GET /api/v1/books/1/comments", reply(http.StatusInternalServerError, nil))
		site, _ := newSite(t, api)

		recorder := send(site, http.MethodGet, "/books/1/details", nil)
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `<p id="book-title" class="h6 card-text text-danger">Failed to load data</p>`)
	})

	t.Run("book_error_wins", func(t *testing.T) {
		api := http.NewServeMux()
		api.Handle("GET /api/v1/books/1", reply(http.StatusNotFound, map[string]string{"message": "gone"}))
		api.Handle("GET /api/v1/books/1/comments", reply(http.StatusInternalServerError, nil))
		site, _ := newSite(t, api)

		recorder := send(site, http.MethodGet, "/books/1/details", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Book not found")
	})
}

/*
TestBookForm covers option loading, selection and submission.
*/
func TestBookForm(t *testing.T) {
	authors := []author.Author{{ID: 7, FullName: "James Joyce"}, {ID: 8, FullName: "Virginia Woolf"}}
	genres := []genre.Genre{{ID: 2, Name: "Short stories"}, {ID: 3, Name: "Modernism"}}

	t.Run("validation_keeps_selection", func(t *testing.T) {
		api := http.NewServeMux()
		api.Handle("GET /api/v1/books/authors", reply(http.StatusOK, authors))
		api.Handle("GET /api/v1/books/genres", reply(http.StatusOK, genres))
		site, recorder := newSite(t, api)

		response := send(site, http.MethodPost, "/books/new", url.Values{"title": {""}, "authorId": {"8"}, "genreIds": {"3"}})
		html := response.Body.String()

		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
		assert.Contains(t, html, "Title cannot be empty")
		assert.Contains(t, html, `<option value="8" selected>Virginia Woolf</option>`)
		assert.Contains(t, html, `<option value="7">James Joyce</option>`)
		assert.Contains(t, html, `<option value="3" selected>Modernism</option>`)
		assert.Contains(t, html, `<option value="">Select an author</option>`)

		calls, _ := recorder.snapshot()
		assert.ElementsMatch(t, []string{"GET /api/v1/books/authors", "GET /api/v1/books/genres"}, calls)
	})

	t.Run("missing_selections", func(t *testing.T) {
		api := http.NewServeMux()
		api.Handle("GET /api/v1/books/authors", reply(http.StatusOK, authors))
		api.Handle("GET /api/v1/books/genres", reply(http.StatusOK, genres))
		site, _ := newSite(t, api)

		html := send(site, http.MethodPost, "/books/new", url.Values{"title": {"Ulysses"}}).Body.String()
		assert.Contains(t, html, `<div id="authorId-error" class="invalid-feedback d-block">An author must be selected</div>`)
		assert.Contains(t, html, `<div id="genreIds-error" class="invalid-feedback d-block">At least one genre must be selected</div>`)
	})

	t.Run("options_unavailable", func(t *testing.T) {
		api := http.NewServeMux()
		api.Handle("GET /api/v1/books/authors", reply(http.StatusServiceUnavailable, nil))
		api.Handle("GET /api/v1/books/genres", reply(http.StatusOK, genres))
		site, _ := newSite(t, api)

		response := send(site, http.MethodGet, "/books/new", nil)
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Contains(t, response.Body.String(), `<div id="authorId-error" class="invalid-feedback d-block">Failed to load the author list</div>`)
		assert.Contains(t, response.Body.String(), `<div id="genreIds-error" class="invalid-feedback"></div>`)
	})

	t.Run("edit_prefills_and_saves", func(t *testing.T) {
		api := http.NewServeMux()
		api.Handle("GET /api/v1/books/authors", reply(http.StatusOK, authors))
		api.Handle("GET /api/v1/books/genres", reply(http.StatusOK, genres))
		api.Handle("GET /api/v1/books/1", reply(http.StatusOK, dubliners))
		api.Handle("PUT /api/v1/books/1", reply(http.StatusOK, dubliners))
		site, recorder := newSite(t, api)

		prefilled := send(site, http.MethodGet, "/books/1/edit", nil).Body.String()
		assert.Contains(t, prefilled, `value="Dubliners"`)
		assert.Contains(t, prefilled, `<option value="7" selected>James Joyce</option>`)
		assert.Contains(t, prefilled, `<option value="2" selected>Short stories</option>`)

		saved := send(site, http.MethodPost, "/books/1/edit", url.Values{
			"title":       {" Dubliners "},
			"authorId":    {"7"},
			"genreIds":    {"3", "2", "3", "x"},
			"previousUrl": {"/books/1/details"},
		})
		assert.Equal(t, http.StatusSeeOther, saved.Code)
		assert.Equal(t, "/books/1/details", saved.Header().Get("Location"))

		_, bodies := recorder.snapshot()
		want := map[string]any{"title": "Dubliners", "authorId": float64(7), "genreIds": []any{float64(3), float64(2)}}
		if diff := cmp.Diff(want, bodies["PUT /api/v1/books/1"]); diff != "" {
			t.Errorf("payload mismatch (-want +got):\n%s", diff)
		}
	})
}

/*
TestNestedDeletes reloads the card after deleting one of its rows.
*/
func TestNestedDeletes(t *testing.T) {
	api := http.NewServeMux()
	api.Handle("DELETE /api/v1/genres/2", reply(http.StatusConflict, map[string]string{"message": "in use"}))
	api.Handle("DELETE /api/v1/books/1/comments/9", reply(http.StatusNoContent, nil))
	api.Handle("GET /api/v1/books/1", reply(http.StatusOK, dubliners))
	api.Handle("GET /api/v1/books/1/comments", reply(http.StatusOK, []comment.Comment{}))
	site, recorder := newSite(t, api)

	confirm := send(site, http.MethodGet, "/books/1/details/genres/2/delete", nil)
	assert.Contains(t, confirm.Body.String(), "Are you sure you want to delete this genre?")

	genreDelete := send(site, http.MethodPost, "/books/1/details/genres/2/delete", url.Values{})
	assert.Equal(t, "/books/1/details", genreDelete.Header().Get("Location"))

	card := send(site, http.MethodGet, "/books/1/details", nil, genreDelete.Result().Cookies()...)
	assert.Contains(t, card.Body.String(), "Failed to delete the genre")

	commentDelete := send(site, http.MethodPost, "/books/1/details/comments/9/delete", url.Values{})
	assert.Equal(t, "/books/1/details", commentDelete.Header().Get("Location"))
	assert.Empty(t, commentDelete.Result().Cookies())

	calls, _ := recorder.snapshot()
	assert.Contains(t, calls, "DELETE /api/v1/genres/2")
	assert.Contains(t, calls, "DELETE /api/v1/books/1/comments/9")
}

/*
TestViewBook_IgnoresConfirmationReferer keeps a finished nested delete out of
the card's way back.
*/
func TestViewBook_IgnoresConfirmationReferer(t *testing.T) {
	api := http.NewServeMux()
	api.Handle("GET /api/v1/books/1", reply(http.StatusOK, dubliners))
	api.Handle("GET /api/v1/books/1/comments", reply(http.StatusOK, []comment.Comment{}))
	api.Handle("DELETE /api/v1/books/1", reply(http.StatusNoContent, nil))
	site, _ := newSite(t, api)

	request := httptest.NewRequest(http.MethodGet, "/books/1/details", nil)
	request.Header.Set("Accept-Language", "en")
	request.Header.Set("Referer", "http://example.com/books/1/details/genres/2/delete")
	card := httptest.NewRecorder()
	site.ServeHTTP(card, request)

	html := card.Body.String()
	assert.Contains(t, html, `<a id="delete-link" href="/books/1/delete?previousUrl=%2Fbooks" class="btn btn-sm btn-outline-danger">`)
	assert.Contains(t, html, `<a href="/books" class="btn btn-sm btn-secondary">Back</a>`)
	assert.NotContains(t, html, "genres%2F2%2Fdelete")

	deleted := send(site, http.MethodPost, "/books/1/delete?previousUrl=%2Fbooks", url.Values{})
	assert.Equal(t, http.StatusSeeOther, deleted.Code)
	assert.Equal(t, "/books", deleted.Header().Get("Location"))
}

/*
TestDeleteBook returns to the previous page, with an alert when the API refuses.
*/
func TestDeleteBook(t *testing.T) {
	api := http.NewServeMux()
	api.Handle("DELETE /api/v1/books/1", reply(http.StatusNoContent, nil))
	api.Handle("DELETE /api/v1/books/2", reply(http.StatusNotFound, map[string]string{"message": "gone"}))
	api.Handle("GET /api/v1/books", reply(http.StatusOK, []book.Book{}))
	site, _ := newSite(t, api)

	confirm := send(site, http.MethodGet, "/books/1/delete?previousUrl=/books", nil)
	assert.Contains(t, confirm.Body.String(), "Are you sure you want to delete this book?")
	assert.Contains(t, confirm.Body.String(), `<input type="hidden" name="previousUrl" value="/books">`)

	deleted := send(site, http.MethodPost, "/books/1/delete", url.Values{"previousUrl": {"/books"}})
	assert.Equal(t, http.StatusSeeOther, deleted.Code)
	assert.Equal(t, "/books", deleted.Header().Get("Location"))
	assert.Empty(t, deleted.Result().Cookies())

	missing := send(site, http.MethodPost, "/books/2/delete", url.Values{"previousUrl": {"/books"}})
	assert.Equal(t, "/books", missing.Header().Get("Location"))

	list := send(site, http.MethodGet, "/books", nil, missing.Result().Cookies()...)
	assert.Contains(t, list.Body.String(), "Book not found or deletion failed")
}

/*
TestDeleteBook_FromList goes back to the list with the list wording.
*/
func TestDeleteBook_FromList(t *testing.T) {
	api := http.NewServeMux()
	api.Handle("GET /api/v1/books", reply(http.StatusOK, []book.Book{dubliners}))
	api.Handle("DELETE /api/v1/books/1", reply(http.StatusConflict, map[string]string{"message": "in use"}))
	site, _ := newSite(t, api)

	listed := send(site, http.MethodGet, "/books", nil).Body.String()
	assert.Contains(t, listed, `href="/books/1/delete?scope=list"`)

	failed := send(site, http.MethodPost, "/books/1/delete?scope=list", url.Values{"previousUrl": {"/books/1/details"}})
	assert.Equal(t, http.StatusSeeOther, failed.Code)
	assert.Equal(t, "/books", failed.Header().Get("Location"))

	list := send(site, http.MethodGet, "/books", nil, failed.Result().Cookies()...)
	assert.Contains(t, list.Body.String(), "Failed to delete the book")
	assert.NotContains(t, list.Body.String(), "Book not found or deletion failed")
}
