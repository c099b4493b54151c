package genre

import (
	"context"
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

	"github.com/taibuivan/librarium/internal/platform/apperr"
	"github.com/taibuivan/librarium/internal/platform/flash"
	"github.com/taibuivan/librarium/internal/platform/i18n"
	"github.com/taibuivan/librarium/internal/platform/middleware"
	"github.com/taibuivan/librarium/internal/platform/page"
)

// memoryRepository is an in-process [Repository].
type memoryRepository struct {
	mu      sync.Mutex
	genres  map[int64]Genre
	nextID  int64
	listErr error
	saved   []Payload
}

func newMemoryRepository(genres ...Genre) *memoryRepository {
	repo := &memoryRepository{genres: make(map[int64]Genre), nextID: 100}
	for _, genre := range genres {
		repo.genres[genre.ID] = genre
	}
	return repo
}

func (repo *memoryRepository) ListGenres(ctx context.Context) ([]Genre, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.listErr != nil {
		return nil, repo.listErr
	}
	genres := make([]Genre, 0, len(repo.genres))
	for id := int64(1); id <= repo.nextID; id++ {
		if genre, ok := repo.genres[id]; ok {
			genres = append(genres, genre)
		}
	}
	return genres, nil
}

func (repo *memoryRepository) GetGenre(ctx context.Context, id int64) (*Genre, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	genre, ok := repo.genres[id]
	if !ok {
		return nil, apperr.NotFound("Genre")
	}
	return &genre, nil
}

func (repo *memoryRepository) SaveGenre(ctx context.Context, id int64, body Payload, errs *page.Errors, saveError string) *Genre {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.saved = append(repo.saved, body)

	for _, existing := range repo.genres {
		if existing.Name == body.Name && existing.ID != id {
			errs.ShowFieldError(FieldName, "Genre already exists")
			return nil
		}
	}
	if id == 0 {
		repo.nextID++
		id = repo.nextID
	}
	genre := Genre{ID: id, Name: body.Name}
	repo.genres[id] = genre
	return &genre
}

func (repo *memoryRepository) DeleteGenre(ctx context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.genres[id]; !ok {
		return apperr.NotFound("Genre")
	}
	delete(repo.genres, id)
	return nil
}

func newTestSite(t *testing.T, repo Repository) http.Handler {
	t.Helper()

	bundle, err := i18n.Default("ru")
	require.NoError(t, err)

	renderer, err := page.NewRenderer(flash.NewMessenger(flash.NewMemoryStore(time.Minute), time.Minute, false))
	require.NoError(t, err)

	service := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Use(middleware.Locale(bundle))
	router.Route(listURL, NewHandler(service, renderer).RegisterRoutes)
	return router
}

func serve(site http.Handler, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
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

func TestListGenres(t *testing.T) {
	tests := []struct {
		name     string
		repo     *memoryRepository
		contains []string
		absent   []string
	}{
		{
			name: "rows",
			repo: newMemoryRepository(Genre{ID: 1, Name: "Poetry"}, Genre{ID: 2, Name: `Sci-Fi "hard"`}),
			contains: []string{
				`<tbody id="genres-table-body">`,
				`<a href="/genres/1/details">Poetry</a>`,
				`<a href="/genres/2/details">Sci-Fi &quot;hard&quot;</a>`,
				`href="/genres/2/edit?previousUrl=%2Fgenres"`,
			},
			absent: []string{"No genres"},
		},
		{
			name:     "empty",
			repo:     newMemoryRepository(),
			contains: []string{`<td colspan="4" class="text-center text-muted">No genres</td>`},
			absent:   []string{`class="alert alert-danger" role="alert"`},
		},
		{
			name: "failure",
			repo: func() *memoryRepository {
				repo := newMemoryRepository(Genre{ID: 1, Name: "Poetry"})
				repo.listErr = apperr.Unavailable(assert.AnError)
				return repo
			}(),
			contains: []string{`role="alert">Failed to load the genre list</div>`, "No genres"},
			absent:   []string{"Poetry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(newTestSite(t, tt.repo), http.MethodGet, "/genres", nil)
			require.Equal(t, http.StatusOK, recorder.Code)

			html := recorder.Body.String()
			for _, want := range tt.contains {
				assert.Contains(t, html, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, html, unwanted)
			}
		})
	}
}

func TestViewGenre(t *testing.T) {
	site := newTestSite(t, newMemoryRepository(Genre{ID: 3, Name: "Drama & Tragedy"}))

	recorder := serve(site, http.MethodGet, "/genres/3/details?previousUrl=/books/1/details", nil)
	html := recorder.Body.String()
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, html, `<h2 id="genre-header" class="h5 mb-0">Genre card — #3</h2>`)
	assert.Contains(t, html, `<p id="genre-name" class="h6 card-text">Genre name: Drama &amp; Tragedy</p>`)
	assert.Contains(t, html, `id="delete-link" href="/genres/3/delete?previousUrl=%2Fbooks%2F1%2Fdetails"`)

	missing := serve(site, http.MethodGet, "/genres/4/details", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Contains(t, missing.Body.String(), `<p id="genre-name" class="h6 card-text text-danger">Genre not found</p>`)
	assert.NotContains(t, missing.Body.String(), `id="edit-link"`)

	malformed := serve(site, http.MethodGet, "/genres/abc/details", nil)
	assert.Equal(t, http.StatusNotFound, malformed.Code)
}

func TestSaveGenre(t *testing.T) {
	repo := newMemoryRepository(Genre{ID: 1, Name: "Poetry"})
	site := newTestSite(t, repo)

	t.Run("edit_prefills", func(t *testing.T) {
		recorder := serve(site, http.MethodGet, "/genres/1/edit", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `value="Poetry"`)
		assert.Contains(t, recorder.Body.String(), `action="/genres/1/edit"`)
	})

	t.Run("too_long", func(t *testing.T) {
		recorder := serve(site, http.MethodPost, "/genres/new", url.Values{"name": {strings.Repeat("ж", 256)}})
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Genre name cannot be longer than 255 characters")
	})

	t.Run("duplicate", func(t *testing.T) {
		recorder := serve(site, http.MethodPost, "/genres/new", url.Values{"name": {"Poetry"}})
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `<div id="name-error" class="invalid-feedback d-block">Genre already exists</div>`)
	})

	t.Run("create", func(t *testing.T) {
		recorder := serve(site, http.MethodPost, "/genres/new", url.Values{"name": {" Prose  "}, "previousUrl": {"https://evil.example/"}})
		assert.Equal(t, http.StatusSeeOther, recorder.Code)
		assert.Equal(t, "/genres", recorder.Header().Get("Location"))
	})

	want := []Payload{{Name: "Poetry"}, {Name: "Prose"}}
	if diff := cmp.Diff(want, repo.saved); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteGenre(t *testing.T) {
	repo := newMemoryRepository(Genre{ID: 1, Name: "Poetry"})
	site := newTestSite(t, repo)

	// 1. Detail delete of a missing genre returns to the previous page with an alert
	failed := serve(site, http.MethodPost, "/genres/9/delete", url.Values{"previousUrl": {"/books/2/details"}})
	assert.Equal(t, http.StatusSeeOther, failed.Code)
	assert.Equal(t, "/books/2/details", failed.Header().Get("Location"))

	next := serve(site, http.MethodGet, "/genres", nil, failed.Result().Cookies()...)
	assert.Contains(t, next.Body.String(), "Genre not found or deletion failed")

	// 2. The alert is shown once
	again := serve(site, http.MethodGet, "/genres", nil, failed.Result().Cookies()...)
	assert.NotContains(t, again.Body.String(), "deletion failed")

	// 3. List delete reloads the list
	ok := serve(site, http.MethodPost, "/genres/1/delete?scope=list", url.Values{})
	assert.Equal(t, "/genres", ok.Header().Get("Location"))
	assert.Empty(t, repo.genres)
}
