package book

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/librarium/internal/catalog/author"
	"github.com/taibuivan/librarium/internal/catalog/genre"
	"github.com/taibuivan/librarium/internal/platform/apiclient"
	"github.com/taibuivan/librarium/internal/platform/page"
)

const apiPath = "/api/v1/books"

// APIRepository implements [Repository] against the catalog REST API.
type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (repository *APIRepository) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := repository.client.Get(ctx, apiPath, &books); err != nil {
		return nil, fmt.Errorf("book: list: %w", err)
	}
	return books, nil
}

func (repository *APIRepository) GetBook(ctx context.Context, id int64) (*Book, error) {
	var book Book
	if err := repository.client.Get(ctx, fmt.Sprintf("%s/%d", apiPath, id), &book); err != nil {
		return nil, fmt.Errorf("book: get %d: %w", id, err)
	}
	return &book, nil
}

// ListAuthorOptions returns the authors a book can be assigned to.
func (repository *APIRepository) ListAuthorOptions(ctx context.Context) ([]author.Author, error) {
	var authors []author.Author
	if err := repository.client.Get(ctx, apiPath+"/authors", &authors); err != nil {
		return nil, fmt.Errorf("book: author options: %w", err)
	}
	return authors, nil
}

// ListGenreOptions returns the genres a book can be tagged with.
func (repository *APIRepository) ListGenreOptions(ctx context.Context) ([]genre.Genre, error) {
	var genres []genre.Genre
	if err := repository.client.Get(ctx, apiPath+"/genres", &genres); err != nil {
		return nil, fmt.Errorf("book: genre options: %w", err)
	}
	return genres, nil
}

func (repository *APIRepository) SaveBook(ctx context.Context, id int64, body Payload, errs *page.Errors, saveError string) *Book {
	request := page.SubmitRequest{
		Method:        http.MethodPost,
		URL:           apiPath,
		Payload:       body,
		FallbackField: FieldTitle,
		SaveError:     saveError,
	}
	if id > 0 {
		request.Method = http.MethodPut
		request.URL = fmt.Sprintf("%s/%d", apiPath, id)
	}
	return page.Submit[Book](ctx, repository.client, request, errs)
}

func (repository *APIRepository) DeleteBook(ctx context.Context, id int64) error {
	if err := repository.client.Delete(ctx, fmt.Sprintf("%s/%d", apiPath, id)); err != nil {
		return fmt.Errorf("book: delete %d: %w", id, err)
	}
	return nil
}
