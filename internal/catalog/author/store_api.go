package author

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/librarium/internal/platform/apiclient"
	"github.com/taibuivan/librarium/internal/platform/page"
)

const apiPath = "/api/v1/authors"

// APIRepository implements [Repository] against the catalog REST API.
type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (repository *APIRepository) ListAuthors(ctx context.Context) ([]Author, error) {
	var authors []Author
	if err := repository.client.Get(ctx, apiPath, &authors); err != nil {
		return nil, fmt.Errorf("author: list: %w", err)
	}
	return authors, nil
}

func (repository *APIRepository) GetAuthor(ctx context.Context, id int64) (*Author, error) {
	var author Author
	if err := repository.client.Get(ctx, fmt.Sprintf("%s/%d", apiPath, id), &author); err != nil {
		return nil, fmt.Errorf("author: get %d: %w", id, err)
	}
	return &author, nil
}

func (repository *APIRepository) ListAuthorBooks(ctx context.Context, id int64) ([]Book, error) {
	var books []Book
	if err := repository.client.Get(ctx, fmt.Sprintf("%s/%d/books", apiPath, id), &books); err != nil {
		return nil, fmt.Errorf("author: books of %d: %w", id, err)
	}
	return books, nil
}

// SaveAuthor creates the author when id is zero and updates it otherwise.
func (repository *APIRepository) SaveAuthor(ctx context.Context, id int64, body Payload, errs *page.Errors, saveError string) *Author {
	request := page.SubmitRequest{
		Method:        http.MethodPost,
		URL:           apiPath,
		Payload:       body,
		FallbackField: FieldFullName,
		SaveError:     saveError,
	}
	if id > 0 {
		request.Method = http.MethodPut
		request.URL = fmt.Sprintf("%s/%d", apiPath, id)
	}
	return page.Submit[Author](ctx, repository.client, request, errs)
}

func (repository *APIRepository) DeleteAuthor(ctx context.Context, id int64) error {
	if err := repository.client.Delete(ctx, fmt.Sprintf("%s/%d", apiPath, id)); err != nil {
		return fmt.Errorf("author: delete %d: %w", id, err)
	}
	return nil
}
