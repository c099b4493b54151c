package genre

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/librarium/internal/platform/apiclient"
	"github.com/taibuivan/librarium/internal/platform/page"
)

const apiPath = "/api/v1/genres"

// APIRepository implements [Repository] against the catalog REST API.
type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (repository *APIRepository) ListGenres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	if err := repository.client.Get(ctx, apiPath, &genres); err != nil {
		return nil, fmt.Errorf("genre: list: %w", err)
	}
	return genres, nil
}

func (repository *APIRepository) GetGenre(ctx context.Context, id int64) (*Genre, error) {
	var genre Genre
	if err := repository.client.Get(ctx, fmt.Sprintf("%s/%d", apiPath, id), &genre); err != nil {
		return nil, fmt.Errorf("genre: get %d: %w", id, err)
	}
	return &genre, nil
}

func (repository *APIRepository) SaveGenre(ctx context.Context, id int64, body Payload, errs *page.Errors, saveError string) *Genre {
	request := page.SubmitRequest{
		Method:        http.MethodPost,
		URL:           apiPath,
		Payload:       body,
		FallbackField: FieldName,
		SaveError:     saveError,
	}
	if id > 0 {
		request.Method = http.MethodPut
		request.URL = fmt.Sprintf("%s/%d", apiPath, id)
	}
	return page.Submit[Genre](ctx, repository.client, request, errs)
}

// DeleteGenre removes a genre. The book detail page calls it too, for the
// genres listed on a book.
func (repository *APIRepository) DeleteGenre(ctx context.Context, id int64) error {
	if err := repository.client.Delete(ctx, fmt.Sprintf("%s/%d", apiPath, id)); err != nil {
		return fmt.Errorf("genre: delete %d: %w", id, err)
	}
	return nil
}
