package genre

import (
	"context"

	"github.com/taibuivan/librarium/internal/platform/page"
)

type Repository interface {
	ListGenres(ctx context.Context) ([]Genre, error)
	GetGenre(ctx context.Context, id int64) (*Genre, error)
	SaveGenre(ctx context.Context, id int64, body Payload, errs *page.Errors, saveError string) *Genre
	DeleteGenre(ctx context.Context, id int64) error
}
