package author

import (
	"context"

	"github.com/taibuivan/librarium/internal/platform/page"
)

type Repository interface {
	ListAuthors(ctx context.Context) ([]Author, error)
	GetAuthor(ctx context.Context, id int64) (*Author, error)
	ListAuthorBooks(ctx context.Context, id int64) ([]Book, error)
	SaveAuthor(ctx context.Context, id int64, body Payload, errs *page.Errors, saveError string) *Author
	DeleteAuthor(ctx context.Context, id int64) error
}
