package book

import (
	"context"

	"github.com/taibuivan/librarium/internal/catalog/author"
	"github.com/taibuivan/librarium/internal/catalog/genre"
	"github.com/taibuivan/librarium/internal/platform/page"
)

type Repository interface {
	ListBooks(ctx context.Context) ([]Book, error)
	GetBook(ctx context.Context, id int64) (*Book, error)
	ListAuthorOptions(ctx context.Context) ([]author.Author, error)
	ListGenreOptions(ctx context.Context) ([]genre.Genre, error)
	SaveBook(ctx context.Context, id int64, body Payload, errs *page.Errors, saveError string) *Book
	DeleteBook(ctx context.Context, id int64) error
}
