package comment

import (
	"context"

	"github.com/taibuivan/librarium/internal/platform/page"
)

type Repository interface {
	GetBook(ctx context.Context, bookID int64) (*BookRef, error)
	ListComments(ctx context.Context, bookID int64) ([]Comment, error)
	ListBookComments(ctx context.Context, bookID int64) ([]Comment, error)
	GetComment(ctx context.Context, bookID, commentID int64) (*Comment, error)
	SaveComment(ctx context.Context, bookID, commentID int64, body Payload, errs *page.Errors, saveError string) *Comment
	DeleteComment(ctx context.Context, commentID int64) error
	DeleteBookComment(ctx context.Context, bookID, commentID int64) error
}
