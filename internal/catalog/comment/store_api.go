package comment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/librarium/internal/platform/apiclient"
	"github.com/taibuivan/librarium/internal/platform/page"
)

const (
	booksPath    = "/api/v1/books"
	commentsPath = "/api/v1/comments"
)

// APIRepository implements [Repository] against the catalog REST API.
//
// Comments are reachable two ways: book-scoped under /books/{id}/comments,
// and flat under /comments for the comment list page.
type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func bookCommentsPath(bookID int64) string {
	return fmt.Sprintf("%s/%d/comments", booksPath, bookID)
}

func (repository *APIRepository) GetBook(ctx context.Context, bookID int64) (*BookRef, error) {
	var book BookRef
	if err := repository.client.Get(ctx, fmt.Sprintf("%s/%d", booksPath, bookID), &book); err != nil {
		return nil, fmt.Errorf("comment: book %d: %w", bookID, err)
	}
	return &book, nil
}

func (repository *APIRepository) ListComments(ctx context.Context, bookID int64) ([]Comment, error) {
	var comments []Comment
	path := page.WithQuery(commentsPath, queryBookID, fmt.Sprint(bookID))
	if err := repository.client.Get(ctx, path, &comments); err != nil {
		return nil, fmt.Errorf("comment: list of book %d: %w", bookID, err)
	}
	return comments, nil
}

func (repository *APIRepository) ListBookComments(ctx context.Context, bookID int64) ([]Comment, error) {
	var comments []Comment
	if err := repository.client.Get(ctx, bookCommentsPath(bookID), &comments); err != nil {
		return nil, fmt.Errorf("comment: comments of book %d: %w", bookID, err)
	}
	return comments, nil
}

func (repository *APIRepository) GetComment(ctx context.Context, bookID, commentID int64) (*Comment, error) {
	var comment Comment
	if err := repository.client.Get(ctx, fmt.Sprintf("%s/%d", bookCommentsPath(bookID), commentID), &comment); err != nil {
		return nil, fmt.Errorf("comment: get %d: %w", commentID, err)
	}
	return &comment, nil
}

func (repository *APIRepository) SaveComment(ctx context.Context, bookID, commentID int64, body Payload, errs *page.Errors, saveError string) *Comment {
	request := page.SubmitRequest{
		Method:        http.MethodPost,
		URL:           bookCommentsPath(bookID),
		Payload:       body,
		FallbackField: FieldText,
		SaveError:     saveError,
	}
	if commentID > 0 {
		request.Method = http.MethodPut
		request.URL = fmt.Sprintf("%s/%d", bookCommentsPath(bookID), commentID)
	}
	return page.Submit[Comment](ctx, repository.client, request, errs)
}

func (repository *APIRepository) DeleteComment(ctx context.Context, commentID int64) error {
	if err := repository.client.Delete(ctx, fmt.Sprintf("%s/%d", commentsPath, commentID)); err != nil {
		return fmt.Errorf("comment: delete %d: %w", commentID, err)
	}
	return nil
}

func (repository *APIRepository) DeleteBookComment(ctx context.Context, bookID, commentID int64) error {
	if err := repository.client.Delete(ctx, fmt.Sprintf("%s/%d", bookCommentsPath(bookID), commentID)); err != nil {
		return fmt.Errorf("comment: delete %d of book %d: %w", commentID, bookID, err)
	}
	return nil
}
