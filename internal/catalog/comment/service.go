package comment

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/librarium/internal/platform/ctxutil"
	"github.com/taibuivan/librarium/internal/platform/page"
	"github.com/taibuivan/librarium/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListThread loads the comments of a book together with the book itself.
// Only the comments can fail the call; without the book the thread has a
// nil Book.
func (service *Service) ListThread(ctx context.Context, bookID int64) (*Thread, error) {
	var thread Thread
	var group errgroup.Group

	group.Go(func() error {
		book, err := service.repo.GetBook(ctx, bookID)
		if err != nil {
			ctxutil.GetLogger(ctx).DebugContext(ctx, "comment_book_unavailable",
				slog.Int64("book_id", bookID),
				slog.Any("error", err),
			)
			return nil
		}
		thread.Book = book
		return nil
	})
	group.Go(func() error {
		comments, err := service.repo.ListComments(ctx, bookID)
		if err != nil {
			return err
		}
		thread.Comments = comments
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &thread, nil
}

// ListBookComments is the comment table of a book card.
func (service *Service) ListBookComments(ctx context.Context, bookID int64) ([]Comment, error) {
	return service.repo.ListBookComments(ctx, bookID)
}

func (service *Service) GetComment(ctx context.Context, bookID, commentID int64) (*Comment, error) {
	return service.repo.GetComment(ctx, bookID, commentID)
}

func (service *Service) SaveComment(ctx context.Context, bookID int64, state page.State, input Input, errs *page.Errors) *Comment {
	localizer := ctxutil.GetLocalizer(ctx)

	validator := validate.New()
	validator.Text(FieldText, input.Text,
		localizer.T("comment.text_required"),
		localizer.T("comment.text_too_long"),
	)
	if validator.HasErrors() {
		errs.Apply(validator.Fields())
		return nil
	}

	saved := service.repo.SaveComment(ctx, bookID, state.TargetID, Payload{
		Text: strings.TrimSpace(input.Text),
	}, errs, localizer.T("common.save_error"))
	if saved == nil {
		return nil
	}

	service.logger.Info("comment_saved",
		slog.Int64("book_id", bookID),
		slog.Int64("comment_id", saved.ID),
		slog.Bool("updated", state.Updating()),
	)
	return saved
}

// DeleteComment removes a comment through the flat comment endpoint.
func (service *Service) DeleteComment(ctx context.Context, commentID int64) error {
	if err := service.repo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	service.logger.Warn("comment_deleted", slog.Int64("comment_id", commentID))
	return nil
}

// DeleteBookComment removes a comment through its book.
func (service *Service) DeleteBookComment(ctx context.Context, bookID, commentID int64) error {
	if err := service.repo.DeleteBookComment(ctx, bookID, commentID); err != nil {
		return err
	}
	service.logger.Warn("comment_deleted",
		slog.Int64("book_id", bookID),
		slog.Int64("comment_id", commentID),
	)
	return nil
}
