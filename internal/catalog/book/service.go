package book

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/librarium/internal/catalog/comment"
	"github.com/taibuivan/librarium/internal/platform/ctxutil"
	"github.com/taibuivan/librarium/internal/platform/page"
	"github.com/taibuivan/librarium/internal/platform/validate"
)

// Comments is what the book card needs from the comment pages.
type Comments interface {
	ListBookComments(ctx context.Context, bookID int64) ([]comment.Comment, error)
	DeleteBookComment(ctx context.Context, bookID, commentID int64) error
}

// Genres is what the book card needs from the genre pages.
type Genres interface {
	DeleteGenre(ctx context.Context, id int64) error
}

type Service struct {
	repo     Repository
	comments Comments
	genres   Genres
	logger   *slog.Logger
}

func NewService(repo Repository, comments Comments, genres Genres, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		comments: comments,
		genres:   genres,
		logger:   logger,
	}
}

func (service *Service) ListBooks(ctx context.Context) ([]Book, error) {
	return service.repo.ListBooks(ctx)
}

func (service *Service) GetBook(ctx context.Context, id int64) (*Book, error) {
	return service.repo.GetBook(ctx, id)
}

// GetDetails loads the book and its comments concurrently. The card needs
// both: either failure fails the call, the book's error taking precedence.
func (service *Service) GetDetails(ctx context.Context, id int64) (*Details, error) {
	var (
		details     Details
		bookErr     error
		commentsErr error
		group       errgroup.Group
	)

	group.Go(func() error {
		book, err := service.repo.GetBook(ctx, id)
		if err != nil {
			bookErr = err
			return err
		}
		details.Book = *book
		return nil
	})
	group.Go(func() error {
		comments, err := service.comments.ListBookComments(ctx, id)
		if err != nil {
			commentsErr = err
			return err
		}
		details.Comments = comments
		return nil
	})
	_ = group.Wait()

	if bookErr != nil {
		return nil, bookErr
	}
	if commentsErr != nil {
		return nil, commentsErr
	}
	return &details, nil
}

// LoadOptions fetches the author and genre choices concurrently. A failed
// list is reported on its own field and left empty.
func (service *Service) LoadOptions(ctx context.Context, errs *page.Errors) Options {
	localizer := ctxutil.GetLocalizer(ctx)

	var (
		options               Options
		authorsErr, genresErr error
		group                 errgroup.Group
	)
	group.Go(func() error {
		options.Authors, authorsErr = service.repo.ListAuthorOptions(ctx)
		return nil
	})
	group.Go(func() error {
		options.Genres, genresErr = service.repo.ListGenreOptions(ctx)
		return nil
	})
	_ = group.Wait()

	if authorsErr != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "book_author_options_failed", slog.Any("error", authorsErr))
		errs.ShowFieldError(FieldAuthorID, localizer.T("book.authors_load_error"))
	}
	if genresErr != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "book_genre_options_failed", slog.Any("error", genresErr))
		errs.ShowFieldError(FieldGenreIDs, localizer.T("book.genres_load_error"))
	}
	return options
}

// SaveBook validates input and persists it. A nil result means the failure
// is already shown on errs.
func (service *Service) SaveBook(ctx context.Context, state page.State, input Input, errs *page.Errors) *Book {
	localizer := ctxutil.GetLocalizer(ctx)

	validator := validate.New()
	validator.
		Text(FieldTitle, input.Title, localizer.T("book.title_required"), localizer.T("book.title_too_long")).
		Selected(FieldAuthorID, input.AuthorID, localizer.T("book.author_required")).
		NotEmpty(FieldGenreIDs, len(input.GenreIDs), localizer.T("book.genres_required"))
	if validator.HasErrors() {
		errs.Apply(validator.Fields())
		return nil
	}

	saved := service.repo.SaveBook(ctx, state.TargetID, Payload{
		Title:    strings.TrimSpace(input.Title),
		AuthorID: input.AuthorID,
		GenreIDs: input.GenreIDs,
	}, errs, localizer.T("common.save_error"))
	if saved == nil {
		return nil
	}

	if state.Updating() {
		service.logger.Info("book_updated", slog.Int64("book_id", saved.ID))
	} else {
		service.logger.Info("book_created", slog.Int64("book_id", saved.ID))
	}
	return saved
}

func (service *Service) DeleteBook(ctx context.Context, id int64) error {
	if err := service.repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.Int64("book_id", id))
	return nil
}

// DeleteGenre removes a genre listed on a book card.
func (service *Service) DeleteGenre(ctx context.Context, genreID int64) error {
	return service.genres.DeleteGenre(ctx, genreID)
}

// DeleteComment removes a comment listed on a book card.
func (service *Service) DeleteComment(ctx context.Context, bookID, commentID int64) error {
	return service.comments.DeleteBookComment(ctx, bookID, commentID)
}
