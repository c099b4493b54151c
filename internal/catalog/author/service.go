package author

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/librarium/internal/platform/ctxutil"
	"github.com/taibuivan/librarium/internal/platform/page"
	"github.com/taibuivan/librarium/internal/platform/validate"
)

// maxBookFetches bounds the per-row book requests of the author list.
const maxBookFetches = 8

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

// ListAuthors returns every author with their books. The rows are complete
// only once every per-author fetch has finished; a failed fetch leaves that
// author with no books.
func (service *Service) ListAuthors(ctx context.Context) ([]Row, error) {
	authors, err := service.repo.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(authors))
	var group errgroup.Group
	group.SetLimit(maxBookFetches)

	for i, author := range authors {
		group.Go(func() error {
			books, err := service.repo.ListAuthorBooks(ctx, author.ID)
			if err != nil {
				ctxutil.GetLogger(ctx).DebugContext(ctx, "author_books_unavailable",
					slog.Int64("author_id", author.ID),
					slog.Any("error", err),
				)
				books = nil
			}
			rows[i] = Row{Author: author, Books: books}
			return nil
		})
	}
	_ = group.Wait()

	return rows, nil
}

// GetDetails loads the author and their books concurrently. Only the author
// fetch can fail the page.
func (service *Service) GetDetails(ctx context.Context, id int64) (*Details, error) {
	var details Details
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		author, err := service.repo.GetAuthor(groupCtx, id)
		if err != nil {
			return err
		}
		details.Author = *author
		return nil
	})
	group.Go(func() error {
		books, err := service.repo.ListAuthorBooks(groupCtx, id)
		if err != nil {
			ctxutil.GetLogger(ctx).DebugContext(ctx, "author_books_unavailable",
				slog.Int64("author_id", id),
				slog.Any("error", err),
			)
			return nil
		}
		details.Books = books
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return &details, nil
}

func (service *Service) GetAuthor(ctx context.Context, id int64) (*Author, error) {
	return service.repo.GetAuthor(ctx, id)
}

// SaveAuthor validates input and persists it. It returns nil when anything
// failed; the reason is then visible on errs.
func (service *Service) SaveAuthor(ctx context.Context, state page.State, input Input, errs *page.Errors) *Author {
	localizer := ctxutil.GetLocalizer(ctx)

	validator := validate.New()
	validator.Text(FieldFullName, input.FullName,
		localizer.T("author.fullname_required"),
		localizer.T("author.fullname_too_long"),
	)
	if validator.HasErrors() {
		errs.Apply(validator.Fields())
		return nil
	}

	saved := service.repo.SaveAuthor(ctx, state.TargetID, Payload{
		FullName: strings.TrimSpace(input.FullName),
	}, errs, localizer.T("common.save_error"))
	if saved == nil {
		return nil
	}

	if state.Updating() {
		service.logger.Info("author_updated", slog.Int64("author_id", saved.ID))
	} else {
		service.logger.Info("author_created", slog.Int64("author_id", saved.ID))
	}
	return saved
}

func (service *Service) DeleteAuthor(ctx context.Context, id int64) error {
	if err := service.repo.DeleteAuthor(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.Int64("author_id", id))
	return nil
}
