package genre

import (
	"context"
	"log/slog"
	"strings"

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

func (service *Service) ListGenres(ctx context.Context) ([]Genre, error) {
	return service.repo.ListGenres(ctx)
}

func (service *Service) GetGenre(ctx context.Context, id int64) (*Genre, error) {
	return service.repo.GetGenre(ctx, id)
}

// SaveGenre validates input and persists it. A nil result means the failure
// is already shown on errs.
func (service *Service) SaveGenre(ctx context.Context, state page.State, input Input, errs *page.Errors) *Genre {
	localizer := ctxutil.GetLocalizer(ctx)

	validator := validate.New()
	validator.Text(FieldName, input.Name,
		localizer.T("genre.name_required"),
		localizer.T("genre.name_too_long"),
	)
	if validator.HasErrors() {
		errs.Apply(validator.Fields())
		return nil
	}

	saved := service.repo.SaveGenre(ctx, state.TargetID, Payload{
		Name: strings.TrimSpace(input.Name),
	}, errs, localizer.T("common.save_error"))
	if saved == nil {
		return nil
	}

	event := "genre_created"
	if state.Updating() {
		event = "genre_updated"
	}
	service.logger.Info(event, slog.Int64("genre_id", saved.ID))
	return saved
}

func (service *Service) DeleteGenre(ctx context.Context, id int64) error {
	if err := service.repo.DeleteGenre(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("genre_deleted", slog.Int64("genre_id", id))
	return nil
}
