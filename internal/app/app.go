package app

import (
	"context"

	"github.com/odilboooy10/nestar/internal/platform/logger"
	"github.com/odilboooy10/nestar/internal/usecase"
)

// App is the composition root: the fully wired engagement and listing core.
// Transports (gRPC, HTTP) embed it and call straight into the usecases.
type App struct {
	Like     *usecase.LikeUsecase
	View     *usecase.ViewUsecase
	Member   *usecase.MemberUsecase
	Property *usecase.PropertyUsecase

	logger *logger.Logger
}

func New(
	like *usecase.LikeUsecase,
	view *usecase.ViewUsecase,
	member *usecase.MemberUsecase,
	property *usecase.PropertyUsecase,
	log *logger.Logger,
) *App {
	return &App{
		Like:     like,
		View:     view,
		Member:   member,
		Property: property,
		logger:   log.Named("App"),
	}
}

// Run blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Engagement core ready")
	<-ctx.Done()
	a.logger.Info("Engagement core stopping")
	return ctx.Err()
}
