package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/odilboooy10/nestar/internal/domain"
	"github.com/odilboooy10/nestar/internal/platform/logger"
	"github.com/odilboooy10/nestar/internal/platform/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ViewUsecase records first-time views and serves visit history. A view is
// append-only: once a member has seen a target, repeat visits are ignored.
type ViewUsecase struct {
	repo      domain.ViewRepository
	publisher EventPublisher
	metrics   *metrics.Manager
	logger    *logger.Logger
}

func NewViewUsecase(repo domain.ViewRepository, publisher EventPublisher, m *metrics.Manager, log *logger.Logger) *ViewUsecase {
	return &ViewUsecase{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    log.Named("ViewUsecase"),
	}
}

// RecordView registers the view if the pair has not been seen before. It
// returns the new view record, or (nil, nil) when the visit is a repeat and
// nothing was written. Only a non-nil view should bump the target's counter.
func (uc *ViewUsecase) RecordView(ctx context.Context, input domain.ViewInput) (*domain.View, error) {
	_, err := uc.repo.FindByPair(ctx, input.MemberID, input.ViewRefID)
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check view existence: %w", err)
	}

	view, err := uc.repo.Insert(ctx, input)
	if err != nil {
		// Lost the race against a concurrent first view; treat it as a repeat.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to record view: %w", err)
	}

	uc.metrics.ViewsRecordedTotal.WithLabelValues(string(input.ViewGroup)).Inc()
	if err := uc.publisher.Publish(ctx, SubjectViewRecorded, map[string]interface{}{
		"memberId":  input.MemberID.Hex(),
		"viewRefId": input.ViewRefID.Hex(),
		"viewGroup": input.ViewGroup,
	}); err != nil {
		uc.logger.Warn("Failed to publish view.recorded event", zap.Error(err))
	}
	return view, nil
}

// GetVisitedProperties pages through the member's view history, most recent
// first.
func (uc *ViewUsecase) GetVisitedProperties(ctx context.Context, memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) (*domain.Properties, error) {
	inquiry.Normalize()
	uc.metrics.SearchesTotal.WithLabelValues("visited").Inc()
	return uc.repo.VisitedProperties(ctx, memberID, inquiry)
}
