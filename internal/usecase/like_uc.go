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

// Like toggle modifiers: the signed delta the caller must apply to the
// target's like counter.
const (
	LikeApplied = int64(1)
	LikeRemoved = int64(-1)
)

// LikeUsecase owns the like/unlike toggle and favorite-listing retrieval.
type LikeUsecase struct {
	repo      domain.LikeRepository
	publisher EventPublisher
	metrics   *metrics.Manager
	logger    *logger.Logger
}

func NewLikeUsecase(repo domain.LikeRepository, publisher EventPublisher, m *metrics.Manager, log *logger.Logger) *LikeUsecase {
	return &LikeUsecase{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    log.Named("LikeUsecase"),
	}
}

// Toggle flips the liked state for (memberID, likeRefID) and returns the
// counter modifier: +1 when the like was applied, -1 when it was removed.
// Updating the denormalized counter is the caller's responsibility; toggle
// and counter update are two separate store operations, not one transaction.
func (uc *LikeUsecase) Toggle(ctx context.Context, input domain.LikeInput) (int64, error) {
	_, err := uc.repo.FindByPair(ctx, input.MemberID, input.LikeRefID)

	var modifier int64
	switch {
	case err == nil:
		if err := uc.repo.DeleteByPair(ctx, input.MemberID, input.LikeRefID); err != nil {
			return 0, fmt.Errorf("failed to remove like: %w", err)
		}
		modifier = LikeRemoved
	case errors.Is(err, domain.ErrNotFound):
		// A concurrent toggle may insert between our read and this write; the
		// unique index turns that into ErrAlreadyExists, surfaced as-is.
		if _, err := uc.repo.Insert(ctx, input); err != nil {
			return 0, fmt.Errorf("failed to create like: %w", err)
		}
		modifier = LikeApplied
	default:
		return 0, fmt.Errorf("failed to check like existence: %w", err)
	}

	direction := "like"
	if modifier == LikeRemoved {
		direction = "unlike"
	}
	uc.metrics.LikesToggledTotal.WithLabelValues(string(input.LikeGroup), direction).Inc()

	if err := uc.publisher.Publish(ctx, SubjectLikeToggled, map[string]interface{}{
		"memberId":  input.MemberID.Hex(),
		"likeRefId": input.LikeRefID.Hex(),
		"likeGroup": input.LikeGroup,
		"modifier":  modifier,
	}); err != nil {
		uc.logger.Warn("Failed to publish like.toggled event", zap.Error(err))
	}

	uc.logger.Info("Like toggled",
		zap.String("member_id", input.MemberID.Hex()),
		zap.String("like_ref_id", input.LikeRefID.Hex()),
		zap.String("direction", direction))
	return modifier, nil
}

// CheckExistence reports whether the viewer likes the target, as the at-most-
// one-element marker list that read results carry. It never mutates state.
func (uc *LikeUsecase) CheckExistence(ctx context.Context, input domain.LikeInput) ([]domain.MeLiked, error) {
	_, err := uc.repo.FindByPair(ctx, input.MemberID, input.LikeRefID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.MeLiked{}, nil
		}
		return nil, fmt.Errorf("failed to check like existence: %w", err)
	}
	return []domain.MeLiked{{
		MemberID:   input.MemberID,
		LikeRefID:  input.LikeRefID,
		MyFavorite: true,
	}}, nil
}

// GetFavoriteProperties pages through the member's liked listings.
func (uc *LikeUsecase) GetFavoriteProperties(ctx context.Context, memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) (*domain.Properties, error) {
	inquiry.Normalize()
	uc.metrics.SearchesTotal.WithLabelValues("favorites").Inc()
	return uc.repo.FavoriteProperties(ctx, memberID, inquiry)
}
