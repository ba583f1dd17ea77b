package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/odilboooy10/nestar/internal/domain"
	"github.com/odilboooy10/nestar/internal/platform/logger"
	"github.com/odilboooy10/nestar/internal/platform/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// validateSort rejects sort keys outside the surface's allow-list before they
// can reach the storage layer. An empty key falls back to the default later.
func validateSort(key string, allowed []string) error {
	if key == "" || domain.SortAllowed(key, allowed) {
		return nil
	}
	return fmt.Errorf("sort key %q: %w", key, domain.ErrInvalidInput)
}

// MemberUsecase orchestrates member reads, profile updates and member-targeted
// engagement on top of the member store, the follow edge set and the
// like/view engines.
type MemberUsecase struct {
	memberRepo domain.MemberRepository
	followRepo domain.FollowRepository
	likeUC     *LikeUsecase
	viewUC     *ViewUsecase
	cache      domain.CacheRepository
	cacheTTL   time.Duration
	publisher  EventPublisher
	metrics    *metrics.Manager
	logger     *logger.Logger
}

func NewMemberUsecase(
	memberRepo domain.MemberRepository,
	followRepo domain.FollowRepository,
	likeUC *LikeUsecase,
	viewUC *ViewUsecase,
	cache domain.CacheRepository,
	cacheTTL time.Duration,
	publisher EventPublisher,
	m *metrics.Manager,
	log *logger.Logger,
) *MemberUsecase {
	return &MemberUsecase{
		memberRepo: memberRepo,
		followRepo: followRepo,
		likeUC:     likeUC,
		viewUC:     viewUC,
		cache:      cache,
		cacheTTL:   cacheTTL,
		publisher:  publisher,
		metrics:    m,
		logger:     log.Named("MemberUsecase"),
	}
}

func memberCacheKey(id primitive.ObjectID) string {
	return "member:" + id.Hex()
}

// reportStatsDesync records a counter update that could not be applied after
// the join record was already written. The gap is surfaced, not repaired here.
func (uc *MemberUsecase) reportStatsDesync(ctx context.Context, counter domain.StatsCounter, targetID primitive.ObjectID, err error) {
	uc.metrics.StatsPropagationFailuresTotal.WithLabelValues(counter.String()).Inc()
	uc.logger.Error("Stats propagation failed",
		zap.String("counter", counter.String()),
		zap.String("target_id", targetID.Hex()),
		zap.Error(err))
	if pubErr := uc.publisher.Publish(ctx, SubjectStatsDesynced, map[string]interface{}{
		"counter":  counter.String(),
		"targetId": targetID.Hex(),
		"reason":   err.Error(),
	}); pubErr != nil {
		uc.logger.Warn("Failed to publish stats.desynced event", zap.Error(pubErr))
	}
}

// GetMember returns a single member profile. ACTIVE and BLOCK members are
// visible; DELETE members read as not found. A signed-in viewer looking at
// someone else's profile registers a view (bumping memberViews on first visit)
// and gets meLiked/meFollowed markers attached.
func (uc *MemberUsecase) GetMember(ctx context.Context, viewerID, targetID primitive.ObjectID) (*domain.Member, error) {
	member, err := uc.memberRepo.FindByID(ctx, targetID, domain.MemberStatusActive, domain.MemberStatusBlock)
	if err != nil {
		return nil, err
	}

	if viewerID.IsZero() || viewerID == targetID {
		return member, nil
	}

	view, err := uc.viewUC.RecordView(ctx, domain.ViewInput{
		MemberID:  viewerID,
		ViewRefID: targetID,
		ViewGroup: domain.ViewGroupMember,
	})
	if err != nil {
		uc.logger.Warn("Failed to record member view", zap.Error(err))
	} else if view != nil {
		updated, err := uc.memberRepo.ApplyStatsDelta(ctx, targetID, domain.MemberViewsCounter, 1)
		if err != nil {
			uc.reportStatsDesync(ctx, domain.MemberViewsCounter, targetID, err)
		} else {
			member.MemberViews = updated.MemberViews
		}
	}

	meLiked, err := uc.likeUC.CheckExistence(ctx, domain.LikeInput{
		MemberID:  viewerID,
		LikeRefID: targetID,
		LikeGroup: domain.LikeGroupMember,
	})
	if err != nil {
		uc.logger.Warn("Failed to check like state", zap.Error(err))
	} else {
		member.MeLiked = meLiked
	}

	if _, err := uc.followRepo.FindByPair(ctx, viewerID, targetID); err == nil {
		member.MeFollowed = []domain.MeFollowed{{
			FollowerID:  viewerID,
			FollowingID: targetID,
			MyFollowing: true,
		}}
	} else if !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("Failed to check follow state", zap.Error(err))
	}

	return member, nil
}

// GetCachedMember serves a member snapshot from the cache, falling back to the
// store and repopulating on a miss. Decorations are never cached.
func (uc *MemberUsecase) GetCachedMember(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	key := memberCacheKey(id)
	if raw, err := uc.cache.Get(ctx, key); err == nil {
		var member domain.Member
		if err := json.Unmarshal(raw, &member); err == nil {
			return &member, nil
		}
		uc.logger.Warn("Corrupt member cache entry, evicting", zap.String("key", key))
		if err := uc.cache.Delete(ctx, key); err != nil {
			uc.logger.Warn("Failed to evict cache entry", zap.Error(err))
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("Member cache read failed", zap.Error(err))
	}

	member, err := uc.memberRepo.FindByID(ctx, id, domain.MemberStatusActive, domain.MemberStatusBlock)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(member); err == nil {
		if err := uc.cache.Set(ctx, key, raw, uc.cacheTTL); err != nil {
			uc.logger.Warn("Member cache write failed", zap.Error(err))
		}
	}
	return member, nil
}

// UpdateMember applies a self-service profile update. Only ACTIVE members can
// update themselves; a DELETE transition stamps deletedAt.
func (uc *MemberUsecase) UpdateMember(ctx context.Context, update domain.MemberUpdate) (*domain.Member, error) {
	if update.MemberStatus != nil && !update.MemberStatus.IsValid() {
		return nil, fmt.Errorf("member status %q: %w", *update.MemberStatus, domain.ErrInvalidInput)
	}

	member, err := uc.memberRepo.Update(ctx, update)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, memberCacheKey(update.ID)); err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("Failed to invalidate member cache", zap.Error(err))
	}
	if err := uc.publisher.Publish(ctx, SubjectMemberUpdated, map[string]interface{}{
		"memberId": member.ID.Hex(),
	}); err != nil {
		uc.logger.Warn("Failed to publish member.updated event", zap.Error(err))
	}

	uc.logger.Info("Member updated", zap.String("member_id", member.ID.Hex()))
	return member, nil
}

// GetAgents serves the public agent directory.
func (uc *MemberUsecase) GetAgents(ctx context.Context, viewerID primitive.ObjectID, inquiry domain.AgentsInquiry) (*domain.Members, error) {
	if err := validateSort(inquiry.Sort, domain.AgentSorts); err != nil {
		return nil, err
	}
	inquiry.Normalize()
	uc.metrics.SearchesTotal.WithLabelValues("agents").Inc()
	return uc.memberRepo.SearchAgents(ctx, viewerID, inquiry)
}

// LikeTargetMember toggles the viewer's like on the target member and applies
// the counter delta. The target must be ACTIVE. A toggle whose delta cannot
// land leaves the counter out of sync with the join records, so that failure
// is surfaced as an error rather than swallowed.
func (uc *MemberUsecase) LikeTargetMember(ctx context.Context, viewerID, targetID primitive.ObjectID) (*domain.Member, error) {
	if _, err := uc.memberRepo.FindByID(ctx, targetID, domain.MemberStatusActive); err != nil {
		return nil, err
	}

	modifier, err := uc.likeUC.Toggle(ctx, domain.LikeInput{
		MemberID:  viewerID,
		LikeRefID: targetID,
		LikeGroup: domain.LikeGroupMember,
	})
	if err != nil {
		return nil, err
	}

	member, err := uc.memberRepo.ApplyStatsDelta(ctx, targetID, domain.MemberLikesCounter, modifier)
	if err != nil {
		uc.reportStatsDesync(ctx, domain.MemberLikesCounter, targetID, err)
		return nil, fmt.Errorf("like toggled but counter update failed: %w", domain.ErrInconsistentState)
	}

	if err := uc.cache.Delete(ctx, memberCacheKey(targetID)); err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("Failed to invalidate member cache", zap.Error(err))
	}
	return member, nil
}

// CheckSubscription reports whether follower follows following.
func (uc *MemberUsecase) CheckSubscription(ctx context.Context, followerID, followingID primitive.ObjectID) (bool, error) {
	_, err := uc.followRepo.FindByPair(ctx, followerID, followingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check subscription: %w", err)
	}
	return true, nil
}

// GetAllMembersByAdmin serves the admin member query across all statuses.
func (uc *MemberUsecase) GetAllMembersByAdmin(ctx context.Context, inquiry domain.MembersInquiry) (*domain.Members, error) {
	if err := validateSort(inquiry.Sort, domain.MemberSorts); err != nil {
		return nil, err
	}
	if inquiry.Search.MemberStatus != nil && !inquiry.Search.MemberStatus.IsValid() {
		return nil, fmt.Errorf("member status %q: %w", *inquiry.Search.MemberStatus, domain.ErrInvalidInput)
	}
	inquiry.Normalize()
	uc.metrics.SearchesTotal.WithLabelValues("members_admin").Inc()
	return uc.memberRepo.SearchByAdmin(ctx, inquiry)
}

// UpdateMemberByAdmin applies an update regardless of the member's status.
func (uc *MemberUsecase) UpdateMemberByAdmin(ctx context.Context, update domain.MemberUpdate) (*domain.Member, error) {
	if update.MemberStatus != nil && !update.MemberStatus.IsValid() {
		return nil, fmt.Errorf("member status %q: %w", *update.MemberStatus, domain.ErrInvalidInput)
	}

	member, err := uc.memberRepo.UpdateByAdmin(ctx, update)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, memberCacheKey(update.ID)); err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.logger.Warn("Failed to invalidate member cache", zap.Error(err))
	}
	if err := uc.publisher.Publish(ctx, SubjectMemberUpdated, map[string]interface{}{
		"memberId": member.ID.Hex(),
	}); err != nil {
		uc.logger.Warn("Failed to publish member.updated event", zap.Error(err))
	}
	return member, nil
}
