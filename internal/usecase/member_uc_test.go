package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/odilboooy10/nestar/internal/domain"
	"github.com/odilboooy10/nestar/internal/platform/logger"
	"github.com/odilboooy10/nestar/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memberUsecaseMocks struct {
	memberRepo *MockMemberRepository
	followRepo *MockFollowRepository
	likeRepo   *MockLikeRepository
	viewRepo   *MockViewRepository
	cache      *MockCacheRepository
	pub        *MockPublisher
}

func newMemberUsecaseForTest() (*MemberUsecase, *memberUsecaseMocks) {
	m := &memberUsecaseMocks{
		memberRepo: new(MockMemberRepository),
		followRepo: new(MockFollowRepository),
		likeRepo:   new(MockLikeRepository),
		viewRepo:   new(MockViewRepository),
		cache:      new(MockCacheRepository),
		pub:        new(MockPublisher),
	}
	log := logger.NewLogger()
	mgr := metrics.NewManager("test")
	likeUC := NewLikeUsecase(m.likeRepo, m.pub, mgr, log)
	viewUC := NewViewUsecase(m.viewRepo, m.pub, mgr, log)
	uc := NewMemberUsecase(m.memberRepo, m.followRepo, likeUC, viewUC, m.cache, 5*time.Minute, m.pub, mgr, log)
	return uc, m
}

func TestMemberUsecase_GetMember(t *testing.T) {
	ctx := context.Background()
	viewerID := primitive.NewObjectID()
	targetID := primitive.NewObjectID()

	t.Run("AnonymousViewerGetsNoDecorations", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.memberRepo.On("FindByID", ctx, targetID, domain.MemberStatusActive, domain.MemberStatusBlock).
			Return(&domain.Member{ID: targetID, MemberStatus: domain.MemberStatusActive}, nil).Once()

		member, err := uc.GetMember(ctx, primitive.NilObjectID, targetID)

		assert.NoError(t, err)
		assert.Empty(t, member.MeLiked)
		assert.Empty(t, member.MeFollowed)
		m.viewRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("SelfViewDoesNotCount", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.memberRepo.On("FindByID", ctx, targetID, domain.MemberStatusActive, domain.MemberStatusBlock).
			Return(&domain.Member{ID: targetID}, nil).Once()

		_, err := uc.GetMember(ctx, targetID, targetID)

		assert.NoError(t, err)
		m.viewRepo.AssertNotCalled(t, "FindByPair", mock.Anything, mock.Anything, mock.Anything)
		m.memberRepo.AssertNotCalled(t, "ApplyStatsDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FirstVisitBumpsViewCounterAndDecorates", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.memberRepo.On("FindByID", ctx, targetID, domain.MemberStatusActive, domain.MemberStatusBlock).
			Return(&domain.Member{ID: targetID, MemberViews: 4}, nil).Once()
		m.viewRepo.On("FindByPair", ctx, viewerID, targetID).Return(nil, domain.ErrNotFound).Once()
		m.viewRepo.On("Insert", ctx, domain.ViewInput{MemberID: viewerID, ViewRefID: targetID, ViewGroup: domain.ViewGroupMember}).
			Return(&domain.View{MemberID: viewerID, ViewRefID: targetID}, nil).Once()
		m.memberRepo.On("ApplyStatsDelta", ctx, targetID, domain.MemberViewsCounter, int64(1)).
			Return(&domain.Member{ID: targetID, MemberViews: 5}, nil).Once()
		m.likeRepo.On("FindByPair", ctx, viewerID, targetID).
			Return(&domain.Like{MemberID: viewerID, LikeRefID: targetID}, nil).Once()
		m.followRepo.On("FindByPair", ctx, viewerID, targetID).
			Return(&domain.Follow{FollowerID: viewerID, FollowingID: targetID}, nil).Once()
		m.pub.On("Publish", ctx, SubjectViewRecorded, mock.Anything).Return(nil).Once()

		member, err := uc.GetMember(ctx, viewerID, targetID)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), member.MemberViews)
		assert.Len(t, member.MeLiked, 1)
		assert.Len(t, member.MeFollowed, 1)
		assert.True(t, member.MeFollowed[0].MyFollowing)
		m.memberRepo.AssertExpectations(t)
	})

	t.Run("RepeatVisitDoesNotBumpCounter", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.memberRepo.On("FindByID", ctx, targetID, domain.MemberStatusActive, domain.MemberStatusBlock).
			Return(&domain.Member{ID: targetID, MemberViews: 5}, nil).Once()
		m.viewRepo.On("FindByPair", ctx, viewerID, targetID).
			Return(&domain.View{MemberID: viewerID, ViewRefID: targetID}, nil).Once()
		m.likeRepo.On("FindByPair", ctx, viewerID, targetID).Return(nil, domain.ErrNotFound).Once()
		m.followRepo.On("FindByPair", ctx, viewerID, targetID).Return(nil, domain.ErrNotFound).Once()

		member, err := uc.GetMember(ctx, viewerID, targetID)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), member.MemberViews)
		assert.Empty(t, member.MeLiked)
		assert.Empty(t, member.MeFollowed)
		m.memberRepo.AssertNotCalled(t, "ApplyStatsDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DeletedMemberReadsAsNotFound", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.memberRepo.On("FindByID", ctx, targetID, domain.MemberStatusActive, domain.MemberStatusBlock).
			Return(nil, domain.ErrNotFound).Once()

		_, err := uc.GetMember(ctx, viewerID, targetID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMemberUsecase_LikeTargetMember(t *testing.T) {
	ctx := context.Background()
	viewerID := primitive.NewObjectID()
	targetID := primitive.NewObjectID()

	t.Run("ToggleOnBumpsLikes", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.memberRepo.On("FindByID", ctx, targetID, domain.MemberStatusActive).
			Return(&domain.Member{ID: targetID}, nil).Once()
		m.likeRepo.On("FindByPair", ctx, viewerID, targetID).Return(nil, domain.ErrNotFound).Once()
		m.likeRepo.On("Insert", ctx, domain.LikeInput{MemberID: viewerID, LikeRefID: targetID, LikeGroup: domain.LikeGroupMember}).
			Return(&domain.Like{MemberID: viewerID, LikeRefID: targetID}, nil).Once()
		m.memberRepo.On("ApplyStatsDelta", ctx, targetID, domain.MemberLikesCounter, int64(1)).
			Return(&domain.Member{ID: targetID, MemberLikes: 1}, nil).Once()
		m.cache.On("Delete", ctx, memberCacheKey(targetID)).Return(nil).Once()
		m.pub.On("Publish", ctx, SubjectLikeToggled, mock.Anything).Return(nil).Once()

		member, err := uc.LikeTargetMember(ctx, viewerID, targetID)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), member.MemberLikes)
		m.memberRepo.AssertExpectations(t)
	})

	t.Run("BlockedTargetIsRejected", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.memberRepo.On("FindByID", ctx, targetID, domain.MemberStatusActive).
			Return(nil, domain.ErrNotFound).Once()

		_, err := uc.LikeTargetMember(ctx, viewerID, targetID)

		assert.ErrorIs(t, err, domain.ErrNotFound)
		m.likeRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("CounterMissAfterToggleIsInconsistent", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.memberRepo.On("FindByID", ctx, targetID, domain.MemberStatusActive).
			Return(&domain.Member{ID: targetID}, nil).Once()
		m.likeRepo.On("FindByPair", ctx, viewerID, targetID).Return(nil, domain.ErrNotFound).Once()
		m.likeRepo.On("Insert", ctx, mock.Anything).Return(&domain.Like{}, nil).Once()
		m.memberRepo.On("ApplyStatsDelta", ctx, targetID, domain.MemberLikesCounter, int64(1)).
			Return(nil, domain.ErrNotFound).Once()
		m.pub.On("Publish", ctx, SubjectLikeToggled, mock.Anything).Return(nil).Once()
		m.pub.On("Publish", ctx, SubjectStatsDesynced, mock.Anything).Return(nil).Once()

		_, err := uc.LikeTargetMember(ctx, viewerID, targetID)

		assert.ErrorIs(t, err, domain.ErrInconsistentState)
		m.pub.AssertExpectations(t)
	})
}

func TestMemberUsecase_GetAgents_RejectsUnknownSortKey(t *testing.T) {
	ctx := context.Background()
	uc, m := newMemberUsecaseForTest()

	inquiry := domain.AgentsInquiry{
		Pagination: domain.Pagination{Page: 1, Limit: 10},
		Sort:       "memberNick",
		Direction:  domain.DirectionDesc,
	}

	_, err := uc.GetAgents(ctx, primitive.NilObjectID, inquiry)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	m.memberRepo.AssertNotCalled(t, "SearchAgents", mock.Anything, mock.Anything, mock.Anything)
}

func TestMemberUsecase_UpdateMember_InvalidatesCacheAndPublishes(t *testing.T) {
	ctx := context.Background()
	memberID := primitive.NewObjectID()
	nick := "newNick"
	update := domain.MemberUpdate{ID: memberID, MemberNick: &nick}

	uc, m := newMemberUsecaseForTest()
	m.memberRepo.On("Update", ctx, update).Return(&domain.Member{ID: memberID, MemberNick: nick}, nil).Once()
	m.cache.On("Delete", ctx, memberCacheKey(memberID)).Return(nil).Once()
	m.pub.On("Publish", ctx, SubjectMemberUpdated, mock.Anything).Return(nil).Once()

	member, err := uc.UpdateMember(ctx, update)

	assert.NoError(t, err)
	assert.Equal(t, nick, member.MemberNick)
	m.cache.AssertExpectations(t)
	m.pub.AssertExpectations(t)
}

func TestMemberUsecase_GetCachedMember(t *testing.T) {
	ctx := context.Background()
	memberID := primitive.NewObjectID()

	t.Run("CacheHitSkipsStore", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		cached, _ := json.Marshal(&domain.Member{ID: memberID, MemberNick: "cached"})
		m.cache.On("Get", ctx, memberCacheKey(memberID)).Return(cached, nil).Once()

		member, err := uc.GetCachedMember(ctx, memberID)

		assert.NoError(t, err)
		assert.Equal(t, "cached", member.MemberNick)
		m.memberRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("CacheMissFallsBackAndRepopulates", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.cache.On("Get", ctx, memberCacheKey(memberID)).Return(nil, domain.ErrNotFound).Once()
		m.memberRepo.On("FindByID", ctx, memberID, domain.MemberStatusActive, domain.MemberStatusBlock).
			Return(&domain.Member{ID: memberID, MemberNick: "fresh"}, nil).Once()
		m.cache.On("Set", ctx, memberCacheKey(memberID), mock.Anything, 5*time.Minute).Return(nil).Once()

		member, err := uc.GetCachedMember(ctx, memberID)

		assert.NoError(t, err)
		assert.Equal(t, "fresh", member.MemberNick)
		m.cache.AssertExpectations(t)
	})
}

func TestMemberUsecase_CheckSubscription(t *testing.T) {
	ctx := context.Background()
	followerID := primitive.NewObjectID()
	followingID := primitive.NewObjectID()

	t.Run("EdgeExists", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.followRepo.On("FindByPair", ctx, followerID, followingID).
			Return(&domain.Follow{FollowerID: followerID, FollowingID: followingID}, nil).Once()

		following, err := uc.CheckSubscription(ctx, followerID, followingID)

		assert.NoError(t, err)
		assert.True(t, following)
	})

	t.Run("EdgeAbsent", func(t *testing.T) {
		uc, m := newMemberUsecaseForTest()
		m.followRepo.On("FindByPair", ctx, followerID, followingID).Return(nil, domain.ErrNotFound).Once()

		following, err := uc.CheckSubscription(ctx, followerID, followingID)

		assert.NoError(t, err)
		assert.False(t, following)
	})
}
