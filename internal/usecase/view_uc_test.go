package usecase

import (
	"context"
	"testing"

	"github.com/odilboooy10/nestar/internal/domain"
	"github.com/odilboooy10/nestar/internal/platform/logger"
	"github.com/odilboooy10/nestar/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newViewUsecaseForTest(repo *MockViewRepository, pub *MockPublisher) *ViewUsecase {
	return NewViewUsecase(repo, pub, metrics.NewManager("test"), logger.NewLogger())
}

func TestViewUsecase_RecordView(t *testing.T) {
	ctx := context.Background()
	memberID := primitive.NewObjectID()
	targetID := primitive.NewObjectID()
	input := domain.ViewInput{
		MemberID:  memberID,
		ViewRefID: targetID,
		ViewGroup: domain.ViewGroupProperty,
	}

	t.Run("FirstViewIsRecorded", func(t *testing.T) {
		mockRepo := new(MockViewRepository)
		mockPub := new(MockPublisher)
		uc := newViewUsecaseForTest(mockRepo, mockPub)

		mockRepo.On("FindByPair", ctx, memberID, targetID).Return(nil, domain.ErrNotFound).Once()
		mockRepo.On("Insert", ctx, input).Return(&domain.View{
			ID:        primitive.NewObjectID(),
			MemberID:  memberID,
			ViewRefID: targetID,
			ViewGroup: domain.ViewGroupProperty,
		}, nil).Once()
		mockPub.On("Publish", ctx, SubjectViewRecorded, mock.Anything).Return(nil).Once()

		view, err := uc.RecordView(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, view)
		mockRepo.AssertExpectations(t)
		mockPub.AssertExpectations(t)
	})

	t.Run("RepeatViewIsIgnored", func(t *testing.T) {
		mockRepo := new(MockViewRepository)
		mockPub := new(MockPublisher)
		uc := newViewUsecaseForTest(mockRepo, mockPub)

		mockRepo.On("FindByPair", ctx, memberID, targetID).Return(&domain.View{
			MemberID:  memberID,
			ViewRefID: targetID,
		}, nil).Once()

		view, err := uc.RecordView(ctx, input)

		assert.NoError(t, err)
		assert.Nil(t, view)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("LostInsertRaceReadsAsRepeat", func(t *testing.T) {
		mockRepo := new(MockViewRepository)
		mockPub := new(MockPublisher)
		uc := newViewUsecaseForTest(mockRepo, mockPub)

		mockRepo.On("FindByPair", ctx, memberID, targetID).Return(nil, domain.ErrNotFound).Once()
		mockRepo.On("Insert", ctx, input).Return(nil, domain.ErrAlreadyExists).Once()

		view, err := uc.RecordView(ctx, input)

		assert.NoError(t, err)
		assert.Nil(t, view)
		mockPub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestViewUsecase_GetVisitedProperties_NormalizesPagination(t *testing.T) {
	ctx := context.Background()
	memberID := primitive.NewObjectID()

	mockRepo := new(MockViewRepository)
	uc := newViewUsecaseForTest(mockRepo, new(MockPublisher))

	normalized := domain.OrdinaryInquiry{Pagination: domain.Pagination{Page: 1, Limit: 100}}
	mockRepo.On("VisitedProperties", ctx, memberID, normalized).Return(&domain.Properties{
		List:     []*domain.Property{},
		Metadata: domain.TotalCounter{Total: 0},
	}, nil).Once()

	_, err := uc.GetVisitedProperties(ctx, memberID, domain.OrdinaryInquiry{Pagination: domain.Pagination{Page: 1, Limit: 500}})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
