package usecase

import (
	"context"
	"time"

	"github.com/odilboooy10/nestar/internal/domain"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockLikeRepository struct{ mock.Mock }

func (m *MockLikeRepository) FindByPair(ctx context.Context, memberID, likeRefID primitive.ObjectID) (*domain.Like, error) {
	args := m.Called(ctx, memberID, likeRefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Like), args.Error(1)
}
func (m *MockLikeRepository) Insert(ctx context.Context, input domain.LikeInput) (*domain.Like, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Like), args.Error(1)
}
func (m *MockLikeRepository) DeleteByPair(ctx context.Context, memberID, likeRefID primitive.ObjectID) error {
	args := m.Called(ctx, memberID, likeRefID)
	return args.Error(0)
}
func (m *MockLikeRepository) FavoriteProperties(ctx context.Context, memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) (*domain.Properties, error) {
	args := m.Called(ctx, memberID, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Properties), args.Error(1)
}

type MockViewRepository struct{ mock.Mock }

func (m *MockViewRepository) FindByPair(ctx context.Context, memberID, viewRefID primitive.ObjectID) (*domain.View, error) {
	args := m.Called(ctx, memberID, viewRefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.View), args.Error(1)
}
func (m *MockViewRepository) Insert(ctx context.Context, input domain.ViewInput) (*domain.View, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.View), args.Error(1)
}
func (m *MockViewRepository) VisitedProperties(ctx context.Context, memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) (*domain.Properties, error) {
	args := m.Called(ctx, memberID, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Properties), args.Error(1)
}

type MockFollowRepository struct{ mock.Mock }

func (m *MockFollowRepository) FindByPair(ctx context.Context, followerID, followingID primitive.ObjectID) (*domain.Follow, error) {
	args := m.Called(ctx, followerID, followingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Follow), args.Error(1)
}

type MockMemberRepository struct{ mock.Mock }

func (m *MockMemberRepository) FindByID(ctx context.Context, id primitive.ObjectID, statuses ...domain.MemberStatus) (*domain.Member, error) {
	callArgs := make([]interface{}, 0, len(statuses)+2)
	callArgs = append(callArgs, ctx, id)
	for _, s := range statuses {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepository) Update(ctx context.Context, update domain.MemberUpdate) (*domain.Member, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepository) UpdateByAdmin(ctx context.Context, update domain.MemberUpdate) (*domain.Member, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepository) SearchAgents(ctx context.Context, viewerID primitive.ObjectID, inquiry domain.AgentsInquiry) (*domain.Members, error) {
	args := m.Called(ctx, viewerID, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Members), args.Error(1)
}
func (m *MockMemberRepository) SearchByAdmin(ctx context.Context, inquiry domain.MembersInquiry) (*domain.Members, error) {
	args := m.Called(ctx, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Members), args.Error(1)
}
func (m *MockMemberRepository) ApplyStatsDelta(ctx context.Context, id primitive.ObjectID, counter domain.StatsCounter, modifier int64) (*domain.Member, error) {
	args := m.Called(ctx, id, counter, modifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

type MockPropertyRepository struct{ mock.Mock }

func (m *MockPropertyRepository) Insert(ctx context.Context, input domain.PropertyInput) (*domain.Property, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepository) FindByID(ctx context.Context, id primitive.ObjectID, statuses ...domain.PropertyStatus) (*domain.Property, error) {
	callArgs := make([]interface{}, 0, len(statuses)+2)
	callArgs = append(callArgs, ctx, id)
	for _, s := range statuses {
		callArgs = append(callArgs, s)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepository) UpdateByOwner(ctx context.Context, ownerID primitive.ObjectID, update domain.PropertyUpdate) (*domain.Property, error) {
	args := m.Called(ctx, ownerID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepository) UpdateByAdmin(ctx context.Context, update domain.PropertyUpdate) (*domain.Property, error) {
	args := m.Called(ctx, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepository) HardDelete(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepository) Search(ctx context.Context, viewerID primitive.ObjectID, inquiry domain.PropertiesInquiry) (*domain.Properties, error) {
	args := m.Called(ctx, viewerID, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Properties), args.Error(1)
}
func (m *MockPropertyRepository) SearchByAgent(ctx context.Context, ownerID primitive.ObjectID, inquiry domain.AgentPropertiesInquiry) (*domain.Properties, error) {
	args := m.Called(ctx, ownerID, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Properties), args.Error(1)
}
func (m *MockPropertyRepository) SearchByAdmin(ctx context.Context, inquiry domain.AllPropertiesInquiry) (*domain.Properties, error) {
	args := m.Called(ctx, inquiry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Properties), args.Error(1)
}
func (m *MockPropertyRepository) ApplyStatsDelta(ctx context.Context, id primitive.ObjectID, counter domain.StatsCounter, modifier int64) (*domain.Property, error) {
	args := m.Called(ctx, id, counter, modifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}
