package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/odilboooy10/nestar/internal/domain"
	"github.com/odilboooy10/nestar/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// FollowRepository reads follow edges. Only the existence check is needed by
// this core; follow mutations live with the social surface.
type FollowRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewFollowRepository(db *mongo.Database, appLogger *logger.Logger) *FollowRepository {
	collection := db.Collection(followsCollectionName)

	ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "followerId", Value: 1}, {Key: "followingId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}, appLogger)

	return &FollowRepository{
		collection: collection,
		logger:     appLogger.Named("FollowRepository"),
	}
}

// FindByPair returns the follower→following edge or domain.ErrNotFound. The
// edge is asymmetric; nothing is implied about the reverse direction.
func (r *FollowRepository) FindByPair(ctx context.Context, followerID, followingID primitive.ObjectID) (*domain.Follow, error) {
	var follow domain.Follow
	err := r.collection.FindOne(ctx, bson.M{"followerId": followerID, "followingId": followingID}).Decode(&follow)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find follow edge", zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return &follow, nil
}
