package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/odilboooy10/nestar/internal/domain"
	"github.com/odilboooy10/nestar/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// LikeRepository implements domain.LikeRepository over the likes collection.
type LikeRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewLikeRepository creates the repository and ensures the uniqueness index
// the toggle relies on: two concurrent togglers both reading "absent" must not
// both manage to insert.
func NewLikeRepository(db *mongo.Database, appLogger *logger.Logger) *LikeRepository {
	collection := db.Collection(likesCollectionName)

	ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "likeRefId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		// Favorites are read newest-toggled first per member and group.
		{Keys: bson.D{{Key: "likeGroup", Value: 1}, {Key: "memberId", Value: 1}, {Key: "updatedAt", Value: -1}}},
	}, appLogger)

	return &LikeRepository{
		collection: collection,
		logger:     appLogger.Named("LikeRepository"),
	}
}

// FindByPair returns the like for (memberID, likeRefID) or domain.ErrNotFound.
func (r *LikeRepository) FindByPair(ctx context.Context, memberID, likeRefID primitive.ObjectID) (*domain.Like, error) {
	var like domain.Like
	err := r.collection.FindOne(ctx, bson.M{"memberId": memberID, "likeRefId": likeRefID}).Decode(&like)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find like", zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return &like, nil
}

// Insert creates the like record. A duplicate-key conflict (a concurrent
// toggle won the race) surfaces as domain.ErrAlreadyExists, never silently.
func (r *LikeRepository) Insert(ctx context.Context, input domain.LikeInput) (*domain.Like, error) {
	now := time.Now().UTC()
	like := &domain.Like{
		ID:        primitive.NewObjectID(),
		MemberID:  input.MemberID,
		LikeRefID: input.LikeRefID,
		LikeGroup: input.LikeGroup,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate key on like insert",
				zap.String("member_id", input.MemberID.Hex()),
				zap.String("like_ref_id", input.LikeRefID.Hex()))
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("Failed to insert like", zap.Error(err))
		return nil, fmt.Errorf("db insert failed: %w", err)
	}
	return like, nil
}

// DeleteByPair removes the like for the pair.
func (r *LikeRepository) DeleteByPair(ctx context.Context, memberID, likeRefID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"memberId": memberID, "likeRefId": likeRefID})
	if err != nil {
		r.logger.Error("Failed to delete like", zap.Error(err))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// favoritesPipeline builds the favorites aggregation: likes filtered to the
// member and listing group, newest toggled first, each joined to its listing.
// The $unwind before the $facet drops likes whose listing was hard-deleted, so
// dangling references reach neither the page nor the count.
func favoritesPipeline(memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) mongo.Pipeline {
	match := newMatchBuilder().
		Eq("likeGroup", domain.LikeGroupProperty).
		Eq("memberId", memberID).
		Build()

	return mongo.Pipeline{
		matchStage(match),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "updatedAt", Value: -1}}}},
		lookupJoinedProperty("likeRefId", "favoriteProperty"),
		unwindStage("$favoriteProperty"),
		facetStage(inquiry.Pagination,
			lookupJoinedPropertyOwner("favoriteProperty"),
			unwindStage("$favoriteProperty.memberData"),
			replaceRootStage("$favoriteProperty"),
		),
	}
}

// FavoriteProperties pages through the listings the member has liked.
func (r *LikeRepository) FavoriteProperties(ctx context.Context, memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) (*domain.Properties, error) {
	cursor, err := r.collection.Aggregate(ctx, favoritesPipeline(memberID, inquiry))
	if err != nil {
		r.logger.Error("Failed to aggregate favorites", zap.Error(err), zap.String("member_id", memberID.Hex()))
		return nil, fmt.Errorf("db aggregate failed: %w", err)
	}
	defer cursor.Close(ctx)

	var facets []propertyFacet
	if err := cursor.All(ctx, &facets); err != nil {
		r.logger.Error("Failed to decode favorites facet", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	if len(facets) == 0 {
		return &domain.Properties{List: []*domain.Property{}}, nil
	}
	return facets[0].toProperties(), nil
}
