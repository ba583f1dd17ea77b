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

// ViewRepository implements domain.ViewRepository over the views collection.
// Views are append-only: a record is written once per (memberId, viewRefId)
// and never deleted.
type ViewRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewViewRepository creates the repository and ensures the dedup index.
func NewViewRepository(db *mongo.Database, appLogger *logger.Logger) *ViewRepository {
	collection := db.Collection(viewsCollectionName)

	ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "viewRefId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "viewGroup", Value: 1}, {Key: "memberId", Value: 1}, {Key: "updatedAt", Value: -1}}},
	}, appLogger)

	return &ViewRepository{
		collection: collection,
		logger:     appLogger.Named("ViewRepository"),
	}
}

// FindByPair returns the view for (memberID, viewRefID) or domain.ErrNotFound.
func (r *ViewRepository) FindByPair(ctx context.Context, memberID, viewRefID primitive.ObjectID) (*domain.View, error) {
	var view domain.View
	err := r.collection.FindOne(ctx, bson.M{"memberId": memberID, "viewRefId": viewRefID}).Decode(&view)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find view", zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return &view, nil
}

// Insert records the first view of the pair. A duplicate-key conflict means a
// concurrent request recorded it first and maps to domain.ErrAlreadyExists.
func (r *ViewRepository) Insert(ctx context.Context, input domain.ViewInput) (*domain.View, error) {
	now := time.Now().UTC()
	view := &domain.View{
		ID:        primitive.NewObjectID(),
		MemberID:  input.MemberID,
		ViewRefID: input.ViewRefID,
		ViewGroup: input.ViewGroup,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, view); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("Failed to insert view", zap.Error(err))
		return nil, fmt.Errorf("db insert failed: %w", err)
	}
	return view, nil
}

// visitedPipeline builds the visited aggregation, mirroring favoritesPipeline
// over views: the $unwind before the $facet drops views whose listing was hard-
// deleted, so dangling references reach neither the page nor the count.
func visitedPipeline(memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) mongo.Pipeline {
	match := newMatchBuilder().
		Eq("viewGroup", domain.ViewGroupProperty).
		Eq("memberId", memberID).
		Build()

	return mongo.Pipeline{
		matchStage(match),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "updatedAt", Value: -1}}}},
		lookupJoinedProperty("viewRefId", "visitedProperty"),
		unwindStage("$visitedProperty"),
		facetStage(inquiry.Pagination,
			lookupJoinedPropertyOwner("visitedProperty"),
			unwindStage("$visitedProperty.memberData"),
			replaceRootStage("$visitedProperty"),
		),
	}
}

// VisitedProperties pages through the listings the member has viewed, most
// recent first.
func (r *ViewRepository) VisitedProperties(ctx context.Context, memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) (*domain.Properties, error) {
	cursor, err := r.collection.Aggregate(ctx, visitedPipeline(memberID, inquiry))
	if err != nil {
		r.logger.Error("Failed to aggregate visited listings", zap.Error(err), zap.String("member_id", memberID.Hex()))
		return nil, fmt.Errorf("db aggregate failed: %w", err)
	}
	defer cursor.Close(ctx)

	var facets []propertyFacet
	if err := cursor.All(ctx, &facets); err != nil {
		r.logger.Error("Failed to decode visited facet", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	if len(facets) == 0 {
		return &domain.Properties{List: []*domain.Property{}}, nil
	}
	return facets[0].toProperties(), nil
}
