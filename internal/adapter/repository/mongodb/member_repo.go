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

// MemberRepository implements domain.MemberRepository over the members collection.
type MemberRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewMemberRepository(db *mongo.Database, appLogger *logger.Logger) *MemberRepository {
	collection := db.Collection(membersCollectionName)

	ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "memberNick", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "memberType", Value: 1}, {Key: "memberStatus", Value: 1}}},
	}, appLogger)

	return &MemberRepository{
		collection: collection,
		logger:     appLogger.Named("MemberRepository"),
	}
}

// FindByID returns the member when its status is one of statuses. Reads of
// others' profiles pass {ACTIVE, BLOCK}; DELETE members read as not found.
func (r *MemberRepository) FindByID(ctx context.Context, id primitive.ObjectID, statuses ...domain.MemberStatus) (*domain.Member, error) {
	filter := bson.M{"_id": id}
	if len(statuses) > 0 {
		filter["memberStatus"] = bson.M{"$in": statuses}
	}

	var member domain.Member
	if err := r.collection.FindOne(ctx, filter).Decode(&member); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find member", zap.Error(err), zap.String("member_id", id.Hex()))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return &member, nil
}

// memberUpdateSet folds the non-nil update fields into a $set document.
func memberUpdateSet(update domain.MemberUpdate) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.MemberStatus != nil {
		set["memberStatus"] = *update.MemberStatus
		if *update.MemberStatus == domain.MemberStatusDelete {
			set["deletedAt"] = time.Now().UTC()
		}
	}
	if update.MemberPhone != nil {
		set["memberPhone"] = *update.MemberPhone
	}
	if update.MemberNick != nil {
		set["memberNick"] = *update.MemberNick
	}
	if update.MemberFullName != nil {
		set["memberFullName"] = *update.MemberFullName
	}
	if update.MemberImage != nil {
		set["memberImage"] = *update.MemberImage
	}
	if update.MemberAddress != nil {
		set["memberAddress"] = *update.MemberAddress
	}
	if update.MemberDesc != nil {
		set["memberDesc"] = *update.MemberDesc
	}
	return set
}

func (r *MemberRepository) findOneAndUpdate(ctx context.Context, filter bson.M, update domain.MemberUpdate) (*domain.Member, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var member domain.Member
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": memberUpdateSet(update)}, opts).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUpdateFailed
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("Failed to update member", zap.Error(err), zap.String("member_id", update.ID.Hex()))
		return nil, fmt.Errorf("db findoneandupdate failed: %w", err)
	}
	return &member, nil
}

// Update applies a self-service profile update. The filter restricts the write
// to ACTIVE members, so blocked and deleted members cannot change themselves.
func (r *MemberRepository) Update(ctx context.Context, update domain.MemberUpdate) (*domain.Member, error) {
	return r.findOneAndUpdate(ctx, bson.M{
		"_id":          update.ID,
		"memberStatus": domain.MemberStatusActive,
	}, update)
}

// UpdateByAdmin applies the update with no status gate.
func (r *MemberRepository) UpdateByAdmin(ctx context.Context, update domain.MemberUpdate) (*domain.Member, error) {
	return r.findOneAndUpdate(ctx, bson.M{"_id": update.ID}, update)
}

// SearchAgents serves the public agent directory: ACTIVE agents only, optional
// case-insensitive nick search, page + count facets, and the viewer's like
// state attached to every row.
func (r *MemberRepository) SearchAgents(ctx context.Context, viewerID primitive.ObjectID, inquiry domain.AgentsInquiry) (*domain.Members, error) {
	match := newMatchBuilder().
		Eq("memberType", domain.MemberTypeAgent).
		Eq("memberStatus", domain.MemberStatusActive)
	if inquiry.Search.Text != "" {
		match.RegexI("memberNick", inquiry.Search.Text)
	}

	pipeline := mongo.Pipeline{
		matchStage(match.Build()),
		sortStage(inquiry.Sort, inquiry.Direction),
		facetStage(inquiry.Pagination, lookupMeLiked(viewerID, "$_id")),
	}
	return r.aggregateMembers(ctx, pipeline)
}

// SearchByAdmin serves the admin member query with optional status, type and
// nick-text filters and no visibility gate.
func (r *MemberRepository) SearchByAdmin(ctx context.Context, inquiry domain.MembersInquiry) (*domain.Members, error) {
	match := newMatchBuilder()
	if inquiry.Search.MemberStatus != nil {
		match.Eq("memberStatus", *inquiry.Search.MemberStatus)
	}
	if inquiry.Search.MemberType != nil {
		match.Eq("memberType", *inquiry.Search.MemberType)
	}
	if inquiry.Search.Text != "" {
		match.RegexI("memberNick", inquiry.Search.Text)
	}

	pipeline := mongo.Pipeline{
		matchStage(match.Build()),
		sortStage(inquiry.Sort, inquiry.Direction),
		facetStage(inquiry.Pagination),
	}
	return r.aggregateMembers(ctx, pipeline)
}

func (r *MemberRepository) aggregateMembers(ctx context.Context, pipeline mongo.Pipeline) (*domain.Members, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate members", zap.Error(err))
		return nil, fmt.Errorf("db aggregate failed: %w", err)
	}
	defer cursor.Close(ctx)

	var facets []memberFacet
	if err := cursor.All(ctx, &facets); err != nil {
		r.logger.Error("Failed to decode member facet", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	if len(facets) == 0 {
		return &domain.Members{List: []*domain.Member{}}, nil
	}
	return facets[0].toMembers(), nil
}

// ApplyStatsDelta atomically increments one member counter by modifier and
// returns the fresh document. The counter set is closed: anything other than
// a member counter is a programming error, reported as invalid input.
func (r *MemberRepository) ApplyStatsDelta(ctx context.Context, id primitive.ObjectID, counter domain.StatsCounter, modifier int64) (*domain.Member, error) {
	var field string
	switch counter {
	case domain.MemberViewsCounter:
		field = "memberViews"
	case domain.MemberLikesCounter:
		field = "memberLikes"
	case domain.MemberPropertiesCounter:
		field = "memberProperties"
	default:
		return nil, fmt.Errorf("%w: %s is not a member counter", domain.ErrInvalidInput, counter)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var member domain.Member
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: modifier}},
		opts,
	).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to apply member stats delta",
			zap.Error(err), zap.String("member_id", id.Hex()), zap.String("counter", counter.String()))
		return nil, fmt.Errorf("db findoneandupdate failed: %w", err)
	}
	return &member, nil
}
