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

// PropertyRepository implements domain.PropertyRepository over the properties
// collection.
type PropertyRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewPropertyRepository(db *mongo.Database, appLogger *logger.Logger) *PropertyRepository {
	collection := db.Collection(propertiesCollectionName)

	ensureIndexes(collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "propertyStatus", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "memberId", Value: 1}, {Key: "propertyStatus", Value: 1}}},
		{Keys: bson.D{{Key: "propertyLocation", Value: 1}, {Key: "propertyStatus", Value: 1}}},
	}, appLogger)

	return &PropertyRepository{
		collection: collection,
		logger:     appLogger.Named("PropertyRepository"),
	}
}

// Insert stores a new listing in ACTIVE status with zeroed counters.
func (r *PropertyRepository) Insert(ctx context.Context, input domain.PropertyInput) (*domain.Property, error) {
	now := time.Now().UTC()
	property := &domain.Property{
		ID:               primitive.NewObjectID(),
		PropertyType:     input.PropertyType,
		PropertyStatus:   domain.PropertyStatusActive,
		PropertyLocation: input.PropertyLocation,
		PropertyAddress:  input.PropertyAddress,
		PropertyTitle:    input.PropertyTitle,
		PropertyPrice:    input.PropertyPrice,
		PropertySquare:   input.PropertySquare,
		PropertyBeds:     input.PropertyBeds,
		PropertyRooms:    input.PropertyRooms,
		PropertyImages:   input.PropertyImages,
		PropertyDesc:     input.PropertyDesc,
		PropertyBarter:   input.PropertyBarter,
		PropertyRent:     input.PropertyRent,
		MemberID:         input.MemberID,
		ConstructedAt:    input.ConstructedAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if property.PropertyImages == nil {
		property.PropertyImages = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, property); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("Failed to insert property", zap.Error(err), zap.String("member_id", input.MemberID.Hex()))
		return nil, fmt.Errorf("db insert failed: %w", err)
	}
	r.logger.Info("Property created", zap.String("property_id", property.ID.Hex()), zap.String("member_id", input.MemberID.Hex()))
	return property, nil
}

// FindByID returns the listing when its status is one of statuses; an empty
// status list matches any status.
func (r *PropertyRepository) FindByID(ctx context.Context, id primitive.ObjectID, statuses ...domain.PropertyStatus) (*domain.Property, error) {
	filter := bson.M{"_id": id}
	if len(statuses) > 0 {
		filter["propertyStatus"] = bson.M{"$in": statuses}
	}

	var property domain.Property
	if err := r.collection.FindOne(ctx, filter).Decode(&property); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find property", zap.Error(err), zap.String("property_id", id.Hex()))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return &property, nil
}

// propertyUpdateSet folds the non-nil update fields into a $set document,
// stamping soldAt/deletedAt in the same write as the status transition.
func propertyUpdateSet(update domain.PropertyUpdate) bson.M {
	now := time.Now().UTC()
	set := bson.M{"updatedAt": now}
	if update.PropertyStatus != nil {
		set["propertyStatus"] = *update.PropertyStatus
		switch *update.PropertyStatus {
		case domain.PropertyStatusSold:
			set["soldAt"] = now
		case domain.PropertyStatusDelete:
			set["deletedAt"] = now
		}
	}
	if update.PropertyType != nil {
		set["propertyType"] = *update.PropertyType
	}
	if update.PropertyLocation != nil {
		set["propertyLocation"] = *update.PropertyLocation
	}
	if update.PropertyAddress != nil {
		set["propertyAddress"] = *update.PropertyAddress
	}
	if update.PropertyTitle != nil {
		set["propertyTitle"] = *update.PropertyTitle
	}
	if update.PropertyPrice != nil {
		set["propertyPrice"] = *update.PropertyPrice
	}
	if update.PropertySquare != nil {
		set["propertySquare"] = *update.PropertySquare
	}
	if update.PropertyBeds != nil {
		set["propertyBeds"] = *update.PropertyBeds
	}
	if update.PropertyRooms != nil {
		set["propertyRooms"] = *update.PropertyRooms
	}
	if update.PropertyImages != nil {
		set["propertyImages"] = update.PropertyImages
	}
	if update.PropertyDesc != nil {
		set["propertyDesc"] = *update.PropertyDesc
	}
	if update.PropertyBarter != nil {
		set["propertyBarter"] = *update.PropertyBarter
	}
	if update.PropertyRent != nil {
		set["propertyRent"] = *update.PropertyRent
	}
	if update.ConstructedAt != nil {
		set["constructedAt"] = *update.ConstructedAt
	}
	return set
}

func (r *PropertyRepository) findOneAndUpdate(ctx context.Context, filter bson.M, update domain.PropertyUpdate) (*domain.Property, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var property domain.Property
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": propertyUpdateSet(update)}, opts).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUpdateFailed
		}
		r.logger.Error("Failed to update property", zap.Error(err), zap.String("property_id", update.ID.Hex()))
		return nil, fmt.Errorf("db findoneandupdate failed: %w", err)
	}
	return &property, nil
}

// UpdateByOwner applies the update only when ownerID owns the listing and it
// is still ACTIVE; SOLD and DELETE listings cannot be edited through here.
func (r *PropertyRepository) UpdateByOwner(ctx context.Context, ownerID primitive.ObjectID, update domain.PropertyUpdate) (*domain.Property, error) {
	return r.findOneAndUpdate(ctx, bson.M{
		"_id":            update.ID,
		"memberId":       ownerID,
		"propertyStatus": domain.PropertyStatusActive,
	}, update)
}

// UpdateByAdmin is UpdateByOwner without the owner filter; the ACTIVE gate
// still applies, so terminal listings stay terminal.
func (r *PropertyRepository) UpdateByAdmin(ctx context.Context, update domain.PropertyUpdate) (*domain.Property, error) {
	return r.findOneAndUpdate(ctx, bson.M{
		"_id":            update.ID,
		"propertyStatus": domain.PropertyStatusActive,
	}, update)
}

// HardDelete physically removes a listing, but only one already soft-deleted.
func (r *PropertyRepository) HardDelete(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	var property domain.Property
	err := r.collection.FindOneAndDelete(ctx, bson.M{
		"_id":            id,
		"propertyStatus": domain.PropertyStatusDelete,
	}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to hard-delete property", zap.Error(err), zap.String("property_id", id.Hex()))
		return nil, fmt.Errorf("db findoneanddelete failed: %w", err)
	}
	r.logger.Info("Property removed", zap.String("property_id", id.Hex()))
	return &property, nil
}

// searchMatch folds the public search filter into one ANDed match document.
// Each predicate is attached only when the inquiry provides it; the boolean
// option flags OR together as a single "any of these" group.
func searchMatch(search domain.PropertySearch) *matchBuilder {
	match := newMatchBuilder()
	if !search.MemberID.IsZero() {
		match.Eq("memberId", search.MemberID)
	}
	if len(search.LocationList) > 0 {
		match.In("propertyLocation", search.LocationList)
	}
	if len(search.RoomsList) > 0 {
		match.In("propertyRooms", search.RoomsList)
	}
	if len(search.BedsList) > 0 {
		match.In("propertyBeds", search.BedsList)
	}
	if len(search.TypeList) > 0 {
		match.In("propertyType", search.TypeList)
	}
	if search.PricesRange != nil {
		match.Range("propertyPrice", *search.PricesRange)
	}
	if search.SquaresRange != nil {
		match.Range("propertySquare", *search.SquaresRange)
	}
	if search.PeriodsRange != nil {
		match.TimeRange("createdAt", search.PeriodsRange.Start, search.PeriodsRange.End)
	}
	if search.Text != "" {
		match.RegexI("propertyTitle", search.Text)
	}
	if len(search.Options) > 0 {
		match.AnyTrue(search.Options)
	}
	return match
}

// Search serves the public browse query: ACTIVE listings only, all provided
// predicates ANDed, one round trip returning the enriched page slice and the
// total count as sibling facets.
func (r *PropertyRepository) Search(ctx context.Context, viewerID primitive.ObjectID, inquiry domain.PropertiesInquiry) (*domain.Properties, error) {
	match := searchMatch(inquiry.Search).
		Eq("propertyStatus", domain.PropertyStatusActive)

	pipeline := mongo.Pipeline{
		matchStage(match.Build()),
		sortStage(inquiry.Sort, inquiry.Direction),
		facetStage(inquiry.Pagination,
			lookupMeLiked(viewerID, "$_id"),
			lookupMember(),
			unwindStage("$memberData"),
		),
	}
	return r.aggregateProperties(ctx, pipeline)
}

// SearchByAgent serves an agent browsing their own listings. Without an
// explicit status the filter defaults to "anything but DELETE".
func (r *PropertyRepository) SearchByAgent(ctx context.Context, ownerID primitive.ObjectID, inquiry domain.AgentPropertiesInquiry) (*domain.Properties, error) {
	match := newMatchBuilder().Eq("memberId", ownerID)
	if inquiry.Search.PropertyStatus != nil {
		match.Eq("propertyStatus", *inquiry.Search.PropertyStatus)
	} else {
		match.Ne("propertyStatus", domain.PropertyStatusDelete)
	}

	pipeline := mongo.Pipeline{
		matchStage(match.Build()),
		sortStage(inquiry.Sort, inquiry.Direction),
		facetStage(inquiry.Pagination,
			lookupMember(),
			unwindStage("$memberData"),
		),
	}
	return r.aggregateProperties(ctx, pipeline)
}

// SearchByAdmin serves the elevated admin view: optional status and location
// filters, no visibility gate at all.
func (r *PropertyRepository) SearchByAdmin(ctx context.Context, inquiry domain.AllPropertiesInquiry) (*domain.Properties, error) {
	match := newMatchBuilder()
	if inquiry.Search.PropertyStatus != nil {
		match.Eq("propertyStatus", *inquiry.Search.PropertyStatus)
	}
	if len(inquiry.Search.PropertyLocationList) > 0 {
		match.In("propertyLocation", inquiry.Search.PropertyLocationList)
	}

	pipeline := mongo.Pipeline{
		matchStage(match.Build()),
		sortStage(inquiry.Sort, inquiry.Direction),
		facetStage(inquiry.Pagination,
			lookupMember(),
			unwindStage("$memberData"),
		),
	}
	return r.aggregateProperties(ctx, pipeline)
}

func (r *PropertyRepository) aggregateProperties(ctx context.Context, pipeline mongo.Pipeline) (*domain.Properties, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Error("Failed to aggregate properties", zap.Error(err))
		return nil, fmt.Errorf("db aggregate failed: %w", err)
	}
	defer cursor.Close(ctx)

	var facets []propertyFacet
	if err := cursor.All(ctx, &facets); err != nil {
		r.logger.Error("Failed to decode property facet", zap.Error(err))
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	if len(facets) == 0 {
		return &domain.Properties{List: []*domain.Property{}}, nil
	}
	return facets[0].toProperties(), nil
}

// ApplyStatsDelta atomically increments one listing counter by modifier and
// returns the fresh document, or domain.ErrNotFound when the listing is gone.
func (r *PropertyRepository) ApplyStatsDelta(ctx context.Context, id primitive.ObjectID, counter domain.StatsCounter, modifier int64) (*domain.Property, error) {
	var field string
	switch counter {
	case domain.PropertyViewsCounter:
		field = "propertyViews"
	case domain.PropertyLikesCounter:
		field = "propertyLikes"
	default:
		return nil, fmt.Errorf("%w: %s is not a property counter", domain.ErrInvalidInput, counter)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var property domain.Property
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{field: modifier}},
		opts,
	).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to apply property stats delta",
			zap.Error(err), zap.String("property_id", id.Hex()), zap.String("counter", counter.String()))
		return nil, fmt.Errorf("db findoneandupdate failed: %w", err)
	}
	return &property, nil
}
