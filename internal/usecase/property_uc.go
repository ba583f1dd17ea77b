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

// PropertyUsecase orchestrates the listing lifecycle, listing queries and
// property-targeted engagement. Owner counters (memberProperties) follow the
// listing in and out of ACTIVE status.
type PropertyUsecase struct {
	propertyRepo domain.PropertyRepository
	memberRepo   domain.MemberRepository
	likeUC       *LikeUsecase
	viewUC       *ViewUsecase
	publisher    EventPublisher
	metrics      *metrics.Manager
	logger       *logger.Logger
}

func NewPropertyUsecase(
	propertyRepo domain.PropertyRepository,
	memberRepo domain.MemberRepository,
	likeUC *LikeUsecase,
	viewUC *ViewUsecase,
	publisher EventPublisher,
	m *metrics.Manager,
	log *logger.Logger,
) *PropertyUsecase {
	return &PropertyUsecase{
		propertyRepo: propertyRepo,
		memberRepo:   memberRepo,
		likeUC:       likeUC,
		viewUC:       viewUC,
		publisher:    publisher,
		metrics:      m,
		logger:       log.Named("PropertyUsecase"),
	}
}

func (uc *PropertyUsecase) reportStatsDesync(ctx context.Context, counter domain.StatsCounter, targetID primitive.ObjectID, err error) {
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

// CreateProperty stores a new ACTIVE listing and bumps the owner's
// memberProperties counter. The counter bump is a separate write; if it fails
// the listing stays and the gap is reported.
func (uc *PropertyUsecase) CreateProperty(ctx context.Context, input domain.PropertyInput) (*domain.Property, error) {
	if input.MemberID.IsZero() {
		return nil, fmt.Errorf("owner id is required: %w", domain.ErrInvalidInput)
	}

	property, err := uc.propertyRepo.Insert(ctx, input)
	if err != nil {
		return nil, err
	}

	if _, err := uc.memberRepo.ApplyStatsDelta(ctx, input.MemberID, domain.MemberPropertiesCounter, 1); err != nil {
		uc.reportStatsDesync(ctx, domain.MemberPropertiesCounter, input.MemberID, err)
	}

	if err := uc.publisher.Publish(ctx, SubjectPropertyCreated, map[string]interface{}{
		"propertyId": property.ID.Hex(),
		"memberId":   input.MemberID.Hex(),
	}); err != nil {
		uc.logger.Warn("Failed to publish property.created event", zap.Error(err))
	}

	uc.logger.Info("Property created",
		zap.String("property_id", property.ID.Hex()),
		zap.String("member_id", input.MemberID.Hex()))
	return property, nil
}

// GetProperty returns a single ACTIVE listing with owner data attached. A
// signed-in viewer registers a view (bumping propertyViews on first visit)
// and gets the meLiked marker attached.
func (uc *PropertyUsecase) GetProperty(ctx context.Context, viewerID, propertyID primitive.ObjectID) (*domain.Property, error) {
	property, err := uc.propertyRepo.FindByID(ctx, propertyID, domain.PropertyStatusActive)
	if err != nil {
		return nil, err
	}

	if !viewerID.IsZero() {
		view, err := uc.viewUC.RecordView(ctx, domain.ViewInput{
			MemberID:  viewerID,
			ViewRefID: propertyID,
			ViewGroup: domain.ViewGroupProperty,
		})
		if err != nil {
			uc.logger.Warn("Failed to record property view", zap.Error(err))
		} else if view != nil {
			updated, err := uc.propertyRepo.ApplyStatsDelta(ctx, propertyID, domain.PropertyViewsCounter, 1)
			if err != nil {
				uc.reportStatsDesync(ctx, domain.PropertyViewsCounter, propertyID, err)
			} else {
				property.PropertyViews = updated.PropertyViews
			}
		}

		meLiked, err := uc.likeUC.CheckExistence(ctx, domain.LikeInput{
			MemberID:  viewerID,
			LikeRefID: propertyID,
			LikeGroup: domain.LikeGroupProperty,
		})
		if err != nil {
			uc.logger.Warn("Failed to check like state", zap.Error(err))
		} else {
			property.MeLiked = meLiked
		}
	}

	owner, err := uc.memberRepo.FindByID(ctx, property.MemberID, domain.MemberStatusActive, domain.MemberStatusBlock)
	switch {
	case err == nil:
		property.MemberData = owner
	case errors.Is(err, domain.ErrNotFound):
		// Owner visibility follows member status: a DELETE owner's profile is
		// never embedded, the listing just reads back without memberData.
	default:
		uc.logger.Warn("Failed to load listing owner",
			zap.String("member_id", property.MemberID.Hex()),
			zap.Error(err))
	}

	return property, nil
}

// UpdateProperty applies an owner update. Moving the listing to SOLD or
// DELETE stamps the matching timestamp and decrements the owner's
// memberProperties counter, since the listing leaves the active inventory.
func (uc *PropertyUsecase) UpdateProperty(ctx context.Context, ownerID primitive.ObjectID, update domain.PropertyUpdate) (*domain.Property, error) {
	if update.PropertyStatus != nil && !update.PropertyStatus.IsValid() {
		return nil, fmt.Errorf("property status %q: %w", *update.PropertyStatus, domain.ErrInvalidInput)
	}

	property, err := uc.propertyRepo.UpdateByOwner(ctx, ownerID, update)
	if err != nil {
		return nil, err
	}

	if update.PropertyStatus != nil && *update.PropertyStatus != domain.PropertyStatusActive {
		if _, err := uc.memberRepo.ApplyStatsDelta(ctx, ownerID, domain.MemberPropertiesCounter, -1); err != nil {
			uc.reportStatsDesync(ctx, domain.MemberPropertiesCounter, ownerID, err)
		}
	}

	if err := uc.publisher.Publish(ctx, SubjectPropertyUpdated, map[string]interface{}{
		"propertyId": property.ID.Hex(),
	}); err != nil {
		uc.logger.Warn("Failed to publish property.updated event", zap.Error(err))
	}
	return property, nil
}

// GetProperties serves the public listing browse over ACTIVE listings.
func (uc *PropertyUsecase) GetProperties(ctx context.Context, viewerID primitive.ObjectID, inquiry domain.PropertiesInquiry) (*domain.Properties, error) {
	if err := validateSort(inquiry.Sort, domain.PropertySorts); err != nil {
		return nil, err
	}
	for _, opt := range inquiry.Search.Options {
		if !domain.SortAllowed(opt, domain.PropertyOptions) {
			return nil, fmt.Errorf("search option %q: %w", opt, domain.ErrInvalidInput)
		}
	}
	inquiry.Normalize()
	uc.metrics.SearchesTotal.WithLabelValues("properties").Inc()
	return uc.propertyRepo.Search(ctx, viewerID, inquiry)
}

// GetAgentProperties serves an agent's own listings. DELETE listings are
// never served here, neither by default nor on request.
func (uc *PropertyUsecase) GetAgentProperties(ctx context.Context, ownerID primitive.ObjectID, inquiry domain.AgentPropertiesInquiry) (*domain.Properties, error) {
	if err := validateSort(inquiry.Sort, domain.PropertySorts); err != nil {
		return nil, err
	}
	if inquiry.Search.PropertyStatus != nil {
		if !inquiry.Search.PropertyStatus.IsValid() {
			return nil, fmt.Errorf("property status %q: %w", *inquiry.Search.PropertyStatus, domain.ErrInvalidInput)
		}
		if *inquiry.Search.PropertyStatus == domain.PropertyStatusDelete {
			return nil, fmt.Errorf("deleted listings are not queryable: %w", domain.ErrNotAllowed)
		}
	}
	inquiry.Normalize()
	uc.metrics.SearchesTotal.WithLabelValues("agent_properties").Inc()
	return uc.propertyRepo.SearchByAgent(ctx, ownerID, inquiry)
}

// GetFavorites pages through the member's liked listings.
func (uc *PropertyUsecase) GetFavorites(ctx context.Context, memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) (*domain.Properties, error) {
	return uc.likeUC.GetFavoriteProperties(ctx, memberID, inquiry)
}

// GetVisited pages through the member's viewed listings.
func (uc *PropertyUsecase) GetVisited(ctx context.Context, memberID primitive.ObjectID, inquiry domain.OrdinaryInquiry) (*domain.Properties, error) {
	return uc.viewUC.GetVisitedProperties(ctx, memberID, inquiry)
}

// LikeTargetProperty toggles the viewer's like on an ACTIVE listing and
// applies the counter delta. A delta that cannot land after the toggle is
// surfaced as an inconsistency, not swallowed.
func (uc *PropertyUsecase) LikeTargetProperty(ctx context.Context, viewerID, propertyID primitive.ObjectID) (*domain.Property, error) {
	if _, err := uc.propertyRepo.FindByID(ctx, propertyID, domain.PropertyStatusActive); err != nil {
		return nil, err
	}

	modifier, err := uc.likeUC.Toggle(ctx, domain.LikeInput{
		MemberID:  viewerID,
		LikeRefID: propertyID,
		LikeGroup: domain.LikeGroupProperty,
	})
	if err != nil {
		return nil, err
	}

	property, err := uc.propertyRepo.ApplyStatsDelta(ctx, propertyID, domain.PropertyLikesCounter, modifier)
	if err != nil {
		uc.reportStatsDesync(ctx, domain.PropertyLikesCounter, propertyID, err)
		return nil, fmt.Errorf("like toggled but counter update failed: %w", domain.ErrInconsistentState)
	}
	return property, nil
}

// GetAllPropertiesByAdmin serves the admin listing query across all statuses.
func (uc *PropertyUsecase) GetAllPropertiesByAdmin(ctx context.Context, inquiry domain.AllPropertiesInquiry) (*domain.Properties, error) {
	if err := validateSort(inquiry.Sort, domain.PropertySorts); err != nil {
		return nil, err
	}
	if inquiry.Search.PropertyStatus != nil && !inquiry.Search.PropertyStatus.IsValid() {
		return nil, fmt.Errorf("property status %q: %w", *inquiry.Search.PropertyStatus, domain.ErrInvalidInput)
	}
	inquiry.Normalize()
	uc.metrics.SearchesTotal.WithLabelValues("properties_admin").Inc()
	return uc.propertyRepo.SearchByAdmin(ctx, inquiry)
}

// UpdatePropertyByAdmin applies an update without the owner filter. The owner
// counter still follows a status transition out of ACTIVE.
func (uc *PropertyUsecase) UpdatePropertyByAdmin(ctx context.Context, update domain.PropertyUpdate) (*domain.Property, error) {
	if update.PropertyStatus != nil && !update.PropertyStatus.IsValid() {
		return nil, fmt.Errorf("property status %q: %w", *update.PropertyStatus, domain.ErrInvalidInput)
	}

	property, err := uc.propertyRepo.UpdateByAdmin(ctx, update)
	if err != nil {
		return nil, err
	}

	if update.PropertyStatus != nil && *update.PropertyStatus != domain.PropertyStatusActive {
		if _, err := uc.memberRepo.ApplyStatsDelta(ctx, property.MemberID, domain.MemberPropertiesCounter, -1); err != nil {
			uc.reportStatsDesync(ctx, domain.MemberPropertiesCounter, property.MemberID, err)
		}
	}

	if err := uc.publisher.Publish(ctx, SubjectPropertyUpdated, map[string]interface{}{
		"propertyId": property.ID.Hex(),
	}); err != nil {
		uc.logger.Warn("Failed to publish property.updated event", zap.Error(err))
	}
	return property, nil
}

// RemovePropertyByAdmin physically removes a listing that is already in
// DELETE status. Anything else is refused.
func (uc *PropertyUsecase) RemovePropertyByAdmin(ctx context.Context, propertyID primitive.ObjectID) (*domain.Property, error) {
	property, err := uc.propertyRepo.HardDelete(ctx, propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("only listings in DELETE status can be removed: %w", domain.ErrNotAllowed)
		}
		return nil, err
	}

	if err := uc.publisher.Publish(ctx, SubjectPropertyRemoved, map[string]interface{}{
		"propertyId": property.ID.Hex(),
	}); err != nil {
		uc.logger.Warn("Failed to publish property.removed event", zap.Error(err))
	}

	uc.logger.Info("Property removed", zap.String("property_id", property.ID.Hex()))
	return property, nil
}
