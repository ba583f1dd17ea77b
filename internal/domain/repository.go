package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeRepository persists like join records and serves the favorites query.
type LikeRepository interface {
	// FindByPair returns the like for (memberID, likeRefID) or ErrNotFound.
	FindByPair(ctx context.Context, memberID, likeRefID primitive.ObjectID) (*Like, error)
	// Insert creates the like record; a duplicate pair yields ErrAlreadyExists.
	Insert(ctx context.Context, input LikeInput) (*Like, error)
	// DeleteByPair removes the like for the pair; ErrNotFound when absent.
	DeleteByPair(ctx context.Context, memberID, likeRefID primitive.ObjectID) error
	// FavoriteProperties pages through the member's liked listings, newest
	// toggled first, dropping likes whose listing no longer exists.
	FavoriteProperties(ctx context.Context, memberID primitive.ObjectID, inquiry OrdinaryInquiry) (*Properties, error)
}

// ViewRepository persists view join records and serves the visited query.
type ViewRepository interface {
	FindByPair(ctx context.Context, memberID, viewRefID primitive.ObjectID) (*View, error)
	Insert(ctx context.Context, input ViewInput) (*View, error)
	// VisitedProperties mirrors LikeRepository.FavoriteProperties over views.
	VisitedProperties(ctx context.Context, memberID primitive.ObjectID, inquiry OrdinaryInquiry) (*Properties, error)
}

// FollowRepository reads the follow edge set.
type FollowRepository interface {
	// FindByPair returns the follow edge follower→following or ErrNotFound.
	FindByPair(ctx context.Context, followerID, followingID primitive.ObjectID) (*Follow, error)
}

// MemberRepository persists members and serves the member-directory queries.
type MemberRepository interface {
	// FindByID returns the member when its status is one of statuses,
	// ErrNotFound otherwise. An empty status list matches any status.
	FindByID(ctx context.Context, id primitive.ObjectID, statuses ...MemberStatus) (*Member, error)
	// Update applies the self-service update; the filter restricts it to
	// ACTIVE members and yields ErrUpdateFailed on zero matches.
	Update(ctx context.Context, update MemberUpdate) (*Member, error)
	// UpdateByAdmin applies the update without a status gate.
	UpdateByAdmin(ctx context.Context, update MemberUpdate) (*Member, error)
	// SearchAgents serves the public agent directory, decorated with the
	// viewer's like state when viewerID is non-zero.
	SearchAgents(ctx context.Context, viewerID primitive.ObjectID, inquiry AgentsInquiry) (*Members, error)
	// SearchByAdmin serves the admin member query; no status gate.
	SearchByAdmin(ctx context.Context, inquiry MembersInquiry) (*Members, error)
	// ApplyStatsDelta atomically increments one member counter and returns the
	// updated member, or ErrNotFound when the member is gone.
	ApplyStatsDelta(ctx context.Context, id primitive.ObjectID, counter StatsCounter, modifier int64) (*Member, error)
}

// PropertyRepository persists listings and serves the listing queries.
type PropertyRepository interface {
	// Insert stores a new listing and returns it with ID and timestamps set.
	Insert(ctx context.Context, input PropertyInput) (*Property, error)
	// FindByID returns the listing when its status is one of statuses,
	// ErrNotFound otherwise. An empty status list matches any status.
	FindByID(ctx context.Context, id primitive.ObjectID, statuses ...PropertyStatus) (*Property, error)
	// UpdateByOwner applies the update with an owner + ACTIVE filter, stamping
	// soldAt/deletedAt on the matching status transition.
	UpdateByOwner(ctx context.Context, ownerID primitive.ObjectID, update PropertyUpdate) (*Property, error)
	// UpdateByAdmin is UpdateByOwner without the owner filter.
	UpdateByAdmin(ctx context.Context, update PropertyUpdate) (*Property, error)
	// HardDelete physically removes a listing already in DELETE status and
	// returns it; ErrNotFound when no such soft-deleted listing exists.
	HardDelete(ctx context.Context, id primitive.ObjectID) (*Property, error)
	// Search serves the public ACTIVE-only browse query.
	Search(ctx context.Context, viewerID primitive.ObjectID, inquiry PropertiesInquiry) (*Properties, error)
	// SearchByAgent serves an agent's own-listing query (status != DELETE by default).
	SearchByAgent(ctx context.Context, ownerID primitive.ObjectID, inquiry AgentPropertiesInquiry) (*Properties, error)
	// SearchByAdmin serves the admin listing query; no status gate.
	SearchByAdmin(ctx context.Context, inquiry AllPropertiesInquiry) (*Properties, error)
	// ApplyStatsDelta atomically increments one listing counter and returns the
	// updated listing, or ErrNotFound when the listing is gone.
	ApplyStatsDelta(ctx context.Context, id primitive.ObjectID, counter StatsCounter, modifier int64) (*Property, error)
}

// CacheRepository is a byte-level cache with TTL, used to serve hot member
// snapshots without a round trip to the primary store.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
