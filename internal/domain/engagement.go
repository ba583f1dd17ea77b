package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeGroup disambiguates which collection a like record points into.
type LikeGroup string

const (
	LikeGroupMember   LikeGroup = "MEMBER"
	LikeGroupProperty LikeGroup = "PROPERTY"
	LikeGroupArticle  LikeGroup = "ARTICLE"
)

// ViewGroup disambiguates which collection a view record points into.
type ViewGroup string

const (
	ViewGroupMember   ViewGroup = "MEMBER"
	ViewGroupProperty ViewGroup = "PROPERTY"
	ViewGroupArticle  ViewGroup = "ARTICLE"
)

// Like is a join record. Its existence IS the "liked" state; there is no
// boolean flag anywhere. At most one Like exists per (memberId, likeRefId),
// enforced by a unique index.
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MemberID  primitive.ObjectID `bson:"memberId" json:"memberId"`
	LikeRefID primitive.ObjectID `bson:"likeRefId" json:"likeRefId"`
	LikeGroup LikeGroup          `bson:"likeGroup" json:"likeGroup"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LikeInput identifies the (viewer, target) pair of a toggle or existence check.
type LikeInput struct {
	MemberID  primitive.ObjectID
	LikeRefID primitive.ObjectID
	LikeGroup LikeGroup
}

// View is an append-only join record: written once per (memberId, viewRefId)
// and never deleted. Its first insert gates the view-counter increment.
type View struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MemberID  primitive.ObjectID `bson:"memberId" json:"memberId"`
	ViewRefID primitive.ObjectID `bson:"viewRefId" json:"viewRefId"`
	ViewGroup ViewGroup          `bson:"viewGroup" json:"viewGroup"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ViewInput identifies the (viewer, target) pair of a view recording.
type ViewInput struct {
	MemberID  primitive.ObjectID
	ViewRefID primitive.ObjectID
	ViewGroup ViewGroup
}

// Follow is an asymmetric join record: follower follows following, nothing is
// implied in the other direction.
type Follow struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FollowerID  primitive.ObjectID `bson:"followerId" json:"followerId"`
	FollowingID primitive.ObjectID `bson:"followingId" json:"followingId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// MeLiked is the liked-marker attached to read results. Present means the
// current viewer likes the entity; results carry at most one.
type MeLiked struct {
	MemberID   primitive.ObjectID `bson:"memberId" json:"memberId"`
	LikeRefID  primitive.ObjectID `bson:"likeRefId" json:"likeRefId"`
	MyFavorite bool               `bson:"myFavorite" json:"myFavorite"`
}

// MeFollowed is the followed-marker attached to member reads.
type MeFollowed struct {
	FollowerID  primitive.ObjectID `bson:"followerId" json:"followerId"`
	FollowingID primitive.ObjectID `bson:"followingId" json:"followingId"`
	MyFollowing bool               `bson:"myFollowing" json:"myFollowing"`
}
