package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberType distinguishes ordinary users, listing agents and admins.
type MemberType string

const (
	MemberTypeUser  MemberType = "USER"
	MemberTypeAgent MemberType = "AGENT"
	MemberTypeAdmin MemberType = "ADMIN"
)

// MemberStatus is the member lifecycle state. ACTIVE and BLOCK members are
// still visible to others; DELETE members are not.
type MemberStatus string

const (
	MemberStatusActive MemberStatus = "ACTIVE"
	MemberStatusBlock  MemberStatus = "BLOCK"
	MemberStatusDelete MemberStatus = "DELETE"
)

// IsValid checks if the MemberStatus is one of the defined constants.
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusActive, MemberStatusBlock, MemberStatusDelete:
		return true
	}
	return false
}

// Member is a marketplace member. MemberViews, MemberLikes and MemberProperties
// are denormalized counters maintained by explicit delta application; they are
// never recomputed from the views/likes/properties collections.
type Member struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MemberType       MemberType         `bson:"memberType" json:"memberType"`
	MemberStatus     MemberStatus       `bson:"memberStatus" json:"memberStatus"`
	MemberNick       string             `bson:"memberNick" json:"memberNick"`
	MemberPhone      string             `bson:"memberPhone" json:"memberPhone"`
	MemberFullName   string             `bson:"memberFullName,omitempty" json:"memberFullName,omitempty"`
	MemberImage      string             `bson:"memberImage,omitempty" json:"memberImage,omitempty"`
	MemberAddress    string             `bson:"memberAddress,omitempty" json:"memberAddress,omitempty"`
	MemberDesc       string             `bson:"memberDesc,omitempty" json:"memberDesc,omitempty"`
	MemberProperties int64              `bson:"memberProperties" json:"memberProperties"`
	MemberRank       int64              `bson:"memberRank" json:"memberRank"`
	MemberViews      int64              `bson:"memberViews" json:"memberViews"`
	MemberLikes      int64              `bson:"memberLikes" json:"memberLikes"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
	DeletedAt        *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`

	// Viewer-side decorations, populated by aggregation lookups only.
	MeLiked    []MeLiked    `bson:"meLiked,omitempty" json:"meLiked,omitempty"`
	MeFollowed []MeFollowed `bson:"meFollowed,omitempty" json:"meFollowed,omitempty"`
}

// MemberUpdate carries the self-service mutable profile fields. Only ACTIVE
// members pass the update filter.
type MemberUpdate struct {
	ID             primitive.ObjectID
	MemberStatus   *MemberStatus
	MemberPhone    *string
	MemberNick     *string
	MemberFullName *string
	MemberImage    *string
	MemberAddress  *string
	MemberDesc     *string
}

// Members is a single page of members plus the total-count facet. Metadata is
// always present; an empty result carries a zero total, never a missing object.
type Members struct {
	List     []*Member    `bson:"list" json:"list"`
	Metadata TotalCounter `bson:"metadata" json:"metadata"`
}
