package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyType classifies a listing.
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "APARTMENT"
	PropertyTypeVilla     PropertyType = "VILLA"
	PropertyTypeHouse     PropertyType = "HOUSE"
)

// PropertyLocation is the closed set of supported listing regions.
type PropertyLocation string

const (
	PropertyLocationSeoul    PropertyLocation = "SEOUL"
	PropertyLocationBusan    PropertyLocation = "BUSAN"
	PropertyLocationIncheon  PropertyLocation = "INCHEON"
	PropertyLocationDaegu    PropertyLocation = "DAEGU"
	PropertyLocationGyeongju PropertyLocation = "GYEONGJU"
	PropertyLocationGwangju  PropertyLocation = "GWANGJU"
	PropertyLocationChonju   PropertyLocation = "CHONJU"
	PropertyLocationDaejon   PropertyLocation = "DAEJON"
	PropertyLocationJeju     PropertyLocation = "JEJU"
)

// PropertyStatus is the listing lifecycle state. SOLD and DELETE are terminal
// for counter purposes; a listing never re-enters ACTIVE.
type PropertyStatus string

const (
	PropertyStatusActive PropertyStatus = "ACTIVE"
	PropertyStatusSold   PropertyStatus = "SOLD"
	PropertyStatusDelete PropertyStatus = "DELETE"
)

// IsValid checks if the PropertyStatus is one of the defined constants.
func (s PropertyStatus) IsValid() bool {
	switch s {
	case PropertyStatusActive, PropertyStatusSold, PropertyStatusDelete:
		return true
	}
	return false
}

// Property is a listing owned by exactly one member. MemberID is immutable
// after creation. PropertyViews and PropertyLikes are denormalized counters.
type Property struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PropertyType     PropertyType       `bson:"propertyType" json:"propertyType"`
	PropertyStatus   PropertyStatus     `bson:"propertyStatus" json:"propertyStatus"`
	PropertyLocation PropertyLocation   `bson:"propertyLocation" json:"propertyLocation"`
	PropertyAddress  string             `bson:"propertyAddress" json:"propertyAddress"`
	PropertyTitle    string             `bson:"propertyTitle" json:"propertyTitle"`
	PropertyPrice    float64            `bson:"propertyPrice" json:"propertyPrice"`
	PropertySquare   float64            `bson:"propertySquare" json:"propertySquare"`
	PropertyBeds     int32              `bson:"propertyBeds" json:"propertyBeds"`
	PropertyRooms    int32              `bson:"propertyRooms" json:"propertyRooms"`
	PropertyViews    int64              `bson:"propertyViews" json:"propertyViews"`
	PropertyLikes    int64              `bson:"propertyLikes" json:"propertyLikes"`
	PropertyRank     int64              `bson:"propertyRank" json:"propertyRank"`
	PropertyImages   []string           `bson:"propertyImages" json:"propertyImages"`
	PropertyDesc     string             `bson:"propertyDesc,omitempty" json:"propertyDesc,omitempty"`
	PropertyBarter   bool               `bson:"propertyBarter" json:"propertyBarter"`
	PropertyRent     bool               `bson:"propertyRent" json:"propertyRent"`
	MemberID         primitive.ObjectID `bson:"memberId" json:"memberId"`
	SoldAt           *time.Time         `bson:"soldAt,omitempty" json:"soldAt,omitempty"`
	DeletedAt        *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	ConstructedAt    *time.Time         `bson:"constructedAt,omitempty" json:"constructedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Aggregation-only decorations.
	MeLiked    []MeLiked `bson:"meLiked,omitempty" json:"meLiked,omitempty"`
	MemberData *Member   `bson:"memberData,omitempty" json:"memberData,omitempty"`
}

// PropertyInput carries the fields an agent supplies when creating a listing.
// Validation of field shapes happens upstream; MemberID comes from the
// authenticated identity, never from the request body.
type PropertyInput struct {
	PropertyType     PropertyType
	PropertyLocation PropertyLocation
	PropertyAddress  string
	PropertyTitle    string
	PropertyPrice    float64
	PropertySquare   float64
	PropertyBeds     int32
	PropertyRooms    int32
	PropertyImages   []string
	PropertyDesc     string
	PropertyBarter   bool
	PropertyRent     bool
	MemberID         primitive.ObjectID
	ConstructedAt    *time.Time
}

// PropertyUpdate carries the mutable listing fields. A nil pointer leaves the
// field untouched. Setting PropertyStatus to SOLD or DELETE stamps SoldAt or
// DeletedAt inside the repository, in the same update.
type PropertyUpdate struct {
	ID               primitive.ObjectID
	PropertyStatus   *PropertyStatus
	PropertyType     *PropertyType
	PropertyLocation *PropertyLocation
	PropertyAddress  *string
	PropertyTitle    *string
	PropertyPrice    *float64
	PropertySquare   *float64
	PropertyBeds     *int32
	PropertyRooms    *int32
	PropertyImages   []string
	PropertyDesc     *string
	PropertyBarter   *bool
	PropertyRent     *bool
	ConstructedAt    *time.Time
}

// Properties is a single page of listings plus the total-count facet.
type Properties struct {
	List     []*Property  `bson:"list" json:"list"`
	Metadata TotalCounter `bson:"metadata" json:"metadata"`
}
