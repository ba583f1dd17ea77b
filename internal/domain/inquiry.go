package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Direction is the sort direction in Mongo's numeric convention.
type Direction int

const (
	DirectionAsc  Direction = 1
	DirectionDesc Direction = -1
)

// IsValid checks if the Direction is one of the defined constants.
func (d Direction) IsValid() bool {
	return d == DirectionAsc || d == DirectionDesc
}

// SortDefault is used when an inquiry leaves the sort key empty.
const SortDefault = "createdAt"

// Sort keys accepted per query surface. Anything outside the list is rejected
// before it can reach the storage layer.
var (
	AgentSorts    = []string{"createdAt", "updatedAt", "memberLikes", "memberViews", "memberRank"}
	MemberSorts   = []string{"createdAt", "updatedAt", "memberLikes", "memberViews"}
	PropertySorts = []string{"createdAt", "updatedAt", "propertyLikes", "propertyViews", "propertyRank", "propertyPrice"}
)

// Option flags that may appear in a property search; each maps to a boolean
// listing field and multiple flags combine as "any of these is true".
var PropertyOptions = []string{"propertyBarter", "propertyRent"}

// SortAllowed reports whether key is in the allow-list.
func SortAllowed(key string, allowed []string) bool {
	for _, s := range allowed {
		if s == key {
			return true
		}
	}
	return false
}

// TotalCounter is the count facet of a paginated result.
type TotalCounter struct {
	Total int64 `bson:"total" json:"total"`
}

// Range is an inclusive numeric interval.
type Range struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// PeriodRange is an inclusive time interval.
type PeriodRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Pagination is the common page/limit pair. Page is 1-based.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// Skip converts the 1-based page into a document offset.
func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

// Normalize clamps page and limit into sane bounds.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	} else if p.Limit > 100 {
		p.Limit = 100
	}
}

// OrdinaryInquiry is a pagination-only inquiry (favorites, visited).
type OrdinaryInquiry struct {
	Pagination
}

// PropertySearch is the public listing-search filter. Zero-valued fields are
// skipped; everything provided is ANDed, except Options which OR together.
type PropertySearch struct {
	MemberID     primitive.ObjectID `json:"memberId,omitempty"`
	LocationList []PropertyLocation `json:"locationList,omitempty"`
	TypeList     []PropertyType     `json:"typeList,omitempty"`
	RoomsList    []int32            `json:"roomsList,omitempty"`
	BedsList     []int32            `json:"bedsList,omitempty"`
	PricesRange  *Range             `json:"pricesRange,omitempty"`
	SquaresRange *Range             `json:"squaresRange,omitempty"`
	PeriodsRange *PeriodRange       `json:"periodsRange,omitempty"`
	Options      []string           `json:"options,omitempty"`
	Text         string             `json:"text,omitempty"`
}

// PropertiesInquiry is the public listing browse query.
type PropertiesInquiry struct {
	Pagination
	Sort      string
	Direction Direction
	Search    PropertySearch
}

// AgentPropertiesInquiry lets an agent browse their own listings. Status
// defaults to "anything but DELETE"; requesting DELETE outright is refused.
type AgentPropertiesInquiry struct {
	Pagination
	Sort      string
	Direction Direction
	Search    struct {
		PropertyStatus *PropertyStatus
	}
}

// AllPropertiesInquiry is the admin-side listing query; no status gate applies.
type AllPropertiesInquiry struct {
	Pagination
	Sort      string
	Direction Direction
	Search    struct {
		PropertyStatus       *PropertyStatus
		PropertyLocationList []PropertyLocation
	}
}

// AgentsInquiry is the public agent-directory search.
type AgentsInquiry struct {
	Pagination
	Sort      string
	Direction Direction
	Search    struct {
		Text string
	}
}

// MembersInquiry is the admin-side member query.
type MembersInquiry struct {
	Pagination
	Sort      string
	Direction Direction
	Search    struct {
		MemberStatus *MemberStatus
		MemberType   *MemberType
		Text         string
	}
}
