package domain

// StatsCounter names one denormalized counter. The set is closed: only these
// pairs exist, and the storage adapter owns the mapping to document fields, so
// no caller can target an arbitrary field.
type StatsCounter int

const (
	MemberViewsCounter StatsCounter = iota
	MemberLikesCounter
	MemberPropertiesCounter
	PropertyViewsCounter
	PropertyLikesCounter
)

// String returns the counter's document field name, for logs and events.
func (c StatsCounter) String() string {
	switch c {
	case MemberViewsCounter:
		return "memberViews"
	case MemberLikesCounter:
		return "memberLikes"
	case MemberPropertiesCounter:
		return "memberProperties"
	case PropertyViewsCounter:
		return "propertyViews"
	case PropertyLikesCounter:
		return "propertyLikes"
	}
	return "unknown"
}
