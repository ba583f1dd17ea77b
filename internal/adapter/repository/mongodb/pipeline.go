package mongodb

import (
	"time"

	"github.com/odilboooy10/nestar/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	membersCollectionName    = "members"
	propertiesCollectionName = "properties"
	likesCollectionName      = "likes"
	viewsCollectionName      = "views"
	followsCollectionName    = "follows"
)

// matchBuilder folds an ordered list of optional predicate clauses into one
// $match filter. Callers append only the predicates the inquiry actually
// provides; all clauses AND together, AnyTrue contributes a single $or group.
type matchBuilder struct {
	clauses bson.D
}

func newMatchBuilder() *matchBuilder {
	return &matchBuilder{clauses: bson.D{}}
}

// Eq matches field == value.
func (b *matchBuilder) Eq(field string, value interface{}) *matchBuilder {
	b.clauses = append(b.clauses, bson.E{Key: field, Value: value})
	return b
}

// Ne matches field != value.
func (b *matchBuilder) Ne(field string, value interface{}) *matchBuilder {
	b.clauses = append(b.clauses, bson.E{Key: field, Value: bson.D{{Key: "$ne", Value: value}}})
	return b
}

// In matches field against any of values. values must be a slice.
func (b *matchBuilder) In(field string, values interface{}) *matchBuilder {
	b.clauses = append(b.clauses, bson.E{Key: field, Value: bson.D{{Key: "$in", Value: values}}})
	return b
}

// Range matches start <= field <= end, inclusive on both ends.
func (b *matchBuilder) Range(field string, r domain.Range) *matchBuilder {
	b.clauses = append(b.clauses, bson.E{Key: field, Value: bson.D{
		{Key: "$gte", Value: r.Start},
		{Key: "$lte", Value: r.End},
	}})
	return b
}

// TimeRange is Range over a time-valued field.
func (b *matchBuilder) TimeRange(field string, start, end time.Time) *matchBuilder {
	b.clauses = append(b.clauses, bson.E{Key: field, Value: bson.D{
		{Key: "$gte", Value: start},
		{Key: "$lte", Value: end},
	}})
	return b
}

// RegexI matches field against text as a case-insensitive substring.
func (b *matchBuilder) RegexI(field, text string) *matchBuilder {
	b.clauses = append(b.clauses, bson.E{Key: field, Value: primitive.Regex{Pattern: text, Options: "i"}})
	return b
}

// AnyTrue matches documents where at least one of the named boolean fields is set.
func (b *matchBuilder) AnyTrue(fields []string) *matchBuilder {
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.D{{Key: f, Value: true}})
	}
	b.clauses = append(b.clauses, bson.E{Key: "$or", Value: or})
	return b
}

// Build returns the combined filter document.
func (b *matchBuilder) Build() bson.D {
	return b.clauses
}

// matchStage wraps a filter into a $match pipeline stage.
func matchStage(filter bson.D) bson.D {
	return bson.D{{Key: "$match", Value: filter}}
}

// sortStage sorts by the given key and direction, falling back to creation
// time descending when the key is empty or the direction unset. Key validity
// against the per-surface allow-lists is enforced upstream.
func sortStage(sort string, direction domain.Direction) bson.D {
	if sort == "" {
		sort = domain.SortDefault
	}
	if !direction.IsValid() {
		direction = domain.DirectionDesc
	}
	return bson.D{{Key: "$sort", Value: bson.D{{Key: sort, Value: int(direction)}}}}
}

// facetStage produces the two sibling facets of every paginated query: the
// page slice (skip/limit plus any enrichment stages) and the total count.
func facetStage(p domain.Pagination, listStages ...bson.D) bson.D {
	list := bson.A{
		bson.D{{Key: "$skip", Value: p.Skip()}},
		bson.D{{Key: "$limit", Value: p.Limit}},
	}
	for _, stage := range listStages {
		list = append(list, stage)
	}
	return bson.D{{Key: "$facet", Value: bson.D{
		{Key: "list", Value: list},
		{Key: "metaCounter", Value: bson.A{bson.D{{Key: "$count", Value: "total"}}}},
	}}}
}

// lookupMember joins the owning member's document into memberData.
func lookupMember() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: membersCollectionName},
		{Key: "localField", Value: "memberId"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "memberData"},
	}}}
}

// lookupMeLiked annotates each result with the viewer's like record, if any.
// refExpr addresses the target id within the current pipeline document, e.g.
// "$_id" on a listing query. A zero viewerID matches nothing, so anonymous
// queries come back with an empty meLiked.
func lookupMeLiked(viewerID primitive.ObjectID, refExpr string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: likesCollectionName},
		{Key: "let", Value: bson.D{
			{Key: "localRefId", Value: refExpr},
			{Key: "localMemberId", Value: viewerID},
			{Key: "localMyFavorite", Value: true},
		}},
		{Key: "pipeline", Value: bson.A{
			bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "$eq", Value: bson.A{"$likeRefId", "$$localRefId"}}},
				bson.D{{Key: "$eq", Value: bson.A{"$memberId", "$$localMemberId"}}},
			}}}}}}},
			bson.D{{Key: "$project", Value: bson.D{
				{Key: "_id", Value: 0},
				{Key: "memberId", Value: 1},
				{Key: "likeRefId", Value: 1},
				{Key: "myFavorite", Value: "$$localMyFavorite"},
			}}},
		}},
		{Key: "as", Value: "meLiked"},
	}}}
}

// lookupJoinedProperty joins a like/view record to its target listing under
// the given field. The follow-up $unwind drops records whose listing was hard
// deleted, which is exactly the dangling-reference policy.
func lookupJoinedProperty(refField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: propertiesCollectionName},
		{Key: "localField", Value: refField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

// lookupJoinedPropertyOwner joins the listing owner's member document into
// <as>.memberData for favorites/visited pages.
func lookupJoinedPropertyOwner(as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: membersCollectionName},
		{Key: "localField", Value: as + ".memberId"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as + ".memberData"},
	}}}
}

// unwindStage flattens a single-element lookup array into its element.
func unwindStage(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: path}}
}

// replaceRootStage promotes an embedded document to the pipeline root, so the
// favorites/visited pages decode with the same shape as a direct listing query.
func replaceRootStage(expr string) bson.D {
	return bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: expr}}}}
}

// propertyFacet is the raw decode target of a faceted listing query.
type propertyFacet struct {
	List        []*domain.Property    `bson:"list"`
	MetaCounter []domain.TotalCounter `bson:"metaCounter"`
}

func (f *propertyFacet) toProperties() *domain.Properties {
	out := &domain.Properties{List: f.List}
	if out.List == nil {
		out.List = []*domain.Property{}
	}
	if len(f.MetaCounter) > 0 {
		out.Metadata = f.MetaCounter[0]
	}
	return out
}

// memberFacet is the raw decode target of a faceted member query.
type memberFacet struct {
	List        []*domain.Member      `bson:"list"`
	MetaCounter []domain.TotalCounter `bson:"metaCounter"`
}

func (f *memberFacet) toMembers() *domain.Members {
	out := &domain.Members{List: f.List}
	if out.List == nil {
		out.List = []*domain.Member{}
	}
	if len(f.MetaCounter) > 0 {
		out.Metadata = f.MetaCounter[0]
	}
	return out
}
