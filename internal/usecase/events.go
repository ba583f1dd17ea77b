package usecase

import "context"

// Engagement event subjects.
const (
	SubjectLikeToggled     = "nestar.like.toggled"
	SubjectViewRecorded    = "nestar.view.recorded"
	SubjectPropertyCreated = "nestar.property.created"
	SubjectPropertyUpdated = "nestar.property.updated"
	SubjectPropertyRemoved = "nestar.property.removed"
	SubjectMemberUpdated   = "nestar.member.updated"
	// SubjectStatsDesynced fires when a counter delta could not find its target
	// entity. An external reconciler listens on this to re-derive counters from
	// the join collections.
	SubjectStatsDesynced = "nestar.stats.desynced"
)

// EventPublisher emits engagement events. Publish failures are logged by the
// caller and never fail the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}
