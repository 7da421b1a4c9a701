package event

import (
	"context"
	"time"
)

type Type string

const (
	TypeCheckInCreated       Type = "checkin.created"
	TypeRosterChanged        Type = "roster.changed"
	TypePartnershipRequested Type = "partnership.requested"
	TypePartnershipConfirmed Type = "partnership.confirmed"
	TypePartnershipRejected  Type = "partnership.rejected"
	TypePartnershipRemoved   Type = "partnership.removed"
	TypeMatchAssigned        Type = "match.assigned"
	TypeMatchCompleted       Type = "match.completed"
	TypeMatchCancelled       Type = "match.cancelled"
	TypeScorePending         Type = "score.pending"
	TypeScoreDisputed        Type = "score.disputed"
	TypeScoreWithdrawn       Type = "score.withdrawn"
	TypeCourtsUpdated        Type = "courts.updated"
	TypeAutoAssignToggled    Type = "autoassign.toggled"
	TypeNightCompleted       Type = "night.completed"
)

// Event is emitted on every mutating operation so external collaborators
// (push notifications, reactive UIs) can react without the core embedding a
// subscription mechanism.
type Event struct {
	Type    Type
	NightID string
	At      time.Time
	Payload map[string]any
}

// Publisher delivers events best-effort. Implementations must not block the
// mutating operation on delivery.
type Publisher interface {
	Publish(ctx context.Context, evt Event)
}
