package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// EventName is the tag identifying the kind of action an event records.
type EventName string

func (n EventName) String() string { return string(n) }

// EventClass partitions event names into activity and audit grade.
type EventClass int

const (
	// ActivityClass covers general collaboration activity.
	ActivityClass EventClass = iota + 1
	// AuditClass covers security and administrative actions.
	AuditClass
)

func (c EventClass) String() string {
	switch c {
	case ActivityClass:
		return "activity"
	case AuditClass:
		return "audit"
	}
	return "unknown"
}

// Activity-grade events.
const (
	EventCollectionCreated  EventName = "collections.create"
	EventCollectionUpdated  EventName = "collections.update"
	EventCollectionMoved    EventName = "collections.move"
	EventCollectionDeleted  EventName = "collections.delete"
	EventDocumentCreated    EventName = "documents.create"
	EventDocumentUpdated    EventName = "documents.update"
	EventDocumentPublished  EventName = "documents.publish"
	EventDocumentArchived   EventName = "documents.archive"
	EventDocumentUnarchived EventName = "documents.unarchive"
	EventDocumentPinned     EventName = "documents.pin"
	EventDocumentUnpinned   EventName = "documents.unpin"
	EventDocumentMoved      EventName = "documents.move"
	EventDocumentDeleted    EventName = "documents.delete"
	EventDocumentRestored   EventName = "documents.restore"
	EventRevisionCreated    EventName = "revisions.create"
)

// Audit-grade events.
const (
	EventAPIKeyCreated               EventName = "api_keys.create"
	EventAPIKeyDeleted               EventName = "api_keys.delete"
	EventAuthProviderUpdated         EventName = "authenticationProviders.update"
	EventCollectionPermissionChanged EventName = "collections.permission_changed"
	EventCollectionUserAdded         EventName = "collections.add_user"
	EventCollectionUserRemoved       EventName = "collections.remove_user"
	EventCollectionGroupAdded        EventName = "collections.add_group"
	EventCollectionGroupRemoved      EventName = "collections.remove_group"
	EventCollectionsExported         EventName = "collections.export_all"
	EventDocumentPermanentlyDeleted  EventName = "documents.permanent_delete"
	EventGroupCreated                EventName = "groups.create"
	EventGroupUpdated                EventName = "groups.update"
	EventGroupDeleted                EventName = "groups.delete"
	EventGroupUserAdded              EventName = "groups.add_user"
	EventGroupUserRemoved            EventName = "groups.remove_user"
	EventIntegrationCreated          EventName = "integrations.create"
	EventIntegrationDeleted          EventName = "integrations.delete"
	EventShareCreated                EventName = "shares.create"
	EventShareUpdated                EventName = "shares.update"
	EventShareRevoked                EventName = "shares.revoke"
	EventTeamUpdated                 EventName = "teams.update"
	EventUserCreated                 EventName = "users.create"
	EventUserUpdated                 EventName = "users.update"
	EventUserSignedIn                EventName = "users.signin"
	EventUserInvited                 EventName = "users.invite"
	EventUserPromoted                EventName = "users.promote"
	EventUserDemoted                 EventName = "users.demote"
	EventUserSuspended               EventName = "users.suspend"
	EventUserActivated               EventName = "users.activate"
	EventUserDeleted                 EventName = "users.delete"
)

// eventClasses is the single source of truth for classification; every
// known name maps to exactly one class.
var eventClasses = map[EventName]EventClass{
	EventCollectionCreated:  ActivityClass,
	EventCollectionUpdated:  ActivityClass,
	EventCollectionMoved:    ActivityClass,
	EventCollectionDeleted:  ActivityClass,
	EventDocumentCreated:    ActivityClass,
	EventDocumentUpdated:    ActivityClass,
	EventDocumentPublished:  ActivityClass,
	EventDocumentArchived:   ActivityClass,
	EventDocumentUnarchived: ActivityClass,
	EventDocumentPinned:     ActivityClass,
	EventDocumentUnpinned:   ActivityClass,
	EventDocumentMoved:      ActivityClass,
	EventDocumentDeleted:    ActivityClass,
	EventDocumentRestored:   ActivityClass,
	EventRevisionCreated:    ActivityClass,

	EventAPIKeyCreated:               AuditClass,
	EventAPIKeyDeleted:               AuditClass,
	EventAuthProviderUpdated:         AuditClass,
	EventCollectionPermissionChanged: AuditClass,
	EventCollectionUserAdded:         AuditClass,
	EventCollectionUserRemoved:       AuditClass,
	EventCollectionGroupAdded:        AuditClass,
	EventCollectionGroupRemoved:      AuditClass,
	EventCollectionsExported:         AuditClass,
	EventDocumentPermanentlyDeleted:  AuditClass,
	EventGroupCreated:                AuditClass,
	EventGroupUpdated:                AuditClass,
	EventGroupDeleted:                AuditClass,
	EventGroupUserAdded:              AuditClass,
	EventGroupUserRemoved:            AuditClass,
	EventIntegrationCreated:          AuditClass,
	EventIntegrationDeleted:          AuditClass,
	EventShareCreated:                AuditClass,
	EventShareUpdated:                AuditClass,
	EventShareRevoked:                AuditClass,
	EventTeamUpdated:                 AuditClass,
	EventUserCreated:                 AuditClass,
	EventUserUpdated:                 AuditClass,
	EventUserSignedIn:                AuditClass,
	EventUserInvited:                 AuditClass,
	EventUserPromoted:                AuditClass,
	EventUserDemoted:                 AuditClass,
	EventUserSuspended:               AuditClass,
	EventUserActivated:               AuditClass,
	EventUserDeleted:                 AuditClass,
}

// ClassOf returns the class of name, or false if the name is unknown.
func ClassOf(name EventName) (EventClass, bool) {
	c, ok := eventClasses[name]
	return c, ok
}

// EventNamesOf returns the sorted names belonging to class c.
func EventNamesOf(c EventClass) []EventName {
	names := make([]EventName, 0, len(eventClasses))
	for name, class := range eventClasses {
		if class == c {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// ActivityEvents returns all activity-grade event names.
func ActivityEvents() []EventName { return EventNamesOf(ActivityClass) }

// AuditEvents returns all audit-grade event names.
func AuditEvents() []EventName { return EventNamesOf(AuditClass) }

// Event is an immutable fact about something that happened in a team.
// A nil CollectionID means the event is visible team-wide.
type Event struct {
	ID           uuid.UUID
	Name         EventName
	TeamID       uuid.UUID
	ActorID      uuid.UUID
	DocumentID   *uuid.UUID
	CollectionID *uuid.UUID
	ModelID      *uuid.UUID
	IP           *string
	Data         map[string]any
	CreatedAt    time.Time

	// Actor is filled in when the page is assembled. It stays nil if the
	// actor row no longer exists at all.
	Actor *User
}
