package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a messaging endpoint, such as a clinician or a pharmacy, unique
// by identifier and service.
type Contact struct {
	ContactID    int64     `db:"contact_id"`
	Identifier   string    `db:"identifier"`
	Service      string    `db:"service"`
	DisplayName  string    `db:"display_name"`
	ContactType  *string   `db:"contact_type"`
	Organization *string   `db:"organization"`
	Email        *string   `db:"email"`
	Phone        *string   `db:"phone"`
	CreatedDate  time.Time `db:"created_date"`
}

type ContactUser struct {
	ContactID int64 `db:"contact_id"`
	UserID    int64 `db:"user_id"`
}

type Conversation struct {
	ConversationID     int64      `db:"conversation_id"`
	ConversationUUID   uuid.UUID  `db:"conversation_uuid"`
	PatientID          *int64     `db:"patient_id"`
	Subject            string     `db:"subject"`
	Service            string     `db:"service"`
	Status             string     `db:"status"`
	Category           *string    `db:"category"`
	Priority           *string    `db:"priority"`
	CreatedByContactID *int64     `db:"created_by_contact_id"`
	CreatedDate        time.Time  `db:"created_date"`
	LastMessageDate    *time.Time `db:"last_message_date"`
}

type Message struct {
	MessageID       int64      `db:"message_id"`
	MessageUUID     uuid.UUID  `db:"message_uuid"`
	ConversationID  int64      `db:"conversation_id"`
	SenderContactID int64      `db:"sender_contact_id"`
	Body            string     `db:"body"`
	SentDate        time.Time  `db:"sent_date"`
	ReadDate        *time.Time `db:"read_date"`
}

type Participant struct {
	ParticipantID  int64     `db:"participant_id"`
	ConversationID int64     `db:"conversation_id"`
	ContactID      int64     `db:"contact_id"`
	Role           string    `db:"role"`
	JoinedDate     time.Time `db:"joined_date"`
}

type Attachment struct {
	AttachmentID   int64     `db:"attachment_id"`
	ConversationID int64     `db:"conversation_id"`
	MessageID      int64     `db:"message_id"`
	FileName       string    `db:"file_name"`
	MimeType       string    `db:"mime_type"`
	SizeBytes      int64     `db:"size_bytes"`
	StorageURI     string    `db:"storage_uri"`
	CreatedDate    time.Time `db:"created_date"`
}

// Status is one entry in a conversation's status log. The latest entry is
// mirrored onto Conversation.Status.
type Status struct {
	StatusID           int64     `db:"status_id"`
	ConversationID     int64     `db:"conversation_id"`
	Status             string    `db:"status"`
	ChangedDate        time.Time `db:"changed_date"`
	ChangedByContactID *int64    `db:"changed_by_contact_id"`
	Reason             *string   `db:"reason"`
}

// LinkKind names a resource that can be attached to a conversation.
type LinkKind int

const (
	TaskGroupLink LinkKind = iota
	MedicationLink
	ExternalPatientLink
)

func (k LinkKind) String() string {
	switch k {
	case TaskGroupLink:
		return "task group"
	case MedicationLink:
		return "prescription"
	case ExternalPatientLink:
		return "external patient"
	default:
		return "unknown"
	}
}

// Link attaches TargetID, whose meaning depends on the LinkKind, to a
// conversation.
type Link struct {
	ConversationID int64 `db:"conversation_id"`
	TargetID       int64 `db:"target_id"`
}

type ContactFilter struct {
	Identifier string
	Service    string
}

type ConversationFilter struct {
	PatientID *int64
	Status    string
	Service   string
}
