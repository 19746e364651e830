package conversation

import (
	"time"

	"github.com/google/uuid"
)

type ConversationContactDto struct {
	ContactID    int64     `json:"contactId"`
	Identifier   string    `json:"identifier" validate:"required,max=255"`
	Service      string    `json:"service" validate:"required,max=60"`
	DisplayName  string    `json:"displayName" validate:"required"`
	ContactType  *string   `json:"contactType,omitempty"`
	Organization *string   `json:"organization,omitempty"`
	Email        *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedDate  time.Time `json:"createdDate"`
}

type ContactUserDto struct {
	ContactID int64 `json:"contactId"`
	UserID    int64 `json:"userId"`
}

type ConversationDto struct {
	ConversationID     int64      `json:"conversationId"`
	ConversationUUID   uuid.UUID  `json:"conversationUuid"`
	PatientID          *int64     `json:"patientId,omitempty"`
	Subject            string     `json:"subject" validate:"required"`
	Service            string     `json:"service" validate:"required"`
	Status             string     `json:"status" validate:"required"`
	Category           *string    `json:"category,omitempty"`
	Priority           *string    `json:"priority,omitempty"`
	CreatedByContactID *int64     `json:"createdByContactId,omitempty"`
	CreatedDate        time.Time  `json:"createdDate"`
	LastMessageDate    *time.Time `json:"lastMessageDate,omitempty"`
}

type ConversationMessageDto struct {
	MessageID       int64      `json:"messageId"`
	MessageUUID     uuid.UUID  `json:"messageUuid"`
	ConversationID  int64      `json:"conversationId"`
	SenderContactID int64      `json:"senderContactId" validate:"required"`
	Body            string     `json:"body" validate:"required"`
	SentDate        time.Time  `json:"sentDate"`
	ReadDate        *time.Time `json:"readDate,omitempty"`
}

type ConversationParticipantDto struct {
	ParticipantID  int64     `json:"participantId"`
	ConversationID int64     `json:"conversationId"`
	ContactID      int64     `json:"contactId" validate:"required"`
	Role           string    `json:"role" validate:"required"`
	JoinedDate     time.Time `json:"joinedDate"`
}

type ConversationAttachmentDto struct {
	AttachmentID   int64     `json:"attachmentId"`
	ConversationID int64     `json:"conversationId"`
	MessageID      int64     `json:"messageId" validate:"required"`
	FileName       string    `json:"fileName" validate:"required"`
	MimeType       string    `json:"mimeType" validate:"required"`
	SizeBytes      int64     `json:"sizeBytes" validate:"gte=0"`
	StorageURI     string    `json:"storageUri" validate:"required,uri"`
	CreatedDate    time.Time `json:"createdDate"`
}

type ConversationStatusDto struct {
	StatusID           int64     `json:"statusId"`
	ConversationID     int64     `json:"conversationId"`
	Status             string    `json:"status" validate:"required"`
	ChangedDate        time.Time `json:"changedDate"`
	ChangedByContactID *int64    `json:"changedByContactId,omitempty"`
	Reason             *string   `json:"reason,omitempty"`
}

type ConversationTaskGroupDto struct {
	ConversationID int64 `json:"conversationId"`
	TaskGroupID    int64 `json:"taskGroupId"`
}

type ConversationMedicationDto struct {
	ConversationID int64 `json:"conversationId"`
	PrescriptionID int64 `json:"prescriptionId"`
}

type ConversationExternalPatientDto struct {
	ConversationID    int64 `json:"conversationId"`
	ExternalPatientID int64 `json:"externalPatientId"`
}
