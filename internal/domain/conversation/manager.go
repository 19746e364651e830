package conversation

import (
	"context"

	"github.com/google/uuid"

	"github.com/ehr/prescribeit/pkg/pagination"
)

// ContactManager stores conversation contacts and the EMR users behind them.
type ContactManager interface {
	ListContacts(ctx context.Context, f ContactFilter, p pagination.Params) ([]*Contact, int, error)
	GetContact(ctx context.Context, id int64) (*Contact, error)
	// FindContact looks a contact up by its natural key.
	FindContact(ctx context.Context, identifier, service string) (*Contact, error)
	ContactExists(ctx context.Context, id int64) (bool, error)
	CreateContact(ctx context.Context, c *Contact) (int64, error)
	UpdateContact(ctx context.Context, c *Contact) error
	DeleteContact(ctx context.Context, id int64) error

	ListContactUsers(ctx context.Context, contactID int64, p pagination.Params) ([]*ContactUser, int, error)
	ContactUserLinked(ctx context.Context, contactID, userID int64) (bool, error)
	LinkContactUser(ctx context.Context, contactID, userID int64) error
	UnlinkContactUser(ctx context.Context, contactID, userID int64) error
}

// ConversationManager stores conversations and everything owned by them.
type ConversationManager interface {
	ListConversations(ctx context.Context, f ConversationFilter, p pagination.Params) ([]*Conversation, int, error)
	GetConversation(ctx context.Context, id int64) (*Conversation, error)
	GetConversationByUUID(ctx context.Context, id uuid.UUID) (*Conversation, error)
	ConversationExists(ctx context.Context, id int64) (bool, error)
	CreateConversation(ctx context.Context, c *Conversation) (int64, error)
	UpdateConversation(ctx context.Context, c *Conversation) error
	DeleteConversation(ctx context.Context, id int64) error

	ListMessages(ctx context.Context, conversationID int64, p pagination.Params) ([]*Message, int, error)
	GetMessage(ctx context.Context, conversationID, messageID int64) (*Message, error)
	// CreateMessage also advances the conversation's last message date.
	CreateMessage(ctx context.Context, m *Message) (int64, error)
	UpdateMessage(ctx context.Context, m *Message) error
	DeleteMessage(ctx context.Context, conversationID, messageID int64) error

	ListParticipants(ctx context.Context, conversationID int64, p pagination.Params) ([]*Participant, int, error)
	IsParticipant(ctx context.Context, conversationID, contactID int64) (bool, error)
	CreateParticipant(ctx context.Context, p *Participant) (int64, error)
	DeleteParticipant(ctx context.Context, conversationID, participantID int64) error

	ListAttachments(ctx context.Context, conversationID int64, p pagination.Params) ([]*Attachment, int, error)
	GetAttachment(ctx context.Context, conversationID, attachmentID int64) (*Attachment, error)
	CreateAttachment(ctx context.Context, a *Attachment) (int64, error)
	DeleteAttachment(ctx context.Context, conversationID, attachmentID int64) error

	ListStatuses(ctx context.Context, conversationID int64, p pagination.Params) ([]*Status, int, error)
	// CreateStatus records s and sets the conversation's current status
	// atomically.
	CreateStatus(ctx context.Context, s *Status) (int64, error)

	TaskGroupExists(ctx context.Context, id int64) (bool, error)
	ListLinks(ctx context.Context, kind LinkKind, conversationID int64, p pagination.Params) ([]*Link, int, error)
	IsLinked(ctx context.Context, kind LinkKind, conversationID, targetID int64) (bool, error)
	CreateLink(ctx context.Context, kind LinkKind, conversationID, targetID int64) error
	DeleteLink(ctx context.Context, kind LinkKind, conversationID, targetID int64) error
}

// PrescriptionLookup reports whether a prescription exists.
type PrescriptionLookup interface {
	PrescriptionExists(ctx context.Context, id int64) (bool, error)
}

// ExternalPatientLookup reports whether an external patient exists.
type ExternalPatientLookup interface {
	ExternalPatientExists(ctx context.Context, id int64) (bool, error)
}
