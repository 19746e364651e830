package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type Service struct {
	contacts      ContactManager
	conversations ConversationManager
	prescriptions PrescriptionLookup
	patients      ExternalPatientLookup
	now           func() time.Time
}

func NewService(contacts ContactManager, conversations ConversationManager,
	prescriptions PrescriptionLookup, patients ExternalPatientLookup) *Service {
	return &Service{
		contacts:      contacts,
		conversations: conversations,
		prescriptions: prescriptions,
		patients:      patients,
		now:           time.Now,
	}
}

func (s *Service) stamp(t *time.Time) {
	if t.IsZero() {
		*t = s.now().UTC()
	}
}

type existsFunc func(ctx context.Context, id int64) (bool, error)

// mustExist returns miss when exists reports no row for id.
func mustExist(ctx context.Context, exists existsFunc, id int64, miss func(string, ...interface{}) error, what string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return miss("%s %d", what, id)
	}
	return nil
}

// -- Contacts --

func (s *Service) ListContacts(ctx context.Context, f ContactFilter, p pagination.Params) ([]*Contact, int, error) {
	return s.contacts.ListContacts(ctx, f, p)
}

func (s *Service) GetContact(ctx context.Context, id int64) (*Contact, error) {
	return s.contacts.GetContact(ctx, id)
}

// contactTaken reports whether identifier+service belongs to a contact other
// than exceptID.
func (s *Service) contactTaken(ctx context.Context, c *Contact, exceptID int64) (bool, error) {
	existing, err := s.contacts.FindContact(ctx, c.Identifier, c.Service)
	if apperr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ContactID != exceptID, nil
}

func (s *Service) CreateContact(ctx context.Context, c *Contact) (int64, error) {
	taken, err := s.contactTaken(ctx, c, 0)
	if err != nil {
		return 0, err
	}
	if taken {
		zerolog.Ctx(ctx).Warn().Str("identifier", c.Identifier).Str("service", c.Service).Msg("duplicate contact")
		return 0, apperr.Conflict("contact %s already exists for service %s", c.Identifier, c.Service)
	}
	return s.contacts.CreateContact(ctx, c)
}

func (s *Service) UpdateContact(ctx context.Context, c *Contact) error {
	if err := mustExist(ctx, s.contacts.ContactExists, c.ContactID, apperr.NotFound, "contact"); err != nil {
		return err
	}
	taken, err := s.contactTaken(ctx, c, c.ContactID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("contact %s already exists for service %s", c.Identifier, c.Service)
	}
	return s.contacts.UpdateContact(ctx, c)
}

func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	return s.contacts.DeleteContact(ctx, id)
}

func (s *Service) ListContactUsers(ctx context.Context, contactID int64, p pagination.Params) ([]*ContactUser, int, error) {
	if err := mustExist(ctx, s.contacts.ContactExists, contactID, apperr.NotFound, "contact"); err != nil {
		return nil, 0, err
	}
	return s.contacts.ListContactUsers(ctx, contactID, p)
}

// LinkContactUser is idempotent: an existing link is left untouched.
func (s *Service) LinkContactUser(ctx context.Context, contactID, userID int64) error {
	if err := mustExist(ctx, s.contacts.ContactExists, contactID, apperr.NotFound, "contact"); err != nil {
		return err
	}
	linked, err := s.contacts.ContactUserLinked(ctx, contactID, userID)
	if err != nil || linked {
		return err
	}
	return s.contacts.LinkContactUser(ctx, contactID, userID)
}

func (s *Service) UnlinkContactUser(ctx context.Context, contactID, userID int64) error {
	return s.contacts.UnlinkContactUser(ctx, contactID, userID)
}

// -- Conversations --

func (s *Service) ListConversations(ctx context.Context, f ConversationFilter, p pagination.Params) ([]*Conversation, int, error) {
	return s.conversations.ListConversations(ctx, f, p)
}

func (s *Service) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	return s.conversations.GetConversation(ctx, id)
}

func (s *Service) GetConversationByUUID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	return s.conversations.GetConversationByUUID(ctx, id)
}

func (s *Service) requireConversation(ctx context.Context, id int64) error {
	return mustExist(ctx, s.conversations.ConversationExists, id, apperr.NotFound, "conversation")
}

func (s *Service) CreateConversation(ctx context.Context, c *Conversation) (int64, error) {
	if c.CreatedByContactID != nil {
		if err := mustExist(ctx, s.contacts.ContactExists, *c.CreatedByContactID, apperr.Invalid, "contact"); err != nil {
			return 0, err
		}
	}
	if c.ConversationUUID == uuid.Nil {
		c.ConversationUUID = uuid.New()
	}
	s.stamp(&c.CreatedDate)
	return s.conversations.CreateConversation(ctx, c)
}

func (s *Service) UpdateConversation(ctx context.Context, c *Conversation) error {
	return s.conversations.UpdateConversation(ctx, c)
}

func (s *Service) DeleteConversation(ctx context.Context, id int64) error {
	return s.conversations.DeleteConversation(ctx, id)
}

// -- Messages --

func (s *Service) ListMessages(ctx context.Context, conversationID int64, p pagination.Params) ([]*Message, int, error) {
	if err := s.requireConversation(ctx, conversationID); err != nil {
		return nil, 0, err
	}
	return s.conversations.ListMessages(ctx, conversationID, p)
}

func (s *Service) GetMessage(ctx context.Context, conversationID, messageID int64) (*Message, error) {
	return s.conversations.GetMessage(ctx, conversationID, messageID)
}

func (s *Service) CreateMessage(ctx context.Context, m *Message) (int64, error) {
	if err := s.requireConversation(ctx, m.ConversationID); err != nil {
		return 0, err
	}
	if err := mustExist(ctx, s.contacts.ContactExists, m.SenderContactID, apperr.Invalid, "sender contact"); err != nil {
		return 0, err
	}
	if m.MessageUUID == uuid.Nil {
		m.MessageUUID = uuid.New()
	}
	s.stamp(&m.SentDate)
	return s.conversations.CreateMessage(ctx, m)
}

func (s *Service) UpdateMessage(ctx context.Context, m *Message) error {
	if _, err := s.conversations.GetMessage(ctx, m.ConversationID, m.MessageID); err != nil {
		return err
	}
	return s.conversations.UpdateMessage(ctx, m)
}

func (s *Service) DeleteMessage(ctx context.Context, conversationID, messageID int64) error {
	return s.conversations.DeleteMessage(ctx, conversationID, messageID)
}

// -- Participants --

func (s *Service) ListParticipants(ctx context.Context, conversationID int64, p pagination.Params) ([]*Participant, int, error) {
	if err := s.requireConversation(ctx, conversationID); err != nil {
		return nil, 0, err
	}
	return s.conversations.ListParticipants(ctx, conversationID, p)
}

func (s *Service) AddParticipant(ctx context.Context, p *Participant) (int64, error) {
	if err := s.requireConversation(ctx, p.ConversationID); err != nil {
		return 0, err
	}
	if err := mustExist(ctx, s.contacts.ContactExists, p.ContactID, apperr.Invalid, "contact"); err != nil {
		return 0, err
	}
	joined, err := s.conversations.IsParticipant(ctx, p.ConversationID, p.ContactID)
	if err != nil {
		return 0, err
	}
	if joined {
		return 0, apperr.Conflict("contact %d already participates in conversation %d", p.ContactID, p.ConversationID)
	}
	s.stamp(&p.JoinedDate)
	return s.conversations.CreateParticipant(ctx, p)
}

func (s *Service) RemoveParticipant(ctx context.Context, conversationID, participantID int64) error {
	return s.conversations.DeleteParticipant(ctx, conversationID, participantID)
}

// -- Attachments --

func (s *Service) ListAttachments(ctx context.Context, conversationID int64, p pagination.Params) ([]*Attachment, int, error) {
	if err := s.requireConversation(ctx, conversationID); err != nil {
		return nil, 0, err
	}
	return s.conversations.ListAttachments(ctx, conversationID, p)
}

func (s *Service) GetAttachment(ctx context.Context, conversationID, attachmentID int64) (*Attachment, error) {
	return s.conversations.GetAttachment(ctx, conversationID, attachmentID)
}

func (s *Service) CreateAttachment(ctx context.Context, a *Attachment) (int64, error) {
	if err := s.requireConversation(ctx, a.ConversationID); err != nil {
		return 0, err
	}
	_, err := s.conversations.GetMessage(ctx, a.ConversationID, a.MessageID)
	if apperr.IsNotFound(err) {
		return 0, apperr.Invalid("message %d is not part of conversation %d", a.MessageID, a.ConversationID)
	}
	if err != nil {
		return 0, err
	}
	return s.conversations.CreateAttachment(ctx, a)
}

func (s *Service) DeleteAttachment(ctx context.Context, conversationID, attachmentID int64) error {
	return s.conversations.DeleteAttachment(ctx, conversationID, attachmentID)
}

// -- Statuses --

func (s *Service) ListStatuses(ctx context.Context, conversationID int64, p pagination.Params) ([]*Status, int, error) {
	if err := s.requireConversation(ctx, conversationID); err != nil {
		return nil, 0, err
	}
	return s.conversations.ListStatuses(ctx, conversationID, p)
}

func (s *Service) ChangeStatus(ctx context.Context, st *Status) (int64, error) {
	if err := s.requireConversation(ctx, st.ConversationID); err != nil {
		return 0, err
	}
	if st.ChangedByContactID != nil {
		if err := mustExist(ctx, s.contacts.ContactExists, *st.ChangedByContactID, apperr.Invalid, "contact"); err != nil {
			return 0, err
		}
	}
	s.stamp(&st.ChangedDate)
	id, err := s.conversations.CreateStatus(ctx, st)
	if err != nil {
		return 0, err
	}
	zerolog.Ctx(ctx).Info().
		Int64("conversation_id", st.ConversationID).
		Str("status", st.Status).
		Msg("conversation status changed")
	return id, nil
}

// -- Links --

func (s *Service) targetExists(kind LinkKind) existsFunc {
	switch kind {
	case MedicationLink:
		return s.prescriptions.PrescriptionExists
	case ExternalPatientLink:
		return s.patients.ExternalPatientExists
	default:
		return s.conversations.TaskGroupExists
	}
}

func (s *Service) ListLinks(ctx context.Context, kind LinkKind, conversationID int64, p pagination.Params) ([]*Link, int, error) {
	if err := s.requireConversation(ctx, conversationID); err != nil {
		return nil, 0, err
	}
	return s.conversations.ListLinks(ctx, kind, conversationID, p)
}

// Link attaches a resource to a conversation. Both must exist; an existing
// link is left untouched.
func (s *Service) Link(ctx context.Context, kind LinkKind, conversationID, targetID int64) error {
	if err := s.requireConversation(ctx, conversationID); err != nil {
		return err
	}
	if err := mustExist(ctx, s.targetExists(kind), targetID, apperr.NotFound, kind.String()); err != nil {
		return err
	}
	linked, err := s.conversations.IsLinked(ctx, kind, conversationID, targetID)
	if err != nil || linked {
		return err
	}
	return s.conversations.CreateLink(ctx, kind, conversationID, targetID)
}

func (s *Service) Unlink(ctx context.Context, kind LinkKind, conversationID, targetID int64) error {
	return s.conversations.DeleteLink(ctx, kind, conversationID, targetID)
}
