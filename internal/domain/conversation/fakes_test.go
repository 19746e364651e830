package conversation

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ehr/prescribeit/internal/platform/apperr"
	"github.com/ehr/prescribeit/internal/testutil"
	"github.com/ehr/prescribeit/pkg/pagination"
)

// -- Mock contact manager --

type mockContacts struct {
	mock.Mock
}

func (m *mockContacts) ListContacts(ctx context.Context, f ContactFilter, p pagination.Params) ([]*Contact, int, error) {
	args := m.Called(ctx, f, p)
	items, _ := args.Get(0).([]*Contact)
	return items, args.Int(1), args.Error(2)
}

func (m *mockContacts) GetContact(ctx context.Context, id int64) (*Contact, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*Contact)
	return c, args.Error(1)
}

func (m *mockContacts) FindContact(ctx context.Context, identifier, service string) (*Contact, error) {
	args := m.Called(ctx, identifier, service)
	c, _ := args.Get(0).(*Contact)
	return c, args.Error(1)
}

func (m *mockContacts) ContactExists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockContacts) CreateContact(ctx context.Context, c *Contact) (int64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockContacts) UpdateContact(ctx context.Context, c *Contact) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContacts) DeleteContact(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockContacts) ListContactUsers(ctx context.Context, contactID int64, p pagination.Params) ([]*ContactUser, int, error) {
	args := m.Called(ctx, contactID, p)
	items, _ := args.Get(0).([]*ContactUser)
	return items, args.Int(1), args.Error(2)
}

func (m *mockContacts) ContactUserLinked(ctx context.Context, contactID, userID int64) (bool, error) {
	args := m.Called(ctx, contactID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockContacts) LinkContactUser(ctx context.Context, contactID, userID int64) error {
	return m.Called(ctx, contactID, userID).Error(0)
}

func (m *mockContacts) UnlinkContactUser(ctx context.Context, contactID, userID int64) error {
	return m.Called(ctx, contactID, userID).Error(0)
}

// -- Fake conversation manager --

type linkKey struct {
	kind           LinkKind
	conversationID int64
	targetID       int64
}

type fakeConversations struct {
	conversations map[int64]*Conversation
	messages      map[int64]*Message
	participants  map[int64]*Participant
	attachments   map[int64]*Attachment
	statuses      map[int64]*Status
	taskGroups    map[int64]bool
	links         map[linkKey]bool
	linkWrites    int
	nextID        int64
}

func newFakeConversations() *fakeConversations {
	return &fakeConversations{
		conversations: make(map[int64]*Conversation),
		messages:      make(map[int64]*Message),
		participants:  make(map[int64]*Participant),
		attachments:   make(map[int64]*Attachment),
		statuses:      make(map[int64]*Status),
		taskGroups:    make(map[int64]bool),
		links:         make(map[linkKey]bool),
	}
}

func (f *fakeConversations) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeConversations) add(subject string) *Conversation {
	c := &Conversation{ConversationID: f.id(), ConversationUUID: uuid.New(), Subject: subject, Service: "prescribeit", Status: "open"}
	f.conversations[c.ConversationID] = c
	return c
}

func (f *fakeConversations) ListConversations(_ context.Context, flt ConversationFilter, p pagination.Params) ([]*Conversation, int, error) {
	items, total := testutil.Page(f.conversations, func(c *Conversation) int64 { return c.ConversationID },
		func(c *Conversation) bool { return flt.Status == "" || c.Status == flt.Status }, p)
	return items, total, nil
}

func (f *fakeConversations) GetConversation(_ context.Context, id int64) (*Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, apperr.NotFound("conversation %d", id)
	}
	return c, nil
}

func (f *fakeConversations) GetConversationByUUID(_ context.Context, id uuid.UUID) (*Conversation, error) {
	for _, c := range f.conversations {
		if c.ConversationUUID == id {
			return c, nil
		}
	}
	return nil, apperr.NotFound("conversation %s", id)
}

func (f *fakeConversations) ConversationExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.conversations[id]
	return ok, nil
}

func (f *fakeConversations) CreateConversation(_ context.Context, c *Conversation) (int64, error) {
	c.ConversationID = f.id()
	f.conversations[c.ConversationID] = c
	return c.ConversationID, nil
}

func (f *fakeConversations) UpdateConversation(_ context.Context, c *Conversation) error {
	if _, ok := f.conversations[c.ConversationID]; !ok {
		return apperr.NotFound("conversation %d", c.ConversationID)
	}
	f.conversations[c.ConversationID] = c
	return nil
}

func (f *fakeConversations) DeleteConversation(_ context.Context, id int64) error {
	if _, ok := f.conversations[id]; !ok {
		return apperr.NotFound("conversation %d", id)
	}
	delete(f.conversations, id)
	return nil
}

func (f *fakeConversations) ListMessages(_ context.Context, conversationID int64, p pagination.Params) ([]*Message, int, error) {
	items, total := testutil.Page(f.messages, func(m *Message) int64 { return m.MessageID },
		func(m *Message) bool { return m.ConversationID == conversationID }, p)
	return items, total, nil
}

func (f *fakeConversations) GetMessage(_ context.Context, conversationID, messageID int64) (*Message, error) {
	m, ok := f.messages[messageID]
	if !ok || m.ConversationID != conversationID {
		return nil, apperr.NotFound("message %d", messageID)
	}
	return m, nil
}

func (f *fakeConversations) CreateMessage(_ context.Context, m *Message) (int64, error) {
	m.MessageID = f.id()
	f.messages[m.MessageID] = m
	sent := m.SentDate
	f.conversations[m.ConversationID].LastMessageDate = &sent
	return m.MessageID, nil
}

func (f *fakeConversations) UpdateMessage(_ context.Context, m *Message) error {
	f.messages[m.MessageID] = m
	return nil
}

func (f *fakeConversations) DeleteMessage(_ context.Context, conversationID, messageID int64) error {
	if m, ok := f.messages[messageID]; !ok || m.ConversationID != conversationID {
		return apperr.NotFound("message %d", messageID)
	}
	delete(f.messages, messageID)
	return nil
}

func (f *fakeConversations) ListParticipants(_ context.Context, conversationID int64, p pagination.Params) ([]*Participant, int, error) {
	items, total := testutil.Page(f.participants, func(pt *Participant) int64 { return pt.ParticipantID },
		func(pt *Participant) bool { return pt.ConversationID == conversationID }, p)
	return items, total, nil
}

func (f *fakeConversations) IsParticipant(_ context.Context, conversationID, contactID int64) (bool, error) {
	for _, pt := range f.participants {
		if pt.ConversationID == conversationID && pt.ContactID == contactID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConversations) CreateParticipant(_ context.Context, pt *Participant) (int64, error) {
	pt.ParticipantID = f.id()
	f.participants[pt.ParticipantID] = pt
	return pt.ParticipantID, nil
}

func (f *fakeConversations) DeleteParticipant(_ context.Context, conversationID, participantID int64) error {
	if pt, ok := f.participants[participantID]; !ok || pt.ConversationID != conversationID {
		return apperr.NotFound("participant %d", participantID)
	}
	delete(f.participants, participantID)
	return nil
}

func (f *fakeConversations) ListAttachments(_ context.Context, conversationID int64, p pagination.Params) ([]*Attachment, int, error) {
	items, total := testutil.Page(f.attachments, func(a *Attachment) int64 { return a.AttachmentID },
		func(a *Attachment) bool { return a.ConversationID == conversationID }, p)
	return items, total, nil
}

func (f *fakeConversations) GetAttachment(_ context.Context, conversationID, attachmentID int64) (*Attachment, error) {
	a, ok := f.attachments[attachmentID]
	if !ok || a.ConversationID != conversationID {
		return nil, apperr.NotFound("attachment %d", attachmentID)
	}
	return a, nil
}

func (f *fakeConversations) CreateAttachment(_ context.Context, a *Attachment) (int64, error) {
	a.AttachmentID = f.id()
	f.attachments[a.AttachmentID] = a
	return a.AttachmentID, nil
}

func (f *fakeConversations) DeleteAttachment(_ context.Context, conversationID, attachmentID int64) error {
	if _, err := f.GetAttachment(context.Background(), conversationID, attachmentID); err != nil {
		return err
	}
	delete(f.attachments, attachmentID)
	return nil
}

func (f *fakeConversations) ListStatuses(_ context.Context, conversationID int64, p pagination.Params) ([]*Status, int, error) {
	items, total := testutil.Page(f.statuses, func(s *Status) int64 { return s.StatusID },
		func(s *Status) bool { return s.ConversationID == conversationID }, p)
	return items, total, nil
}

func (f *fakeConversations) CreateStatus(_ context.Context, s *Status) (int64, error) {
	s.StatusID = f.id()
	f.statuses[s.StatusID] = s
	f.conversations[s.ConversationID].Status = s.Status
	return s.StatusID, nil
}

func (f *fakeConversations) TaskGroupExists(_ context.Context, id int64) (bool, error) {
	return f.taskGroups[id], nil
}

func (f *fakeConversations) ListLinks(_ context.Context, kind LinkKind, conversationID int64, p pagination.Params) ([]*Link, int, error) {
	all := make(map[int64]*Link)
	for k := range f.links {
		if k.kind == kind && k.conversationID == conversationID {
			all[k.targetID] = &Link{ConversationID: conversationID, TargetID: k.targetID}
		}
	}
	items, total := testutil.Page(all, func(l *Link) int64 { return l.TargetID }, nil, p)
	return items, total, nil
}

func (f *fakeConversations) IsLinked(_ context.Context, kind LinkKind, conversationID, targetID int64) (bool, error) {
	return f.links[linkKey{kind, conversationID, targetID}], nil
}

func (f *fakeConversations) CreateLink(_ context.Context, kind LinkKind, conversationID, targetID int64) error {
	f.linkWrites++
	f.links[linkKey{kind, conversationID, targetID}] = true
	return nil
}

func (f *fakeConversations) DeleteLink(_ context.Context, kind LinkKind, conversationID, targetID int64) error {
	k := linkKey{kind, conversationID, targetID}
	if !f.links[k] {
		return apperr.NotFound("%s link %d", kind, targetID)
	}
	delete(f.links, k)
	return nil
}

// -- Lookups --

type idSet map[int64]bool

func (s idSet) PrescriptionExists(_ context.Context, id int64) (bool, error)    { return s[id], nil }
func (s idSet) ExternalPatientExists(_ context.Context, id int64) (bool, error) { return s[id], nil }
