package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type conversationManagerPG struct{ pool *pgxpool.Pool }

func NewConversationManagerPG(pool *pgxpool.Pool) ConversationManager {
	return &conversationManagerPG{pool: pool}
}

func (m *conversationManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

const (
	conversationCols = `conversation_id, conversation_uuid, patient_id, subject, service, status,
	category, priority, created_by_contact_id, created_date, last_message_date`
	messageCols     = `message_id, message_uuid, conversation_id, sender_contact_id, body, sent_date, read_date`
	participantCols = `participant_id, conversation_id, contact_id, role, joined_date`
	attachmentCols  = `attachment_id, conversation_id, message_id, file_name, mime_type,
	size_bytes, storage_uri, created_date`
	statusCols = `status_id, conversation_id, status, changed_date, changed_by_contact_id, reason`
)

// -- Conversations --

func (m *conversationManagerPG) ListConversations(ctx context.Context, f ConversationFilter, p pagination.Params) ([]*Conversation, int, error) {
	q := db.NewQuery("conversation", conversationCols, "conversation_id").
		EqString("status", f.Status).
		EqString("service", f.Service)
	db.Eq(q, "patient_id", f.PatientID)
	return db.Page[Conversation](ctx, m.conn(ctx), q, p)
}

func (m *conversationManagerPG) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	c, err := db.One[Conversation](ctx, m.conn(ctx),
		`SELECT `+conversationCols+` FROM conversation WHERE conversation_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("conversation %d: %w", id, err)
	}
	return c, nil
}

func (m *conversationManagerPG) GetConversationByUUID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	c, err := db.One[Conversation](ctx, m.conn(ctx),
		`SELECT `+conversationCols+` FROM conversation WHERE conversation_uuid = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("conversation %s: %w", id, err)
	}
	return c, nil
}

func (m *conversationManagerPG) ConversationExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM conversation WHERE conversation_id = $1`, id)
}

func (m *conversationManagerPG) CreateConversation(ctx context.Context, c *Conversation) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO conversation (conversation_uuid, patient_id, subject, service, status,
			category, priority, created_by_contact_id, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING conversation_id`,
		c.ConversationUUID, c.PatientID, c.Subject, c.Service, c.Status,
		c.Category, c.Priority, c.CreatedByContactID, c.CreatedDate,
	).Scan(&c.ConversationID)
	return c.ConversationID, db.Translate(err)
}

func (m *conversationManagerPG) UpdateConversation(ctx context.Context, c *Conversation) error {
	tag, err := m.conn(ctx).Exec(ctx, `
		UPDATE conversation SET patient_id = $2, subject = $3, service = $4, status = $5,
			category = $6, priority = $7
		WHERE conversation_id = $1`,
		c.ConversationID, c.PatientID, c.Subject, c.Service, c.Status, c.Category, c.Priority)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected("conversation", c.ConversationID, tag.RowsAffected())
}

func (m *conversationManagerPG) DeleteConversation(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "conversation", id, `DELETE FROM conversation WHERE conversation_id = $1`, id)
}

// -- Messages --

func (m *conversationManagerPG) ListMessages(ctx context.Context, conversationID int64, p pagination.Params) ([]*Message, int, error) {
	q := db.NewQuery("conversation_message", messageCols, "message_id").Where("conversation_id = ?", conversationID)
	return db.Page[Message](ctx, m.conn(ctx), q, p)
}

func (m *conversationManagerPG) GetMessage(ctx context.Context, conversationID, messageID int64) (*Message, error) {
	msg, err := db.One[Message](ctx, m.conn(ctx), `SELECT `+messageCols+` FROM conversation_message
		WHERE conversation_id = $1 AND message_id = $2`, conversationID, messageID)
	if err != nil {
		return nil, fmt.Errorf("message %d: %w", messageID, err)
	}
	return msg, nil
}

func (m *conversationManagerPG) CreateMessage(ctx context.Context, msg *Message) (int64, error) {
	err := db.InTx(ctx, m.pool, func(ctx context.Context) error {
		conn := m.conn(ctx)
		if err := conn.QueryRow(ctx, `
			INSERT INTO conversation_message (message_uuid, conversation_id, sender_contact_id, body, sent_date, read_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING message_id`,
			msg.MessageUUID, msg.ConversationID, msg.SenderContactID, msg.Body, msg.SentDate, msg.ReadDate,
		).Scan(&msg.MessageID); err != nil {
			return db.Translate(err)
		}
		_, err := conn.Exec(ctx, `
			UPDATE conversation SET last_message_date = GREATEST(COALESCE(last_message_date, $2), $2)
			WHERE conversation_id = $1`, msg.ConversationID, msg.SentDate)
		return err
	})
	if err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

func (m *conversationManagerPG) UpdateMessage(ctx context.Context, msg *Message) error {
	tag, err := m.conn(ctx).Exec(ctx, `
		UPDATE conversation_message SET body = $3, read_date = $4
		WHERE conversation_id = $1 AND message_id = $2`,
		msg.ConversationID, msg.MessageID, msg.Body, msg.ReadDate)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected("message", msg.MessageID, tag.RowsAffected())
}

func (m *conversationManagerPG) DeleteMessage(ctx context.Context, conversationID, messageID int64) error {
	return db.Delete(ctx, m.conn(ctx), "message", messageID,
		`DELETE FROM conversation_message WHERE conversation_id = $1 AND message_id = $2`, conversationID, messageID)
}

// -- Participants --

func (m *conversationManagerPG) ListParticipants(ctx context.Context, conversationID int64, p pagination.Params) ([]*Participant, int, error) {
	q := db.NewQuery("conversation_participant", participantCols, "participant_id").Where("conversation_id = ?", conversationID)
	return db.Page[Participant](ctx, m.conn(ctx), q, p)
}

func (m *conversationManagerPG) IsParticipant(ctx context.Context, conversationID, contactID int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx),
		`SELECT 1 FROM conversation_participant WHERE conversation_id = $1 AND contact_id = $2`, conversationID, contactID)
}

func (m *conversationManagerPG) CreateParticipant(ctx context.Context, p *Participant) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO conversation_participant (conversation_id, contact_id, role, joined_date)
		VALUES ($1, $2, $3, $4)
		RETURNING participant_id`,
		p.ConversationID, p.ContactID, p.Role, p.JoinedDate,
	).Scan(&p.ParticipantID)
	return p.ParticipantID, db.Translate(err)
}

func (m *conversationManagerPG) DeleteParticipant(ctx context.Context, conversationID, participantID int64) error {
	tag, err := m.conn(ctx).Exec(ctx,
		`DELETE FROM conversation_participant WHERE conversation_id = $1 AND participant_id = $2`,
		conversationID, participantID)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected("participant", participantID, tag.RowsAffected())
}

// -- Attachments --

func (m *conversationManagerPG) ListAttachments(ctx context.Context, conversationID int64, p pagination.Params) ([]*Attachment, int, error) {
	q := db.NewQuery("conversation_attachment", attachmentCols, "attachment_id").Where("conversation_id = ?", conversationID)
	return db.Page[Attachment](ctx, m.conn(ctx), q, p)
}

func (m *conversationManagerPG) GetAttachment(ctx context.Context, conversationID, attachmentID int64) (*Attachment, error) {
	a, err := db.One[Attachment](ctx, m.conn(ctx), `SELECT `+attachmentCols+` FROM conversation_attachment
		WHERE conversation_id = $1 AND attachment_id = $2`, conversationID, attachmentID)
	if err != nil {
		return nil, fmt.Errorf("attachment %d: %w", attachmentID, err)
	}
	return a, nil
}

func (m *conversationManagerPG) CreateAttachment(ctx context.Context, a *Attachment) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO conversation_attachment (conversation_id, message_id, file_name, mime_type, size_bytes, storage_uri)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING attachment_id, created_date`,
		a.ConversationID, a.MessageID, a.FileName, a.MimeType, a.SizeBytes, a.StorageURI,
	).Scan(&a.AttachmentID, &a.CreatedDate)
	return a.AttachmentID, db.Translate(err)
}

func (m *conversationManagerPG) DeleteAttachment(ctx context.Context, conversationID, attachmentID int64) error {
	tag, err := m.conn(ctx).Exec(ctx,
		`DELETE FROM conversation_attachment WHERE conversation_id = $1 AND attachment_id = $2`,
		conversationID, attachmentID)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected("attachment", attachmentID, tag.RowsAffected())
}

// -- Statuses --

func (m *conversationManagerPG) ListStatuses(ctx context.Context, conversationID int64, p pagination.Params) ([]*Status, int, error) {
	q := db.NewQuery("conversation_status", statusCols, "status_id").Where("conversation_id = ?", conversationID)
	return db.Page[Status](ctx, m.conn(ctx), q, p)
}

func (m *conversationManagerPG) CreateStatus(ctx context.Context, s *Status) (int64, error) {
	err := db.InTx(ctx, m.pool, func(ctx context.Context) error {
		conn := m.conn(ctx)
		if err := conn.QueryRow(ctx, `
			INSERT INTO conversation_status (conversation_id, status, changed_date, changed_by_contact_id, reason)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING status_id`,
			s.ConversationID, s.Status, s.ChangedDate, s.ChangedByContactID, s.Reason,
		).Scan(&s.StatusID); err != nil {
			return db.Translate(err)
		}
		tag, err := conn.Exec(ctx, `UPDATE conversation SET status = $2 WHERE conversation_id = $1`,
			s.ConversationID, s.Status)
		if err != nil {
			return err
		}
		return db.Affected("conversation", s.ConversationID, tag.RowsAffected())
	})
	if err != nil {
		return 0, err
	}
	return s.StatusID, nil
}

// -- Links --

type linkTable struct {
	table  string
	column string
}

var linkTables = map[LinkKind]linkTable{
	TaskGroupLink:       {table: "conversation_task_group", column: "task_group_id"},
	MedicationLink:      {table: "conversation_medication", column: "prescription_id"},
	ExternalPatientLink: {table: "conversation_external_patient", column: "external_patient_id"},
}

func tableFor(kind LinkKind) (linkTable, error) {
	t, ok := linkTables[kind]
	if !ok {
		return linkTable{}, fmt.Errorf("unknown link kind %d", kind)
	}
	return t, nil
}

func (m *conversationManagerPG) TaskGroupExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM task_group WHERE task_group_id = $1`, id)
}

func (m *conversationManagerPG) ListLinks(ctx context.Context, kind LinkKind, conversationID int64, p pagination.Params) ([]*Link, int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}
	q := db.NewQuery(t.table, "conversation_id, "+t.column+" AS target_id", t.column).
		Where("conversation_id = ?", conversationID)
	return db.Page[Link](ctx, m.conn(ctx), q, p)
}

func (m *conversationManagerPG) IsLinked(ctx context.Context, kind LinkKind, conversationID, targetID int64) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}
	return db.Exists(ctx, m.conn(ctx),
		fmt.Sprintf(`SELECT 1 FROM %s WHERE conversation_id = $1 AND %s = $2`, t.table, t.column),
		conversationID, targetID)
}

func (m *conversationManagerPG) CreateLink(ctx context.Context, kind LinkKind, conversationID, targetID int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	_, err = m.conn(ctx).Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (conversation_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`, t.table, t.column),
		conversationID, targetID)
	return db.Translate(err)
}

func (m *conversationManagerPG) DeleteLink(ctx context.Context, kind LinkKind, conversationID, targetID int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	tag, err := m.conn(ctx).Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE conversation_id = $1 AND %s = $2`, t.table, t.column),
		conversationID, targetID)
	if err != nil {
		return err
	}
	return db.Affected(kind.String()+" link", targetID, tag.RowsAffected())
}
