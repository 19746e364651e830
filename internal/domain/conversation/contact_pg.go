package conversation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type contactManagerPG struct{ pool *pgxpool.Pool }

func NewContactManagerPG(pool *pgxpool.Pool) ContactManager {
	return &contactManagerPG{pool: pool}
}

func (m *contactManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

const contactCols = `contact_id, identifier, service, display_name, contact_type,
	organization, email, phone, created_date`

func (m *contactManagerPG) ListContacts(ctx context.Context, f ContactFilter, p pagination.Params) ([]*Contact, int, error) {
	q := db.NewQuery("conversation_contact", contactCols, "contact_id").
		EqString("identifier", f.Identifier).
		EqString("service", f.Service)
	return db.Page[Contact](ctx, m.conn(ctx), q, p)
}

func (m *contactManagerPG) GetContact(ctx context.Context, id int64) (*Contact, error) {
	c, err := db.One[Contact](ctx, m.conn(ctx), `SELECT `+contactCols+` FROM conversation_contact WHERE contact_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("contact %d: %w", id, err)
	}
	return c, nil
}

func (m *contactManagerPG) FindContact(ctx context.Context, identifier, service string) (*Contact, error) {
	c, err := db.One[Contact](ctx, m.conn(ctx), `SELECT `+contactCols+` FROM conversation_contact
		WHERE identifier = $1 AND service = $2`, identifier, service)
	if err != nil {
		return nil, fmt.Errorf("contact %s/%s: %w", service, identifier, err)
	}
	return c, nil
}

func (m *contactManagerPG) ContactExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM conversation_contact WHERE contact_id = $1`, id)
}

func (m *contactManagerPG) CreateContact(ctx context.Context, c *Contact) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO conversation_contact (identifier, service, display_name, contact_type, organization, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING contact_id, created_date`,
		c.Identifier, c.Service, c.DisplayName, c.ContactType, c.Organization, c.Email, c.Phone,
	).Scan(&c.ContactID, &c.CreatedDate)
	return c.ContactID, db.Translate(err)
}

func (m *contactManagerPG) UpdateContact(ctx context.Context, c *Contact) error {
	tag, err := m.conn(ctx).Exec(ctx, `
		UPDATE conversation_contact SET identifier = $2, service = $3, display_name = $4,
			contact_type = $5, organization = $6, email = $7, phone = $8
		WHERE contact_id = $1`,
		c.ContactID, c.Identifier, c.Service, c.DisplayName, c.ContactType, c.Organization, c.Email, c.Phone)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected("contact", c.ContactID, tag.RowsAffected())
}

func (m *contactManagerPG) DeleteContact(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "contact", id, `DELETE FROM conversation_contact WHERE contact_id = $1`, id)
}

func (m *contactManagerPG) ListContactUsers(ctx context.Context, contactID int64, p pagination.Params) ([]*ContactUser, int, error) {
	q := db.NewQuery("conversation_contact_user", "contact_id, user_id", "user_id").
		Where("contact_id = ?", contactID)
	return db.Page[ContactUser](ctx, m.conn(ctx), q, p)
}

func (m *contactManagerPG) ContactUserLinked(ctx context.Context, contactID, userID int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx),
		`SELECT 1 FROM conversation_contact_user WHERE contact_id = $1 AND user_id = $2`, contactID, userID)
}

func (m *contactManagerPG) LinkContactUser(ctx context.Context, contactID, userID int64) error {
	_, err := m.conn(ctx).Exec(ctx, `
		INSERT INTO conversation_contact_user (contact_id, user_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, contactID, userID)
	return db.Translate(err)
}

func (m *contactManagerPG) UnlinkContactUser(ctx context.Context, contactID, userID int64) error {
	tag, err := m.conn(ctx).Exec(ctx,
		`DELETE FROM conversation_contact_user WHERE contact_id = $1 AND user_id = $2`, contactID, userID)
	if err != nil {
		return err
	}
	return db.Affected("contact user", userID, tag.RowsAffected())
}
