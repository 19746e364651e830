package prescription

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type prescriptionManagerPG struct{ pool *pgxpool.Pool }

func NewPrescriptionManagerPG(pool *pgxpool.Pool) PrescriptionManager {
	return &prescriptionManagerPG{pool: pool}
}

func (m *prescriptionManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

const prescriptionCols = `prescription_id, prescription_uuid, patient_id, provider_id, status,
	written_date, start_date, end_date, medication_name, din, strength, form, route,
	quantity, quantity_unit, refills, refill_interval_days, days_supply,
	substitution_allowed, long_term, instructions, notes, pharmacy_id,
	prescribeit_rx_id, last_modified`

const (
	dosageCols = `dosage_id, prescription_id, dose_min, dose_max, dose_unit, frequency,
	duration, duration_unit, interval_value, interval_unit, start_date, prn, concurrent, eye_code`
	indicationCols    = `indication_id, prescription_id, code, code_system, description`
	annotationCols    = `annotation_id, prescription_id, annotation_date, annotation_type, author_id, entered_by_id, comments`
	statusHistoryCols = `status_history_id, prescription_id, status, effective_date, end_date, reason, authorizing_provider_id`
	interactionCols   = `interaction_id, prescription_id, interacting_prescription_id, severity,
	interaction_type, description, detected_date`
	managementCols = `management_detail_id, interaction_id, managed_by_id, managed_date, action, comments`
	linkCols       = `link_id, prescription_id, linked_prescription_id, link_type`
)

func listQuery(f Filter) *db.Query {
	q := db.NewQuery("prescription", prescriptionCols, "prescription_id")
	db.Eq(q, "patient_id", f.PatientID)
	db.Eq(q, "provider_id", f.ProviderID)
	q.EqString("status", f.Status)
	if f.WrittenFrom != nil {
		q.Where("written_date >= ?", *f.WrittenFrom)
	}
	if f.WrittenTo != nil {
		q.Where("written_date <= ?", *f.WrittenTo)
	}
	return q
}

func (m *prescriptionManagerPG) ListPrescriptions(ctx context.Context, f Filter, p pagination.Params) ([]*Prescription, int, error) {
	return db.Page[Prescription](ctx, m.conn(ctx), listQuery(f), p)
}

func (m *prescriptionManagerPG) GetPrescription(ctx context.Context, id int64) (*Prescription, error) {
	return m.getBy(ctx, "prescription_id", id)
}

func (m *prescriptionManagerPG) GetPrescriptionByUUID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return m.getBy(ctx, "prescription_uuid", id)
}

func (m *prescriptionManagerPG) getBy(ctx context.Context, col string, v interface{}) (*Prescription, error) {
	conn := m.conn(ctx)
	p, err := db.One[Prescription](ctx, conn, `SELECT `+prescriptionCols+` FROM prescription WHERE `+col+` = $1`, v)
	if err != nil {
		return nil, fmt.Errorf("prescription %v: %w", v, err)
	}
	if err := m.loadChildren(ctx, conn, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *prescriptionManagerPG) loadChildren(ctx context.Context, conn db.Querier, p *Prescription) error {
	id := p.PrescriptionID
	var err error
	if p.Dosages, err = db.All[Dosage](ctx, conn,
		`SELECT `+dosageCols+` FROM dosage WHERE prescription_id = $1 ORDER BY dosage_id`, id); err != nil {
		return fmt.Errorf("load dosages: %w", err)
	}
	if p.Indications, err = db.All[Indication](ctx, conn,
		`SELECT `+indicationCols+` FROM indication WHERE prescription_id = $1 ORDER BY indication_id`, id); err != nil {
		return fmt.Errorf("load indications: %w", err)
	}
	if p.Annotations, err = db.All[Annotation](ctx, conn,
		`SELECT `+annotationCols+` FROM annotation WHERE prescription_id = $1 ORDER BY annotation_id`, id); err != nil {
		return fmt.Errorf("load annotations: %w", err)
	}
	if p.StatusHistories, err = db.All[StatusHistory](ctx, conn,
		`SELECT `+statusHistoryCols+` FROM status_history WHERE prescription_id = $1 ORDER BY status_history_id`, id); err != nil {
		return fmt.Errorf("load status histories: %w", err)
	}
	if p.Interactions, err = db.All[Interaction](ctx, conn,
		`SELECT `+interactionCols+` FROM interaction WHERE prescription_id = $1 ORDER BY interaction_id`, id); err != nil {
		return fmt.Errorf("load interactions: %w", err)
	}
	if err := m.loadManagement(ctx, conn, p.Interactions); err != nil {
		return err
	}
	if p.Links, err = db.All[Link](ctx, conn,
		`SELECT `+linkCols+` FROM prescription_link WHERE prescription_id = $1 ORDER BY link_id`, id); err != nil {
		return fmt.Errorf("load links: %w", err)
	}
	return nil
}

func (m *prescriptionManagerPG) loadManagement(ctx context.Context, conn db.Querier, interactions []*Interaction) error {
	if len(interactions) == 0 {
		return nil
	}
	byID := make(map[int64]*Interaction, len(interactions))
	ids := make([]int64, 0, len(interactions))
	for _, in := range interactions {
		in.ManagementDetails = []*ManagementDetail{}
		byID[in.InteractionID] = in
		ids = append(ids, in.InteractionID)
	}
	details, err := db.All[ManagementDetail](ctx, conn, `SELECT `+managementCols+`
		FROM interaction_management_detail WHERE interaction_id = ANY($1)
		ORDER BY management_detail_id`, ids)
	if err != nil {
		return fmt.Errorf("load management details: %w", err)
	}
	for _, d := range details {
		byID[d.InteractionID].ManagementDetails = append(byID[d.InteractionID].ManagementDetails, d)
	}
	return nil
}

func (m *prescriptionManagerPG) PrescriptionExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM prescription WHERE prescription_id = $1`, id)
}

func (m *prescriptionManagerPG) ListAnnotations(ctx context.Context, prescriptionID int64, p pagination.Params) ([]*Annotation, int, error) {
	q := db.NewQuery("annotation", annotationCols, "annotation_id").Where("prescription_id = ?", prescriptionID)
	return db.Page[Annotation](ctx, m.conn(ctx), q, p)
}

func (m *prescriptionManagerPG) CreateAnnotation(ctx context.Context, a *Annotation) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO annotation (prescription_id, annotation_date, annotation_type, author_id, entered_by_id, comments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING annotation_id`,
		a.PrescriptionID, a.AnnotationDate, a.AnnotationType, a.AuthorID, a.EnteredByID, a.Comments,
	).Scan(&a.AnnotationID)
	return a.AnnotationID, db.Translate(err)
}

func (m *prescriptionManagerPG) ListStatusHistories(ctx context.Context, prescriptionID int64, p pagination.Params) ([]*StatusHistory, int, error) {
	q := db.NewQuery("status_history", statusHistoryCols, "status_history_id").Where("prescription_id = ?", prescriptionID)
	return db.Page[StatusHistory](ctx, m.conn(ctx), q, p)
}

func (m *prescriptionManagerPG) ListInteractions(ctx context.Context, prescriptionID int64, p pagination.Params) ([]*Interaction, int, error) {
	conn := m.conn(ctx)
	q := db.NewQuery("interaction", interactionCols, "interaction_id").Where("prescription_id = ?", prescriptionID)
	items, total, err := db.Page[Interaction](ctx, conn, q, p)
	if err != nil {
		return nil, 0, err
	}
	if err := m.loadManagement(ctx, conn, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (m *prescriptionManagerPG) GetInteraction(ctx context.Context, prescriptionID, interactionID int64) (*Interaction, error) {
	conn := m.conn(ctx)
	in, err := db.One[Interaction](ctx, conn, `SELECT `+interactionCols+` FROM interaction
		WHERE prescription_id = $1 AND interaction_id = $2`, prescriptionID, interactionID)
	if err != nil {
		return nil, fmt.Errorf("interaction %d: %w", interactionID, err)
	}
	if err := m.loadManagement(ctx, conn, []*Interaction{in}); err != nil {
		return nil, err
	}
	return in, nil
}

func (m *prescriptionManagerPG) CreateManagementDetail(ctx context.Context, d *ManagementDetail) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO interaction_management_detail (interaction_id, managed_by_id, managed_date, action, comments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING management_detail_id`,
		d.InteractionID, d.ManagedByID, d.ManagedDate, d.Action, d.Comments,
	).Scan(&d.ManagementDetailID)
	return d.ManagementDetailID, db.Translate(err)
}
