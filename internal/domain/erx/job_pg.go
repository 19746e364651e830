package erx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/pkg/pagination"
)

type jobManagerPG struct{ pool *pgxpool.Pool }

func NewEprescribeJobManagerPG(pool *pgxpool.Pool) EprescribeJobManager {
	return &jobManagerPG{pool: pool}
}

func (m *jobManagerPG) conn(ctx context.Context) db.Querier {
	return db.Pick(ctx, m.pool)
}

// execOne runs a single-row UPDATE or DELETE and reports a missing row as
// not found.
func execOne(ctx context.Context, conn db.Querier, what string, id int64, sql string, args ...interface{}) error {
	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		return db.Translate(err)
	}
	return db.Affected(what, id, tag.RowsAffected())
}

// -- Job types --

const jobTypeCols = `job_type_id, code, description, active`

func (m *jobManagerPG) ListJobTypes(ctx context.Context, p pagination.Params) ([]*JobType, int, error) {
	q := db.NewQuery("eprescribe_job_type", jobTypeCols, "job_type_id")
	return db.Page[JobType](ctx, m.conn(ctx), q, p)
}

func (m *jobManagerPG) GetJobType(ctx context.Context, id int64) (*JobType, error) {
	t, err := db.One[JobType](ctx, m.conn(ctx), `SELECT `+jobTypeCols+` FROM eprescribe_job_type WHERE job_type_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("job type %d: %w", id, err)
	}
	return t, nil
}

func (m *jobManagerPG) JobTypeExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM eprescribe_job_type WHERE job_type_id = $1`, id)
}

func (m *jobManagerPG) CreateJobType(ctx context.Context, t *JobType) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO eprescribe_job_type (code, description, active) VALUES ($1, $2, $3)
		RETURNING job_type_id`, t.Code, t.Description, t.Active).Scan(&t.JobTypeID)
	return t.JobTypeID, db.Translate(err)
}

func (m *jobManagerPG) UpdateJobType(ctx context.Context, t *JobType) error {
	return execOne(ctx, m.conn(ctx), "job type", t.JobTypeID, `
		UPDATE eprescribe_job_type SET code = $2, description = $3, active = $4 WHERE job_type_id = $1`,
		t.JobTypeID, t.Code, t.Description, t.Active)
}

func (m *jobManagerPG) DeleteJobType(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "job type", id,
		`DELETE FROM eprescribe_job_type WHERE job_type_id = $1`, id)
}

// -- Job outcomes --

const jobOutcomeCols = `job_outcome_id, code, description, successful`

func (m *jobManagerPG) ListJobOutcomes(ctx context.Context, p pagination.Params) ([]*JobOutcome, int, error) {
	q := db.NewQuery("eprescribe_job_outcome", jobOutcomeCols, "job_outcome_id")
	return db.Page[JobOutcome](ctx, m.conn(ctx), q, p)
}

func (m *jobManagerPG) GetJobOutcome(ctx context.Context, id int64) (*JobOutcome, error) {
	o, err := db.One[JobOutcome](ctx, m.conn(ctx), `SELECT `+jobOutcomeCols+` FROM eprescribe_job_outcome WHERE job_outcome_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("job outcome %d: %w", id, err)
	}
	return o, nil
}

func (m *jobManagerPG) JobOutcomeExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM eprescribe_job_outcome WHERE job_outcome_id = $1`, id)
}

func (m *jobManagerPG) CreateJobOutcome(ctx context.Context, o *JobOutcome) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO eprescribe_job_outcome (code, description, successful) VALUES ($1, $2, $3)
		RETURNING job_outcome_id`, o.Code, o.Description, o.Successful).Scan(&o.JobOutcomeID)
	return o.JobOutcomeID, db.Translate(err)
}

func (m *jobManagerPG) UpdateJobOutcome(ctx context.Context, o *JobOutcome) error {
	return execOne(ctx, m.conn(ctx), "job outcome", o.JobOutcomeID, `
		UPDATE eprescribe_job_outcome SET code = $2, description = $3, successful = $4 WHERE job_outcome_id = $1`,
		o.JobOutcomeID, o.Code, o.Description, o.Successful)
}

func (m *jobManagerPG) DeleteJobOutcome(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "job outcome", id,
		`DELETE FROM eprescribe_job_outcome WHERE job_outcome_id = $1`, id)
}

// -- Jobs --

const jobCols = `eprescribe_job_id, job_uuid, job_type_id, job_outcome_id, prescription_id,
	patient_id, status, message_id, submitted_date, completed_date, attempts, error_message,
	created_by_id`

func jobQuery(f JobFilter) *db.Query {
	q := db.NewQuery("eprescribe_job", jobCols, "eprescribe_job_id").EqString("status", f.Status)
	db.Eq(q, "job_type_id", f.JobTypeID)
	db.Eq(q, "prescription_id", f.PrescriptionID)
	return db.Eq(q, "patient_id", f.PatientID)
}

func (m *jobManagerPG) ListEprescribeJobs(ctx context.Context, f JobFilter, p pagination.Params) ([]*Job, int, error) {
	return db.Page[Job](ctx, m.conn(ctx), jobQuery(f), p)
}

func (m *jobManagerPG) GetEprescribeJob(ctx context.Context, id int64) (*Job, error) {
	j, err := db.One[Job](ctx, m.conn(ctx), `SELECT `+jobCols+` FROM eprescribe_job WHERE eprescribe_job_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("eprescribe job %d: %w", id, err)
	}
	return j, nil
}

func (m *jobManagerPG) EprescribeJobExists(ctx context.Context, id int64) (bool, error) {
	return db.Exists(ctx, m.conn(ctx), `SELECT 1 FROM eprescribe_job WHERE eprescribe_job_id = $1`, id)
}

func (m *jobManagerPG) CreateEprescribeJob(ctx context.Context, j *Job) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO eprescribe_job (job_uuid, job_type_id, job_outcome_id, prescription_id, patient_id,
			status, message_id, submitted_date, completed_date, attempts, error_message, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING eprescribe_job_id`,
		j.JobUUID, j.JobTypeID, j.JobOutcomeID, j.PrescriptionID, j.PatientID,
		j.Status, j.MessageID, j.SubmittedDate, j.CompletedDate, j.Attempts, j.ErrorMessage, j.CreatedByID,
	).Scan(&j.EprescribeJobID)
	return j.EprescribeJobID, db.Translate(err)
}

func (m *jobManagerPG) UpdateEprescribeJob(ctx context.Context, j *Job) error {
	return execOne(ctx, m.conn(ctx), "eprescribe job", j.EprescribeJobID, `
		UPDATE eprescribe_job SET job_type_id = $2, job_outcome_id = $3, prescription_id = $4,
			patient_id = $5, status = $6, message_id = $7, completed_date = $8, attempts = $9,
			error_message = $10
		WHERE eprescribe_job_id = $1`,
		j.EprescribeJobID, j.JobTypeID, j.JobOutcomeID, j.PrescriptionID,
		j.PatientID, j.Status, j.MessageID, j.CompletedDate, j.Attempts, j.ErrorMessage)
}

func (m *jobManagerPG) DeleteEprescribeJob(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "eprescribe job", id,
		`DELETE FROM eprescribe_job WHERE eprescribe_job_id = $1`, id)
}

// -- Tasks --

const taskCols = `job_task_id, eprescribe_job_id, task_type, status, sequence, started_date,
	completed_date, error_message`

func (m *jobManagerPG) ListJobTasks(ctx context.Context, f TaskFilter, p pagination.Params) ([]*Task, int, error) {
	q := db.NewQuery("eprescribe_job_task", taskCols, "job_task_id")
	db.Eq(q, "eprescribe_job_id", f.EprescribeJobID)
	return db.Page[Task](ctx, m.conn(ctx), q, p)
}

func (m *jobManagerPG) GetJobTask(ctx context.Context, id int64) (*Task, error) {
	t, err := db.One[Task](ctx, m.conn(ctx), `SELECT `+taskCols+` FROM eprescribe_job_task WHERE job_task_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("job task %d: %w", id, err)
	}
	return t, nil
}

func (m *jobManagerPG) CreateJobTask(ctx context.Context, t *Task) (int64, error) {
	err := m.conn(ctx).QueryRow(ctx, `
		INSERT INTO eprescribe_job_task (eprescribe_job_id, task_type, status, sequence,
			started_date, completed_date, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING job_task_id`,
		t.EprescribeJobID, t.TaskType, t.Status, t.Sequence, t.StartedDate, t.CompletedDate, t.ErrorMessage,
	).Scan(&t.JobTaskID)
	return t.JobTaskID, db.Translate(err)
}

func (m *jobManagerPG) UpdateJobTask(ctx context.Context, t *Task) error {
	return execOne(ctx, m.conn(ctx), "job task", t.JobTaskID, `
		UPDATE eprescribe_job_task SET eprescribe_job_id = $2, task_type = $3, status = $4,
			sequence = $5, started_date = $6, completed_date = $7, error_message = $8
		WHERE job_task_id = $1`,
		t.JobTaskID, t.EprescribeJobID, t.TaskType, t.Status, t.Sequence,
		t.StartedDate, t.CompletedDate, t.ErrorMessage)
}

func (m *jobManagerPG) DeleteJobTask(ctx context.Context, id int64) error {
	return db.Delete(ctx, m.conn(ctx), "job task", id,
		`DELETE FROM eprescribe_job_task WHERE job_task_id = $1`, id)
}
