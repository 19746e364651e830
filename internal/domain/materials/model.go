package materials

import "time"

// Appointment is a scheduled visit together with the materials attached to
// it. RowVersion changes on every update and is the listing cursor.
type Appointment struct {
	AppointmentID   int64     `db:"appointment_id"`
	RowVersion      int64     `db:"row_version"`
	PatientID       int64     `db:"patient_id"`
	ProviderID      int64     `db:"provider_id"`
	OfficeID        *int64    `db:"office_id"`
	AppointmentDate time.Time `db:"appointment_date"`
	StartTime       time.Time `db:"start_time"`
	DurationMinutes int       `db:"duration_minutes"`
	AppointmentType string    `db:"appointment_type"`
	Status          string    `db:"status"`
	BillOnly        bool      `db:"bill_only"`
	Reason          *string   `db:"reason"`

	AccessionNumbers []string    `db:"-"`
	Reminders        []*Reminder `db:"-"`
}

type Reminder struct {
	ReminderID    int64      `db:"reminder_id"`
	AppointmentID int64      `db:"appointment_id"`
	Method        string     `db:"method"`
	Destination   string     `db:"destination"`
	ScheduledDate time.Time  `db:"scheduled_date"`
	SentDate      *time.Time `db:"sent_date"`
	Status        string     `db:"status"`
}

// Filter selects appointments for a materials listing. StartDate and EndDate
// are inclusive calendar dates with StartDate <= EndDate.
type Filter struct {
	StartDate         time.Time
	EndDate           time.Time
	OfficeIDs         []int64
	ProviderID        *int64
	IncludeBillOnly   bool
	IncludeNullOffice bool
	AccessionNumber   string
}
