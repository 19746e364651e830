package materials

import "time"

type AppointmentMaterialsDto struct {
	AppointmentID    int64                    `json:"appointmentId"`
	RowVersion       int64                    `json:"rowVersion"`
	PatientID        int64                    `json:"patientId"`
	ProviderID       int64                    `json:"providerId"`
	OfficeID         *int64                   `json:"officeId"`
	AppointmentDate  time.Time                `json:"appointmentDate"`
	StartTime        time.Time                `json:"startTime"`
	DurationMinutes  int                      `json:"durationMinutes"`
	AppointmentType  string                   `json:"appointmentType"`
	Status           string                   `json:"status"`
	BillOnly         bool                     `json:"billOnly"`
	Reason           *string                  `json:"reason,omitempty"`
	AccessionNumbers []string                 `json:"accessionNumbers"`
	Reminders        []AppointmentReminderDto `json:"reminders"`
}

type AppointmentReminderDto struct {
	ReminderID    int64      `json:"reminderId"`
	AppointmentID int64      `json:"appointmentId"`
	Method        string     `json:"method"`
	Destination   string     `json:"destination"`
	ScheduledDate time.Time  `json:"scheduledDate"`
	SentDate      *time.Time `json:"sentDate,omitempty"`
	Status        string     `json:"status"`
}
