package materials

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapper_RoundTrip(t *testing.T) {
	office := int64(4)
	reason := "follow-up"
	sent := time.Date(2024, 2, 28, 9, 0, 0, 0, time.UTC)
	a := &Appointment{
		AppointmentID:    10,
		RowVersion:       55,
		PatientID:        300,
		ProviderID:       12,
		OfficeID:         &office,
		AppointmentDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		StartTime:        time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC),
		DurationMinutes:  20,
		AppointmentType:  "in-person",
		Status:           "booked",
		Reason:           &reason,
		AccessionNumbers: []string{"ACC-1", "ACC-2"},
		Reminders: []*Reminder{{
			ReminderID:    1,
			AppointmentID: 10,
			Method:        "sms",
			Destination:   "+16135550100",
			ScheduledDate: sent.Add(-time.Hour),
			SentDate:      &sent,
			Status:        "sent",
		}},
	}

	assert.Equal(t, a, fromDto(toDto(a)))
}

func TestMapper_EmptyCollections(t *testing.T) {
	d := toDto(&Appointment{AppointmentID: 1})
	assert.NotNil(t, d.AccessionNumbers)
	assert.NotNil(t, d.Reminders)
}
