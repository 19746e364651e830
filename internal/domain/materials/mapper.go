package materials

func toDto(a *Appointment) AppointmentMaterialsDto {
	d := AppointmentMaterialsDto{
		AppointmentID:    a.AppointmentID,
		RowVersion:       a.RowVersion,
		PatientID:        a.PatientID,
		ProviderID:       a.ProviderID,
		OfficeID:         a.OfficeID,
		AppointmentDate:  a.AppointmentDate,
		StartTime:        a.StartTime,
		DurationMinutes:  a.DurationMinutes,
		AppointmentType:  a.AppointmentType,
		Status:           a.Status,
		BillOnly:         a.BillOnly,
		Reason:           a.Reason,
		AccessionNumbers: append([]string{}, a.AccessionNumbers...),
		Reminders:        make([]AppointmentReminderDto, 0, len(a.Reminders)),
	}
	for _, r := range a.Reminders {
		d.Reminders = append(d.Reminders, AppointmentReminderDto(*r))
	}
	return d
}

func fromDto(d AppointmentMaterialsDto) *Appointment {
	a := &Appointment{
		AppointmentID:    d.AppointmentID,
		RowVersion:       d.RowVersion,
		PatientID:        d.PatientID,
		ProviderID:       d.ProviderID,
		OfficeID:         d.OfficeID,
		AppointmentDate:  d.AppointmentDate,
		StartTime:        d.StartTime,
		DurationMinutes:  d.DurationMinutes,
		AppointmentType:  d.AppointmentType,
		Status:           d.Status,
		BillOnly:         d.BillOnly,
		Reason:           d.Reason,
		AccessionNumbers: append([]string{}, d.AccessionNumbers...),
		Reminders:        make([]*Reminder, 0, len(d.Reminders)),
	}
	for _, r := range d.Reminders {
		rem := Reminder(r)
		a.Reminders = append(a.Reminders, &rem)
	}
	return a
}

func cursor(a *Appointment) int64 { return a.RowVersion }
