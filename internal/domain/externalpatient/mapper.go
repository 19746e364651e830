package externalpatient

func toDto(p *ExternalPatient) ExternalPatientDto { return ExternalPatientDto(*p) }

func fromDto(d ExternalPatientDto) *ExternalPatient {
	p := ExternalPatient(d)
	return &p
}

func cursor(p *ExternalPatient) int64 { return p.ExternalPatientID }
