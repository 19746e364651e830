package prescription

func mapAll[S any, D any](in []S, f func(S) D) []D {
	if in == nil {
		return nil
	}
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func toDto(p *Prescription) PrescriptionMedicationDto {
	return PrescriptionMedicationDto{
		PrescriptionID:      p.PrescriptionID,
		PrescriptionUUID:    p.PrescriptionUUID,
		PatientID:           p.PatientID,
		ProviderID:          p.ProviderID,
		Status:              p.Status,
		WrittenDate:         p.WrittenDate,
		StartDate:           p.StartDate,
		EndDate:             p.EndDate,
		MedicationName:      p.MedicationName,
		DIN:                 p.DIN,
		Strength:            p.Strength,
		Form:                p.Form,
		Route:               p.Route,
		Quantity:            p.Quantity,
		QuantityUnit:        p.QuantityUnit,
		Refills:             p.Refills,
		RefillIntervalDays:  p.RefillIntervalDays,
		DaysSupply:          p.DaysSupply,
		SubstitutionAllowed: p.SubstitutionAllowed,
		LongTerm:            p.LongTerm,
		Instructions:        p.Instructions,
		Notes:               p.Notes,
		PharmacyID:          p.PharmacyID,
		PrescribeItRxID:     p.PrescribeItRxID,
		LastModified:        p.LastModified,

		Dosages:         mapAll(p.Dosages, func(d *Dosage) DosageDto { return DosageDto(*d) }),
		Indications:     mapAll(p.Indications, func(i *Indication) IndicationDto { return IndicationDto(*i) }),
		Annotations:     mapAll(p.Annotations, annotationToDto),
		StatusHistories: mapAll(p.StatusHistories, statusHistoryToDto),
		Interactions:    mapAll(p.Interactions, interactionToDto),
		Links:           mapAll(p.Links, func(l *Link) LinkDto { return LinkDto(*l) }),
	}
}

func fromDto(d PrescriptionMedicationDto) *Prescription {
	return &Prescription{
		PrescriptionID:      d.PrescriptionID,
		PrescriptionUUID:    d.PrescriptionUUID,
		PatientID:           d.PatientID,
		ProviderID:          d.ProviderID,
		Status:              d.Status,
		WrittenDate:         d.WrittenDate,
		StartDate:           d.StartDate,
		EndDate:             d.EndDate,
		MedicationName:      d.MedicationName,
		DIN:                 d.DIN,
		Strength:            d.Strength,
		Form:                d.Form,
		Route:               d.Route,
		Quantity:            d.Quantity,
		QuantityUnit:        d.QuantityUnit,
		Refills:             d.Refills,
		RefillIntervalDays:  d.RefillIntervalDays,
		DaysSupply:          d.DaysSupply,
		SubstitutionAllowed: d.SubstitutionAllowed,
		LongTerm:            d.LongTerm,
		Instructions:        d.Instructions,
		Notes:               d.Notes,
		PharmacyID:          d.PharmacyID,
		PrescribeItRxID:     d.PrescribeItRxID,
		LastModified:        d.LastModified,

		Dosages:         mapAll(d.Dosages, func(v DosageDto) *Dosage { m := Dosage(v); return &m }),
		Indications:     mapAll(d.Indications, func(v IndicationDto) *Indication { m := Indication(v); return &m }),
		Annotations:     mapAll(d.Annotations, annotationFromDto),
		StatusHistories: mapAll(d.StatusHistories, func(v StatusHistoryDto) *StatusHistory { m := StatusHistory(v); return &m }),
		Interactions:    mapAll(d.Interactions, interactionFromDto),
		Links:           mapAll(d.Links, func(v LinkDto) *Link { m := Link(v); return &m }),
	}
}

func annotationToDto(a *Annotation) AnnotationDto { return AnnotationDto(*a) }

func annotationFromDto(d AnnotationDto) *Annotation {
	a := Annotation(d)
	return &a
}

func statusHistoryToDto(s *StatusHistory) StatusHistoryDto { return StatusHistoryDto(*s) }

func interactionToDto(i *Interaction) InteractionDto {
	return InteractionDto{
		InteractionID:             i.InteractionID,
		PrescriptionID:            i.PrescriptionID,
		InteractingPrescriptionID: i.InteractingPrescriptionID,
		Severity:                  i.Severity,
		InteractionType:           i.InteractionType,
		Description:               i.Description,
		DetectedDate:              i.DetectedDate,
		ManagementDetails:         mapAll(i.ManagementDetails, managementDetailToDto),
	}
}

func interactionFromDto(d InteractionDto) *Interaction {
	return &Interaction{
		InteractionID:             d.InteractionID,
		PrescriptionID:            d.PrescriptionID,
		InteractingPrescriptionID: d.InteractingPrescriptionID,
		Severity:                  d.Severity,
		InteractionType:           d.InteractionType,
		Description:               d.Description,
		DetectedDate:              d.DetectedDate,
		ManagementDetails:         mapAll(d.ManagementDetails, managementDetailFromDto),
	}
}

func managementDetailToDto(m *ManagementDetail) InteractionManagementDetailsDto {
	return InteractionManagementDetailsDto(*m)
}

func managementDetailFromDto(d InteractionManagementDetailsDto) *ManagementDetail {
	m := ManagementDetail(d)
	return &m
}
