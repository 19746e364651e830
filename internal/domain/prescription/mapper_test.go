package prescription

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func strp(s string) *string { return &s }

func TestMapper_RoundTrip(t *testing.T) {
	written := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)
	qty := 30.0
	days := 30
	other := int64(12)
	p := &Prescription{
		PrescriptionID:      11,
		PrescriptionUUID:    uuid.New(),
		PatientID:           200,
		ProviderID:          7,
		Status:              "active",
		WrittenDate:         written,
		StartDate:           &written,
		MedicationName:      "warfarin",
		DIN:                 strp("02242924"),
		Strength:            strp("5 mg"),
		Quantity:            &qty,
		QuantityUnit:        strp("tablet"),
		Refills:             2,
		DaysSupply:          &days,
		SubstitutionAllowed: true,
		LongTerm:            true,
		Instructions:        strp("once daily"),
		LastModified:        written,
		Dosages: []*Dosage{{
			DosageID: 1, PrescriptionID: 11, DoseUnit: strp("mg"), PRN: true, EyeCode: strp("OU"),
		}},
		Indications: []*Indication{{IndicationID: 2, PrescriptionID: 11, Description: "atrial fibrillation"}},
		Annotations: []*Annotation{{
			AnnotationID: 3, PrescriptionID: 11, AnnotationDate: written, AnnotationType: "note", Comments: "INR weekly",
		}},
		StatusHistories: []*StatusHistory{{StatusHistoryID: 4, PrescriptionID: 11, Status: "active", EffectiveDate: written}},
		Interactions: []*Interaction{{
			InteractionID: 5, PrescriptionID: 11, InteractingPrescriptionID: &other, Severity: "high",
			ManagementDetails: []*ManagementDetail{{ManagementDetailID: 6, InteractionID: 5, ManagedByID: 7, Action: "monitor"}},
		}},
		Links: []*Link{{LinkID: 8, PrescriptionID: 11, LinkedPrescriptionID: 12, LinkType: "replaces"}},
	}

	if got := fromDto(toDto(p)); !reflect.DeepEqual(p, got) {
		t.Errorf("round trip mismatch:\nwant %+v\n got %+v", p, got)
	}
}

func TestMapper_SummaryOmitsChildren(t *testing.T) {
	d := toDto(&Prescription{PrescriptionID: 1})
	if d.Dosages != nil || d.Interactions != nil {
		t.Error("summary rows should not carry child collections")
	}
}
