//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/ehr/prescribeit/internal/platform/db"
	"github.com/ehr/prescribeit/migrations"
)

func TestMigrator_RerunAppliesNothing(t *testing.T) {
	ctx := context.Background()
	clinic := uniqueClinicID("mig")
	createClinic(t, ctx, clinic)

	migrator := db.NewMigrator(testPool, migrations.Files)
	schema := db.SchemaFor(clinic)

	count, err := migrator.Up(ctx, schema)
	if err != nil {
		t.Fatalf("second Up: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no migrations on rerun, got %d", count)
	}

	statuses, err := migrator.Status(ctx, schema)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(statuses) == 0 {
		t.Fatal("expected at least one migration")
	}
	for _, s := range statuses {
		if !s.Applied || s.AppliedAt == nil {
			t.Errorf("migration %s not recorded as applied", s.Name)
		}
	}
}
