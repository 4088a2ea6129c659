package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/iliyamo/plant-catalog/internal/config"
	"github.com/iliyamo/plant-catalog/internal/database"
	"github.com/iliyamo/plant-catalog/internal/model"
)

func newTestRepo(t *testing.T) *PlantRepo {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "plants.db")})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewPlantRepo(db)
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestListAllEmpty(t *testing.T) {
	repo := newTestRepo(t)

	plants, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if plants == nil || len(plants) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", plants)
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.PlantInput{Name: strPtr("Fern"), Image: strPtr("fern.jpg"), Price: floatPtr(12.5)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected first id to be 1, got %d", created.ID)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *got.Name != "Fern" || *got.Image != "fern.jpg" || *got.Price != 12.5 {
		t.Errorf("unexpected record %+v", model.Serialize(got))
	}
}

func TestCreateLeavesAbsentFieldsNull(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.PlantInput{Name: strPtr("Cactus")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Image != nil || got.Price != nil {
		t.Errorf("expected null image and price, got %+v", model.Serialize(got))
	}
}

func TestUpdateIsPartial(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, _ := repo.Create(ctx, model.PlantInput{Name: strPtr("Fern"), Image: strPtr("fern.jpg"), Price: floatPtr(12.5)})

	updated, err := repo.Update(ctx, created.ID, model.PlantInput{Price: floatPtr(15)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if *updated.Price != 15 {
		t.Errorf("expected price 15, got %v", *updated.Price)
	}
	if *updated.Name != "Fern" || *updated.Image != "fern.jpg" {
		t.Errorf("unsupplied fields changed: %+v", model.Serialize(updated))
	}

	// an empty input is a no-op
	same, err := repo.Update(ctx, created.ID, model.PlantInput{})
	if err != nil {
		t.Fatalf("empty Update: %v", err)
	}
	if *same.Price != 15 {
		t.Errorf("empty update changed price to %v", *same.Price)
	}
}

func TestMissingRowsReportNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 42); !errors.Is(err, ErrPlantNotFound) {
		t.Errorf("GetByID: expected ErrPlantNotFound, got %v", err)
	}
	if _, err := repo.Update(ctx, 42, model.PlantInput{Name: strPtr("x")}); !errors.Is(err, ErrPlantNotFound) {
		t.Errorf("Update: expected ErrPlantNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, 42); !errors.Is(err, ErrPlantNotFound) {
		t.Errorf("Delete: expected ErrPlantNotFound, got %v", err)
	}
}

func TestDeleteIsTerminal(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a, _ := repo.Create(ctx, model.PlantInput{Name: strPtr("Aloe")})
	b, _ := repo.Create(ctx, model.PlantInput{Name: strPtr("Basil")})

	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, a.ID); !errors.Is(err, ErrPlantNotFound) {
		t.Errorf("expected deleted plant to be gone, got %v", err)
	}

	plants, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(plants) != 1 || plants[0].ID != b.ID {
		t.Errorf("expected only %d to remain, got %d rows", b.ID, len(plants))
	}
}
