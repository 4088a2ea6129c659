package database

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iliyamo/plant-catalog/internal/config"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(config.DBConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "plants.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close(db)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if !db.Migrator().HasTable("plants") {
		t.Fatal("plants table was not created")
	}
	for _, col := range []string{"id", "name", "image", "price"} {
		if !db.Migrator().HasColumn("plants", col) {
			t.Errorf("missing column %s", col)
		}
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open(config.DBConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestServerDSNs(t *testing.T) {
	cfg := config.DBConfig{User: "app", Pass: "secret", Host: "db", Port: "3306", Name: "plants"}

	dsn := mysqlDSN(cfg)
	if !strings.HasPrefix(dsn, "app:secret@tcp(db:3306)/plants?") {
		t.Errorf("unexpected mysql dsn %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("mysql dsn should enable parseTime: %s", dsn)
	}

	cfg.Port = "5432"
	if got, want := postgresDSN(cfg), "postgres://app:secret@db:5432/plants?sslmode=disable"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
