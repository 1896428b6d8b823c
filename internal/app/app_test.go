package app

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/verdupulse/config"
)

func overrideAppConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	old := config.AppConfig
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = old })
}

func TestInitializeApp_DBFailure(t *testing.T) {
	overrideAppConfig(t, config.Config{
		Postgres: config.PostgresConfig{
			Host:     "127.0.0.1",
			Port:     54329, // unlikely mapped
			User:     "x",
			Password: "y",
			DBName:   "z",
			SSLMode:  "disable",
		},
		Report: config.ReportConfig{Timezone: "America/Montevideo", TopProducts: 5},
	})

	router, cleanup, err := InitializeApp()
	if err == nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatal("expected an error with an unreachable database")
	}
	if router != nil || cleanup != nil {
		t.Fatal("router and cleanup must be nil on failure")
	}
}

func TestInitializeApp_BadTimezone(t *testing.T) {
	overrideAppConfig(t, config.Config{
		Report: config.ReportConfig{Timezone: "Not/AZone", TopProducts: 5},
	})

	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { postgresOpener = old })

	_, _, err = InitializeApp()
	if err == nil {
		t.Fatal("expected an error for an unknown reporting timezone")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	overrideAppConfig(t, config.Config{
		Report: config.ReportConfig{Timezone: "America/Montevideo", TopProducts: 5},
	})

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() {
		postgresOpener = old
		_ = db.Close()
	})

	router, cleanup, err := InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	if router == nil || cleanup == nil {
		t.Fatal("expected a router and a cleanup func")
	}

	// Probes must be mounted and answer without touching the store.
	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d, want 200", path, w.Code)
		}
	}

	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
