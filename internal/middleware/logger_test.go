package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/plants/:id", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Plant not found"})
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plants/9", nil))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from failing handler, got %d", rec.Code)
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	first := entries[0].ContextMap()
	if first["status"] != int64(http.StatusNotFound) || first["route"] != "/plants/:id" {
		t.Errorf("unexpected fields %v", first)
	}
	if entries[1].Level != zap.ErrorLevel {
		t.Errorf("5xx should log at error level, got %s", entries[1].Level)
	}
	if entries[1].ContextMap()["status"] != int64(http.StatusInternalServerError) {
		t.Errorf("expected logged status 500, got %v", entries[1].ContextMap()["status"])
	}
}
