// Package handler exposes the HTTP handlers of the plant catalog.  This file
// implements the collection resource (/plants) and the item resource
// (/plants/:id).  Each handler performs one store operation and answers with
// the serialized record and the matching status code.
package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/plant-catalog/internal/model"
	"github.com/iliyamo/plant-catalog/internal/queue"
	"github.com/iliyamo/plant-catalog/internal/repository"
)

// EventPublisher is satisfied by service.EventPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.PlantEvent) error
}

// PlantHandler bundles the plant store with optional event publication.
type PlantHandler struct {
	Repo   *repository.PlantRepo
	Events EventPublisher // nil disables lifecycle events
	Logger *zap.Logger

	pending sync.WaitGroup // in-flight event publications
}

// NewPlantHandler constructs a PlantHandler and panics if the repository is nil.
func NewPlantHandler(repo *repository.PlantRepo, events EventPublisher, logger *zap.Logger) *PlantHandler {
	if repo == nil {
		panic("nil repository passed to NewPlantHandler")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlantHandler{Repo: repo, Events: events, Logger: logger}
}

var errNotFoundBody = echo.Map{"error": "Plant not found"}

// ListPlants handles GET /plants and returns every plant as a JSON array.
func (h *PlantHandler) ListPlants(c echo.Context) error {
	plants, err := h.Repo.ListAll(c.Request().Context())
	if err != nil {
		return h.dbError(c, "list plants", err)
	}
	return c.JSON(http.StatusOK, model.SerializeAll(plants))
}

// CreatePlant handles POST /plants.  Every field is optional; omitted ones
// are stored as null.  Responds 201 with the new record.
func (h *PlantHandler) CreatePlant(c echo.Context) error {
	var body model.PlantInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p, err := h.Repo.Create(c.Request().Context(), body)
	if err != nil {
		return h.dbError(c, "create plant", err)
	}
	h.publish(queue.PlantCreated, p)
	return c.JSON(http.StatusCreated, model.Serialize(p))
}

// GetPlant handles GET /plants/:id.
func (h *PlantHandler) GetPlant(c echo.Context) error {
	id, err := plantID(c)
	if err != nil {
		return h.storeError(c, "get plant", err)
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.storeError(c, "get plant", err)
	}
	return c.JSON(http.StatusOK, model.Serialize(p))
}

// UpdatePlant handles PUT /plants/:id.  Only the keys present in the body
// are written; the others keep their stored value.
func (h *PlantHandler) UpdatePlant(c echo.Context) error {
	id, err := plantID(c)
	if err != nil {
		return h.storeError(c, "get plant", err)
	}
	ctx := c.Request().Context()
	if _, err := h.Repo.GetByID(ctx, id); err != nil {
		return h.storeError(c, "get plant", err)
	}

	var body model.PlantInput
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	// the row may vanish between the lookup and the write; the store then
	// reports not-found and the client gets a late 404
	p, err := h.Repo.Update(ctx, id, body)
	if err != nil {
		return h.storeError(c, "update plant", err)
	}
	h.publish(queue.PlantUpdated, p)
	return c.JSON(http.StatusOK, model.Serialize(p))
}

// DeletePlant handles DELETE /plants/:id and answers 204 with no body.
func (h *PlantHandler) DeletePlant(c echo.Context) error {
	id, err := plantID(c)
	if err != nil {
		return h.storeError(c, "get plant", err)
	}
	ctx := c.Request().Context()
	p, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return h.storeError(c, "get plant", err)
	}
	if err := h.Repo.Delete(ctx, id); err != nil {
		return h.storeError(c, "delete plant", err)
	}
	h.publish(queue.PlantDeleted, p)
	return c.NoContent(http.StatusNoContent)
}

// Wait blocks until every event publication started by the handler has
// finished.  Call it after the HTTP server stopped accepting requests.
func (h *PlantHandler) Wait() {
	h.pending.Wait()
}

// plantID parses the :id path parameter.  Segments that are not a decimal
// number do not name an item resource and get the router's plain 404.  A
// number too large for the id column can never be stored, so it is
// reported as a missing plant.
func plantID(c echo.Context) (uint64, error) {
	raw := c.Param("id")
	if !isDigits(raw) {
		return 0, echo.ErrNotFound
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id > math.MaxInt64 {
		return 0, repository.ErrPlantNotFound
	}
	return id, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// storeError maps an error from id parsing or the store to a response:
// not-found becomes the 404 payload, echo errors go to echo's error
// handler, anything else is a logged 500.
func (h *PlantHandler) storeError(c echo.Context, op string, err error) error {
	if errors.Is(err, repository.ErrPlantNotFound) {
		return c.JSON(http.StatusNotFound, errNotFoundBody)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return h.dbError(c, op, err)
}

func (h *PlantHandler) dbError(c echo.Context, op string, err error) error {
	h.Logger.Error(op+" failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// publish sends the event in the background; a failing broker never
// affects the response.
func (h *PlantHandler) publish(typ string, p *model.Plant) {
	if h.Events == nil {
		return
	}
	ev := queue.PlantEvent{
		Type:       typ,
		PlantID:    p.ID,
		Plant:      model.Serialize(p),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Events.Publish(ctx, ev); err != nil {
			h.Logger.Warn("publish plant event failed", zap.String("event", typ), zap.Error(err))
		}
	}()
}
