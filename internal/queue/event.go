// Package queue defines message payloads exchanged over the message broker.
package queue

import "github.com/iliyamo/plant-catalog/internal/model"

// Plant lifecycle event types.
const (
	PlantCreated = "plant.created"
	PlantUpdated = "plant.updated"
	PlantDeleted = "plant.deleted"
)

// PlantEvent is published after a plant row was written.  Plant carries the
// record as stored after the operation; for deletions it is the last state
// seen before the row was removed.
type PlantEvent struct {
	Type       string          `json:"type"`
	PlantID    uint64          `json:"plant_id"`
	Plant      model.PlantJSON `json:"plant"`
	OccurredAt string          `json:"occurred_at"`
}
