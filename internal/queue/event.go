// Package queue defines message payloads exchanged over the message broker.
package queue

// InventoryEvent is published when the catalog changes: a classification
// or vehicle was added, or a vehicle updated or deleted.  It carries
// enough for downstream consumers to build an audit trail or notify
// staff without querying the primary database.
type InventoryEvent struct {
	Action           string  `json:"action"` // classification.added | vehicle.added | vehicle.updated | vehicle.deleted
	ActorID          uint64  `json:"actor_id"`
	ActorEmail       string  `json:"actor_email"`
	ClassificationID uint64  `json:"classification_id,omitempty"`
	Classification   string  `json:"classification,omitempty"`
	VehicleID        uint64  `json:"vehicle_id,omitempty"`
	Make             string  `json:"make,omitempty"`
	Model            string  `json:"model,omitempty"`
	Year             int     `json:"year,omitempty"`
	Price            float64 `json:"price,omitempty"`
	OccurredAt       string  `json:"occurred_at"`
}

// Actions recorded on the inventory.events queue.
const (
	ActionClassificationAdded = "classification.added"
	ActionVehicleAdded        = "vehicle.added"
	ActionVehicleUpdated      = "vehicle.updated"
	ActionVehicleDeleted      = "vehicle.deleted"
)
