package models

import (
	"time"

	"github.com/google/uuid"
)

type TableStatus string

const (
	TableBlank      TableStatus = "blank"
	TableRunning    TableStatus = "running"
	TablePrinted    TableStatus = "printed"
	TablePaid       TableStatus = "paid"
	TableRunningKOT TableStatus = "running_kot"
)

// Table is a seat group on the floor plan.
type Table struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Section   string      `json:"section"`
	Status    TableStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type TableRequest struct {
	Name    string `json:"name" validate:"required,max=64"`
	Section string `json:"section" validate:"required,max=64"`
	Status  string `json:"status" validate:"omitempty,oneof=blank running printed paid running_kot"`
}

// Table event types pushed to realtime subscribers.
const (
	TableCreated = "TABLE_CREATED"
	TableUpdated = "TABLE_UPDATED"
	TableDeleted = "TABLE_DELETED"
)

type TableEvent struct {
	Type      string    `json:"type"`
	TableID   uuid.UUID `json:"table_id"`
	Table     *Table    `json:"table,omitempty"`
	Timestamp int64     `json:"timestamp"`
}
