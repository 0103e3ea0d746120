package model

import "time"

// Checkpoint is a physical patrol waypoint a guard logs visits against.
type Checkpoint struct {
	ID          string  `json:"id"`
	SiteID      string  `json:"site_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CheckpointVisit is the payload for logging a visit against a checkpoint.
type CheckpointVisit struct {
	CheckpointID string    `json:"checkpoint_id"`
	Notes        string    `json:"notes,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ShiftLog is the backend's record of a logged checkpoint visit.
type ShiftLog struct {
	ID           string    `json:"id"`
	ShiftID      string    `json:"shift_id,omitempty"`
	CheckpointID string    `json:"checkpoint_id"`
	Notes        string    `json:"notes,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
