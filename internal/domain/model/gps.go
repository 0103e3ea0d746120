package model

import "time"

// LocationFix is a reported guard position.
type LocationFix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SOSAlertStatus enumerates SOS alert workflow states.
type SOSAlertStatus string

const (
	SOSActive       SOSAlertStatus = "active"
	SOSAcknowledged SOSAlertStatus = "acknowledged"
)

// SOSAlert is an emergency alert raised by a guard.
type SOSAlert struct {
	ID             string         `json:"id"`
	GuardID        string         `json:"guard_id"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Message        string         `json:"message,omitempty"`
	Status         SOSAlertStatus `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	AcknowledgedAt *time.Time     `json:"acknowledged_at,omitempty"`
}
