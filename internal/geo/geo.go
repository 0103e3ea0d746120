// Package geo defines the geolocation collaborator port. Position
// acquisition is a platform capability; the core only consumes the
// resulting fix as an opaque value.
package geo

import (
	"context"
	"errors"
	"time"
)

// Platform acquisition failures surfaced to callers.
var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrTimeout          = errors.New("location acquisition timed out")
)

// Fix is a position sample from the platform.
type Fix struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Timestamp time.Time
}

// Provider acquires the device's current position.
type Provider interface {
	CurrentFix(ctx context.Context) (Fix, error)
}

// StaticProvider reports a configured fixed position, stamped at call
// time. Used on terminal deployments without a positioning capability.
type StaticProvider struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	now       func() time.Time
}

// NewStaticProvider creates a fixed-position provider.
func NewStaticProvider(lat, lng, accuracy float64) *StaticProvider {
	return &StaticProvider{
		Latitude:  lat,
		Longitude: lng,
		Accuracy:  accuracy,
		now:       time.Now,
	}
}

func (p *StaticProvider) CurrentFix(_ context.Context) (Fix, error) {
	return Fix{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Accuracy:  p.Accuracy,
		Timestamp: p.now(),
	}, nil
}
