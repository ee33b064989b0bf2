package geolocate

import (
	"context"
)

// Location is an approximate position derived from the machine's public IP.
type Location struct {
	Place     string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Provider is a single IP-geolocation HTTP endpoint. Implementations make
// exactly one request per Locate call and report any transport, status or
// decoding problem as an error.
type Provider interface {
	Name() string
	Locate(ctx context.Context) (*Location, error)
}
