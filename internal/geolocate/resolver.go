package geolocate

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// ErrAllProvidersFailed is returned when every configured provider failed to
// produce a location.
var ErrAllProvidersFailed = errors.New("all geolocation providers failed")

// LocationResolver yields the machine's approximate location.
type LocationResolver interface {
	Resolve(ctx context.Context) (*Location, error)
}

// Resolver walks a fixed priority list of providers and returns the first
// successful result. One provider failing never prevents trying the next;
// there are no retries within a provider.
type Resolver struct {
	providers []Provider
}

func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{providers: providers}
}

func (r *Resolver) Resolve(ctx context.Context) (*Location, error) {
	for _, p := range r.providers {
		loc, err := p.Locate(ctx)
		if err != nil {
			log.Debug().Err(err).Str("provider", p.Name()).Msg("geolocation provider failed")
			continue
		}

		log.Debug().
			Str("provider", p.Name()).
			Str("place", loc.Place).
			Msg("location resolved")

		return loc, nil
	}

	return nil, ErrAllProvidersFailed
}

// Static is the fixed-coordinate configuration variant: it satisfies
// LocationResolver without any network traffic.
type Static struct {
	location Location
}

func NewStatic(place string, latitude, longitude float64) *Static {
	return &Static{location: Location{Place: place, Latitude: latitude, Longitude: longitude}}
}

func (s *Static) Resolve(ctx context.Context) (*Location, error) {
	loc := s.location
	return &loc, nil
}
