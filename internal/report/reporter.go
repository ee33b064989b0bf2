// Package report drives one run of the weather pipeline: resolve location,
// fetch the forecast, render, and degrade through the cache log to a static
// placeholder when anything fails.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"statuskit/weatherbar/internal/cachelog"
	"statuskit/weatherbar/internal/geolocate"
	"statuskit/weatherbar/internal/history"
	"statuskit/weatherbar/internal/openmeteo"
	"statuskit/weatherbar/internal/render"
)

// unknownPlace keys cache fallbacks when location resolution itself failed.
const unknownPlace = "Unknown"

type Reporter struct {
	resolver geolocate.LocationResolver
	weather  openmeteo.ForecastFetcher
	cache    *cachelog.Log
	history  history.Repository
}

// NewReporter wires the pipeline. history may be nil, in which case trend
// tracking is skipped.
func NewReporter(
	resolver geolocate.LocationResolver,
	weather openmeteo.ForecastFetcher,
	cache *cachelog.Log,
	hist history.Repository,
) *Reporter {
	return &Reporter{
		resolver: resolver,
		weather:  weather,
		cache:    cache,
		history:  hist,
	}
}

// Run produces the snapshot for this invocation. It never fails: live data
// falls back to the latest cached snapshot for the place, and the cache
// falls back to a fixed placeholder.
func (r *Reporter) Run(ctx context.Context) render.Snapshot {
	place := unknownPlace

	loc, err := r.resolver.Resolve(ctx)
	if err != nil {
		log.Error().Err(err).Msg("location resolution failed")
		return r.fallback(place)
	}
	place = loc.Place

	forecast, err := r.weather.Forecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		log.Error().Err(err).Str("place", place).Msg("weather fetch failed")
		return r.fallback(place)
	}

	snapshot := render.Compose(place, forecast, time.Now(), r.previousTemperature(place))

	if err := r.cache.Append(place, snapshot); err != nil {
		log.Error().Err(err).Str("place", place).Msg("cache write failed")
	}

	if r.history != nil {
		if err := r.history.LogRun(place, forecast.Current.Temperature, forecast.Current.WeatherCode); err != nil {
			log.Error().Err(err).Str("place", place).Msg("history write failed")
		}
	}

	log.Info().Str("text", snapshot.Text).Msg("rendered live snapshot")

	return snapshot
}

func (r *Reporter) previousTemperature(place string) *float64 {
	if r.history == nil {
		return nil
	}

	run, err := r.history.LastRun(place)
	if err != nil {
		log.Debug().Err(err).Str("place", place).Msg("history read failed")
		return nil
	}
	if run == nil {
		return nil
	}

	temp := run.Temperature
	return &temp
}

func (r *Reporter) fallback(place string) render.Snapshot {
	entry, err := r.cache.Latest(place)
	if err != nil {
		if !errors.Is(err, cachelog.ErrNoEntry) {
			log.Error().Err(err).Msg("cache read failed")
		}
		log.Info().Str("place", place).Msg("no cached snapshot, using placeholder")
		return render.Unavailable(place)
	}

	log.Info().
		Str("place", place).
		Time("cached_at", time.Unix(entry.Timestamp, 0)).
		Msg("using cached snapshot")

	return entry.Data
}
