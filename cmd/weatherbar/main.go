package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"statuskit/weatherbar/config"
	"statuskit/weatherbar/internal/cachelog"
	"statuskit/weatherbar/internal/geolocate"
	"statuskit/weatherbar/internal/history"
	"statuskit/weatherbar/internal/openmeteo"
	"statuskit/weatherbar/internal/render"
	"statuskit/weatherbar/internal/report"
)

// main always prints a JSON payload and exits zero: a bar widget must never
// crash or hang the bar.
func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		emit(render.Snapshot{Text: " Error", Tooltip: "Configuration error: " + err.Error()})
		return
	}

	if err := os.MkdirAll(conf.CacheDir, 0o755); err != nil {
		emit(render.Snapshot{Text: " Error", Tooltip: "Cannot create cache dir: " + err.Error()})
		return
	}

	closeLog := setupLogger(conf)
	defer closeLog()

	log.Debug().Msg("run started")

	client := &http.Client{Timeout: conf.HTTPTimeoutDuration()}

	reporter := report.NewReporter(
		buildResolver(conf, client),
		openmeteo.NewClient(conf.OpenMeteoURL, conf.Timezone, conf.ForecastDays, client),
		cachelog.New(conf.CacheLogPath()),
		openHistory(conf),
	)

	emit(reporter.Run(context.Background()))
}

func setupLogger(conf *config.Config) func() {
	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	f, err := os.OpenFile(conf.DebugLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		// stdout is reserved for the payload, so the debug log has to go
		// to stderr when the file cannot be opened.
		f = os.Stderr
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true}).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Str("run_id", uuid.NewString()).
		Timestamp().
		Logger()

	return func() {
		if f != os.Stderr {
			f.Close()
		}
	}
}

func buildResolver(conf *config.Config, client *http.Client) geolocate.LocationResolver {
	if conf.UseFixedLocation() {
		log.Debug().Str("place", conf.FixedPlace).Msg("using fixed location from config")
		return geolocate.NewStatic(conf.FixedPlace, conf.FixedLatitude, conf.FixedLongitude)
	}

	var providers []geolocate.Provider
	for _, name := range conf.ProviderOrder {
		switch name {
		case "ipinfo":
			providers = append(providers, geolocate.NewIPInfoProvider(conf.IPInfoURL, client))
		case "freeipapi":
			providers = append(providers, geolocate.NewFreeIPAPIProvider(conf.FreeIPAPIURL, client))
		case "ip-api":
			providers = append(providers, geolocate.NewIPAPIProvider(conf.IPAPIURL, client))
		default:
			log.Warn().Str("provider", name).Msg("unknown geolocation provider in config")
		}
	}

	return geolocate.NewResolver(providers...)
}

func openHistory(conf *config.Config) history.Repository {
	if !conf.HistoryEnabled {
		return nil
	}

	repo, err := history.Open(conf.HistoryDBPath())
	if err != nil {
		log.Warn().Err(err).Msg("history database unavailable, trend tracking disabled")
		return nil
	}
	return repo
}

func emit(snapshot render.Snapshot) {
	enc := json.NewEncoder(os.Stdout)
	// The tooltip carries <b> markup; keep it readable instead of
	// <-escaped.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snapshot); err != nil {
		os.Stdout.WriteString(`{"text":"` + "" + ` Error","tooltip":"Encoding error"}` + "\n")
	}
}
