package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"statuskit/weatherbar/config"
	"statuskit/weatherbar/internal/geolocate"
)

// locate resolves the machine's approximate location via the provider chain
// and prints the place name, or the full triple with -json. Like the bar
// widget it always exits zero; total failure prints "Unknown".
func main() {
	asJSON := flag.Bool("json", false, "print the full city/latitude/longitude triple as JSON")
	flag.Parse()

	conf, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		fmt.Println("Unknown")
		return
	}

	setupLogger(conf)

	client := &http.Client{Timeout: conf.HTTPTimeoutDuration()}

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

	loc, err := geolocate.NewResolver(providers...).Resolve(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("location resolution failed")
		fmt.Println("Unknown")
		return
	}

	if *asJSON {
		if err := json.NewEncoder(os.Stdout).Encode(loc); err != nil {
			fmt.Println("Unknown")
		}
		return
	}

	fmt.Println(loc.Place)
}

func setupLogger(conf *config.Config) {
	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	out := os.Stderr
	if mkErr := os.MkdirAll(conf.CacheDir, 0o755); mkErr == nil {
		if f, openErr := os.OpenFile(conf.DebugLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); openErr == nil {
			out = f
		}
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Str("run_id", uuid.NewString()).
		Timestamp().
		Logger()
}
