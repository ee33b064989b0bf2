// Package render turns a forecast into the text+tooltip pair a status bar
// consumes. The tooltip uses pango-style markup, which waybar renders.
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"statuskit/weatherbar/internal/icons"
	"statuskit/weatherbar/internal/openmeteo"
)

// Snapshot is the rendered output for one run.
type Snapshot struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
}

// Unavailable is the static placeholder emitted when neither live data nor a
// cached snapshot is available.
func Unavailable(place string) Snapshot {
	return Snapshot{
		Text:    "\U0001f321️ --°",
		Tooltip: "Weather unavailable for " + place,
	}
}

// Compose renders the one-line summary and the tooltip. now supplies the
// hour of day used to index the hourly arrays; prevTemp, when non-nil, is
// the temperature recorded on the previous successful run and feeds the
// trend line.
func Compose(place string, forecast *openmeteo.Forecast, now time.Time, prevTemp *float64) Snapshot {
	current := forecast.Current

	temp := roundInt(current.Temperature)
	icon := icons.Lookup(current.WeatherCode, current.IsDay != 0)

	return Snapshot{
		Text:    fmt.Sprintf("%s: %s %d°", place, icon, temp),
		Tooltip: composeTooltip(place, forecast, now, prevTemp),
	}
}

func composeTooltip(place string, forecast *openmeteo.Forecast, now time.Time, prevTemp *float64) string {
	current := forecast.Current
	hourly := forecast.Hourly

	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s</b>\n", place)
	fmt.Fprintf(&b, "Temp: <b>%d°C</b>\n", roundInt(current.Temperature))
	fmt.Fprintf(&b, "Feels like: %d°C\n", roundInt(current.ApparentTemperature))
	fmt.Fprintf(&b, "Wind: %d km/h\n", roundInt(current.WindSpeed))
	fmt.Fprintf(&b, "Humidity: %d%%\n", int(current.Humidity))

	if len(hourly.PrecipitationProbability) > 0 {
		fmt.Fprintf(&b, "Precipitation: %d%%\n", hourly.PrecipitationProbability[0])
	}

	if prevTemp != nil {
		if diff := roundInt(current.Temperature) - roundInt(*prevTemp); diff > 0 {
			fmt.Fprintf(&b, "Trend: ↑ +%d° since last run\n", diff)
		} else if diff < 0 {
			fmt.Fprintf(&b, "Trend: ↓ %d° since last run\n", diff)
		}
	}

	b.WriteString("\n<b>Next 3h</b>\n")

	currentHour := now.Hour()
	for i := 1; i <= 3; i++ {
		hourIdx := currentHour + i

		// Hours past the end of the one-day arrays are skipped, not an
		// error.
		if hourIdx >= len(hourly.Temperature) ||
			hourIdx >= len(hourly.WeatherCode) ||
			hourIdx >= len(hourly.PrecipitationProbability) {
			continue
		}

		displayHour := hourIdx % 24
		hourTemp := roundInt(hourly.Temperature[hourIdx])
		hourIcon := icons.Lookup(hourly.WeatherCode[hourIdx], true)
		hourRain := hourly.PrecipitationProbability[hourIdx]

		rainText := ""
		if hourRain > 0 {
			rainText = fmt.Sprintf(" %d%%", hourRain)
		}

		fmt.Fprintf(&b, "%02d: %s %d°%s\n", displayHour, hourIcon, hourTemp, rainText)
	}

	return strings.TrimSpace(b.String())
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
