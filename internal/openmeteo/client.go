package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m,is_day"
	hourlyFields  = "temperature_2m,weather_code,precipitation_probability"
	dailyFields   = "weather_code"
)

// CurrentConditions mirrors the "current" block of an Open-Meteo forecast
// response. IsDay is 0 or 1 on the wire.
type CurrentConditions struct {
	Temperature         float64 `json:"temperature_2m"`
	Humidity            float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	IsDay               int     `json:"is_day"`
}

// HourlyForecast holds the parallel hourly arrays, indexed by hour of day
// for a one-day forecast.
type HourlyForecast struct {
	Temperature              []float64 `json:"temperature_2m"`
	WeatherCode              []int     `json:"weather_code"`
	PrecipitationProbability []int     `json:"precipitation_probability"`
}

type Forecast struct {
	Current *CurrentConditions `json:"current"`
	Hourly  HourlyForecast     `json:"hourly"`
}

// ForecastFetcher fetches a current+hourly forecast for a coordinate pair.
type ForecastFetcher interface {
	Forecast(ctx context.Context, latitude, longitude float64) (*Forecast, error)
}

type Client struct {
	baseURL      string
	timezone     string
	forecastDays int
	client       *http.Client
}

func NewClient(baseURL, timezone string, forecastDays int, client *http.Client) *Client {
	return &Client{
		baseURL:      baseURL,
		timezone:     timezone,
		forecastDays: forecastDays,
		client:       client,
	}
}

func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (*Forecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("daily", dailyFields)
	params.Set("hourly", hourlyFields)
	params.Set("current", currentFields)
	params.Set("timezone", c.timezone)
	params.Set("forecast_days", strconv.Itoa(c.forecastDays))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request setup failed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("open-meteo returned status code: %d", resp.StatusCode)
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("open-meteo returned malformed JSON: %w", err)
	}

	if forecast.Current == nil {
		return nil, fmt.Errorf("open-meteo response is missing current conditions")
	}

	return &forecast, nil
}
