package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type freeIPAPIResponse struct {
	CityName  string   `json:"cityName"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// FreeIPAPIProvider queries freeipapi.com.
type FreeIPAPIProvider struct {
	baseURL string
	client  *http.Client
}

func NewFreeIPAPIProvider(baseURL string, client *http.Client) *FreeIPAPIProvider {
	return &FreeIPAPIProvider{baseURL: baseURL, client: client}
}

func (p *FreeIPAPIProvider) Name() string { return "freeipapi" }

func (p *FreeIPAPIProvider) Locate(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/json/", nil)
	if err != nil {
		return nil, fmt.Errorf("freeipapi request setup failed: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freeipapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("freeipapi returned status code: %d", resp.StatusCode)
	}

	var body freeIPAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("freeipapi returned malformed JSON: %w", err)
	}

	if body.CityName == "" || body.Latitude == nil || body.Longitude == nil {
		return nil, fmt.Errorf("freeipapi response is missing city or coordinate fields")
	}

	return &Location{Place: body.CityName, Latitude: *body.Latitude, Longitude: *body.Longitude}, nil
}
