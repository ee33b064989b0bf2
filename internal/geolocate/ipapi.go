package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type ipAPIResponse struct {
	City string   `json:"city"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// IPAPIProvider queries ip-api.com. Kept last in the default order since the
// service rate-limits aggressively.
type IPAPIProvider struct {
	baseURL string
	client  *http.Client
}

func NewIPAPIProvider(baseURL string, client *http.Client) *IPAPIProvider {
	return &IPAPIProvider{baseURL: baseURL, client: client}
}

func (p *IPAPIProvider) Name() string { return "ip-api" }

func (p *IPAPIProvider) Locate(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/json", nil)
	if err != nil {
		return nil, fmt.Errorf("ip-api request setup failed: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ip-api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ip-api returned status code: %d", resp.StatusCode)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ip-api returned malformed JSON: %w", err)
	}

	if body.City == "" || body.Lat == nil || body.Lon == nil {
		return nil, fmt.Errorf("ip-api response is missing city or coordinate fields")
	}

	return &Location{Place: body.City, Latitude: *body.Lat, Longitude: *body.Lon}, nil
}
