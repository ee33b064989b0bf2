package geolocate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type ipInfoResponse struct {
	City string `json:"city"`
	Loc  string `json:"loc"`
}

// IPInfoProvider queries ipinfo.io, which returns coordinates as a single
// "lat,lon" string under the "loc" key.
type IPInfoProvider struct {
	baseURL string
	client  *http.Client
}

func NewIPInfoProvider(baseURL string, client *http.Client) *IPInfoProvider {
	return &IPInfoProvider{baseURL: baseURL, client: client}
}

func (p *IPInfoProvider) Name() string { return "ipinfo" }

func (p *IPInfoProvider) Locate(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/json", nil)
	if err != nil {
		return nil, fmt.Errorf("ipinfo request setup failed: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ipinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ipinfo returned status code: %d", resp.StatusCode)
	}

	var body ipInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ipinfo returned malformed JSON: %w", err)
	}

	parts := strings.SplitN(body.Loc, ",", 2)
	if body.City == "" || len(parts) != 2 {
		return nil, fmt.Errorf("ipinfo response is missing city or loc fields")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("ipinfo returned unparseable latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("ipinfo returned unparseable longitude %q: %w", parts[1], err)
	}

	return &Location{Place: body.City, Latitude: lat, Longitude: lon}, nil
}
