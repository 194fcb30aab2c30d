package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const metersPerMile = 1609.344

// RoutedProvider queries an OSRM-compatible routing service for driving
// distance and duration.
type RoutedProvider struct {
	baseURL string
	client  *http.Client
}

// NewRoutedProvider creates a provider against the given OSRM-compatible base
// URL. A nil client uses http.DefaultClient; the caller bounds call time via
// context (NewResilientProvider does this).
func NewRoutedProvider(baseURL string, client *http.Client) *RoutedProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &RoutedProvider{baseURL: baseURL, client: client}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
	} `json:"routes"`
}

// Distance implements DistanceProvider.
func (p *RoutedProvider) Distance(ctx context.Context, originLat, originLng, destLat, destLng float64) (Distance, error) {
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		p.baseURL, originLng, originLat, destLng, destLat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Distance{}, fmt.Errorf("build routing request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Distance{}, fmt.Errorf("routing request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Distance{}, fmt.Errorf("routing service returned status %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Distance{}, fmt.Errorf("decode routing response: %w", err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return Distance{}, fmt.Errorf("routing service found no route (code %s)", body.Code)
	}

	return Distance{
		Miles:   body.Routes[0].Distance / metersPerMile,
		Minutes: body.Routes[0].Duration / 60,
	}, nil
}
