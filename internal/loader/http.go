package loader

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"YieldSentinel/internal/model"

	"github.com/go-resty/resty/v2"
)

// HTTPSource fetches the tick CSV from a remote endpoint.
type HTTPSource struct {
	BaseURL string
	APIKey  string
	Symbol  string
	client  *resty.Client
}

// NewHTTPSource creates a source fetching from baseURL with optional bearer
// auth.
func NewHTTPSource(baseURL, apiKey, symbol string) *HTTPSource {
	return &HTTPSource{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Symbol:  symbol,
		client:  resty.New().SetTimeout(30 * time.Second),
	}
}

func (s *HTTPSource) Name() string { return "http" }

// Load fetches the CSV export and parses it with the same row rules as the
// file source.
func (s *HTTPSource) Load(ctx context.Context) ([]model.Observation, error) {
	endpoint := fmt.Sprintf("%s/ticks.csv?symbol=%s", s.BaseURL, url.QueryEscape(s.Symbol))
	req := s.client.R().SetContext(ctx)
	if s.APIKey != "" {
		req.SetAuthToken(s.APIKey)
	}
	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch ticks: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch ticks: status %d", resp.StatusCode())
	}

	obs, dropped, err := parseObservations(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse ticks from %s: %w", s.BaseURL, err)
	}
	if dropped > 0 {
		log.Printf("[WARN] http source: dropped %d unparseable rows", dropped)
	}
	return obs, nil
}
