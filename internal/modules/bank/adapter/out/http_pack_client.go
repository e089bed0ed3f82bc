package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bioq/internal/modules/bank/domain"
	bankout "bioq/internal/modules/bank/port/out"
)

// HTTPPackClient fetches a question pack over HTTP. The fetch is one-shot;
// no retry on failure.
type HTTPPackClient struct {
	client *http.Client
}

func NewHTTPPackClient() bankout.PackFetcher {
	return &HTTPPackClient{client: &http.Client{Timeout: 30 * time.Second}}
}

func (c *HTTPPackClient) Fetch(ctx context.Context, url string) ([]domain.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pack source returned status %d", resp.StatusCode)
	}
	var questions []domain.Question
	if err := json.NewDecoder(resp.Body).Decode(&questions); err != nil {
		return nil, fmt.Errorf("decode pack response: %w", err)
	}
	return questions, nil
}
