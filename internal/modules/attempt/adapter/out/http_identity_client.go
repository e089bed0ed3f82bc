package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	attemptout "bioq/internal/modules/attempt/port/out"
)

// HTTPIdentityClient asks the identity provider which user a token belongs
// to. The OAuth dance itself happens outside this application; only the
// resulting token is consumed here.
type HTTPIdentityClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPIdentityClient(baseURL string) attemptout.IdentityClient {
	return &HTTPIdentityClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPIdentityClient) WhoAmI(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/whoami", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity endpoint returned status %d", resp.StatusCode)
	}
	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode identity response: %w", err)
	}
	if payload.UserID == "" {
		return "", fmt.Errorf("identity response missing user id")
	}
	return payload.UserID, nil
}
