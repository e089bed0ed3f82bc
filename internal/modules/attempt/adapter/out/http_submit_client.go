package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bioq/internal/modules/attempt/domain"
	attemptout "bioq/internal/modules/attempt/port/out"
	apperrors "bioq/internal/platform/errors"
)

type attemptPayload struct {
	Date           string `json:"date"`
	WeekID         string `json:"weekId"`
	Score          int    `json:"score"`
	QuestionCount  int    `json:"questionCount"`
	TotalElapsedMs int64  `json:"totalElapsedMs"`
	TimeBudgetMs   int64  `json:"timeBudgetMs"`
	DeviceID       string `json:"deviceId"`
	UserID         string `json:"userId,omitempty"`
}

// HTTPSubmitClient posts completed attempts to the remote collaborator. The
// server enforces uniqueness per identity and day; a conflict response means
// the attempt is already saved and is reported as ErrDuplicateAttempt so
// callers treat it as success.
type HTTPSubmitClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPSubmitClient(baseURL, token string) attemptout.SubmitClient {
	return &HTTPSubmitClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPSubmitClient) Submit(ctx context.Context, attempt domain.Attempt) error {
	payload, err := json.Marshal(attemptPayload{
		Date:           attempt.Date,
		WeekID:         attempt.WeekID,
		Score:          attempt.Score,
		QuestionCount:  attempt.QuestionCount,
		TotalElapsedMs: attempt.TotalElapsedMs,
		TimeBudgetMs:   attempt.TimeBudgetMs,
		DeviceID:       attempt.DeviceID,
		UserID:         attempt.UserID,
	})
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/attempts", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return apperrors.ErrDuplicateAttempt
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		return fmt.Errorf("attempt endpoint returned status %d", resp.StatusCode)
	}
}
