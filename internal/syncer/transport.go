package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Sidoine1991/agent-position-sub003/internal/domain"
)

// ErrBatchRefused is returned when the server refuses the request body as a
// whole (400, 413, 422). Resending the same body cannot succeed.
var ErrBatchRefused = errors.New("syncer: batch refused by server")

const (
	syncPath      = "/api/v1/sync/checkins"
	referencePath = "/api/v1/agents/me/reference"
)

type HTTPTransport struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHTTPTransport(baseURL, token string, timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTransport) SendBatch(ctx context.Context, agentID string, events []domain.CheckinEvent) (domain.SyncResponse, error) {
	body, err := json.Marshal(domain.SyncRequest{AgentID: agentID, Events: events})
	if err != nil {
		return domain.SyncResponse{}, fmt.Errorf("marshal sync request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+syncPath, bytes.NewReader(body))
	if err != nil {
		return domain.SyncResponse{}, fmt.Errorf("build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.do(req)
	if err != nil {
		return domain.SyncResponse{}, err
	}
	defer resp.Body.Close()

	if err := classify(resp); err != nil {
		return domain.SyncResponse{}, err
	}

	var out domain.SyncResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// the server may have committed; resending is safe
		return domain.SyncResponse{}, fmt.Errorf("%w: decode sync response: %v", ErrTransient, err)
	}
	return out, nil
}

// FetchReference returns the agent's reference location, or nil when the
// server has none.
func (t *HTTPTransport) FetchReference(ctx context.Context) (*domain.ReferenceLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+referencePath, nil)
	if err != nil {
		return nil, fmt.Errorf("build reference request: %w", err)
	}

	resp, err := t.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := classify(resp); err != nil {
		return nil, err
	}

	var ref domain.ReferenceLocation
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return nil, fmt.Errorf("%w: decode reference: %v", ErrTransient, err)
	}
	return &ref, nil
}

func (t *HTTPTransport) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	resp, err := t.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return resp, nil
}

func classify(resp *http.Response) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(msg))

	switch code {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: http %d: %s", ErrBatchRefused, code, detail)
	default:
		// 5xx, auth, throttling, a wrong route: the events were never judged
		return fmt.Errorf("%w: http %d: %s", ErrTransient, code, detail)
	}
}
