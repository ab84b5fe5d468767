package offline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPDispatcher replays operations against the cart API over HTTP,
// targeting the same endpoints the online UI uses.
type HTTPDispatcher struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewHTTPDispatcher(baseURL, sessionID string) *HTTPDispatcher {
	return &HTTPDispatcher{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sessionID: sessionID,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// envelope matches the API's {success, data|error, retryable} response shape.
type envelope struct {
	Success   bool            `json:"success"`
	Error     json.RawMessage `json:"error,omitempty"`
	Retryable bool            `json:"retryable,omitempty"`
}

func (d *HTTPDispatcher) Create(ctx context.Context, payload json.RawMessage) (Ack, error) {
	return d.do(ctx, http.MethodPost, d.baseURL+"/api/cart/items", payload)
}

func (d *HTTPDispatcher) Update(ctx context.Context, itemID string, payload json.RawMessage) (Ack, error) {
	return d.do(ctx, http.MethodPatch, fmt.Sprintf("%s/api/cart/items/%s", d.baseURL, itemID), payload)
}

func (d *HTTPDispatcher) Delete(ctx context.Context, itemID string) (Ack, error) {
	return d.do(ctx, http.MethodDelete, fmt.Sprintf("%s/api/cart/items/%s", d.baseURL, itemID), nil)
}

func (d *HTTPDispatcher) do(ctx context.Context, method, url string, payload json.RawMessage) (Ack, error) {
	var body *bytes.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return Ack{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", d.sessionID)

	resp, err := d.client.Do(req)
	if err != nil {
		// Transport-level failure; the replayer surfaces it distinctly.
		return Ack{}, err
	}
	defer resp.Body.Close()

	var env envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		return Ack{Error: fmt.Sprintf("status %d: unreadable response", resp.StatusCode)}, nil
	}
	ack := Ack{Success: env.Success, Retryable: env.Retryable}
	if len(env.Error) > 0 {
		ack.Error = string(env.Error)
	} else if !env.Success {
		ack.Error = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return ack, nil
}
