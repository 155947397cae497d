package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/seezee/launcherhub/internal/models"
)

const maxBodyBytes = 4 << 20

// ErrNoAgent is returned when no PC address has been configured yet.
var ErrNoAgent = errors.New("PC address not configured")

// RemoteError is a non-2xx answer from the agent.
type RemoteError struct {
	Status  int
	Message string // the agent's "error" (or "message") field, if any
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("agent returned HTTP %d", e.Status)
}

// MalformedError means a 2xx body did not have the expected shape.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response from %s: %v", e.Path, e.Err)
	}
	return "unexpected response from " + e.Path
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Do performs one request against the agent and decodes a 2xx JSON body into out.
// It is the primitive every page controller uses; it does not touch session state.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	base := c.ServerURL()
	if base == "" {
		return ErrNoAgent
	}
	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Status: resp.StatusCode, Message: errorField(data)}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		if out != nil {
			return &MalformedError{Path: path}
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &MalformedError{Path: path, Err: err}
	}
	return nil
}

// errorField extracts the agent's error text from a failure body.
func errorField(data []byte) string {
	var body struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if s, ok := body.Error.(string); ok && s != "" {
		return s
	}
	return body.Message
}

// failure turns an error into the text stored on the session. Remote errors
// without a message of their own use fallback.
func failure(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		if remote.Message != "" {
			return remote.Message
		}
		return fallback
	}
	var malformed *MalformedError
	if errors.As(err, &malformed) {
		return fallback + ": unexpected response"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fallback + ": request timed out"
	}
	return err.Error()
}

// AsAppError maps an agent failure onto the hub's error taxonomy: no address
// configured is 503, anything the agent (or the network) did wrong is 502.
func AsAppError(err error, fallback string) *models.AppError {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoAgent) {
		return models.ErrNotConnected
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		if remote.Message != "" {
			return models.ErrUpstream(remote.Message)
		}
		return models.ErrUpstream(fmt.Sprintf("%s: agent returned HTTP %d", fallback, remote.Status))
	}
	return models.ErrUpstream(fallback + ": " + err.Error())
}
