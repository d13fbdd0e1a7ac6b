// Package api is the FlexFit platform API client: the auth gateway plus the
// typed resource clients the commands call.
//
// Authenticated calls read the session from the store at call time. If no
// session is present the call fails before any request is issued; if the
// platform answers 401 the stored session is cleared before the error is
// returned, so a rejected credential is never presented twice.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flexfitapp/flexfit/internal/errors"
	"github.com/flexfitapp/flexfit/internal/log"
	"github.com/flexfitapp/flexfit/internal/session"
)

const defaultTimeout = 30 * time.Second

// Client talks to the FlexFit platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	logger     *log.Logger
}

// New creates a platform client bound to a session store.
func New(baseURL string, store session.Store, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		store:  store,
		logger: logger,
	}
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Store returns the session store the client reads credentials from.
func (c *Client) Store() session.Store {
	return c.store
}

// envelope is the platform's standard response shape.
type envelope struct {
	Status  string          `json:"status,omitempty"`
	Message string          `json:"message,omitempty"`
	Detail  json.RawMessage `json:"detail,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// do performs one request against the platform. When authed is true the
// current session's access token is attached; an absent session fails fast
// without touching the network. out, when non-nil, receives the decoded
// "data" member of the response envelope.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var token string
	if authed {
		s, err := c.store.Load()
		if err != nil {
			return err
		}
		if s == nil {
			return errors.NewUnauthenticatedError()
		}
		token = s.AccessToken
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeValidationFailed, "failed to encode request body", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeValidationFailed, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("platform request", "method", method, "path", path, "authed", authed)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(errors.ErrCodeRemoteTimeout, fmt.Sprintf("%s %s was cancelled", method, path), err)
		}
		return errors.NewRemoteFailureError(fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewRemoteFailureError(fmt.Sprintf("%s %s", method, path), err)
	}

	c.logger.Debug("platform response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized && authed {
		// The credential is dead. Drop it now so the next command starts
		// from a clean unauthenticated state.
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Warn("failed to clear rejected session", "error", clearErr)
		}
		return errors.NewCredentialRejectedError()
	}

	if resp.StatusCode >= 500 {
		return errors.NewRemoteFailureError(fmt.Sprintf("%s %s", method, path),
			fmt.Errorf("platform returned status %d", resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := decodeData(raw, out); err != nil {
			return errors.NewRemoteFailureError(fmt.Sprintf("%s %s", method, path), err)
		}
	}

	return nil
}

// remoteError turns a 4xx response into an error carrying the platform's own
// message, surfaced verbatim.
func remoteError(status int, raw []byte) error {
	msg := extractMessage(raw)
	if msg == "" {
		msg = fmt.Sprintf("request rejected with status %d", status)
	}
	return errors.NewBusinessRuleError(msg)
}

// extractMessage digs the human-readable message out of the platform's error
// bodies, which have shipped in several shapes over time.
func extractMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if env.Message != "" {
		return env.Message
	}
	if len(env.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(env.Detail, &detail); err == nil && detail != "" {
			return detail
		}
		return strings.TrimSpace(string(env.Detail))
	}
	if len(env.Data) > 0 {
		var inner struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(env.Data, &inner); err == nil && inner.Message != "" {
			return inner.Message
		}
	}
	return ""
}

// decodeData decodes the "data" member when the body is enveloped, or the
// whole body when it is not.
func decodeData(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}
