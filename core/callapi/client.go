// Package callapi is the client of the relay's call REST endpoints.
package callapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/koscakluka/hotline-core/core/call"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultTimeout = 10 * time.Second

type StartRequest struct {
	Target    call.Target `json:"target"`
	Question  string      `json:"user_question"`
	CAFNumber string      `json:"caf_number,omitempty"`
	UserName  string      `json:"user_name,omitempty"`
}

// StartResponse is the relay's answer to a start request. The relay also
// returns a websocket_url built from its own host; channels are addressed
// from the configured websocket base instead, so it is not decoded.
type StartResponse struct {
	CallID string     `json:"call_id"`
	Phase  call.Phase `json:"phase"`
}

type DialResponse struct {
	CallID    string `json:"call_id"`
	TwilioSID string `json:"twilio_sid"`
	Status    string `json:"status"`
}

type EndResponse struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
}

var ErrMissingCallID = errors.New("call id is required")

// StatusError is returned for non-2xx responses. Detail is the message the
// relay put in its error body, when there was one.
type StatusError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "non-OK HTTP status: " + e.Status
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient returns a client for the endpoints under baseURL, e.g.
// http://localhost:8000/api/v1/call.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
					return operationName + " " + request.URL.Path
				}),
			),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start creates a call session on the relay.
func (c *Client) Start(ctx context.Context, req StartRequest) (StartResponse, error) {
	ctx, span := tracer.Start(ctx, "start call", trace.WithAttributes(
		attribute.String("call.target", string(req.Target)),
	))
	defer span.End()

	if req.Target == "" {
		req.Target = call.DefaultTarget
	}

	var resp StartResponse
	if err := c.do(ctx, http.MethodPost, "/start", req, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "start failed")
		return StartResponse{}, err
	}
	if resp.CallID == "" {
		err := errors.New("response is missing a call id")
		span.RecordError(err)
		span.SetStatus(codes.Error, "start failed")
		return StartResponse{}, err
	}

	span.SetAttributes(attribute.String("call.id", resp.CallID))
	logger.Info("call session created", "call_id", resp.CallID, "phase", resp.Phase)
	return resp, nil
}

// Dial asks the relay to place the telephone call of an existing session.
func (c *Client) Dial(ctx context.Context, callID string) (DialResponse, error) {
	ctx, span := tracer.Start(ctx, "dial call", trace.WithAttributes(attribute.String("call.id", callID)))
	defer span.End()

	if callID == "" {
		return DialResponse{}, ErrMissingCallID
	}

	var resp DialResponse
	if err := c.do(ctx, http.MethodPost, "/dial/"+url.PathEscape(callID), nil, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dial failed")
		return DialResponse{}, err
	}

	logger.Info("call dialing", "call_id", callID, "status", resp.Status)
	return resp, nil
}

// End terminates the active call of a session without deleting it. It serves
// as a fallback when the realtime channel is unavailable.
func (c *Client) End(ctx context.Context, callID string) (EndResponse, error) {
	ctx, span := tracer.Start(ctx, "end call", trace.WithAttributes(attribute.String("call.id", callID)))
	defer span.End()

	if callID == "" {
		return EndResponse{}, ErrMissingCallID
	}

	var resp EndResponse
	if err := c.do(ctx, http.MethodDelete, "/session/"+url.PathEscape(callID), nil, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "end failed")
		return EndResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshalling JSON: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("error creating HTTP request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func newStatusError(resp *http.Response) *StatusError {
	statusErr := &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}

	errorBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return statusErr
	}

	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(errorBody, &parsed); err != nil || len(parsed.Detail) == 0 {
		statusErr.Detail = strings.TrimSpace(string(errorBody))
		return statusErr
	}

	// detail is a string for HTTPException and a list for validation errors.
	var detail string
	if err := json.Unmarshal(parsed.Detail, &detail); err == nil {
		statusErr.Detail = detail
	} else {
		statusErr.Detail = string(parsed.Detail)
	}
	return statusErr
}
