// Package client implements the survey backend wire contract: JSON POSTs
// with a bearer API key, a short per-request timeout, and no retries. A
// survey prompt is not mission-critical, so failures are reported to the
// caller once and then abandoned.
package client

import (
	"bytes"
	"context"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/pulselabs/pulse-go/model"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	base   *url.URL
	apiKey string
	http   *http.Client
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, ErrInvalidURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		base:   base,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
	}, nil
}

type Metadata struct {
	AppVersion   string `json:"appVersion"`
	Platform     string `json:"platform"`
	DeviceLocale string `json:"deviceLocale"`
}

type TriggerCheckRequest struct {
	Trigger      string         `json:"trigger"`
	UserID       string         `json:"userId"`
	Traits       map[string]any `json:"traits,omitempty"`
	AppVersion   string         `json:"appVersion"`
	Platform     string         `json:"platform"`
	DeviceLocale string         `json:"deviceLocale"`
}

type TriggerCheckResponse struct {
	Show   bool          `json:"show"`
	Survey *model.Survey `json:"survey,omitempty"`
}

type SubmissionRequest struct {
	SurveyID      string         `json:"surveyId"`
	UserID        string         `json:"userId"`
	Trigger       string         `json:"trigger"`
	Answers       []model.Answer `json:"answers"`
	Metadata      Metadata       `json:"metadata"`
	SurveyVersion int            `json:"surveyVersion,omitempty"`
}

type submissionResponse struct {
	Status string `json:"status"`
}

type PingRequest struct {
	Platform     string `json:"platform"`
	AppVersion   string `json:"appVersion"`
	DeviceLocale string `json:"deviceLocale"`
	SDKVersion   string `json:"sdkVersion"`
}

// CheckTrigger asks the backend whether a survey should be shown for the
// trigger. The returned survey is present only when Show is true.
func (c *Client) CheckTrigger(ctx context.Context, req TriggerCheckRequest) (*TriggerCheckResponse, error) {
	var resp TriggerCheckResponse
	err := c.post(ctx, "/triggers-check", req, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitResponse uploads collected answers. Callers treat any error as
// "submission abandoned".
func (c *Client) SubmitResponse(ctx context.Context, req SubmissionRequest) error {
	var resp submissionResponse
	return c.post(ctx, "/responses", req, &resp)
}

// Ping announces the SDK to the backend. The response carries nothing the
// SDK needs.
func (c *Client) Ping(ctx context.Context, req PingRequest) error {
	return c.post(ctx, "/ping", req, nil)
}

func (c *Client) post(ctx context.Context, pathname string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(ErrDecoding, "marshal request: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String()+pathname, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(ErrInvalidURL, pathname)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(ErrNetwork, pathname+": "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	if out == nil {
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return errors.Wrap(ErrInvalidResponse, pathname+": content-type "+mediaType)
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return errors.Wrap(ErrDecoding, pathname+": "+err.Error())
	}
	return nil
}
