// Package emailjs sends templated mail through the EmailJS REST API.
package emailjs

import (
	"context"
	"fmt"
	"time"

	"retreat/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const sendPath = "/api/v1.0/email/send"

type Config struct {
	BaseURL    string
	ServiceID  string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
	RetryCount int
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams map[string]any `json:"template_params"`
}

// APIError is returned when EmailJS answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("emailjs returned status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

type Client struct {
	http *resty.Client
	cfg  Config
	log  *logger.Logger
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{http: client, cfg: cfg, log: log}
}

func (c *Client) Send(ctx context.Context, templateID string, params map[string]any) error {
	req := sendRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     templateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: params,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(sendPath)
	if err != nil {
		c.log.Error("emailjs request failed", "template_id", templateID, "error", err)
		return fmt.Errorf("failed to call emailjs: %w", err)
	}

	if resp.IsError() {
		c.log.Warn("emailjs rejected request",
			"template_id", templateID,
			"status_code", resp.StatusCode(),
			"body", resp.String(),
		)
		return &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	c.log.Debug("email sent", "template_id", templateID, "to", params["to_email"])
	return nil
}
