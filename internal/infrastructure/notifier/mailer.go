package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrMailRejected = errors.New("mail provider rejected message")

// HTTPMailer posts messages to the mail provider's /v1/messages endpoint.
type HTTPMailer struct {
	client *resty.Client
	from   string
	logger *zap.Logger
}

func NewHTTPMailer(baseURL, apiKey, from string, timeout time.Duration, logger *zap.Logger) *HTTPMailer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &HTTPMailer{client: client, from: from, logger: logger}
}

func (m *HTTPMailer) Send(ctx context.Context, to, subject, body string) error {
	var errResp mailErrorResponse
	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(MailPayload{From: m.from, To: to, Subject: subject, Text: body}).
		SetError(&errResp).
		Post("/v1/messages")
	if err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d: %s", ErrMailRejected, resp.StatusCode(), errResp.Message)
	}

	m.logger.Debug("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("mail delivery disabled, message logged",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
