package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"
	xhttp "GoldBrief/pkg/http"
)

const Name = "telegram"

// Client delivers digests through the Telegram Bot API sendMessage method.
type Client struct {
	token     string
	chatID    string
	baseURL   string
	parseMode string
	http      *xhttp.Client
}

func New(token, chatID, baseURL, parseMode string, timeout time.Duration, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &Client{
		token:     token,
		chatID:    chatID,
		baseURL:   strings.TrimRight(baseURL, "/"),
		parseMode: parseMode,
		http:      xhttp.NewClient(opts...),
	}
}

func (c *Client) Name() string { return Name }

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts the digest text to the configured chat.
func (c *Client) Send(ctx context.Context, d models.Digest) error {
	if c.token == "" || c.chatID == "" {
		return drepo.ErrNotConfigured
	}

	form := map[string]string{
		"chat_id": c.chatID,
		"text":    d.Text,
	}
	if c.parseMode != "" {
		form["parse_mode"] = c.parseMode
	}

	var res sendMessageResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token),
		Headers: map[string]string{"Content-Type": xhttp.ContentTypeForm},
		Body:    form,
	}, &res)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			// never echo the URL; it carries the bot token
			return fmt.Errorf("telegram sendMessage: status %d: %s", se.StatusCode, se.Body)
		}
		return fmt.Errorf("telegram sendMessage: %w", redact(err, c.token))
	}
	if !res.OK {
		return fmt.Errorf("telegram sendMessage: %s", res.Description)
	}
	return nil
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, token string) error {
	return &redactedError{msg: strings.ReplaceAll(err.Error(), token, "<token>"), err: err}
}
