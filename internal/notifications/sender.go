package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/screen-nudge/internal/policy"
)

// Sender delivers a single notification.
type Sender interface {
	Send(ctx context.Context, n policy.Notification) error
}

// ExpoSender posts notifications to an Expo-compatible push gateway.
type ExpoSender struct {
	url         string
	accessToken string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewExpoSender creates a gateway client. accessToken may be empty.
func NewExpoSender(url, accessToken string, timeout time.Duration, logger *slog.Logger) *ExpoSender {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	return &ExpoSender{
		url:         url,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// pushMessage is the gateway request body.
type pushMessage struct {
	To    string            `json:"to"`
	Sound string            `json:"sound,omitempty"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// pushTicket is the gateway's per-message verdict.
type pushTicket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

type pushResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func newPushMessage(n policy.Notification) pushMessage {
	msg := pushMessage{
		To:    n.Token,
		Title: n.Title,
		Body:  n.Body,
		Data:  pushExtraData,
	}
	if n.Vibrate {
		msg.Sound = "default"
	}
	return msg
}

// Send posts one notification. Transport failures, non-2xx responses and
// error tickets are returned as errors.
func (s *ExpoSender) Send(ctx context.Context, n policy.Notification) error {
	payload, err := json.Marshal(newPushMessage(n))
	if err != nil {
		return fmt.Errorf("encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.accessToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push gateway request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push gateway returned %d: %s", resp.StatusCode, truncate(body, gatewayErrorBodyLimit))
	}

	if err := checkTickets(body); err != nil {
		return err
	}

	s.logger.Debug("Push sent", "token", n.Token, "title", n.Title)
	return nil
}

// checkTickets inspects the gateway response for rejected messages. Bodies
// that are not in the gateway's JSON shape are accepted as-is.
func checkTickets(body []byte) error {
	var resp pushResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("push gateway error %s: %s", resp.Errors[0].Code, resp.Errors[0].Message)
	}

	data := bytes.TrimSpace(resp.Data)
	if len(data) == 0 {
		return nil
	}
	var tickets []pushTicket
	if data[0] == '[' {
		if err := json.Unmarshal(data, &tickets); err != nil {
			return nil
		}
	} else {
		var t pushTicket
		if err := json.Unmarshal(data, &t); err != nil {
			return nil
		}
		tickets = append(tickets, t)
	}

	for _, t := range tickets {
		if t.Status == "error" {
			return fmt.Errorf("push rejected: %s", t.Message)
		}
	}
	return nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
