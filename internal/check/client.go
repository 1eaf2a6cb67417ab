package check

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ferg-cod3s/opencode-nexus/pkg/types"
)

// Client talks to a running chat server (mock or real) over its JSON/SSE
// surface.
type Client struct {
	baseURL string
	log     *slog.Logger
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
		client:  &http.Client{Timeout: timeout},
	}
}

type AppInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

func (c *Client) AppInfo(ctx context.Context) (AppInfo, error) {
	var out AppInfo
	if err := c.getJSON(ctx, "/app", &out); err != nil {
		return AppInfo{}, err
	}
	return out, nil
}

func (c *Client) CreateSession(ctx context.Context, title string) (types.Session, error) {
	payload := map[string]string{"title": title}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/session", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return types.Session{}, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return types.Session{}, fmt.Errorf("create session: %s: %s", res.Status, string(body))
	}

	var sess types.Session
	if err := json.NewDecoder(res.Body).Decode(&sess); err != nil {
		return types.Session{}, err
	}
	return sess, nil
}

// SendPrompt posts one text part and drains the event-stream response,
// returning every fragment in emission order.
func (c *Client) SendPrompt(ctx context.Context, sessionID, text string) ([]types.Fragment, error) {
	payload := map[string]any{
		"parts": []map[string]string{{"type": "text", "text": text}},
	}
	b, _ := json.Marshal(payload)
	url := fmt.Sprintf("%s/session/%s/prompt", c.baseURL, sessionID)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("send prompt: %s: %s", res.Status, string(body))
	}

	var frags []types.Fragment
	sc := bufio.NewScanner(res.Body)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var f types.Fragment
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &f); err != nil {
			return nil, fmt.Errorf("parse fragment: %w", err)
		}
		frags = append(frags, f)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	c.log.Debug("stream drained", "session", sessionID, "fragments", len(frags))
	return frags, nil
}

func (c *Client) Messages(ctx context.Context, sessionID string) ([]types.Message, error) {
	var out struct {
		Messages []types.Message `json:"messages"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/session/%s/messages", sessionID), &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Client) Sessions(ctx context.Context) ([]types.Session, error) {
	var out struct {
		Sessions []types.Session `json:"sessions"`
	}
	if err := c.getJSON(ctx, "/sessions", &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("GET %s: %s: %s", path, res.Status, string(body))
	}
	return json.NewDecoder(res.Body).Decode(v)
}
