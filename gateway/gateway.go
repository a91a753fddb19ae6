package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ymurata/kaiyaku-form/log"
	"github.com/ymurata/kaiyaku-form/model"
)

// DefaultPassword is the hardcoded fallback credential used when the remote
// endpoint is unconfigured or unreachable. A known weakness, acceptable only
// because the stakes are low; it is logged loudly instead of being hidden.
const DefaultPassword = "admin123"

// FallbackStore is the local mirror consulted when the remote endpoint
// cannot serve settings.
type FallbackStore interface {
	LoadSettings(ctx context.Context) (model.Settings, bool)
	SaveSettings(ctx context.Context, s model.Settings) error
}

// Client brokers every call to the spreadsheet web app. One round trip per
// operation, no retries, no caching; every failure degrades to a safe default.
type Client struct {
	baseURL  string
	http     *http.Client
	fallback FallbackStore
}

func New(baseURL string, fallback FallbackStore) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		log.Warn("gateway: no endpoint configured, submissions are discarded and the default admin password is active")
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		fallback: fallback,
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != ""
}

func (c *Client) post(ctx context.Context, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gateway: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// Submit appends one record to the spreadsheet. The endpoint answers nothing
// useful on this action, so any delivered request counts as success regardless
// of what comes back.
func (c *Client) Submit(ctx context.Context, s model.Submission) error {
	if !c.Configured() {
		log.Warn("gateway.submit: endpoint not configured, record not persisted")
		return nil
	}

	resp, err := c.post(ctx, map[string]any{
		"action": "submit",
		"data":   s,
	})
	if err != nil {
		return fmt.Errorf("gateway: submit: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// FetchSettings retrieves the settings record, falling back to the local
// mirror and then to hardcoded defaults. It never fails.
func (c *Client) FetchSettings(ctx context.Context) model.Settings {
	if !c.Configured() {
		return c.fallbackSettings(ctx)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?action=getSettings", nil)
	if err != nil {
		log.Errorf("gateway.get_settings: %s", err)
		return c.fallbackSettings(ctx)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		log.Errorf("gateway.get_settings: %s", err)
		return c.fallbackSettings(ctx)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Errorf("gateway.get_settings: status %d", resp.StatusCode)
		return c.fallbackSettings(ctx)
	}

	var settings model.Settings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		log.Errorf("gateway.get_settings.parse: %s", err)
		return c.fallbackSettings(ctx)
	}

	settings.FillDefaults()
	return settings
}

func (c *Client) fallbackSettings(ctx context.Context) model.Settings {
	if c.fallback != nil {
		if settings, ok := c.fallback.LoadSettings(ctx); ok {
			settings.FillDefaults()
			return settings
		}
	}
	return model.DefaultSettings()
}

// SaveSettings persists the settings record remotely and mirrors it to the
// local store either way, so the mirror stays last-known-good.
func (c *Client) SaveSettings(ctx context.Context, s model.Settings) error {
	s.FillDefaults()

	if c.fallback != nil {
		if err := c.fallback.SaveSettings(ctx, s); err != nil {
			log.Errorf("gateway.save_settings.mirror: %s", err)
		}
	}
	if !c.Configured() {
		log.Warn("gateway.save_settings: endpoint not configured, saved to local mirror only")
		return nil
	}

	resp, err := c.post(ctx, map[string]any{
		"action": "saveSettings",
		"data":   s,
	})
	if err != nil {
		return fmt.Errorf("gateway: save settings: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// VerifyPassword checks an admin credential against the remote endpoint.
// When the call cannot complete it compares against DefaultPassword instead.
func (c *Client) VerifyPassword(ctx context.Context, password string) bool {
	if !c.Configured() {
		return password == DefaultPassword
	}

	resp, err := c.post(ctx, map[string]any{
		"action":   "verifyPassword",
		"password": password,
	})
	if err != nil {
		log.Errorf("gateway.verify_password: %s", err)
		return password == DefaultPassword
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Errorf("gateway.verify_password: status %d", resp.StatusCode)
		return password == DefaultPassword
	}

	var result struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Errorf("gateway.verify_password.parse: %s", err)
		return password == DefaultPassword
	}
	return result.Valid
}

// ChangePassword rotates the remote credential. Fire-and-forget, like Submit.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	if !c.Configured() {
		log.Warn("gateway.change_password: endpoint not configured, password unchanged")
		return nil
	}

	resp, err := c.post(ctx, map[string]any{
		"action":          "changePassword",
		"currentPassword": current,
		"newPassword":     next,
	})
	if err != nil {
		return fmt.Errorf("gateway: change password: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return nil
}

// ListSubmissions fetches every stored record, authenticating with the cached
// admin password carried in the request body. Any failure yields an empty
// list; the gateway's ordering is preserved as-is.
func (c *Client) ListSubmissions(ctx context.Context, password string) []model.Submission {
	if !c.Configured() {
		return []model.Submission{}
	}

	resp, err := c.post(ctx, map[string]any{
		"action":   "getSubmissions",
		"password": password,
	})
	if err != nil {
		log.Errorf("gateway.get_submissions: %s", err)
		return []model.Submission{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Errorf("gateway.get_submissions: status %d", resp.StatusCode)
		return []model.Submission{}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("gateway.get_submissions.read: %s", err)
		return []model.Submission{}
	}

	// The endpoint answers either an array or {"error": "..."}.
	var submissions []model.Submission
	if err := json.Unmarshal(body, &submissions); err != nil {
		var failure struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &failure); err == nil && failure.Error != "" {
			log.Errorf("gateway.get_submissions: %s", failure.Error)
		} else {
			log.Errorf("gateway.get_submissions.parse: %s", err)
		}
		return []model.Submission{}
	}
	return submissions
}
