package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/avolkov/miniclub/internal/client/models"
)

// HTTPClient talks JSON over HTTP to the miniclub API server.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
}

// NewHTTPClient constructs a Client bound to the given base URL,
// e.g. "https://api.example.com" (no trailing slash required).
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Transport: &requestIDTransport{base: http.DefaultTransport},
		},
	}
}

// requestIDTransport stamps every outbound request with a fresh request ID
// so client and server logs can be correlated.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("X-Request-Id", uuid.NewString())
	return t.base.RoundTrip(clone)
}

// do performs one JSON round-trip. A non-empty credential is attached as a
// bearer token. When out is non-nil the response body is decoded into it.
func (c *HTTPClient) do(ctx context.Context, method, path, credential string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Transport failures and context timeouts land here. Both are
		// retryable from the caller's point of view.
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode >= 400 {
		return mapStatus(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
		}
	}
	return nil
}

// mapStatus translates an HTTP error status plus body into the error taxonomy.
func mapStatus(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized

	case status == http.StatusConflict:
		return ErrConflict

	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		var payload struct {
			Error  string            `json:"error"`
			Errors map[string]string `json:"errors"`
		}
		_ = json.Unmarshal(body, &payload)
		if len(payload.Errors) > 0 {
			return &ValidationError{FieldErrors: payload.Errors}
		}
		if payload.Error != "" {
			return &ValidationError{FieldErrors: map[string]string{"form": payload.Error}}
		}
		return &ValidationError{}

	default:
		return &ServerError{Code: status}
	}
}

func (c *HTTPClient) ExchangeHostIdentity(ctx context.Context, payload string) (*ExchangeResult, error) {
	var resp struct {
		AccessToken       string `json:"accessToken"`
		NeedsRegistration bool   `json:"needsRegistration"`
		HostUser          *struct {
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
		} `json:"telegramUser"`
	}

	body := map[string]string{"initData": payload}
	if err := c.do(ctx, http.MethodPost, "/auth/telegram", "", body, &resp); err != nil {
		return nil, err
	}

	if resp.NeedsRegistration {
		pending := &models.PendingIdentity{}
		if resp.HostUser != nil {
			pending.FirstName = resp.HostUser.FirstName
			pending.LastName = resp.HostUser.LastName
		}
		return &ExchangeResult{NeedsRegistration: true, Pending: pending}, nil
	}

	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: exchange response carries no credential", ErrNetwork)
	}
	return &ExchangeResult{Credential: resp.AccessToken}, nil
}

func (c *HTTPClient) PasswordLogin(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		AccessToken string `json:"accessToken"`
	}

	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		// For the login endpoint a 401 means the pair was wrong, not that a
		// stored credential went stale.
		if errors.Is(err, ErrUnauthorized) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: login response carries no credential", ErrNetwork)
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, form RegistrationForm) (string, error) {
	var resp struct {
		AccessToken string `json:"accessToken"`
	}

	if err := c.do(ctx, http.MethodPost, "/auth/register", "", form, &resp); err != nil {
		return "", err
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: register response carries no credential", ErrNetwork)
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) DevLogin(ctx context.Context) (string, error) {
	var resp struct {
		AccessToken string `json:"accessToken"`
	}

	if err := c.do(ctx, http.MethodPost, "/auth/dev", "", struct{}{}, &resp); err != nil {
		return "", err
	}

	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: dev login response carries no credential", ErrNetwork)
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) FetchProfile(ctx context.Context, credential string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/me", credential, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, credential string, draft models.ProfileDraft) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodPut, "/me", credential, draft, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) ListActivities(ctx context.Context, credential string) ([]models.Activity, error) {
	var activities []models.Activity
	if err := c.do(ctx, http.MethodGet, "/activities", credential, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (c *HTTPClient) EnrollActivity(ctx context.Context, credential string, activityID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/activities/%d/register", activityID), credential, nil, nil)
}

func (c *HTTPClient) CancelActivity(ctx context.Context, credential string, activityID int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/activities/%d/cancel", activityID), credential, nil, nil)
}

func (c *HTTPClient) MyAchievements(ctx context.Context, credential string) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := c.do(ctx, http.MethodGet, "/achievements/my", credential, nil, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}

func (c *HTTPClient) AllAchievements(ctx context.Context, credential string) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := c.do(ctx, http.MethodGet, "/achievements/all", credential, nil, &achievements); err != nil {
		return nil, err
	}
	return achievements, nil
}
