package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/shaketracker/internal/logging"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
)

// HTTPClient talks JSON over HTTP to the backend. The bearer token is read
// lazily from the credential store on every request; a missing token sends
// the request unauthenticated and lets the backend reject it.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   credentials.Repository
	log     logging.Logger
}

func NewHTTPClient(baseURL string, creds credentials.Repository, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		creds:   creds,
		log:     log,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e *errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do performs one JSON request/response round trip. out may be nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// A failed token read degrades to an unauthenticated request; losing
	// the cached token is recoverable, blocking the call is not.
	if token, err := c.creds.Token(ctx); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(ctx, "api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		c.log.Warn(ctx, "api error", "method", method, "path", path, "status", resp.StatusCode, "message", er.text())
		return mapStatus(resp.StatusCode, er.text())
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func mapStatus(status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotSupported
	case http.StatusTooManyRequests:
		return ErrQuotaExceeded
	default:
		if message == "" {
			message = fmt.Sprintf("request failed (%d)", status)
		}
		return fmt.Errorf("backend error: %s", message)
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (string, error) {
	var res tokenResponse
	payload := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", payload, &res); err != nil {
		return "", err
	}
	if res.Token == "" {
		// some deployments register without issuing a token
		return c.Login(ctx, email, password)
	}
	return res.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var res tokenResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *HTTPClient) SendPasswordReset(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", payload, nil)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, fields map[string]string) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodPatch, "/api/users/me", fields, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// shakeDTO tolerates the timestamp and reward shapes different backends
// produce; timestamps are normalized before anything downstream sees them.
type shakeDTO struct {
	ID        string    `json:"id"`
	AltID     string    `json:"_id"`
	Timestamp any       `json:"timestamp"`
	Reward    rewardDTO `json:"reward"`
}

type rewardDTO struct {
	Name string
}

func (r *rewardDTO) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.Name = obj.Name
	return nil
}

func (d *shakeDTO) toModel() models.Shake {
	id := d.ID
	if id == "" {
		id = d.AltID
	}
	ts, _ := timex.Normalize(d.Timestamp)
	return models.Shake{ID: id, Timestamp: ts, Reward: d.Reward.Name, Synced: true}
}

func (c *HTTPClient) RecordShake(ctx context.Context, count int, ts time.Time) (*models.Shake, error) {
	var res shakeDTO
	payload := map[string]any{"count": count, "timestamp": ts.Format(time.RFC3339)}
	if err := c.do(ctx, http.MethodPost, "/api/shakes", payload, &res); err != nil {
		return nil, err
	}
	shake := res.toModel()
	return &shake, nil
}

func (c *HTTPClient) ShakesForDate(ctx context.Context, dateKey string) ([]models.Shake, error) {
	return c.fetchShakes(ctx, "/api/shakes?date="+url.QueryEscape(dateKey))
}

func (c *HTTPClient) Shakes(ctx context.Context) ([]models.Shake, error) {
	return c.fetchShakes(ctx, "/api/shakes")
}

func (c *HTTPClient) fetchShakes(ctx context.Context, path string) ([]models.Shake, error) {
	var dtos []shakeDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	result := make([]models.Shake, 0, len(dtos))
	for _, d := range dtos {
		result = append(result, d.toModel())
	}
	return result, nil
}

type activityDTO struct {
	ID        string `json:"id"`
	AltID     string `json:"_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Timestamp any    `json:"timestamp"`
}

func (c *HTTPClient) RecentActivities(ctx context.Context, activityType string, limit int) ([]models.Activity, error) {
	path := "/api/activities?type=" + url.QueryEscape(activityType) + "&limit=" + strconv.Itoa(limit)

	var dtos []activityDTO
	err := c.do(ctx, http.MethodGet, path, nil, &dtos)
	if err != nil {
		// a backend without an activity feed degrades to an empty list
		if errors.Is(err, ErrNotSupported) {
			return []models.Activity{}, nil
		}
		return nil, err
	}

	result := make([]models.Activity, 0, len(dtos))
	for _, d := range dtos {
		id := d.ID
		if id == "" {
			id = d.AltID
		}
		ts, _ := timex.Normalize(d.Timestamp)
		result = append(result, models.Activity{ID: id, Type: d.Type, Title: d.Title, Timestamp: ts})
	}
	return result, nil
}

func (c *HTTPClient) LogActivity(ctx context.Context, activityType, title string) error {
	payload := map[string]string{"type": activityType, "title": title}
	err := c.do(ctx, http.MethodPost, "/api/activities", payload, nil)
	if errors.Is(err, ErrNotSupported) {
		return nil
	}
	return err
}

func (c *HTTPClient) SubmitFeedback(ctx context.Context, fb models.Feedback) error {
	return c.do(ctx, http.MethodPost, "/api/feedbacks", fb, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
