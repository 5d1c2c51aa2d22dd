package services

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/api"
	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/timex"
)

// fakeClient implements api.Client with overridable function fields.
// A nil function field behaves like an unreachable backend.
type fakeClient struct {
	registerFn      func(ctx context.Context, name, email, password string) (string, error)
	loginFn         func(ctx context.Context, email, password string) (string, error)
	currentUserFn   func(ctx context.Context) (*models.Profile, error)
	updateProfileFn func(ctx context.Context, fields map[string]string) (*models.Profile, error)
	recordShakeFn   func(ctx context.Context, count int, ts time.Time) (*models.Shake, error)
	shakesByDateFn  func(ctx context.Context, dateKey string) ([]models.Shake, error)
	shakesFn        func(ctx context.Context) ([]models.Shake, error)
	activitiesFn    func(ctx context.Context, activityType string, limit int) ([]models.Activity, error)
	logActivityFn   func(ctx context.Context, activityType, title string) error
	passwordResetFn func(ctx context.Context, email string) error
	feedbackFn      func(ctx context.Context, fb models.Feedback) error
	pingFn          func(ctx context.Context) error
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (string, error) {
	if f.registerFn == nil {
		return "", api.ErrUnavailable
	}
	return f.registerFn(ctx, name, email, password)
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginFn == nil {
		return "", api.ErrUnavailable
	}
	return f.loginFn(ctx, email, password)
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.Profile, error) {
	if f.currentUserFn == nil {
		return nil, api.ErrUnavailable
	}
	return f.currentUserFn(ctx)
}

func (f *fakeClient) UpdateProfile(ctx context.Context, fields map[string]string) (*models.Profile, error) {
	if f.updateProfileFn == nil {
		return nil, api.ErrUnavailable
	}
	return f.updateProfileFn(ctx, fields)
}

func (f *fakeClient) RecordShake(ctx context.Context, count int, ts time.Time) (*models.Shake, error) {
	if f.recordShakeFn == nil {
		return nil, api.ErrUnavailable
	}
	return f.recordShakeFn(ctx, count, ts)
}

func (f *fakeClient) ShakesForDate(ctx context.Context, dateKey string) ([]models.Shake, error) {
	if f.shakesByDateFn == nil {
		return nil, api.ErrUnavailable
	}
	return f.shakesByDateFn(ctx, dateKey)
}

func (f *fakeClient) Shakes(ctx context.Context) ([]models.Shake, error) {
	if f.shakesFn == nil {
		return nil, api.ErrUnavailable
	}
	return f.shakesFn(ctx)
}

func (f *fakeClient) RecentActivities(ctx context.Context, activityType string, limit int) ([]models.Activity, error) {
	if f.activitiesFn == nil {
		return nil, nil
	}
	return f.activitiesFn(ctx, activityType, limit)
}

func (f *fakeClient) LogActivity(ctx context.Context, activityType, title string) error {
	if f.logActivityFn == nil {
		return nil
	}
	return f.logActivityFn(ctx, activityType, title)
}

func (f *fakeClient) SendPasswordReset(ctx context.Context, email string) error {
	if f.passwordResetFn == nil {
		return api.ErrUnavailable
	}
	return f.passwordResetFn(ctx, email)
}

func (f *fakeClient) SubmitFeedback(ctx context.Context, fb models.Feedback) error {
	if f.feedbackFn == nil {
		return api.ErrUnavailable
	}
	return f.feedbackFn(ctx, fb)
}

func (f *fakeClient) Ping(ctx context.Context) error {
	if f.pingFn == nil {
		return api.ErrUnavailable
	}
	return f.pingFn(ctx)
}

func (f *fakeClient) Close() error { return nil }

// memCounters is an in-memory counters.Repository.
type memCounters struct {
	window   models.QuotaWindow
	fallback models.FallbackCounters
	failNext error
}

func (m *memCounters) Window(context.Context) (models.QuotaWindow, error) {
	if m.failNext != nil {
		return models.QuotaWindow{}, m.failNext
	}
	return m.window, nil
}

func (m *memCounters) SetWindow(_ context.Context, w models.QuotaWindow) error {
	if m.failNext != nil {
		return m.failNext
	}
	m.window = w
	return nil
}

func (m *memCounters) Fallback(context.Context) (models.FallbackCounters, error) {
	if m.failNext != nil {
		return models.FallbackCounters{}, m.failNext
	}
	return m.fallback, nil
}

func (m *memCounters) SetFallback(_ context.Context, f models.FallbackCounters) error {
	if m.failNext != nil {
		return m.failNext
	}
	m.fallback = f
	return nil
}

// memShakes is an in-memory shakes.Repository.
type memShakes struct {
	rows map[string]models.Shake
}

func newMemShakes() *memShakes { return &memShakes{rows: map[string]models.Shake{}} }

func (m *memShakes) Insert(_ context.Context, s *models.Shake) error {
	if _, ok := m.rows[s.ID]; ok {
		return nil
	}
	m.rows[s.ID] = *s
	return nil
}

func (m *memShakes) Recent(_ context.Context, limit int) ([]models.Shake, error) {
	out := make([]models.Shake, 0, len(m.rows))
	for _, s := range m.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memShakes) CountByDate(_ context.Context, dateKey string) (int, error) {
	n := 0
	for _, s := range m.rows {
		if timex.DateKey(s.Timestamp) == dateKey {
			n++
		}
	}
	return n, nil
}

// memOverlay is an in-memory overlay.Repository.
type memOverlay struct {
	data map[string]map[string]string
}

func newMemOverlay() *memOverlay { return &memOverlay{data: map[string]map[string]string{}} }

func (m *memOverlay) Get(_ context.Context, userKey string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range m.data[userKey] {
		out[k] = v
	}
	return out, nil
}

func (m *memOverlay) Set(_ context.Context, userKey string, fields map[string]string) error {
	filtered := models.FilterOverlay(fields)
	if len(filtered) == 0 {
		delete(m.data, userKey)
		return nil
	}
	m.data[userKey] = filtered
	return nil
}

func (m *memOverlay) Clear(_ context.Context, userKey string) error {
	delete(m.data, userKey)
	return nil
}

// memCreds is an in-memory credentials.Repository.
type memCreds struct {
	token string
}

func (m *memCreds) Token(context.Context) (string, error) { return m.token, nil }

func (m *memCreds) SetToken(_ context.Context, token string) error {
	m.token = token
	return nil
}

func (m *memCreds) Clear(context.Context) error {
	m.token = ""
	return nil
}
