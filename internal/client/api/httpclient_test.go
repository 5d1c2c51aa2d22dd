package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/shaketracker/internal/client/models"
	"github.com/dmitrijs2005/shaketracker/internal/logging"
	"github.com/stretchr/testify/require"
)

type memCreds struct {
	token string
}

func (m *memCreds) Token(context.Context) (string, error)      { return m.token, nil }
func (m *memCreds) SetToken(_ context.Context, t string) error { m.token = t; return nil }
func (m *memCreds) Clear(context.Context) error                { m.token = ""; return nil }

func jsonDecode(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func newTestClient(t *testing.T, handler http.Handler, token string) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, &memCreds{token: token}, logging.Discard{})
}

func TestDo_AttachesBearerTokenLazily(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}), "tok-1")

	require.NoError(t, c.Ping(context.Background()))
	require.Equal(t, "Bearer tok-1", gotAuth)
}

func TestDo_NoTokenSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}), "")

	require.NoError(t, c.Ping(context.Background()))
	require.Equal(t, "", gotAuth)
}

func TestDo_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotSupported},
		{http.StatusTooManyRequests, ErrQuotaExceeded},
	}
	for _, tt := range tests {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"nope"}`, tt.status)
		}), "t")
		_, err := c.CurrentUser(context.Background())
		require.ErrorIs(t, err, tt.want, "status %d", tt.status)
	}
}

func TestDo_GenericErrorCarriesBackendMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"database on fire"}`))
	}), "t")

	_, err := c.CurrentUser(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "database on fire")
}

func TestDo_ConnectivityFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewHTTPClient(srv.URL, &memCreds{}, logging.Discard{})
	srv.Close()

	err := c.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRegister_FallsBackToLoginWhenNoToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/register":
			w.Write([]byte(`{"message":"created"}`))
		case "/api/auth/login":
			w.Write([]byte(`{"token":"via-login"}`))
		default:
			http.NotFound(w, r)
		}
	}), "")

	token, err := c.Register(context.Background(), "Dana", "d@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, "via-login", token)
}

func TestFetchShakes_NormalizesHeterogeneousTimestamps(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"a","timestamp":1700000000,"reward":{"name":"5 coins"}},
			{"id":"b","timestamp":"1700000000000","reward":"10 coins"},
			{"_id":"c","timestamp":"2023-11-14T22:13:20Z"},
			{"id":"d","timestamp":{"seconds":1700000000}}
		]`))
	}), "t")

	got, err := c.Shakes(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	want := time.Unix(1700000000, 0)
	for _, s := range got {
		require.True(t, s.Timestamp.Equal(want), "shake %s: %v", s.ID, s.Timestamp)
		require.True(t, s.Synced)
	}
	require.Equal(t, "5 coins", got[0].Reward)
	require.Equal(t, "10 coins", got[1].Reward)
	require.Equal(t, "c", got[2].ID)
}

func TestRecentActivities_MissingEndpointDegradesToEmpty(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler(), "t")

	got, err := c.RecentActivities(context.Background(), "shake", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestLogActivity_MissingEndpointIsSoftSuccess(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler(), "t")
	require.NoError(t, c.LogActivity(context.Background(), "shake", "Shake completed"))
}

func TestRecordShake_SubmitsCountAndTimestamp(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, jsonDecode(r, &gotBody))
		w.Write([]byte(`{"id":"s-1","timestamp":"2024-01-02T10:00:00Z","reward":{"name":"5 coins"}}`))
	}), "t")

	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	shake, err := c.RecordShake(context.Background(), 1, ts)
	require.NoError(t, err)
	require.Equal(t, "s-1", shake.ID)
	require.Equal(t, "5 coins", shake.Reward)
	require.True(t, shake.Timestamp.Equal(ts))

	require.Equal(t, float64(1), gotBody["count"])
	require.Equal(t, "2024-01-02T10:00:00Z", gotBody["timestamp"])
}

func TestSendPasswordReset_PostsEmail(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, jsonDecode(r, &gotBody))
		w.Write([]byte(`{"ok":true}`))
	}), "")

	require.NoError(t, c.SendPasswordReset(context.Background(), "ann@example.com"))
	require.Equal(t, "/api/auth/forgot-password", gotPath)
	require.Equal(t, "ann@example.com", gotBody["email"])
}

func TestSubmitFeedback_PostsReport(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, jsonDecode(r, &gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}), "t")

	fb := models.Feedback{Title: "Detection", Message: "too sensitive", Category: "bug", Rating: 2}
	require.NoError(t, c.SubmitFeedback(context.Background(), fb))
	require.Equal(t, "/api/feedbacks", gotPath)
	require.Equal(t, "too sensitive", gotBody["message"])
	require.Equal(t, "bug", gotBody["category"])
	require.Equal(t, float64(2), gotBody["rating"])
}
