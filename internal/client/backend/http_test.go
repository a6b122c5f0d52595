package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestExchangeHostIdentitySignedIn(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/telegram", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "signed-payload", body["initData"])

		_ = json.NewEncoder(w).Encode(map[string]any{"accessToken": "tok123"})
	})

	c := NewHTTPClient(srv.URL)
	res, err := c.ExchangeHostIdentity(context.Background(), "signed-payload")
	require.NoError(t, err)
	require.False(t, res.NeedsRegistration)
	require.Equal(t, "tok123", res.Credential)
}

func TestExchangeHostIdentityNeedsRegistration(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"needsRegistration": true,
			"telegramUser":      map[string]string{"firstName": "A", "lastName": "B"},
		})
	})

	c := NewHTTPClient(srv.URL)
	res, err := c.ExchangeHostIdentity(context.Background(), "payload")
	require.NoError(t, err)
	require.True(t, res.NeedsRegistration)
	require.NotNil(t, res.Pending)
	require.Equal(t, "A", res.Pending.FirstName)
	require.Equal(t, "B", res.Pending.LastName)
	require.Empty(t, res.Credential)
}

func TestExchangeHostIdentityEmptyResponse(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	})

	c := NewHTTPClient(srv.URL)
	_, err := c.ExchangeHostIdentity(context.Background(), "payload")
	require.ErrorIs(t, err, ErrNetwork)
}

func TestPasswordLoginSuccess(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["email"])
		require.Equal(t, "secret1", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok123"})
	})

	c := NewHTTPClient(srv.URL)
	cred, err := c.PasswordLogin(context.Background(), "a@b.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "tok123", cred)
}

func TestPasswordLoginRejected(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad credentials"}`, http.StatusUnauthorized)
	})

	c := NewHTTPClient(srv.URL)
	_, err := c.PasswordLogin(context.Background(), "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterConflict(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"email taken"}`, http.StatusConflict)
	})

	c := NewHTTPClient(srv.URL)
	_, err := c.Register(context.Background(), RegistrationForm{Email: "a@b.com"})
	require.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidationErrors(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": map[string]string{"email": "invalid format"},
		})
	})

	c := NewHTTPClient(srv.URL)
	_, err := c.Register(context.Background(), RegistrationForm{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "invalid format", vErr.FieldErrors["email"])
}

func TestRegisterForwardsHostPayload(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var form map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		require.Equal(t, "signed-payload", form["initData"])
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok123"})
	})

	c := NewHTTPClient(srv.URL)
	_, err := c.Register(context.Background(), RegistrationForm{
		FirstName: "A", LastName: "B", Email: "a@b.com",
		Password: "secret1", ConfirmPassword: "secret1",
		HostPayload: "signed-payload",
	})
	require.NoError(t, err)
}

func TestFetchProfileAttachesBearer(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "firstName": "A"})
	})

	c := NewHTTPClient(srv.URL)
	profile, err := c.FetchProfile(context.Background(), "tok123")
	require.NoError(t, err)
	require.Equal(t, int64(1), profile.ID)
	require.Equal(t, "A", profile.FirstName)
}

func TestFetchProfileUnauthorized(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"token expired"}`, http.StatusUnauthorized)
	})

	c := NewHTTPClient(srv.URL)
	_, err := c.FetchProfile(context.Background(), "stale")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestServerErrorMapping(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	c := NewHTTPClient(srv.URL)
	_, err := c.FetchProfile(context.Background(), "tok123")

	var srvErr *ServerError
	require.ErrorAs(t, err, &srvErr)
	require.Equal(t, http.StatusBadGateway, srvErr.Code)
	require.True(t, Retryable(err))
}

func TestNetworkErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	c := NewHTTPClient(srv.URL)
	_, err := c.FetchProfile(context.Background(), "tok123")
	require.ErrorIs(t, err, ErrNetwork)
	require.True(t, Retryable(err))
}

func TestTimeoutMapsToNetworkError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewHTTPClient(srv.URL)
	_, err := c.FetchProfile(ctx, "tok123")
	require.ErrorIs(t, err, ErrNetwork)
}

func TestEnrollActivity(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/activities/7/register", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
	})

	c := NewHTTPClient(srv.URL)
	require.NoError(t, c.EnrollActivity(context.Background(), "tok123", 7))
}

func TestListActivities(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/activities", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 7, "title": "Yoga", "freeSlots": 3, "isRegistered": true},
		})
	})

	c := NewHTTPClient(srv.URL)
	activities, err := c.ListActivities(context.Background(), "tok123")
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, "Yoga", activities[0].Title)
	require.True(t, activities[0].Enrolled)
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{FieldErrors: map[string]string{"email": "required", "password": "too short"}}
	require.Equal(t, "validation failed: email: required; password: too short", err.Error())
	require.False(t, Retryable(errors.New("other")))
}
