package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pioneersx/pioneersx/pkg/domain"
	"github.com/pioneersx/pioneersx/pkg/session"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// operation describes one public client call and the request it must produce.
type operation struct {
	name   string
	method string
	path   string
	body   string // expected JSON body, "" for none
	call   func(ctx context.Context, c *Client) Result
}

func operations() []operation {
	return []operation{
		{"Register", http.MethodPost, "/auth/register", `{"name":"Ada","email":"a@b.com","password":"pw"}`,
			func(ctx context.Context, c *Client) Result {
				return c.Register(ctx, domain.RegisterRequest{Name: "Ada", Email: "a@b.com", Password: "pw"})
			}},
		{"Login", http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"pw"}`,
			func(ctx context.Context, c *Client) Result { return c.Login(ctx, "a@b.com", "pw") }},
		{"ForgotPassword", http.MethodPost, "/auth/forgot-password", `{"email":"a@b.com"}`,
			func(ctx context.Context, c *Client) Result { return c.ForgotPassword(ctx, "a@b.com") }},
		{"ResetPassword", http.MethodPut, "/auth/reset-password/rt1", `{"password":"new"}`,
			func(ctx context.Context, c *Client) Result { return c.ResetPassword(ctx, "rt1", "new") }},
		{"VerifyEmail", http.MethodGet, "/auth/verify-email/vt1", "",
			func(ctx context.Context, c *Client) Result { return c.VerifyEmail(ctx, "vt1") }},
		{"GetMe", http.MethodGet, "/auth/me", "",
			func(ctx context.Context, c *Client) Result { return c.GetMe(ctx) }},
		{"UpdateProfile", http.MethodPut, "/users/profile", `{"name":"Ada L"}`,
			func(ctx context.Context, c *Client) Result {
				return c.UpdateProfile(ctx, domain.ProfileUpdate{Name: "Ada L"})
			}},
		{"ChangePassword", http.MethodPut, "/users/change-password", `{"currentPassword":"old","newPassword":"new"}`,
			func(ctx context.Context, c *Client) Result {
				return c.ChangePassword(ctx, domain.PasswordChange{CurrentPassword: "old", NewPassword: "new"})
			}},
		{"CreateOrder", http.MethodPost, "/payments/create-order", `{"product":"clinix","plan":"pro","billingCycle":"yearly"}`,
			func(ctx context.Context, c *Client) Result { return c.CreateOrder(ctx, "clinix", "pro", "yearly") }},
		{"CaptureOrder", http.MethodPost, "/payments/capture-order", `{"orderId":"O-1"}`,
			func(ctx context.Context, c *Client) Result { return c.CaptureOrder(ctx, "O-1") }},
		{"GetPaymentHistory", http.MethodGet, "/payments/history", "",
			func(ctx context.Context, c *Client) Result { return c.GetPaymentHistory(ctx) }},
		{"GetSubscriptionPlans", http.MethodGet, "/subscriptions/plans", "",
			func(ctx context.Context, c *Client) Result { return c.GetSubscriptionPlans(ctx) }},
		{"GetMySubscriptions", http.MethodGet, "/subscriptions/my", "",
			func(ctx context.Context, c *Client) Result { return c.GetMySubscriptions(ctx) }},
		{"GetSubscription", http.MethodGet, "/subscriptions/s1", "",
			func(ctx context.Context, c *Client) Result { return c.GetSubscription(ctx, "s1") }},
		{"CancelSubscription", http.MethodPut, "/subscriptions/s1/cancel", "",
			func(ctx context.Context, c *Client) Result { return c.CancelSubscription(ctx, "s1") }},
		{"ReactivateSubscription", http.MethodPut, "/subscriptions/s1/reactivate", "",
			func(ctx context.Context, c *Client) Result { return c.ReactivateSubscription(ctx, "s1") }},
	}
}

func loggedInStore(t *testing.T) *session.MemoryStore {
	t.Helper()
	s := session.NewMemoryStore()
	require.NoError(t, s.SetToken(context.Background(), "tok"))
	require.NoError(t, s.SetUser(context.Background(), json.RawMessage(`{"id":1,"name":"Ada"}`)))
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestOperationsWireContract(t *testing.T) {
	for _, op := range operations() {
		t.Run(op.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, op.method, r.Method)
				assert.Equal(t, "/api"+op.path, r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NotEmpty(t, r.Header.Get(RequestIDHeader))

				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				if op.body == "" {
					assert.Empty(t, body)
				} else {
					assert.JSONEq(t, op.body, string(body))
				}
				writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"ok": true}})
			}))
			defer srv.Close()

			c := New(srv.URL+"/api/", session.NewMemoryStore())
			res := op.call(context.Background(), c)
			assert.True(t, res.Success)
			assert.Equal(t, KindOK, res.Kind)
			assert.Equal(t, MsgSuccess, res.Message)
		})
	}
}

func TestOperationsUnauthorizedClearsSession(t *testing.T) {
	for _, op := range operations() {
		t.Run(op.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "jwt expired"})
			}))
			defer srv.Close()

			var expired atomic.Int32
			store := loggedInStore(t)
			c := New(srv.URL, store, WithSessionExpiredHandler(func() { expired.Add(1) }))

			res := op.call(context.Background(), c)
			assert.False(t, res.Success)
			assert.Equal(t, MsgSessionExpired, res.Message)
			assert.Equal(t, KindSessionExpired, res.Kind)
			assert.Nil(t, res.Data)
			assert.EqualValues(t, 1, expired.Load())

			tok, _ := store.Token(context.Background())
			assert.Empty(t, tok)
			user, _ := store.User(context.Background())
			assert.Nil(t, user)
			assert.False(t, c.IsLoggedIn(context.Background()))
		})
	}
}

func TestUnauthorizedWithNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, "<html>nope</html>") //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, loggedInStore(t))
	res := c.GetMe(context.Background())
	assert.Equal(t, KindSessionExpired, res.Kind)
	assert.Equal(t, MsgSessionExpired, res.Message)
}

func TestOperationsNetworkError(t *testing.T) {
	failing := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	})}
	for _, op := range operations() {
		t.Run(op.name, func(t *testing.T) {
			store := loggedInStore(t)
			c := New("http://backend.invalid", store, WithHTTPClient(failing))

			res := op.call(context.Background(), c)
			assert.False(t, res.Success)
			assert.Equal(t, MsgNetworkError, res.Message)
			assert.Equal(t, KindTransport, res.Kind)
			assert.Error(t, res.Cause)

			// Transport failures leave the session alone.
			assert.True(t, c.IsLoggedIn(context.Background()))
		})
	}
}

func TestLoginPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"token": "T", "user": map[string]any{"id": 1}}})
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	c := New(srv.URL, store)
	res := c.Login(context.Background(), "a@b.com", "pw")

	require.True(t, res.Success)
	assert.JSONEq(t, `{"token":"T","user":{"id":1}}`, string(res.Data))
	assert.Equal(t, MsgSuccess, res.Message)
	assert.Equal(t, http.StatusOK, res.Status)

	tok, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T", tok)
	user, err := store.User(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(user))
	assert.True(t, c.IsLoggedIn(context.Background()))

	me, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, domain.FlexibleID("1"), me.ID)
}

func TestLoginUsesBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Welcome back", "data": map[string]any{"token": "T"}})
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	c := New(srv.URL, store)
	res := c.Login(context.Background(), "a@b.com", "pw")
	assert.Equal(t, "Welcome back", res.Message)

	// Token without user: the token is stored, the profile is not.
	tok, _ := store.Token(context.Background())
	assert.Equal(t, "T", tok)
	user, _ := store.User(context.Background())
	assert.Nil(t, user)
	assert.False(t, c.IsLoggedIn(context.Background()))
}

func TestLoginFailureDoesNotPersist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid credentials",
			"data":    map[string]any{"token": "T", "user": map[string]any{"id": 1}},
		})
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	c := New(srv.URL, store)
	res := c.Login(context.Background(), "a@b.com", "bad")

	assert.False(t, res.Success)
	assert.Equal(t, KindDomain, res.Kind)
	assert.Equal(t, "Invalid credentials", res.Message)
	tok, _ := store.Token(context.Background())
	assert.Empty(t, tok)
}

func TestRegisterPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"data": map[string]any{"token": "R", "user": map[string]any{"id": "u1"}}})
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	c := New(srv.URL, store)
	res := c.Register(context.Background(), domain.RegisterRequest{Email: "a@b.com", Password: "pw"})
	require.True(t, res.Success)

	tok, _ := store.Token(context.Background())
	assert.Equal(t, "R", tok)
	assert.True(t, c.IsLoggedIn(context.Background()))
}

func TestGetMeAndUpdateProfilePersistUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": 1, "name": "Fresh"}})
		case "/users/profile":
			writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "data": map[string]any{"id": 1, "name": "Updated"}})
		}
	}))
	defer srv.Close()

	store := loggedInStore(t)
	c := New(srv.URL, store)

	require.True(t, c.GetMe(context.Background()).Success)
	user, _ := store.User(context.Background())
	assert.JSONEq(t, `{"id":1,"name":"Fresh"}`, string(user))

	res := c.UpdateProfile(context.Background(), domain.ProfileUpdate{Name: "Updated"})
	require.True(t, res.Success)
	assert.Equal(t, "Profile updated", res.Message)
	user, _ = store.User(context.Background())
	assert.JSONEq(t, `{"id":1,"name":"Updated"}`, string(user))
}

func TestGetMeFailureKeepsCachedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"data": map[string]any{"id": 99}})
	}))
	defer srv.Close()

	store := loggedInStore(t)
	c := New(srv.URL, store)
	res := c.GetMe(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, MsgRequestFailed, res.Message)

	user, _ := store.User(context.Background())
	assert.JSONEq(t, `{"id":1,"name":"Ada"}`, string(user))
}

func TestChangePasswordDoesNotTouchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"id": 2, "name": "Someone Else"}})
	}))
	defer srv.Close()

	store := loggedInStore(t)
	c := New(srv.URL, store)
	res := c.ChangePassword(context.Background(), domain.PasswordChange{CurrentPassword: "a", NewPassword: "b"})
	require.True(t, res.Success)

	user, _ := store.User(context.Background())
	assert.JSONEq(t, `{"id":1,"name":"Ada"}`, string(user))
}

func TestLogoutIssuesNoRequest(t *testing.T) {
	var calls atomic.Int32
	hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("unexpected request")
	})}

	c := New("http://backend.invalid", loggedInStore(t), WithHTTPClient(hc))
	require.True(t, c.IsLoggedIn(context.Background()))
	require.NoError(t, c.Logout(context.Background()))

	assert.False(t, c.IsLoggedIn(context.Background()))
	assert.Zero(t, calls.Load())
}

func TestAuthorizationHeader(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if _, present := r.Header["Authorization"]; present {
			got = append(got, r.Header.Get("Authorization"))
		} else {
			got = append(got, "<absent>")
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	defer srv.Close()

	store := session.NewMemoryStore()
	c := New(srv.URL, store)
	c.GetSubscriptionPlans(context.Background())

	require.NoError(t, store.SetToken(context.Background(), "abc"))
	c.GetSubscriptionPlans(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"<absent>", "Bearer abc"}, got)
}

func TestHeaderMerge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "pioneersx-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "per-call", r.Header.Get("X-Extra"))
		// The stored token wins over a caller-supplied Authorization.
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	defer srv.Close()

	c := New(srv.URL, loggedInStore(t), WithUserAgent("pioneersx-test"), WithHeader("X-Extra", "static"))
	res := c.Execute(context.Background(), http.MethodGet, "/anything", nil, map[string]string{
		"Content-Type":  "text/plain",
		"X-Extra":       "per-call",
		"Authorization": "Bearer spoofed",
	})
	assert.True(t, res.Success)
}

func TestCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(srv.URL, session.NewMemoryStore()).GetMe(ctx)
	assert.Equal(t, KindTransport, res.Kind)
	assert.ErrorIs(t, res.Cause, context.Canceled)
}

func TestUnencodableBody(t *testing.T) {
	c := New("http://backend.invalid", session.NewMemoryStore())
	res := c.Execute(context.Background(), http.MethodPost, "/x", map[string]any{"ch": make(chan int)}, nil)
	assert.Equal(t, KindTransport, res.Kind)
	assert.Equal(t, MsgNetworkError, res.Message)
}

// brokenStore fails every operation.
type brokenStore struct{}

func (brokenStore) Token(context.Context) (string, error) { return "", errors.New("disk gone") }
func (brokenStore) SetToken(context.Context, string) error { return errors.New("disk gone") }
func (brokenStore) User(context.Context) (json.RawMessage, error) { return nil, errors.New("disk gone") }
func (brokenStore) SetUser(context.Context, json.RawMessage) error { return errors.New("disk gone") }
func (brokenStore) Clear(context.Context) error { return errors.New("disk gone") }

func TestStoreFailuresDoNotChangeResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"token": "T", "user": map[string]any{"id": 1}}})
	}))
	defer srv.Close()

	c := New(srv.URL, brokenStore{})
	res := c.Login(context.Background(), "a@b.com", "pw")
	assert.True(t, res.Success)
	assert.False(t, c.IsLoggedIn(context.Background()))
	assert.Error(t, c.Logout(context.Background()))
}
