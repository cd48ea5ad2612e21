package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/platform/memory"
	"github.com/phrazzld/servicehub-api/internal/service/auth"
	"github.com/phrazzld/servicehub-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:5173"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   5000,
			LogLevel:               "debug",
			LogFormat:              "json",
			AllowedOrigins:         []string{testOrigin},
			ShutdownTimeoutSeconds: 1,
		},
		Database: config.DatabaseConfig{
			Driver:                config.DriverMemory,
			Name:                  "serviceHub",
			ConnectTimeoutSeconds: 1,
		},
		Auth: testutils.TestAuthConfig(),
	}
}

// testServer is the full router over a fresh in-memory backend.
type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app, err := newApplication(testConfig(), logger, newMemoryDatabase(memory.New()))
	require.NoError(t, err)
	return &testServer{t: t, router: app.setupRouter()}
}

func (s *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) login(payload string) *http.Cookie {
	s.t.Helper()
	rr := s.do(http.MethodPost, "/jwt", payload)
	require.Equal(s.t, http.StatusOK, rr.Code)
	for _, c := range rr.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	s.t.Fatal("no token cookie set")
	return nil
}

func jsonBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestGreeting(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Hello World", rr.Body.String())

	rr = s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCredentialGate(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/addReview", `{"id":"svc1","email":"a@x.com","rating":5}`)
	require.Equal(t, http.StatusOK, rr.Code)

	cookie := s.login(`{"user":{"email":"a@x.com"}}`)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	t.Run("owner reads own reviews", func(t *testing.T) {
		rr := s.do(http.MethodGet, "/myReviews/a@x.com", "", cookie)
		require.Equal(t, http.StatusOK, rr.Code)
		reviews := jsonBody[[]map[string]any](t, rr)
		require.Len(t, reviews, 1)
		assert.Equal(t, "svc1", reviews[0]["id"])
	})

	t.Run("other email is forbidden", func(t *testing.T) {
		rr := s.do(http.MethodGet, "/myReviews/b@x.com", "", cookie)
		testutils.AssertErrorResponse(t, rr.Result(), http.StatusForbidden, "forbidden access")
	})

	t.Run("no cookie is unauthorized", func(t *testing.T) {
		rr := s.do(http.MethodGet, "/myReviews/a@x.com", "")
		testutils.AssertErrorResponse(t, rr.Result(), http.StatusUnauthorized, "unauthorized access")
	})

	t.Run("cookie minted with the shared secret is accepted", func(t *testing.T) {
		minted := testutils.CredentialCookie(t, testutils.NewTestJWTService(t), "a@x.com")
		rr := s.do(http.MethodGet, "/myReviews/a@x.com", "", minted)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("cookie signed with another secret is unauthorized", func(t *testing.T) {
		other := testutils.TestAuthConfig()
		other.JWTSecret = "another-secret-that-is-at-least-32-chars"
		svc, err := auth.NewJWTService(other)
		require.NoError(t, err)
		rr := s.do(http.MethodGet, "/myReviews/a@x.com", "", testutils.CredentialCookie(t, svc, "a@x.com"))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("forged cookie is unauthorized", func(t *testing.T) {
		forged := &http.Cookie{Name: "token", Value: cookie.Value + "x"}
		rr := s.do(http.MethodGet, "/myReviews/a@x.com", "", forged)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("delete requires ownership", func(t *testing.T) {
		rr := s.do(http.MethodDelete, "/deleteReview/b@x.com/svc1", "", cookie)
		assert.Equal(t, http.StatusForbidden, rr.Code)

		rr = s.do(http.MethodDelete, "/deleteReview/a@x.com/svc1", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = s.do(http.MethodGet, "/allReviews", "")
		assert.Len(t, jsonBody[[]map[string]any](t, rr), 1, "rejected deletes must not touch the store")

		rr = s.do(http.MethodDelete, "/deleteReview/a@x.com/svc1", "", cookie)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1.0, jsonBody[map[string]any](t, rr)["deletedCount"])
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		rr := s.do(http.MethodPost, "/logout", "", cookie)
		require.Equal(t, http.StatusOK, rr.Code)
		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
	})
}

func TestCredentialGate_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	cfg := testConfig()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app, err := newApplication(cfg, logger, newMemoryDatabase(memory.New()))
	require.NoError(t, err)
	app.jwtService, err = auth.NewJWTServiceWithClock(cfg.Auth, clock)
	require.NoError(t, err)
	s := &testServer{t: t, router: app.setupRouter()}

	cookie := s.login(`{"user":{"email":"a@x.com"}}`)

	now = now.Add(59 * time.Minute)
	rr := s.do(http.MethodGet, "/myReviews/a@x.com", "", cookie)
	assert.Equal(t, http.StatusOK, rr.Code, "token is valid within its lifetime")

	now = now.Add(2 * time.Minute)
	rr = s.do(http.MethodGet, "/myReviews/a@x.com", "", cookie)
	testutils.AssertErrorResponse(t, rr.Result(), http.StatusUnauthorized, "unauthorized access")
}

func TestEncodedPathParams(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/addService", `{"name":"svc","serviceCreator":"a@x.com"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(http.MethodPost, "/addReview", `{"id":"svc1","email":"a@x.com","rating":5}`)
	require.Equal(t, http.StatusOK, rr.Code)

	cookie := s.login(`{"user":{"email":"a@x.com"}}`)

	rr = s.do(http.MethodGet, "/services/a%40x.com", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, jsonBody[[]map[string]any](t, rr), 1)

	rr = s.do(http.MethodGet, "/myReviews/a%40x.com", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, jsonBody[[]map[string]any](t, rr), 1)

	rr = s.do(http.MethodGet, "/myReviews/b%40x.com", "", cookie)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(http.MethodDelete, "/deleteReview/a%40x.com/svc1", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1.0, jsonBody[map[string]any](t, rr)["deletedCount"])
}

func TestUppercaseServiceID(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/addService", `{"name":"Gardening"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	id, _ := jsonBody[map[string]any](t, rr)["insertedId"].(string)
	require.NotEmpty(t, id)

	rr = s.do(http.MethodGet, "/service/"+strings.ToUpper(id), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Gardening", jsonBody[map[string]any](t, rr)["name"])
}

func TestServicesLimit(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	for i := 0; i < 5; i++ {
		rr := s.do(http.MethodPost, "/addService", `{"name":"svc","serviceCreator":"a@x.com"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := s.do(http.MethodGet, "/services?limit=2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, jsonBody[[]map[string]any](t, rr), 2)

	rr = s.do(http.MethodGet, "/services", "")
	assert.Len(t, jsonBody[[]map[string]any](t, rr), 5)

	rr = s.do(http.MethodGet, "/services/a@x.com", "")
	assert.Len(t, jsonBody[[]map[string]any](t, rr), 5)

	rr = s.do(http.MethodGet, "/countData", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"serviceCount":5,"reviewCount":0,"userCount":0}`, rr.Body.String())
}

func TestServiceLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/addService", `{"name":"Gardening","price":30}`)
	require.Equal(t, http.StatusOK, rr.Code)
	id, _ := jsonBody[map[string]any](t, rr)["insertedId"].(string)
	require.NotEmpty(t, id)

	rr = s.do(http.MethodPut, "/updateService/"+id, `{"price":35}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodGet, "/service/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	doc := jsonBody[map[string]any](t, rr)
	assert.Equal(t, "Gardening", doc["name"])
	assert.Equal(t, 35.0, doc["price"])

	rr = s.do(http.MethodDelete, "/deleteService/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1.0, jsonBody[map[string]any](t, rr)["deletedCount"])

	rr = s.do(http.MethodDelete, "/deleteService/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 0.0, jsonBody[map[string]any](t, rr)["deletedCount"])

	rr = s.do(http.MethodGet, "/service/"+id, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()))

	rr = s.do(http.MethodGet, "/service/not-an-id", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAddUserUniqueness(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/addUser", `{"email":"a@x.com","name":"Ann"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(http.MethodPost, "/addUser", `{"email":"a@x.com","name":"Ann again"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := jsonBody[map[string]string](t, rr)
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["trace_id"])
}

func TestAddUserConcurrent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	const n = 20
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = s.do(http.MethodPost, "/addUser", `{"email":"race@x.com"}`).Code
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, c := range codes {
		if c == http.StatusOK {
			ok++
		} else {
			assert.Equal(t, http.StatusBadRequest, c)
		}
	}
	assert.Equal(t, 1, ok, "exactly one concurrent insert may succeed")

	rr := s.do(http.MethodGet, "/countData", "")
	assert.Equal(t, 1.0, jsonBody[map[string]any](t, rr)["userCount"])
}

func TestCORS(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/services", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	assert.Equal(t, testOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/services", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr = httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenDatabase(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	db, err := openDatabase(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, logger)
	require.NoError(t, err)
	assert.NoError(t, db.pinger.Ping(context.Background()))
	assert.NoError(t, db.close(context.Background()))

	_, err = openDatabase(context.Background(), config.DatabaseConfig{Driver: "sqlite"}, logger)
	assert.Error(t, err)
}

func TestNewApplication_BadSecret(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Auth.JWTSecret = "short"
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app, err := newApplication(cfg, logger, newMemoryDatabase(memory.New()))
	assert.Error(t, err)
	require.NotNil(t, app)
	app.cleanup()
}

func TestStartHTTPServer_ContextCancel(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Server.Port = 0
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app, err := newApplication(cfg, logger, newMemoryDatabase(memory.New()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, app.startHTTPServer(ctx, app.setupRouter()))
}
