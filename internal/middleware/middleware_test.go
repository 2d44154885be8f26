package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/eventflow-booking/internal/config"
    "github.com/iliyamo/eventflow-booking/internal/logger"
    "github.com/iliyamo/eventflow-booking/internal/model"
    "github.com/iliyamo/eventflow-booking/internal/utils"
)

const testSecret = "jwt-test-secret"

func guarded(need model.Capability) *echo.Echo {
    e := echo.New()
    e.Use(Identify(testSecret))
    e.GET("/admin/stats", func(c echo.Context) error {
        return c.String(http.StatusOK, IdentityFrom(c).Subject)
    }, RequireCapability(need))
    e.GET("/open", func(c echo.Context) error {
        return c.String(http.StatusOK, string(IdentityFrom(c).Role))
    })
    return e
}

func bearer(t *testing.T, role model.Role) string {
    t.Helper()
    tok, err := utils.NewAccessToken(testSecret, "ops-1", role, time.Hour)
    require.NoError(t, err)
    return "Bearer " + tok.Token
}

func do(e *echo.Echo, method, path, auth string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(method, path, nil)
    if auth != "" {
        req.Header.Set(echo.HeaderAuthorization, auth)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestRequireCapability(t *testing.T) {
    e := guarded(model.CanViewStats)

    rec := do(e, http.MethodGet, "/admin/stats", "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    rec = do(e, http.MethodGet, "/admin/stats", bearer(t, model.RoleOrganizer))
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec = do(e, http.MethodGet, "/admin/stats", bearer(t, model.RoleAdmin))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "ops-1", rec.Body.String())
}

func TestOrganizerCanViewBookings(t *testing.T) {
    e := guarded(model.CanViewBookings)
    rec := do(e, http.MethodGet, "/admin/stats", bearer(t, model.RoleOrganizer))
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentifyAnonymousAndBadTokens(t *testing.T) {
    e := guarded(model.CanViewStats)

    rec := do(e, http.MethodGet, "/open", "")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "anonymous", rec.Body.String())

    rec = do(e, http.MethodGet, "/open", "Basic Zm9vOmJhcg==")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    rec = do(e, http.MethodGet, "/open", "Bearer not.a.token")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenBucketDisabledPassesThrough(t *testing.T) {
    e := echo.New()
    e.POST("/events", func(c echo.Context) error { return c.NoContent(http.StatusCreated) },
        NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, nil))
    for i := 0; i < 5; i++ {
        assert.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/events", "").Code)
    }
}

func TestTokenBucketFailsOpenOnRedisError(t *testing.T) {
    rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
    defer rdb.Close()
    cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Second, TTL: time.Minute, Prefix: "rl"}

    e := echo.New()
    e.POST("/payment/order", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb, nil))
    assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/payment/order", "").Code)
    assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/payment/order", "").Code)
}

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/events", nil)
    req.Header.Set(echo.HeaderXRealIP, "10.0.0.7")
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/events")

    assert.Equal(t, "rl:ip:10.0.0.7", buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c))
    assert.Equal(t, "rl:ip:10.0.0.7:route:POST /events", buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}, c))

    c.Set(identityKey, model.Identity{Subject: "ops-1", Role: model.RoleAdmin})
    assert.Equal(t, "rl:ip:10.0.0.7:user:ops-1:route:POST /events", buildRateKey(config.RateLimitConfig{Prefix: "rl"}, c))
}

func TestCachePayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"key":"rzp_test_x"}`))
    require.NoError(t, err)

    status, got, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", got.Get("Content-Type"))
    assert.JSONEq(t, `{"key":"rzp_test_x"}`, string(body))

    _, _, _, ok = decodePayload(bs[:6])
    assert.False(t, ok)
}

func TestCaptureWriterOverflow(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
    _, _ = cw.Write([]byte("abc"))
    _, _ = cw.Write([]byte("def"))
    assert.True(t, cw.overflow)
    assert.Equal(t, "abcdef", rec.Body.String())
}

func TestRequestIDReachesContext(t *testing.T) {
    e := echo.New()
    e.Use(RequestID())
    e.GET("/", func(c echo.Context) error {
        return c.String(http.StatusOK, logger.RequestID(c.Request().Context()))
    })

    req := httptest.NewRequest(http.MethodGet, "/", nil)
    req.Header.Set(echo.HeaderXRequestID, "req-42")
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, "req-42", rec.Body.String())

    rec = do(e, http.MethodGet, "/", "")
    assert.Len(t, rec.Body.String(), 36)
    assert.Equal(t, rec.Body.String(), rec.Header().Get(echo.HeaderXRequestID))
}
