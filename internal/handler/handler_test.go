package handler

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/eventflow-booking/internal/apperror"
    "github.com/iliyamo/eventflow-booking/internal/model"
    "github.com/iliyamo/eventflow-booking/internal/notify"
    "github.com/iliyamo/eventflow-booking/internal/payment"
    "github.com/iliyamo/eventflow-booking/internal/repository"
    "github.com/iliyamo/eventflow-booking/internal/service"
)

const verifySecret = "test_secret"

type fakeOrders struct {
    calls int
    err   error
}

func (f *fakeOrders) CreateOrder(_ context.Context, req model.OrderRequest) (*model.Order, error) {
    f.calls++
    if f.err != nil {
        return nil, f.err
    }
    amount, err := payment.ResolveAmount(req)
    if err != nil {
        return nil, err
    }
    return &model.Order{
        ID: "order_IluGWxBm9U8zJ8", Entity: "order", Amount: payment.ToMinorUnits(amount),
        AmountDue: payment.ToMinorUnits(amount), Currency: model.CurrencyINR, Receipt: "event_1", Status: "created",
    }, nil
}

type nopOutbox struct{}

func (nopOutbox) Enqueue(context.Context, notify.BookingCreatedEvent) error { return nil }

func call(h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if len(params) == 2 {
        c.SetParamNames(params[0])
        c.SetParamValues(params[1])
    }
    _ = h(c)
    return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
    t.Helper()
    var m map[string]any
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
    return m
}

func newPaymentHandler(orders *fakeOrders) *PaymentHandler {
    return NewPaymentHandler(orders, payment.NewVerifier(verifySecret), "rzp_test_1DP5mmOlF5G5ag", nil)
}

func TestPaymentKey(t *testing.T) {
    rec := call(newPaymentHandler(&fakeOrders{}).Key, http.MethodGet, "/payment/key", "")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"key":"rzp_test_1DP5mmOlF5G5ag"}`, rec.Body.String())
}

func TestCreateOrderReturnsGatewayOrder(t *testing.T) {
    orders := &fakeOrders{}
    rec := call(newPaymentHandler(orders).CreateOrder, http.MethodPost, "/payment/order", `{"amount":500}`)
    require.Equal(t, http.StatusOK, rec.Code)
    body := decode(t, rec)
    assert.Equal(t, float64(50000), body["amount"])
    assert.Equal(t, "INR", body["currency"])
    assert.Equal(t, "order_IluGWxBm9U8zJ8", body["id"])
}

func TestCreateOrderValidation(t *testing.T) {
    for name, body := range map[string]string{
        "missing":  `{}`,
        "zero":     `{"amount":0}`,
        "negative": `{"amount":-10}`,
        "string":   `{"amount":"five hundred"}`,
    } {
        t.Run(name, func(t *testing.T) {
            rec := call(newPaymentHandler(&fakeOrders{}).CreateOrder, http.MethodPost, "/payment/order", body)
            assert.Equal(t, http.StatusBadRequest, rec.Code)
            assert.NotEmpty(t, decode(t, rec)["error"])
        })
    }
}

func TestCreateOrderUpstreamFailure(t *testing.T) {
    orders := &fakeOrders{err: apperror.Upstream("failed to create payment order", errors.New("gateway down"))}
    rec := call(newPaymentHandler(orders).CreateOrder, http.MethodPost, "/payment/order", `{"amount":500}`)
    assert.Equal(t, http.StatusBadGateway, rec.Code)
    assert.JSONEq(t, `{"error":"failed to create payment order"}`, rec.Body.String())
    assert.Equal(t, 1, orders.calls)
}

func TestVerify(t *testing.T) {
    h := newPaymentHandler(&fakeOrders{})
    sig := payment.Sign(verifySecret, "order_IluGWxBm9U8zJ8", "pay_IluGj8OGnxmD3X")

    ok := `{"razorpay_order_id":"order_IluGWxBm9U8zJ8","razorpay_payment_id":"pay_IluGj8OGnxmD3X","razorpay_signature":"` + sig + `"}`
    rec := call(h.Verify, http.MethodPost, "/payment/verify", ok)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"success":true}`, rec.Body.String())

    bad := strings.Replace(ok, sig, strings.ToUpper(sig), 1)
    rec = call(h.Verify, http.MethodPost, "/payment/verify", bad)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.JSONEq(t, `{"success":false}`, rec.Body.String())

    rec = call(h.Verify, http.MethodPost, "/payment/verify", `{"razorpay_order_id":"order_IluGWxBm9U8zJ8"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, decode(t, rec), "error")
}

func newBookingHandler() *BookingHandler {
    svc := service.NewBookingService(repository.NewMemoryStore(), nopOutbox{}, nil)
    return NewBookingHandler(svc, nil)
}

const bookingBody = `{"name":"Asha","date":"2026-11-02","venue":"Goa Beach","email":"asha@example.in","package":"Premium"}`

func TestCreateBooking(t *testing.T) {
    h := newBookingHandler()
    rec := call(h.Create, http.MethodPost, "/events", bookingBody)
    require.Equal(t, http.StatusOK, rec.Code)
    body := decode(t, rec)
    assert.Equal(t, true, body["success"])
    event := body["event"].(map[string]any)
    assert.Equal(t, float64(1), event["id"])
    assert.Equal(t, "Premium", event["package"])

    rec = call(h.Create, http.MethodPost, "/events", `{"name":"Asha","date":"2026-11-02","venue":"Goa"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.JSONEq(t, `{"error":"All fields required"}`, rec.Body.String())
}

func TestAdminViews(t *testing.T) {
    h := newBookingHandler()
    call(h.Create, http.MethodPost, "/events", bookingBody)
    call(h.Create, http.MethodPost, "/events", strings.Replace(bookingBody, "Premium", "Basic", 1))

    rec := call(h.List, http.MethodGet, "/admin/events", "")
    require.Equal(t, http.StatusOK, rec.Code)
    var list []model.Booking
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
    assert.Len(t, list, 2)

    rec = call(h.Stats, http.MethodGet, "/admin/stats", "")
    assert.JSONEq(t, `{"totalEvents":2,"revenue":34998}`, rec.Body.String())

    rec = call(h.Approve, http.MethodPatch, "/admin/events/2/approve", "", "id", "2")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "APPROVED", decode(t, rec)["status"])

    rec = call(h.Get, http.MethodGet, "/admin/events/7", "", "id", "7")
    assert.Equal(t, http.StatusNotFound, rec.Code)

    rec = call(h.Get, http.MethodGet, "/admin/events/x", "", "id", "x")
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPackagesAndAssist(t *testing.T) {
    rec := call(Packages, http.MethodGet, "/packages", "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `{"currency":"INR","packages":[{"name":"Basic","price":9999},{"name":"Premium","price":24999},{"name":"Luxury","price":49999}]}`, rec.Body.String())

    rec = call(Assist, http.MethodPost, "/ai/assist", `{"question":"Birthday"}`)
    assert.JSONEq(t, `{"reply":"Basic or Premium works great for birthdays."}`, rec.Body.String())
}

func TestRespondErrorHidesInternalCause(t *testing.T) {
    h := func(c echo.Context) error {
        return respondError(c, newBookingHandler().Log, apperror.Internal("db exploded", errors.New("dsn secret")))
    }
    rec := call(h, http.MethodGet, "/", "")
    assert.Equal(t, http.StatusInternalServerError, rec.Code)
    assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
    rec := call(Health, http.MethodGet, "/healthz", "")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "ok", rec.Body.String())
}
